package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/glamour"
	nethtml "golang.org/x/net/html"
)

// HTMLText converts one of the API's *_html fields into plain text. The API
// escapes the markup once more, so the field is unescaped before parsing.
// Paragraphs are separated by a blank line; the result is not wrapped.
func HTMLText(raw string) string {
	raw = strings.TrimSpace(html.UnescapeString(raw))
	if raw == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	body := findBody(doc)
	if body == nil {
		return strings.TrimSpace(raw)
	}
	return strings.Join(trimBlank(blockLines(children(body), 0)), "\n")
}

// BodyText picks the readable text of an item body, preferring the rendered
// HTML and falling back to the raw markdown source.
func BodyText(htmlBody, plain string) string {
	if text := HTMLText(htmlBody); text != "" {
		return text
	}
	return strings.TrimSpace(plain)
}

// Markdown renders header markdown for the terminal. On any renderer error
// the text is wrapped plainly instead.
func Markdown(s Style, text string, width int) string {
	text = strings.TrimSpace(s.Text(text))
	if text == "" {
		return ""
	}
	if width <= 0 || width > Width {
		width = Width
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(s.MarkdownStyle),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(s.Profile),
	)
	if err != nil {
		return strings.Join(Wrap(text, width, ""), s.Newline)
	}
	out, err := r.Render(text)
	if err != nil {
		return strings.Join(Wrap(text, width, ""), s.Newline)
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(trimBlank(lines), s.Newline)
}

func blockLines(nodes []*nethtml.Node, depth int) []string {
	lines := make([]string, 0, len(nodes)*2)
	inline := make([]string, 0, 4)
	appendBlock := func(block []string) {
		if len(block) == 0 {
			return
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	flush := func() {
		text := normalizeInline(strings.Join(inline, ""))
		inline = inline[:0]
		if text != "" {
			appendBlock(strings.Split(text, "\n"))
		}
	}

	for _, node := range nodes {
		switch node.Type {
		case nethtml.TextNode:
			inline = append(inline, node.Data)
		case nethtml.ElementNode:
			if !isBlock(node.Data) {
				inline = append(inline, inlineText(node))
				continue
			}
			flush()
			appendBlock(block(node, depth))
		}
	}
	flush()
	return trimBlank(lines)
}

func block(node *nethtml.Node, depth int) []string {
	switch tag := strings.ToLower(node.Data); tag {
	case "script", "style":
		return nil
	case "blockquote":
		inner := blockLines(children(node), depth)
		out := make([]string, 0, len(inner))
		for _, line := range inner {
			out = append(out, strings.TrimRight("> "+line, " "))
		}
		return out
	case "ul", "ol":
		var out []string
		n := 0
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != nethtml.ElementNode || !strings.EqualFold(child.Data, "li") {
				continue
			}
			n++
			marker := "- "
			if tag == "ol" {
				marker = fmt.Sprintf("%d. ", n)
			}
			indent := strings.Repeat("  ", depth)
			for i, line := range blockLines(children(child), depth+1) {
				if i == 0 {
					out = append(out, indent+marker+line)
				} else if line != "" {
					out = append(out, indent+strings.Repeat(" ", len(marker))+line)
				}
			}
		}
		return out
	case "pre":
		raw := strings.ReplaceAll(rawText(node), "\r\n", "\n")
		var out []string
		for _, line := range strings.Split(raw, "\n") {
			out = append(out, strings.TrimRight("    "+line, " \t"))
		}
		return trimBlank(out)
	case "hr":
		return []string{strings.Repeat("-", 24)}
	case "table":
		var out []string
		for _, row := range tableRows(node) {
			out = append(out, strings.Join(row, " | "))
		}
		return out
	default:
		if hasBlockChild(node) {
			return blockLines(children(node), depth)
		}
		text := normalizeInline(inlineText(node))
		if text == "" {
			return nil
		}
		return strings.Split(text, "\n")
	}
}

func inlineText(node *nethtml.Node) string {
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
	default:
		return ""
	}
	switch strings.ToLower(node.Data) {
	case "script", "style", "img":
		return ""
	case "br":
		return "\n"
	case "a":
		text := normalizeInline(inlineChildren(node))
		href := attr(node, "href")
		switch {
		case href == "" || strings.EqualFold(text, href):
			if text == "" {
				return href
			}
			return text
		case text == "":
			return href
		default:
			return text + " (" + href + ")"
		}
	case "code":
		if text := inlineChildren(node); text != "" {
			return "`" + text + "`"
		}
		return ""
	case "del", "s", "strike":
		if text := inlineChildren(node); text != "" {
			return "~~" + text + "~~"
		}
		return ""
	case "sup":
		return "^" + inlineChildren(node)
	default:
		return inlineChildren(node)
	}
}

func inlineChildren(node *nethtml.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(inlineText(child))
	}
	return b.String()
}

func normalizeInline(s string) string {
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.Join(strings.Fields(part), " "); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, "\n")
}

func tableRows(node *nethtml.Node) [][]string {
	var rows [][]string
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != nethtml.ElementNode {
				continue
			}
			if !strings.EqualFold(child.Data, "tr") {
				walk(child)
				continue
			}
			var cells []string
			for cell := child.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type == nethtml.ElementNode && (strings.EqualFold(cell.Data, "td") || strings.EqualFold(cell.Data, "th")) {
					cells = append(cells, normalizeInline(strings.ReplaceAll(inlineChildren(cell), "\n", " ")))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
	}
	walk(node)
	return rows
}

func isBlock(tag string) bool {
	switch strings.ToLower(tag) {
	case "p", "div", "blockquote", "ul", "ol", "li", "pre", "hr", "table",
		"h1", "h2", "h3", "h4", "h5", "h6", "script", "style":
		return true
	}
	return false
}

func hasBlockChild(node *nethtml.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && isBlock(child.Data) {
			return true
		}
	}
	return false
}

func findBody(node *nethtml.Node) *nethtml.Node {
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBody(child); found != nil {
			return found
		}
	}
	return nil
}

func children(node *nethtml.Node) []*nethtml.Node {
	out := make([]*nethtml.Node, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.TextNode && strings.TrimSpace(child.Data) == "" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func attr(node *nethtml.Node, name string) string {
	for _, a := range node.Attr {
		if strings.EqualFold(a.Key, name) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func rawText(node *nethtml.Node) string {
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(rawText(child))
	}
	return b.String()
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := make([]string, 0, end-start)
	prevBlank := false
	for _, line := range lines[start:end] {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		if blank {
			line = ""
		}
		out = append(out, line)
		prevBlank = blank
	}
	return out
}
