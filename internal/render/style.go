package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	// Width is the fixed column budget of every rendered block.
	Width = 80
	// ReplyToken is appended once per depth level to build reply margins.
	ReplyToken = "| "
)

// Style holds the formatting parameters chosen once at start-up. It is a
// plain value: listings copy it and nothing mutates it afterwards.
type Style struct {
	ASCIIOnly     bool
	Newline       string
	Separator     string
	MarkdownStyle string
	Profile       termenv.Profile

	Title  lipgloss.Style
	Strong lipgloss.Style
	Accent lipgloss.Style
	Dim    lipgloss.Style
	New    lipgloss.Style
}

// DefaultStyle detects the terminal behind stdout.
func DefaultStyle(asciiOnly bool) Style {
	return NewStyle(lipgloss.NewRenderer(os.Stdout), asciiOnly)
}

// PlainStyle renders no escape sequences at all.
func PlainStyle(asciiOnly bool) Style {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewStyle(r, asciiOnly)
}

// NewStyle builds a Style whose colours follow r's profile. ASCII-only mode
// also forces the plain profile, matching consoles that show raw escapes.
func NewStyle(r *lipgloss.Renderer, asciiOnly bool) Style {
	if asciiOnly {
		r.SetColorProfile(termenv.Ascii)
	}
	orangered := lipgloss.Color("#ff4500")
	lavender := lipgloss.Color("#b4befe")
	overlay := lipgloss.Color("#7f849c")
	yellow := lipgloss.Color("#f9e2af")

	s := Style{
		ASCIIOnly:     asciiOnly,
		Newline:       "\n",
		Separator:     strings.Repeat("-", Width),
		MarkdownStyle: "dark",
		Profile:       r.ColorProfile(),
		Title:         r.NewStyle().Bold(true).Foreground(orangered),
		Strong:        r.NewStyle().Bold(true),
		Accent:        r.NewStyle().Foreground(lavender),
		Dim:           r.NewStyle().Foreground(overlay),
		New:           r.NewStyle().Bold(true).Foreground(yellow),
	}
	if asciiOnly || s.Profile == termenv.Ascii {
		s.MarkdownStyle = "ascii"
	}
	return s
}

// Text normalizes s for the terminal: in ASCII-only mode non-renderable
// characters are folded or stripped, newlines survive.
func (s Style) Text(text string) string {
	if !s.ASCIIOnly {
		return text
	}
	return Asciify(text, false)
}

// Line is Text for single-line fields; embedded newlines are removed.
func (s Style) Line(text string) string {
	text = flattenLine(text)
	if s.ASCIIOnly {
		return Asciify(text, true)
	}
	return text
}
