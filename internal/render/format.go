package render

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	day   = 24 * time.Hour
	month = 31 * day
	year  = 365 * day
)

// ageMagnitudes picks the single largest whole unit elapsed. Each unit gets a
// singular entry for exactly one and a plural entry for the rest.
var ageMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "0 seconds", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second", DivBy: 1},
	{D: time.Minute, Format: "%d seconds", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute", DivBy: 1},
	{D: time.Hour, Format: "%d minutes", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour", DivBy: 1},
	{D: day, Format: "%d hours", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day", DivBy: 1},
	{D: month, Format: "%d days", DivBy: day},
	{D: 2 * month, Format: "1 month", DivBy: 1},
	{D: year, Format: "%d months", DivBy: month},
	{D: 2 * year, Format: "1 year", DivBy: 1},
	{D: math.MaxInt64, Format: "%d years", DivBy: year},
}

// RelativeAge renders the time between then and now as one unit, e.g.
// "1 minute" or "2 days". Timestamps in the future count the same way.
func RelativeAge(now, then time.Time) string {
	if then.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		now = time.Now()
	}
	return humanize.CustomRelTime(then, now, "", "", ageMagnitudes)
}

// FormatCount abbreviates subscriber and karma counts to at most four
// characters.
func FormatCount(n int64) string {
	neg, u := "", uint64(n)
	if n < 0 {
		neg, u = "-", uint64(-(n+1))+1
	}
	switch {
	case u > 9_999_999:
		return fmt.Sprintf("%s%dM", neg, u/1_000_000)
	case u >= 1_000_000:
		return fmt.Sprintf("%s%d.%dM", neg, u/1_000_000, (u%1_000_000)/100_000)
	case u >= 1_000:
		return fmt.Sprintf("%s%dK", neg, u/1_000)
	default:
		return fmt.Sprintf("%s%d", neg, u)
	}
}

// Plural returns "1 point", "2 points" and so on.
func Plural(n int, unit string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Shorten truncates s to n columns, ending in an ellipsis when cut.
func Shorten(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= n {
		return s
	}
	if n <= 3 {
		return strings.Repeat(".", n)
	}
	return runewidth.Truncate(s, n, "...")
}

// Pad right-fills s with spaces to n columns.
func Pad(s string, n int) string {
	return runewidth.FillRight(s, n)
}

// Wrap splits text across lines no wider than width, each prefixed by
// margin. The width never exceeds the column budget minus the margin. Words
// longer than a line are broken.
func Wrap(text string, width int, margin string) []string {
	marginWidth := runewidth.StringWidth(margin)
	if width > Width-marginWidth {
		width = Width - marginWidth
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}

	wrapped := wrap.String(wordwrap.String(text, width), width)
	lines := strings.Split(wrapped, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
			out = append(out, strings.TrimRight(margin, " "))
			continue
		}
		blank = false
		out = append(out, margin+line)
	}
	return out
}

// Asciify folds accented characters to their base letters and drops anything
// outside 7-bit ASCII. Newlines are dropped as well when stripNewlines is set.
func Asciify(s string, stripNewlines bool) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= unicode.MaxASCII+1 {
			continue
		}
		if r == '\n' && stripNewlines {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func flattenLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
