package render

import (
	"fmt"
	"strings"
	"time"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/glabrego/resh-cli/internal/reddit"
)

const (
	indent     = "    "
	bodyIndent = Width - len(indent)
)

// Submission renders a post with the subreddit it belongs to, for listings
// that mix subreddits.
func Submission(c Context, pos int, item reddit.Item) string {
	post, ok := item.(*reddit.Submission)
	if !ok {
		return Fallback(reddit.KindOf(item))
	}
	return submission(c, pos, post, true)
}

// SubmissionInSubreddit leaves out the subreddit column.
func SubmissionInSubreddit(c Context, pos int, item reddit.Item) string {
	post, ok := item.(*reddit.Submission)
	if !ok {
		return Fallback(reddit.KindOf(item))
	}
	return submission(c, pos, post, false)
}

func submission(c Context, pos int, post *reddit.Submission, withSubreddit bool) string {
	s := c.Style
	prefix := position(pos)
	title := Shorten(s.Line(post.Title), Width-runewidth.StringWidth(prefix))

	meta := []string{
		Plural(post.Score, "point"),
		Plural(post.NumComments, "comment"),
		"by " + s.Line(post.Author),
		age(c, post.Created),
	}
	if withSubreddit && post.Subreddit != "" {
		meta = append(meta, "r/"+s.Line(post.Subreddit))
	}
	source := s.Line(post.Domain)
	if post.IsSelf || source == "" {
		source = "self"
	}
	if post.Over18 {
		source += " nsfw"
	}
	meta = append(meta, source)

	lines := []string{
		prefix + s.Title.Render(title),
		indent + s.Dim.Render(Shorten(strings.Join(meta, " | "), bodyIndent)),
	}
	return strings.Join(lines, s.Newline)
}

// Subreddit renders one row: position, name and reader count.
func Subreddit(c Context, pos int, item reddit.Item) string {
	sub, ok := item.(*reddit.Subreddit)
	if !ok {
		return Fallback(reddit.KindOf(item))
	}
	s := c.Style
	name := Pad(Shorten(s.Line(sub.DisplayName), 63), 63)
	return fmt.Sprintf("%-3d %s %4s readers", pos, s.Strong.Render(name), FormatCount(sub.Subscribers))
}

// Comment renders a top-level comment under a submission.
func Comment(c Context, pos int, item reddit.Item) string {
	cm, ok := item.(*reddit.Comment)
	if !ok {
		return Fallback(reddit.KindOf(item))
	}
	s := c.Style
	prefix := position(pos)
	meta := commentMeta(c, cm)
	if n := cm.CountReplies(); n > 0 {
		meta += " | " + replies(n)
	}
	lines := []string{prefix + Shorten(meta, Width-runewidth.StringWidth(prefix))}
	lines = append(lines, Wrap(s.Text(BodyText(cm.BodyHTML, cm.Body)), bodyIndent, indent)...)
	return strings.Join(lines, s.Newline)
}

// OverviewComment renders a comment out of its thread, naming the post it
// was left on.
func OverviewComment(c Context, pos int, item reddit.Item) string {
	cm, ok := item.(*reddit.Comment)
	if !ok {
		return Fallback(reddit.KindOf(item))
	}
	s := c.Style
	prefix := position(pos)
	on := "comment"
	if cm.LinkTitle != "" {
		on = "on: " + s.Line(cm.LinkTitle)
	}
	meta := commentMeta(c, cm)
	if cm.Subreddit != "" {
		meta += " | r/" + s.Line(cm.Subreddit)
	}
	lines := []string{
		prefix + s.Title.Render(Shorten(on, Width-runewidth.StringWidth(prefix))),
		indent + s.Dim.Render(Shorten(meta, bodyIndent)),
	}
	lines = append(lines, Wrap(s.Text(BodyText(cm.BodyHTML, cm.Body)), bodyIndent, indent)...)
	return strings.Join(lines, s.Newline)
}

// Message renders an inbox entry; unread ones are flagged.
func Message(c Context, pos int, item reddit.Item) string {
	msg, ok := item.(*reddit.Message)
	if !ok {
		return Fallback(reddit.KindOf(item))
	}
	s := c.Style
	prefix := position(pos)
	subject := s.Line(msg.Subject)
	if subject == "" {
		subject = "(no subject)"
	}
	marker, markerWidth := "", 0
	if msg.New {
		marker, markerWidth = s.New.Render("*")+" ", 2
	}
	subject = Shorten(subject, Width-runewidth.StringWidth(prefix)-markerWidth)

	meta := []string{"from " + s.Line(msg.Author), age(c, msg.Created)}
	if msg.WasComment && msg.Subreddit != "" {
		meta = append(meta, "r/"+s.Line(msg.Subreddit))
	}
	lines := []string{
		prefix + marker + s.Strong.Render(subject),
		indent + s.Dim.Render(Shorten(strings.Join(meta, " | "), bodyIndent)),
	}
	lines = append(lines, Wrap(s.Text(BodyText(msg.BodyHTML, msg.Body)), bodyIndent, indent)...)
	return strings.Join(lines, s.Newline)
}

// User renders a redditor with karma totals.
func User(c Context, pos int, item reddit.Item) string {
	u, ok := item.(*reddit.User)
	if !ok {
		return Fallback(reddit.KindOf(item))
	}
	s := c.Style
	prefix := position(pos)
	karma := fmt.Sprintf("%4s link karma | %4s comment karma",
		FormatCount(u.LinkKarma), FormatCount(u.CommentKarma))
	name := Shorten(s.Line(u.Name), Width-len(prefix)-len(karma)-1)
	gap := Width - len(prefix) - runewidth.StringWidth(name) - len(karma)
	lines := []string{prefix + s.Strong.Render(name) + strings.Repeat(" ", gap) + karma}
	if !u.Created.IsZero() {
		lines = append(lines, indent+s.Dim.Render("redditor for "+RelativeAge(c.Now, u.Created)))
	}
	return strings.Join(lines, s.Newline)
}

// ReplyBlock renders one row of a flattened reply tree. The margin repeats
// ReplyToken once per depth level on every line of the block.
func ReplyBlock(c Context, addr, depth int, cm *reddit.Comment) string {
	s := c.Style
	if cm == nil {
		return Fallback("nil")
	}
	margin := strings.Repeat(ReplyToken, max(0, depth))
	prefix := margin + position(addr)
	lines := []string{prefix + Shorten(commentMeta(c, cm), max(1, Width-runewidth.StringWidth(prefix)))}
	lines = append(lines, Wrap(s.Text(BodyText(cm.BodyHTML, cm.Body)), Width, margin+indent)...)
	return strings.Join(lines, s.Newline)
}

func commentMeta(c Context, cm *reddit.Comment) string {
	author := c.Style.Line(cm.Author)
	if author == "" {
		author = "[deleted]"
	}
	return strings.Join([]string{author, Plural(cm.Score, "point"), age(c, cm.Created)}, " | ")
}

func replies(n int) string {
	if n == 1 {
		return "1 reply"
	}
	return fmt.Sprintf("%d replies", n)
}

func position(pos int) string {
	return fmt.Sprintf("%-3d ", pos)
}

func age(c Context, t time.Time) string {
	label := RelativeAge(c.Now, t)
	if t.IsZero() {
		return label
	}
	return label + " ago"
}
