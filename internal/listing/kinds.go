package listing

import (
	"fmt"
	"strings"

	"github.com/glabrego/resh-cli/internal/reddit"
	"github.com/glabrego/resh-cli/internal/render"
)

func Frontpage(sort string, it Iterator, opts Options) (*Listing, error) {
	if sort == "" {
		sort = "hot"
	}
	return New(Config{
		Name:   "frontpage",
		Title:  fmt.Sprintf("Front page (%s)", sort),
		Prompt: "frontpage>",
	}, it, opts)
}

// Subreddit lists a subreddit's posts. Its description becomes the header
// and posts drop the redundant subreddit column.
func Subreddit(sub *reddit.Subreddit, sort string, it Iterator, opts Options) (*Listing, error) {
	name := sub.DisplayName
	title := fmt.Sprintf("%-31s %31s", render.Shorten(sub.Title, 31), render.Shorten("/r/"+name, 31))
	if sort != "" && sort != "hot" {
		title += " [" + sort + "]"
	}
	header, preformatted := markdownHeader(sub.PublicDescription, sub.DescriptionHTML)
	return New(Config{
		Name:         "subreddit",
		Title:        title,
		Prompt:       "/r/" + name + ">",
		Header:       header,
		Preformatted: preformatted,
		Subreddit:    name,
		Overrides: render.Set{
			reddit.KindSubmission: render.SubmissionInSubreddit,
		},
	}, it, opts)
}

func MySubreddits(it Iterator, opts Options) (*Listing, error) {
	return New(Config{
		Name:   "my-subreddits",
		Title:  "Your subscribed subreddits:",
		Prompt: "subreddits>",
	}, it, opts)
}

func Search(terms string, it Iterator, opts Options) (*Listing, error) {
	return New(Config{
		Name:   "search",
		Title:  "Search results for: " + terms,
		Prompt: "search results>",
	}, it, opts)
}

// SubredditSearch lists posts matching terms inside one subreddit.
func SubredditSearch(terms, subreddit string, it Iterator, opts Options) (*Listing, error) {
	return New(Config{
		Name:      "subreddit-search",
		Title:     fmt.Sprintf("Subreddit search results for: '%s' in /r/%s", terms, subreddit),
		Prompt:    "search results>",
		Subreddit: subreddit,
		Overrides: render.Set{
			reddit.KindSubmission: render.SubmissionInSubreddit,
		},
	}, it, opts)
}

// SubredditNames lists subreddits whose names or descriptions match terms.
func SubredditNames(terms string, it Iterator, opts Options) (*Listing, error) {
	return New(Config{
		Name:   "subreddit-names",
		Title:  "Subreddits matching: " + terms,
		Prompt: "subreddits>",
	}, it, opts)
}

func Inbox(it Iterator, opts Options) (*Listing, error) {
	return New(Config{
		Name:   "inbox",
		Title:  "Inbox",
		Prompt: "inbox>",
	}, it, opts)
}

// Comments lists the top-level comments of a submission. Self text, or the
// link, becomes the header.
func Comments(post *reddit.Submission, comments []reddit.Item, opts Options) (*Listing, error) {
	header, preformatted := markdownHeader(post.SelfText, post.SelfTextHTML)
	if !post.IsSelf && post.URL != "" {
		header, preformatted = post.URL, true
	}
	return New(Config{
		Name:         "comments",
		Title:        post.Title,
		Prompt:       "comments>",
		Header:       header,
		Preformatted: preformatted,
		Subreddit:    post.Subreddit,
	}, Items(comments...), opts)
}

// Replies lists the reply tree under root. Pages hold top-level replies; each
// page is flattened so every reply on it, at any depth, gets a position.
func Replies(root *reddit.Comment, opts Options) (*Listing, error) {
	items := make([]reddit.Item, 0, len(root.Replies))
	for _, r := range root.Replies {
		if r != nil {
			items = append(items, r)
		}
	}
	author := root.Author
	if author == "" {
		author = "[deleted]"
	}
	body := render.Wrap(render.BodyText(root.BodyHTML, root.Body), render.Width, "")
	l := newListing(Config{
		Name:         "replies",
		Title:        "Replies to " + author,
		Prompt:       "replies>",
		Header:       strings.Join(body, "\n"),
		Preformatted: true,
		Subreddit:    root.Subreddit,
	}, Items(items...), opts)
	l.flatten = true
	return l, l.NextPage()
}

// UserOverview lists a user's recent posts and comments.
func UserOverview(user *reddit.User, it Iterator, opts Options) (*Listing, error) {
	header := fmt.Sprintf("%s link karma | %s comment karma",
		render.FormatCount(user.LinkKarma), render.FormatCount(user.CommentKarma))
	return New(Config{
		Name:         "user",
		Title:        "Overview for /u/" + user.Name,
		Prompt:       "/u/" + user.Name + ">",
		Header:       header,
		Preformatted: true,
		Overrides: render.Set{
			reddit.KindComment: render.OverviewComment,
		},
	}, it, opts)
}

// markdownHeader prefers the markdown source, which is rendered at display
// time, and falls back to text extracted from the HTML rendition.
func markdownHeader(source, html string) (string, bool) {
	if strings.TrimSpace(source) != "" {
		return source, false
	}
	return render.HTMLText(html), true
}
