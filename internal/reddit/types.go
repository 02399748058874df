package reddit

import (
	"encoding/json"
	"time"
)

// Kind names the runtime variant of an Item. Known kinds use the names below;
// anything else the API returns keeps its raw type name.
type Kind string

const (
	KindSubmission Kind = "Submission"
	KindSubreddit  Kind = "Subreddit"
	KindComment    Kind = "Comment"
	KindMessage    Kind = "Message"
	KindUser       Kind = "User"
)

// Item is a single platform entity surfaced inside a listing.
type Item interface {
	Kind() Kind
}

// Submission is a link or self post.
type Submission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Subreddit    string    `json:"subreddit"`
	Score        int       `json:"score"`
	Ups          int       `json:"ups"`
	Downs        int       `json:"downs"`
	NumComments  int       `json:"num_comments"`
	Domain       string    `json:"domain"`
	URL          string    `json:"url"`
	Permalink    string    `json:"permalink"`
	IsSelf       bool      `json:"is_self"`
	SelfText     string    `json:"selftext"`
	SelfTextHTML string    `json:"selftext_html"`
	Over18       bool      `json:"over_18"`
	Created      time.Time `json:"-"`
}

// Subreddit describes a community.
type Subreddit struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	DisplayName       string    `json:"display_name"`
	Title             string    `json:"title"`
	Subscribers       int64     `json:"subscribers"`
	PublicDescription string    `json:"public_description"`
	DescriptionHTML   string    `json:"public_description_html"`
	Over18            bool      `json:"over18"`
	Created           time.Time `json:"-"`
}

// Comment is a reply to a submission or to another comment. Replies holds the
// nested reply tree as delivered by the API; it only points down the tree.
type Comment struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Author    string     `json:"author"`
	Body      string     `json:"body"`
	BodyHTML  string     `json:"body_html"`
	Score     int        `json:"score"`
	Ups       int        `json:"ups"`
	Downs     int        `json:"downs"`
	Subreddit string     `json:"subreddit"`
	LinkID    string     `json:"link_id"`
	LinkTitle string     `json:"link_title"`
	ParentID  string     `json:"parent_id"`
	Created   time.Time  `json:"-"`
	Replies   []*Comment `json:"-"`
}

// Message is a private message or comment reply in the inbox.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Author     string    `json:"author"`
	Dest       string    `json:"dest"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	BodyHTML   string    `json:"body_html"`
	New        bool      `json:"new"`
	WasComment bool      `json:"was_comment"`
	Subreddit  string    `json:"subreddit"`
	Created    time.Time `json:"-"`
}

// User is a redditor's public profile.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LinkKarma    int64     `json:"link_karma"`
	CommentKarma int64     `json:"comment_karma"`
	Created      time.Time `json:"-"`
}

// Unknown carries any thing the decoder has no type for, such as the "more"
// stubs that stand in for collapsed comments.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (*Submission) Kind() Kind { return KindSubmission }
func (*Subreddit) Kind() Kind  { return KindSubreddit }
func (*Comment) Kind() Kind    { return KindComment }
func (*Message) Kind() Kind    { return KindMessage }
func (*User) Kind() Kind       { return KindUser }

func (u *Unknown) Kind() Kind {
	if u == nil || u.Type == "" {
		return "unknown"
	}
	return Kind(u.Type)
}

// KindOf reports the variant of item without panicking on nil values.
func KindOf(item Item) Kind {
	if item == nil {
		return "nil"
	}
	return item.Kind()
}

// CountReplies returns the number of comments below c at any depth.
func (c *Comment) CountReplies() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, r := range c.Replies {
		n += 1 + r.CountReplies()
	}
	return n
}
