package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/glabrego/resh-cli/internal/listing"
	"github.com/glabrego/resh-cli/internal/logging"
	"github.com/glabrego/resh-cli/internal/reddit"
)

// ErrCannotOpen matches every CannotOpenError.
var ErrCannotOpen = errors.New("cannot open item")

// CannotOpenError reports an item kind that has no listing to enter. Its
// message is meant for the user as is.
type CannotOpenError struct {
	Kind reddit.Kind
}

func (e *CannotOpenError) Error() string {
	return fmt.Sprintf("Can't open a(n) %s", e.Kind)
}

func (e *CannotOpenError) Is(target error) bool {
	return target == ErrCannotOpen
}

// Content is the reddit surface the service builds listings from.
type Content interface {
	Frontpage(sort string) listing.Iterator
	SubredditPosts(name, sort string) listing.Iterator
	Search(query string) listing.Iterator
	SubredditSearch(name, query string) listing.Iterator
	SearchSubreddits(query string) listing.Iterator
	MySubreddits() listing.Iterator
	Inbox() listing.Iterator
	UserOverview(name string) listing.Iterator

	Subreddit(ctx context.Context, name string) (*reddit.Subreddit, error)
	User(ctx context.Context, name string) (*reddit.User, error)
	Comments(ctx context.Context, submissionID string) (*reddit.Submission, []reddit.Item, error)
}

type Service struct {
	content Content
	opts    listing.Options
	sort    string
}

func NewService(content Content, opts listing.Options, defaultSort string) *Service {
	if defaultSort == "" {
		defaultSort = "hot"
	}
	return &Service{content: content, opts: opts, sort: defaultSort}
}

func (s *Service) Frontpage(ctx context.Context, sort string) (*listing.Listing, error) {
	sort = s.sortOrDefault(sort)
	l, err := listing.Frontpage(sort, s.content.Frontpage(sort), s.opts)
	return settle("front page", l, err)
}

func (s *Service) Subreddit(ctx context.Context, name, sort string) (*listing.Listing, error) {
	sub, err := s.content.Subreddit(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load subreddit %s: %w", name, err)
	}
	return s.subredditListing(sub, sort)
}

func (s *Service) subredditListing(sub *reddit.Subreddit, sort string) (*listing.Listing, error) {
	sort = s.sortOrDefault(sort)
	l, err := listing.Subreddit(sub, sort, s.content.SubredditPosts(sub.DisplayName, sort), s.opts)
	return settle("subreddit "+sub.DisplayName, l, err)
}

func (s *Service) MySubreddits(ctx context.Context) (*listing.Listing, error) {
	l, err := listing.MySubreddits(s.content.MySubreddits(), s.opts)
	return settle("subscribed subreddits", l, err)
}

// Search looks for posts site-wide, or inside subreddit when it is set.
func (s *Service) Search(ctx context.Context, terms, subreddit string) (*listing.Listing, error) {
	if terms == "" {
		return nil, errors.New("search terms are required")
	}
	if subreddit != "" {
		l, err := listing.SubredditSearch(terms, subreddit, s.content.SubredditSearch(subreddit, terms), s.opts)
		return settle("subreddit search", l, err)
	}
	l, err := listing.Search(terms, s.content.Search(terms), s.opts)
	return settle("search", l, err)
}

func (s *Service) SearchSubreddits(ctx context.Context, terms string) (*listing.Listing, error) {
	if terms == "" {
		return nil, errors.New("search terms are required")
	}
	l, err := listing.SubredditNames(terms, s.content.SearchSubreddits(terms), s.opts)
	return settle("subreddit name search", l, err)
}

func (s *Service) Inbox(ctx context.Context) (*listing.Listing, error) {
	l, err := listing.Inbox(s.content.Inbox(), s.opts)
	return settle("inbox", l, err)
}

func (s *Service) User(ctx context.Context, name string) (*listing.Listing, error) {
	user, err := s.content.User(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", name, err)
	}
	return s.userListing(user)
}

func (s *Service) userListing(user *reddit.User) (*listing.Listing, error) {
	l, err := listing.UserOverview(user, s.content.UserOverview(user.Name), s.opts)
	return settle("user "+user.Name, l, err)
}

// Open builds the listing reached by entering item: a subreddit's posts, a
// submission's comments, a comment's replies or a user's overview.
func (s *Service) Open(ctx context.Context, item reddit.Item) (*listing.Listing, error) {
	switch v := item.(type) {
	case *reddit.Subreddit:
		return s.subredditListing(v, "")
	case *reddit.Submission:
		post, comments, err := s.content.Comments(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("load comments: %w", err)
		}
		l, err := listing.Comments(post, comments, s.opts)
		return settle("comments", l, err)
	case *reddit.Comment:
		l, err := listing.Replies(v, s.opts)
		return settle("replies", l, err)
	case *reddit.User:
		return s.userListing(v)
	default:
		return nil, &CannotOpenError{Kind: reddit.KindOf(item)}
	}
}

func (s *Service) sortOrDefault(sort string) string {
	if sort == "" {
		return s.sort
	}
	return sort
}

// settle keeps a listing that loaded at least one page of items even when
// the source failed part way; a listing with nothing to show is an error.
func settle(what string, l *listing.Listing, err error) (*listing.Listing, error) {
	if err == nil {
		return l, nil
	}
	if l != nil && l.State() == listing.HasItems {
		logging.Warn("listing loaded partially", "listing", what, "err", err)
		return l, nil
	}
	return nil, fmt.Errorf("load %s: %w", what, err)
}
