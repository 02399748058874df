package app

import (
	"context"

	"github.com/glabrego/resh-cli/internal/listing"
	"github.com/glabrego/resh-cli/internal/reddit"
)

// RedditContent serves Content from the live reddit client.
type RedditContent struct {
	client *reddit.Client
}

func NewRedditContent(client *reddit.Client) RedditContent {
	return RedditContent{client: client}
}

func (r RedditContent) Frontpage(sort string) listing.Iterator {
	return r.client.Frontpage(sort)
}

func (r RedditContent) SubredditPosts(name, sort string) listing.Iterator {
	return r.client.SubredditPosts(name, sort)
}

func (r RedditContent) Search(query string) listing.Iterator {
	return r.client.Search(query)
}

func (r RedditContent) SubredditSearch(name, query string) listing.Iterator {
	return r.client.SubredditSearch(name, query)
}

func (r RedditContent) SearchSubreddits(query string) listing.Iterator {
	return r.client.SearchSubreddits(query)
}

func (r RedditContent) MySubreddits() listing.Iterator {
	return r.client.MySubreddits()
}

func (r RedditContent) Inbox() listing.Iterator {
	return r.client.Inbox()
}

func (r RedditContent) UserOverview(name string) listing.Iterator {
	return r.client.UserOverview(name)
}

func (r RedditContent) Subreddit(ctx context.Context, name string) (*reddit.Subreddit, error) {
	return r.client.Subreddit(ctx, name)
}

func (r RedditContent) User(ctx context.Context, name string) (*reddit.User, error) {
	return r.client.User(ctx, name)
}

func (r RedditContent) Comments(ctx context.Context, submissionID string) (*reddit.Submission, []reddit.Item, error) {
	return r.client.Comments(ctx, submissionID)
}
