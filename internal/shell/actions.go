package shell

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/resh-cli/internal/listing"
	"github.com/glabrego/resh-cli/internal/logging"
	"github.com/glabrego/resh-cli/internal/reddit"
)

// Service builds listings for navigation targets.
type Service interface {
	Frontpage(ctx context.Context, sort string) (*listing.Listing, error)
	Subreddit(ctx context.Context, name, sort string) (*listing.Listing, error)
	MySubreddits(ctx context.Context) (*listing.Listing, error)
	Search(ctx context.Context, terms, subreddit string) (*listing.Listing, error)
	SearchSubreddits(ctx context.Context, terms string) (*listing.Listing, error)
	Inbox(ctx context.Context) (*listing.Listing, error)
	User(ctx context.Context, name string) (*listing.Listing, error)
	Open(ctx context.Context, item reddit.Item) (*listing.Listing, error)
}

// URLOpener sends a URL to the browser or clipboard and reports which.
type URLOpener interface {
	Open(url string) (string, error)
}

type loader func(ctx context.Context) (*listing.Listing, error)

type listingLoadedMsg struct {
	listing  *listing.Listing
	source   string
	duration time.Duration
}

type listingErrorMsg struct {
	err      error
	source   string
	duration time.Duration
}

type openURLMsg struct {
	status string
	err    error
}

func loadCmd(source string, timeout time.Duration, load loader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()

		l, err := load(ctx)
		if err != nil {
			logging.Warn("load failed", "source", source, "err", err, "duration", time.Since(start))
			return listingErrorMsg{err: err, source: source, duration: time.Since(start)}
		}
		logging.Debug("listing loaded", "source", source, "duration", time.Since(start))
		return listingLoadedMsg{listing: l, source: source, duration: time.Since(start)}
	}
}

func openURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		status, err := opener.Open(url)
		return openURLMsg{status: status, err: err}
	}
}
