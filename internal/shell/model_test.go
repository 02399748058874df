package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/resh-cli/internal/listing"
	"github.com/glabrego/resh-cli/internal/reddit"
	"github.com/glabrego/resh-cli/internal/render"
)

type fakeService struct {
	posts     []reddit.Item
	opened    []reddit.Item
	lastScope string
	err       error
}

func (f *fakeService) opts() listing.Options {
	now := time.Date(2026, 2, 11, 16, 0, 0, 0, time.UTC)
	return listing.Options{PageSize: 2, Style: render.PlainStyle(false), Now: func() time.Time { return now }}
}

func (f *fakeService) Frontpage(_ context.Context, sort string) (*listing.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return listing.Frontpage(sort, listing.Items(f.posts...), f.opts())
}

func (f *fakeService) Subreddit(_ context.Context, name, sort string) (*listing.Listing, error) {
	return listing.Subreddit(&reddit.Subreddit{DisplayName: name}, sort, listing.Items(f.posts...), f.opts())
}

func (f *fakeService) MySubreddits(context.Context) (*listing.Listing, error) {
	return nil, reddit.ErrLoginRequired
}

func (f *fakeService) Search(_ context.Context, terms, subreddit string) (*listing.Listing, error) {
	f.lastScope = subreddit
	return listing.Search(terms, listing.Items(), f.opts())
}

func (f *fakeService) SearchSubreddits(_ context.Context, terms string) (*listing.Listing, error) {
	return listing.SubredditNames(terms, listing.Items(), f.opts())
}

func (f *fakeService) Inbox(context.Context) (*listing.Listing, error) {
	return listing.Inbox(listing.Items(), f.opts())
}

func (f *fakeService) User(_ context.Context, name string) (*listing.Listing, error) {
	return listing.UserOverview(&reddit.User{Name: name}, listing.Items(), f.opts())
}

func (f *fakeService) Open(_ context.Context, item reddit.Item) (*listing.Listing, error) {
	f.opened = append(f.opened, item)
	post := item.(*reddit.Submission)
	return listing.Comments(post, nil, f.opts())
}

type fakeOpener struct {
	url string
}

func (f *fakeOpener) Open(url string) (string, error) {
	f.url = url
	return "Opened " + url, nil
}

func testPosts(n int) []reddit.Item {
	items := make([]reddit.Item, n)
	for i := range items {
		items[i] = &reddit.Submission{ID: fmt.Sprintf("p%d", i), Title: fmt.Sprintf("Post %d", i), URL: fmt.Sprintf("https://example.com/%d", i)}
	}
	return items
}

func newTestModel(svc Service) (Model, *fakeOpener) {
	opener := &fakeOpener{}
	return NewModel(svc, Options{Style: render.PlainStyle(false), Opener: opener, Timeout: time.Second}), opener
}

// run feeds a line through the model and resolves any load command it
// returns, the way the bubbletea runtime would.
func run(t *testing.T, m Model, line string) Model {
	t.Helper()
	m, cmd := m.Run(line)
	if cmd == nil {
		return m
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func TestModel_BrowseAndPage(t *testing.T) {
	m, _ := newTestModel(&fakeService{posts: testPosts(3)})
	if !strings.Contains(m.content(), welcome) || m.input.Prompt != "resh> " {
		t.Fatalf("unexpected initial screen %q (prompt %q)", m.content(), m.input.Prompt)
	}

	m = run(t, m, "frontpage")
	if m.Current() == nil || m.Current().Title() != "Front page (hot)" {
		t.Fatalf("expected front page listing, got %v", m.Current())
	}
	if m.input.Prompt != "frontpage> " {
		t.Fatalf("unexpected prompt %q", m.input.Prompt)
	}

	m = run(t, m, "next")
	if m.Current().Page() != 2 || !strings.Contains(m.content(), "Post 2") {
		t.Fatalf("expected page 2, got page %d:\n%s", m.Current().Page(), m.content())
	}
	m = run(t, m, "prev")
	m = run(t, m, "prev")
	if m.Current().Page() != 1 || !strings.Contains(m.content(), firstPage) {
		t.Fatalf("expected first-page notice, got:\n%s", m.content())
	}
}

func TestModel_GoAndBack(t *testing.T) {
	svc := &fakeService{posts: testPosts(2)}
	m, _ := newTestModel(svc)
	m = run(t, m, "fp")
	m = run(t, m, "2")
	if len(svc.opened) != 1 || svc.opened[0].(*reddit.Submission).ID != "p1" {
		t.Fatalf("expected to open p1, got %v", svc.opened)
	}
	if m.Current().Prompt() != "comments>" || m.history.Len() != 1 {
		t.Fatalf("expected comments listing with history, got %q (%d)", m.Current().Prompt(), m.history.Len())
	}

	m = run(t, m, "back")
	if m.Current().Name() != "frontpage" {
		t.Fatalf("expected to return to the front page, got %q", m.Current().Name())
	}

	m = run(t, m, "go 9")
	if m.err == nil || !strings.Contains(m.err.Error(), "No item 9") {
		t.Fatalf("expected invalid position error, got %v", m.err)
	}
}

func TestModel_SearchScopesToSubreddit(t *testing.T) {
	svc := &fakeService{posts: testPosts(1)}
	m, _ := newTestModel(svc)
	m = run(t, m, "sub /r/golang")
	m = run(t, m, "search generics")
	if svc.lastScope != "golang" {
		t.Fatalf("expected scoped search, got %q", svc.lastScope)
	}
	if m.Current().Prompt() != "search results>" {
		t.Fatalf("unexpected prompt %q", m.Current().Prompt())
	}
}

func TestModel_Errors(t *testing.T) {
	m, _ := newTestModel(&fakeService{err: errors.New("network down")})

	m = run(t, m, "next")
	if m.err == nil || m.err.Error() != noListing {
		t.Fatalf("expected no-listing error, got %v", m.err)
	}
	m = run(t, m, "frontpage")
	if m.err == nil || !strings.Contains(m.content(), "network down") || m.loading {
		t.Fatalf("expected load error on screen, got %v", m.err)
	}
	m = run(t, m, "subreddits")
	if !errors.Is(m.err, reddit.ErrLoginRequired) {
		t.Fatalf("expected login error, got %v", m.err)
	}
	m = run(t, m, "nxet")
	if !strings.Contains(m.content(), "Unknown command: nxet") {
		t.Fatalf("expected unknown command message, got:\n%s", m.content())
	}
	m = run(t, m, "fp sideways")
	if m.err == nil || !strings.Contains(m.err.Error(), "Unknown sort") {
		t.Fatalf("expected sort error, got %v", m.err)
	}
}

func TestModel_Open(t *testing.T) {
	m, opener := newTestModel(&fakeService{posts: testPosts(1)})
	m = run(t, m, "frontpage")
	m = run(t, m, "open 1")
	if opener.url != "https://example.com/0" {
		t.Fatalf("unexpected URL %q", opener.url)
	}
	if !strings.Contains(m.content(), "Opened https://example.com/0") {
		t.Fatalf("expected open status, got:\n%s", m.content())
	}
}

func TestModel_EmptyLineRedraws(t *testing.T) {
	m, _ := newTestModel(&fakeService{posts: testPosts(1)})
	m = run(t, m, "frontpage")
	before := m.Current().Render()
	m = run(t, m, "help")
	if !strings.Contains(m.content(), "Commands:") {
		t.Fatalf("expected help text, got:\n%s", m.content())
	}
	m = run(t, m, "")
	if m.status != "" || m.Current().Render() != before {
		t.Fatal("expected a plain redraw of the current listing")
	}
}

func TestModel_Exit(t *testing.T) {
	m, _ := newTestModel(nil)
	_, cmd := m.Run("exit")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil || updated == nil {
		t.Fatal("expected ctrl+d to quit")
	}
}
