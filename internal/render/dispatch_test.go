package render

import (
	"strings"
	"testing"
	"time"

	"github.com/glabrego/resh-cli/internal/reddit"
)

func testContext() Context {
	return Context{
		Style: PlainStyle(false),
		Now:   time.Date(2026, 2, 11, 16, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_FallsBackForUnknownKinds(t *testing.T) {
	d := NewDispatcher(nil)
	c := testContext()

	if got := d.Render(c, 1, &reddit.Unknown{Type: "more"}); got != "Can't handle a(n) more" {
		t.Fatalf("unexpected fallback: %q", got)
	}
	if got := d.Render(c, 1, nil); got != "Can't handle a(n) nil" {
		t.Fatalf("unexpected nil fallback: %q", got)
	}
	if d.Handles("more") {
		t.Fatal("expected no renderer for more stubs")
	}
}

func TestDispatcher_OverridesAndRemovals(t *testing.T) {
	d := NewDispatcher(Set{
		reddit.KindSubmission: func(Context, int, reddit.Item) string { return "custom" },
		reddit.KindUser:       nil,
	})
	c := testContext()

	if got := d.Render(c, 1, &reddit.Submission{Title: "x"}); got != "custom" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := d.Render(c, 1, &reddit.User{Name: "x"}); got != "Can't handle a(n) User" {
		t.Fatalf("expected removed renderer to fall back, got %q", got)
	}
	if !d.Handles(reddit.KindSubreddit) {
		t.Fatal("expected defaults to survive unrelated overrides")
	}
}

func TestDispatcher_RecoversRendererPanics(t *testing.T) {
	d := NewDispatcher(Set{
		reddit.KindComment: func(Context, int, reddit.Item) string { panic("boom") },
	})
	if got := d.Render(testContext(), 3, &reddit.Comment{}); got != "Can't handle a(n) Comment" {
		t.Fatalf("expected panic to degrade into fallback, got %q", got)
	}
}

func TestDispatcher_TypedNilItemDoesNotPanic(t *testing.T) {
	var sub *reddit.Submission
	got := NewDispatcher(nil).Render(testContext(), 1, sub)
	if got != "Can't handle a(n) Submission" {
		t.Fatalf("unexpected render for typed nil: %q", got)
	}
}

func TestRenderers_RejectMismatchedVariants(t *testing.T) {
	c := testContext()
	for name, fn := range map[string]Func{
		"submission": Submission,
		"subreddit":  Subreddit,
		"comment":    Comment,
		"overview":   OverviewComment,
		"message":    Message,
		"user":       User,
	} {
		got := fn(c, 1, &reddit.Unknown{Type: "t9"})
		if !strings.HasPrefix(got, "Can't handle a(n) t9") {
			t.Fatalf("%s: unexpected output %q", name, got)
		}
	}
}
