package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/glabrego/resh-cli/internal/reddit"
	"github.com/glabrego/resh-cli/internal/render"
	"github.com/glabrego/resh-cli/internal/tree"
)

const (
	titleWidth = 72

	hintItems = "Type go <number> to enter an item, next or prev to change pages"
	hintEmpty = "There doesn't seem to be anything here"
	hintBack  = ", type prev to go back"
)

// State summarizes what the current page holds.
type State int

const (
	// Empty means no page has ever had items.
	Empty State = iota
	HasItems
	// ExhaustedButVisited means the current page is empty after earlier
	// pages showed items.
	ExhaustedButVisited
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case HasItems:
		return "has-items"
	case ExhaustedButVisited:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options are the construction-time parameters shared by every listing.
type Options struct {
	PageSize int
	Style    render.Style
	// Now supplies the clock for relative ages. Nil means time.Now.
	Now func() time.Time
}

// Config is what a concrete listing kind supplies.
type Config struct {
	Name   string
	Title  string
	Prompt string
	// Header is shown above the items on the first page only. It is rendered
	// as markdown unless Preformatted is set.
	Header       string
	Preformatted bool
	// Subreddit scopes follow-up searches, when the listing has one.
	Subreddit string
	Overrides render.Set
}

// Listing is a navigable, renderable view over one paged item sequence.
// It is not safe for concurrent use.
type Listing struct {
	cfg      Config
	pager    *Pager
	dispatch *render.Dispatcher
	style    render.Style
	now      func() time.Time

	// Reply listings page over top-level replies and address every reply
	// of the current page through rows.
	flatten bool
	rows    []tree.Row
}

// New builds a listing and materializes its first page. A non-nil error
// comes from the source; the listing is still returned and renders whatever
// it got.
func New(cfg Config, it Iterator, opts Options) (*Listing, error) {
	l := newListing(cfg, it, opts)
	return l, l.NextPage()
}

func newListing(cfg Config, it Iterator, opts Options) *Listing {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	style := opts.Style
	if style.Newline == "" {
		style = render.PlainStyle(style.ASCIIOnly)
	}
	return &Listing{
		cfg:      cfg,
		pager:    NewPager(NewSource(it), opts.PageSize),
		dispatch: render.NewDispatcher(cfg.Overrides),
		style:    style,
		now:      now,
	}
}

func (l *Listing) Name() string      { return l.cfg.Name }
func (l *Listing) Title() string     { return l.cfg.Title }
func (l *Listing) Prompt() string    { return l.cfg.Prompt }
func (l *Listing) Subreddit() string { return l.cfg.Subreddit }

// Page is the 1-based number of the page on display.
func (l *Listing) Page() int { return l.pager.Number() }

// Fetches counts source pulls so far.
func (l *Listing) Fetches() int { return l.pager.Fetches() }

// NextPage advances; see Pager.Next for the error contract.
func (l *Listing) NextPage() error {
	err := l.pager.Next()
	l.reindex()
	return err
}

// PrevPage goes back one page or fails with ErrNoPreviousPage.
func (l *Listing) PrevPage() error {
	if err := l.pager.Prev(); err != nil {
		return err
	}
	l.reindex()
	return nil
}

func (l *Listing) reindex() {
	if !l.flatten {
		return
	}
	page := l.pager.Current()
	roots := make([]*reddit.Comment, 0, len(page))
	for _, item := range page {
		if c, ok := item.(*reddit.Comment); ok {
			roots = append(roots, c)
		}
	}
	l.rows = tree.Flatten(roots)
}

// Go resolves a 1-based display position to its item.
func (l *Listing) Go(pos int) (reddit.Item, error) {
	if !l.flatten {
		return l.pager.Item(pos)
	}
	row, ok := tree.Find(l.rows, pos)
	if !ok {
		return nil, invalidIndex(pos)
	}
	return row.Comment, nil
}

// GoString parses pos as typed by the user and resolves it.
func (l *Listing) GoString(pos string) (reddit.Item, error) {
	n, err := ParsePosition(pos)
	if err != nil {
		return nil, err
	}
	return l.Go(n)
}

// Len is the number of addressable positions on the current page.
func (l *Listing) Len() int {
	if l.flatten {
		return len(l.rows)
	}
	return l.pager.Len()
}

func (l *Listing) State() State {
	switch {
	case l.pager.Len() > 0:
		return HasItems
	case l.pager.Shown():
		return ExhaustedButVisited
	default:
		return Empty
	}
}

// Render returns the full view of the current page. It does not change the
// listing and never fails.
func (l *Listing) Render() string {
	s := l.style
	c := render.Context{Style: s, Now: l.now()}
	number := l.pager.Number()

	out := make([]string, 0, l.pager.Len()+5)
	title := render.Pad(render.Shorten(s.Line(l.cfg.Title), titleWidth), titleWidth)
	out = append(out, s.Title.Render(title)+fmt.Sprintf(" page %2d", number))

	if number == 1 && strings.TrimSpace(l.cfg.Header) != "" {
		if l.cfg.Preformatted {
			out = append(out, s.Text(l.cfg.Header))
		} else {
			out = append(out, render.Markdown(s, l.cfg.Header, render.Width))
		}
	}
	out = append(out, s.Separator)

	if l.flatten {
		for _, row := range l.rows {
			out = append(out, l.renderRow(c, row))
		}
	} else {
		for i, item := range l.pager.Current() {
			out = append(out, l.dispatch.Render(c, i+1, item))
		}
	}

	if l.pager.Len() == 0 {
		hint := hintEmpty
		if number > 1 {
			hint += hintBack
		}
		out = append(out, hint)
	} else {
		out = append(out, s.Dim.Render(hintItems))
	}
	return strings.Join(out, s.Newline)
}

func (l *Listing) renderRow(c render.Context, row tree.Row) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = render.Fallback(reddit.KindComment)
		}
	}()
	return render.ReplyBlock(c, row.Address, row.Depth, row.Comment)
}
