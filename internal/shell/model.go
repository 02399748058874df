package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/resh-cli/internal/listing"
	"github.com/glabrego/resh-cli/internal/logging"
	"github.com/glabrego/resh-cli/internal/platform"
	"github.com/glabrego/resh-cli/internal/reddit"
	"github.com/glabrego/resh-cli/internal/render"
)

const (
	defaultPrompt  = "resh>"
	welcome        = "Welcome to resh. Type help for a list of commands."
	noListing      = "Nothing to navigate yet, try frontpage or subreddit <name>"
	firstPage      = "These are the first items in this listing"
	loadingMessage = "Loading..."
)

type Options struct {
	Style   render.Style
	Timeout time.Duration
	Opener  URLOpener
	// Start runs as the first command, e.g. "frontpage" or "sub golang".
	Start string
}

type Model struct {
	service  Service
	opener   URLOpener
	style    render.Style
	timeout  time.Duration
	start    string
	input    textinput.Model
	viewport viewport.Model
	current  *listing.Listing
	history  History
	status   string
	err      error
	loading  bool
	pushNext bool
	width    int
	height   int
}

func NewModel(service Service, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Opener == nil {
		opts.Opener = platform.NewOpener()
	}
	if opts.Style.Newline == "" {
		opts.Style = render.PlainStyle(false)
	}

	in := textinput.New()
	in.Prompt = defaultPrompt + " "
	in.CharLimit = 256
	in.Focus()

	m := Model{
		service:  service,
		opener:   opts.Opener,
		style:    opts.Style,
		timeout:  opts.Timeout,
		start:    opts.Start,
		input:    in,
		viewport: viewport.New(render.Width, 20),
		status:   welcome,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.start != "" && m.service != nil {
		cmds = append(cmds, func() tea.Msg { return runLineMsg{line: m.start} })
	}
	return tea.Batch(cmds...)
}

type runLineMsg struct {
	line string
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m.Run(line)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	case runLineMsg:
		return m.Run(msg.line)
	case listingLoadedMsg:
		m.loading = false
		if m.pushNext {
			m.history.Push(m.current)
		}
		m.pushNext = false
		m.show(msg.listing)
		return m, nil
	case listingErrorMsg:
		m.loading = false
		m.pushNext = false
		m.fail(msg.err)
		return m, nil
	case openURLMsg:
		if msg.err != nil {
			m.fail(msg.err)
		} else {
			m.say(msg.status)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View() + "\n" + m.input.View()
}

// Current is the listing on screen, nil before the first load.
func (m Model) Current() *listing.Listing {
	return m.current
}

// Run executes one typed line.
func (m Model) Run(line string) (Model, tea.Cmd) {
	if m.loading {
		m.say(loadingMessage)
		return m, nil
	}
	cmd, err := Parse(line)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	if cmd.Verb != VerbRedraw {
		logging.Info("command", "verb", cmd.Verb, "args", cmd.Args)
	}

	svc := m.service
	switch cmd.Verb {
	case VerbRedraw:
		m.say("")
		return m, nil
	case VerbHelp:
		m.say(helpText)
		return m, nil
	case VerbExit:
		return m, tea.Quit
	case VerbSubreddit:
		if len(cmd.Args) == 0 {
			return m.load("frontpage", func(ctx context.Context) (*listing.Listing, error) {
				return svc.Frontpage(ctx, "")
			})
		}
		name := strings.TrimPrefix(strings.TrimPrefix(cmd.Args[0], "/r/"), "r/")
		return m.load("subreddit "+name, func(ctx context.Context) (*listing.Listing, error) {
			return svc.Subreddit(ctx, name, "")
		})
	case VerbFrontpage:
		sort := ""
		if len(cmd.Args) > 0 {
			sort = strings.ToLower(cmd.Args[0])
			if !reddit.ValidSort(sort) {
				m.fail(fmt.Errorf("Unknown sort %q, try one of %s", sort, strings.Join(reddit.Sorts, ", ")))
				return m, nil
			}
		}
		return m.load("frontpage", func(ctx context.Context) (*listing.Listing, error) {
			return svc.Frontpage(ctx, sort)
		})
	case VerbSearch:
		terms := cmd.Arg()
		if terms == "" {
			m.fail(errors.New("Usage: search <terms>"))
			return m, nil
		}
		scope := ""
		if m.current != nil {
			scope = m.current.Subreddit()
		}
		return m.load("search", func(ctx context.Context) (*listing.Listing, error) {
			return svc.Search(ctx, terms, scope)
		})
	case VerbSubreddits:
		terms := cmd.Arg()
		if terms == "" {
			return m.load("subscriptions", func(ctx context.Context) (*listing.Listing, error) {
				return svc.MySubreddits(ctx)
			})
		}
		return m.load("subreddit names", func(ctx context.Context) (*listing.Listing, error) {
			return svc.SearchSubreddits(ctx, terms)
		})
	case VerbUser:
		if len(cmd.Args) == 0 {
			m.fail(errors.New("Usage: user <name>"))
			return m, nil
		}
		name := strings.TrimPrefix(strings.TrimPrefix(cmd.Args[0], "/u/"), "u/")
		return m.load("user "+name, func(ctx context.Context) (*listing.Listing, error) {
			return svc.User(ctx, name)
		})
	case VerbInbox:
		return m.load("inbox", func(ctx context.Context) (*listing.Listing, error) {
			return svc.Inbox(ctx)
		})
	case VerbGo:
		item, err := m.item(cmd)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		return m.load("go", func(ctx context.Context) (*listing.Listing, error) {
			return svc.Open(ctx, item)
		})
	case VerbNext:
		if m.current == nil {
			m.fail(errors.New(noListing))
			return m, nil
		}
		err := m.current.NextPage()
		m.show(m.current)
		if err != nil {
			m.fail(err)
		}
		return m, nil
	case VerbPrev:
		if m.current == nil {
			m.fail(errors.New(noListing))
			return m, nil
		}
		if err := m.current.PrevPage(); err != nil {
			if errors.Is(err, listing.ErrNoPreviousPage) {
				m.say(firstPage)
				return m, nil
			}
			m.fail(err)
			return m, nil
		}
		m.show(m.current)
		return m, nil
	case VerbBack:
		n := 1
		if len(cmd.Args) > 0 {
			parsed, err := listing.ParsePosition(cmd.Args[0])
			if err != nil {
				m.fail(errors.New("Usage: back [n]"))
				return m, nil
			}
			n = parsed
		}
		l, err := m.history.Back(n)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.show(l)
		return m, nil
	case VerbOpen:
		item, err := m.item(cmd)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		u, err := platform.ItemURL(item)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		return m, openURLCmd(m.opener, u)
	}
	return m, nil
}

func (m Model) load(source string, fn loader) (Model, tea.Cmd) {
	if m.service == nil {
		m.fail(errors.New("not connected"))
		return m, nil
	}
	m.loading = true
	m.pushNext = m.current != nil
	m.say(loadingMessage)
	return m, loadCmd(source, m.timeout, fn)
}

func (m Model) item(cmd Command) (reddit.Item, error) {
	if m.current == nil {
		return nil, errors.New(noListing)
	}
	if len(cmd.Args) == 0 {
		return nil, fmt.Errorf("Usage: %s <number>", cmd.Verb)
	}
	item, err := m.current.GoString(cmd.Args[0])
	if err != nil {
		return nil, fmt.Errorf("No item %s on this page", cmd.Args[0])
	}
	return item, nil
}

// show makes l the current listing and clears any message.
func (m *Model) show(l *listing.Listing) {
	m.current = l
	m.status = ""
	m.err = nil
	m.refresh()
}

func (m *Model) say(status string) {
	m.status = status
	m.err = nil
	m.refresh()
}

func (m *Model) fail(err error) {
	m.status = ""
	m.err = err
	m.refresh()
}

func (m Model) content() string {
	var b strings.Builder
	if m.current != nil {
		b.WriteString(m.current.Render())
		b.WriteString(m.style.Newline)
	}
	switch {
	case m.err != nil:
		b.WriteString(m.style.New.Render(m.style.Text(m.err.Error())))
		b.WriteString(m.style.Newline)
	case m.status != "":
		b.WriteString(m.style.Text(m.status))
		b.WriteString(m.style.Newline)
	}
	return b.String()
}

func (m *Model) refresh() {
	prompt := defaultPrompt
	if m.current != nil && m.current.Prompt() != "" {
		prompt = m.current.Prompt()
	}
	m.input.Prompt = prompt + " "
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}
