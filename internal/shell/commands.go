package shell

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

type Verb string

const (
	VerbRedraw     Verb = "redraw"
	VerbSubreddit  Verb = "subreddit"
	VerbFrontpage  Verb = "frontpage"
	VerbSearch     Verb = "search"
	VerbSubreddits Verb = "subreddits"
	VerbUser       Verb = "user"
	VerbInbox      Verb = "inbox"
	VerbGo         Verb = "go"
	VerbNext       Verb = "next"
	VerbPrev       Verb = "prev"
	VerbBack       Verb = "back"
	VerbOpen       Verb = "open"
	VerbHelp       Verb = "help"
	VerbExit       Verb = "exit"
)

var verbs = map[string]Verb{
	"subreddit":  VerbSubreddit,
	"sub":        VerbSubreddit,
	"frontpage":  VerbFrontpage,
	"fp":         VerbFrontpage,
	"search":     VerbSearch,
	"subreddits": VerbSubreddits,
	"user":       VerbUser,
	"u":          VerbUser,
	"inbox":      VerbInbox,
	"go":         VerbGo,
	"g":          VerbGo,
	"next":       VerbNext,
	"n":          VerbNext,
	"prev":       VerbPrev,
	"p":          VerbPrev,
	"back":       VerbBack,
	"open":       VerbOpen,
	"help":       VerbHelp,
	"exit":       VerbExit,
	"quit":       VerbExit,
	"EOF":        VerbExit,
}

// verbNames is the sorted list of words suggestions are drawn from.
var verbNames = func() []string {
	names := make([]string, 0, len(verbs))
	for name := range verbs {
		if len(name) > 2 && name != "EOF" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}()

type Command struct {
	Verb Verb
	Args []string
}

// Arg joins the arguments back into one string, for search terms.
func (c Command) Arg() string {
	return strings.Join(c.Args, " ")
}

type UnknownCommandError struct {
	Name       string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	if e.Suggestion == "" {
		return "Unknown command: " + e.Name
	}
	return fmt.Sprintf("Unknown command: %s (did you mean %s?)", e.Name, e.Suggestion)
}

// Parse splits a typed line into a verb and its arguments. An empty line
// redraws; a bare number is shorthand for go.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Verb: VerbRedraw}, nil
	}
	if _, err := strconv.Atoi(fields[0]); err == nil {
		return Command{Verb: VerbGo, Args: fields[:1]}, nil
	}
	verb, ok := verbs[fields[0]]
	if !ok {
		verb, ok = verbs[strings.ToLower(fields[0])]
	}
	if !ok {
		return Command{}, &UnknownCommandError{Name: fields[0], Suggestion: suggest(fields[0])}
	}
	return Command{Verb: verb, Args: fields[1:]}, nil
}

func suggest(name string) string {
	matches := fuzzy.Find(strings.ToLower(name), verbNames)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

const helpText = `Commands:
  subreddit|sub [name]   browse a subreddit, or the front page without a name
  frontpage|fp [sort]    browse the front page (hot, new, top, rising, controversial)
  search <terms>         search posts; inside a subreddit, search that subreddit
  subreddits [terms]     find subreddits by name, or list your subscriptions
  user|u <name>          show a user's overview
  inbox                  show your inbox
  go|g <number>          enter an item; a bare number works too
  next|n, prev|p         change pages
  back [n]               return to an earlier listing
  open <number>          open an item's URL in the browser
  help                   show this text
  exit|quit              leave resh
An empty line redraws the current listing.`
