package render

import (
	"fmt"
	"time"

	"github.com/glabrego/resh-cli/internal/reddit"
)

// Context carries what every renderer needs besides the item itself.
type Context struct {
	Style Style
	Now   time.Time
}

// Func renders one item at its 1-based display position. The block may span
// several lines and must stay within Width columns.
type Func func(c Context, pos int, item reddit.Item) string

// Set maps item kinds to renderers.
type Set map[reddit.Kind]Func

// Defaults returns the renderers used when a listing overrides nothing.
func Defaults() Set {
	return Set{
		reddit.KindSubmission: Submission,
		reddit.KindSubreddit:  Subreddit,
		reddit.KindComment:    Comment,
		reddit.KindMessage:    Message,
		reddit.KindUser:       User,
	}
}

// Dispatcher picks a renderer by item kind. Kinds without a renderer, and
// renderers that fail, produce the fallback line instead.
type Dispatcher struct {
	renderers Set
}

// NewDispatcher layers overrides over the default set. A nil override entry
// removes the default for that kind.
func NewDispatcher(overrides Set) *Dispatcher {
	renderers := Defaults()
	for kind, fn := range overrides {
		if fn == nil {
			delete(renderers, kind)
			continue
		}
		renderers[kind] = fn
	}
	return &Dispatcher{renderers: renderers}
}

// Handles reports whether kind has a renderer.
func (d *Dispatcher) Handles(kind reddit.Kind) bool {
	_, ok := d.renderers[kind]
	return ok
}

// Render never fails: it always returns text for item.
func (d *Dispatcher) Render(c Context, pos int, item reddit.Item) (out string) {
	kind := reddit.KindOf(item)
	fn, ok := d.renderers[kind]
	if !ok || item == nil {
		return Fallback(kind)
	}
	defer func() {
		if r := recover(); r != nil {
			out = Fallback(kind)
		}
	}()
	return fn(c, pos, item)
}

// Fallback is the line shown for an item no renderer can handle.
func Fallback(kind reddit.Kind) string {
	return fmt.Sprintf("Can't handle a(n) %s", kind)
}
