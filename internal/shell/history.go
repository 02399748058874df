package shell

import (
	"errors"
	"fmt"

	"github.com/glabrego/resh-cli/internal/listing"
)

// History holds the listings the user navigated away from, most recent last.
type History struct {
	stack []*listing.Listing
}

func (h *History) Push(l *listing.Listing) {
	if l != nil {
		h.stack = append(h.stack, l)
	}
}

func (h *History) Len() int {
	return len(h.stack)
}

// Back drops n listings and returns the last one dropped, which becomes the
// current listing again.
func (h *History) Back(n int) (*listing.Listing, error) {
	if n < 1 {
		return nil, fmt.Errorf("Can't go back %d listings", n)
	}
	if n > len(h.stack) {
		if len(h.stack) == 0 {
			return nil, errors.New("There is nothing to go back to")
		}
		return nil, fmt.Errorf("Can only go back %d", len(h.stack))
	}
	l := h.stack[len(h.stack)-n]
	clear(h.stack[len(h.stack)-n:])
	h.stack = h.stack[:len(h.stack)-n]
	return l, nil
}
