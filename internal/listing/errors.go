package listing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNoPreviousPage = errors.New("no previous page")
	ErrInvalidIndex   = errors.New("invalid index")
)

func invalidIndex(pos int) error {
	return fmt.Errorf("position %d: %w", pos, ErrInvalidIndex)
}

// ParsePosition reads a 1-based display position typed by the user. Range
// checks happen in Go; only the syntax is checked here.
func ParsePosition(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("position %q: %w", s, ErrInvalidIndex)
	}
	return n, nil
}
