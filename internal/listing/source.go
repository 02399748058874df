package listing

import "github.com/glabrego/resh-cli/internal/reddit"

// Iterator is a lazy, forward-only sequence of items. Next returns false at
// the end; Err distinguishes exhaustion (nil) from a failed transport.
type Iterator interface {
	Next() (reddit.Item, bool)
	Err() error
}

// Source pulls items from an Iterator in batches. Items are pulled once;
// after exhaustion or failure the iterator is never touched again.
type Source struct {
	it   Iterator
	done bool
	err  error
}

func NewSource(it Iterator) *Source {
	if it == nil {
		return &Source{done: true}
	}
	return &Source{it: it}
}

// Pull returns up to n items. A short or empty result with a nil error means
// the sequence ended. On a transport failure the items read so far are
// returned together with the error.
func (s *Source) Pull(n int) ([]reddit.Item, error) {
	if s.done || n <= 0 {
		return nil, nil
	}
	items := make([]reddit.Item, 0, n)
	for len(items) < n {
		item, ok := s.it.Next()
		if !ok {
			s.done = true
			if err := s.it.Err(); err != nil {
				s.err = err
				return items, err
			}
			break
		}
		items = append(items, item)
	}
	return items, nil
}

// Exhausted reports whether the underlying sequence has ended.
func (s *Source) Exhausted() bool {
	return s.done
}

// Err returns the transport error that stopped the source, if any.
func (s *Source) Err() error {
	return s.err
}

// SliceIterator serves items already in memory, such as the comments that
// arrive together with their submission.
type SliceIterator struct {
	items []reddit.Item
	pos   int
}

func Items(items ...reddit.Item) *SliceIterator {
	return &SliceIterator{items: items}
}

func (it *SliceIterator) Next() (reddit.Item, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	item := it.items[it.pos]
	it.pos++
	return item, true
}

func (it *SliceIterator) Err() error { return nil }
