package listing

import (
	"slices"

	"github.com/glabrego/resh-cli/internal/reddit"
)

// DefaultPageSize is used when a listing is built without a page size.
const DefaultPageSize = 10

// Page is one materialized batch of items in source order. It is never
// modified after the pager creates it.
type Page []reddit.Item

// Pager pages forward through a Source and keeps every page it has shown,
// so moving back and forth again never pulls from the source.
//
// prev holds earlier pages oldest first; next holds later pages with the
// nearest one on top.
type Pager struct {
	source  *Source
	size    int
	current Page
	prev    []Page
	next    []Page
	fetches int
	shown   bool
}

func NewPager(source *Source, size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{source: source, size: size}
}

// Next advances one page, reusing a cached page when there is one. An empty
// page is a valid result. The only error is a transport failure: items read
// before it still become the new page, and with none the pager is unchanged.
func (p *Pager) Next() error {
	if len(p.next) > 0 {
		p.push()
		p.current = p.next[len(p.next)-1]
		p.next = p.next[:len(p.next)-1]
		return nil
	}
	if p.source.Exhausted() {
		p.push()
		p.current = nil
		return nil
	}

	p.fetches++
	items, err := p.source.Pull(p.size)
	if err != nil && len(items) == 0 {
		return err
	}
	p.push()
	p.current = slices.Clip(Page(items))
	if len(items) > 0 {
		p.shown = true
	}
	return err
}

// Prev moves back one page. It fails with ErrNoPreviousPage on the first
// page and leaves the pager unchanged.
func (p *Pager) Prev() error {
	if len(p.prev) == 0 {
		return ErrNoPreviousPage
	}
	p.next = append(p.next, p.current)
	p.current = p.prev[len(p.prev)-1]
	p.prev = p.prev[:len(p.prev)-1]
	return nil
}

func (p *Pager) push() {
	if len(p.current) > 0 {
		p.prev = append(p.prev, p.current)
	}
}

// Current returns a copy of the page on display.
func (p *Pager) Current() Page {
	return slices.Clone(p.current)
}

// Len is the number of items on the current page.
func (p *Pager) Len() int {
	return len(p.current)
}

// Number is the 1-based page number shown to the user.
func (p *Pager) Number() int {
	return len(p.prev) + 1
}

// Item resolves a 1-based position on the current page.
func (p *Pager) Item(pos int) (reddit.Item, error) {
	if pos < 1 || pos > len(p.current) {
		return nil, invalidIndex(pos)
	}
	return p.current[pos-1], nil
}

// Fetches counts the pulls made against the source.
func (p *Pager) Fetches() int {
	return p.fetches
}

// Shown reports whether any page so far had items.
func (p *Pager) Shown() bool {
	return p.shown
}

// Size is the configured page capacity.
func (p *Pager) Size() int {
	return p.size
}
