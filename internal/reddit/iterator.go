package reddit

import (
	"context"
	"net/url"
)

// Sorts lists the listing orders the API accepts.
var Sorts = []string{"hot", "new", "top", "rising", "controversial"}

// ValidSort reports whether sort is one of Sorts.
func ValidSort(sort string) bool {
	for _, s := range Sorts {
		if s == sort {
			return true
		}
	}
	return false
}

// Iterator lazily walks a cursor-paginated listing endpoint. Creating one
// performs no request; each exhausted batch triggers the next fetch. Next
// returns false once the listing ends or a request fails; Err tells the two
// apart. A failed iterator stays stopped.
type Iterator struct {
	client  *Client
	path    string
	query   url.Values
	buf     []Item
	after   string
	started bool
	done    bool
	err     error
	batches int
}

func (it *Iterator) Next() (Item, bool) {
	for len(it.buf) == 0 {
		if it.done {
			return nil, false
		}
		it.fetch()
	}
	item := it.buf[0]
	it.buf = it.buf[1:]
	return item, true
}

func (it *Iterator) Err() error {
	return it.err
}

// Batches reports how many requests the iterator has issued.
func (it *Iterator) Batches() int {
	return it.batches
}

func (it *Iterator) fetch() {
	if it.started && it.after == "" {
		it.done = true
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), it.client.timeout)
	defer cancel()

	it.started = true
	it.batches++
	items, after, err := it.client.fetchBatch(ctx, it.path, it.query, it.after)
	if err != nil {
		it.err = err
		it.done = true
		return
	}
	it.buf = items
	it.after = after
	if after == "" || len(items) == 0 {
		it.done = len(items) == 0
		it.after = ""
	}
}
