package tree

import (
	"strings"

	"github.com/glabrego/resh-cli/internal/reddit"
)

// Row is one comment of a flattened reply tree. Address is 1-based and
// follows depth-first pre-order.
type Row struct {
	Address int
	Depth   int
	Comment *reddit.Comment
}

// Flatten walks roots depth-first, visiting each comment before its replies
// and replies in their given order. Nil nodes are skipped without consuming
// an address. Every call builds a new slice.
func Flatten(roots []*reddit.Comment) []Row {
	rows := make([]Row, 0, countNodes(roots))
	var walk func(nodes []*reddit.Comment, depth int)
	walk = func(nodes []*reddit.Comment, depth int) {
		for _, node := range nodes {
			if node == nil {
				continue
			}
			rows = append(rows, Row{Address: len(rows) + 1, Depth: depth, Comment: node})
			walk(node.Replies, depth+1)
		}
	}
	walk(roots, 0)
	return rows
}

// Find returns the row at address, if any.
func Find(rows []Row, address int) (Row, bool) {
	if address < 1 || address > len(rows) {
		return Row{}, false
	}
	return rows[address-1], true
}

// Margin is the ancestry prefix for depth: token repeated once per level.
func Margin(token string, depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(token, depth)
}

func countNodes(nodes []*reddit.Comment) int {
	n := 0
	for _, node := range nodes {
		if node != nil {
			n += 1 + countNodes(node.Replies)
		}
	}
	return n
}
