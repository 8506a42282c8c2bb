package book

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"itchbook/domain"
)

// activityKey orders busiest-first: higher mutation count first, ties
// broken by book id so every key stays unique in the tree (the tree
// dedupes on comparator equality, and a real feed hands us long runs of
// symbols with the exact same count).
type activityKey struct {
	count  uint64
	bookID domain.BookID
}

func compareActivity(a, b activityKey) int {
	if a.count != b.count {
		if a.count > b.count {
			return -1
		}
		return 1
	}
	if a.bookID != b.bookID {
		if a.bookID < b.bookID {
			return -1
		}
		return 1
	}
	return 0
}

// ActivityEntry is one row of a busiest-symbols report.
type ActivityEntry struct {
	BookID domain.BookID
	Locate string
	Count  uint64
}

// ActivityReport counts book mutations as a run proceeds and ranks
// symbols by activity at the end, the same ordered-map-over-a-red-black-
// tree shape the source's sharded price tree uses to keep price levels
// ranked instead of counts, repointed at a different key.
type ActivityReport struct {
	counts []uint64
}

// NewActivityReport allocates a counter for each of numBooks book slots.
func NewActivityReport(numBooks int) *ActivityReport {
	return &ActivityReport{counts: make([]uint64, numBooks)}
}

// Record notes one mutation against bookID.
func (r *ActivityReport) Record(bookID domain.BookID) {
	r.counts[bookID]++
}

// Top returns the n busiest books, most active first, resolving each
// book id to a human-readable ticker through locate.
func (r *ActivityReport) Top(n int, locate func(domain.BookID) string) []ActivityEntry {
	tree := rbt.NewWith[activityKey, struct{}](compareActivity)
	for id, count := range r.counts {
		if count == 0 {
			continue
		}
		tree.Put(activityKey{count: count, bookID: domain.BookID(id)}, struct{}{})
	}
	keys := tree.Keys()
	if n > len(keys) {
		n = len(keys)
	}
	out := make([]ActivityEntry, n)
	for i := 0; i < n; i++ {
		k := keys[i]
		out[i] = ActivityEntry{BookID: k.bookID, Locate: locate(k.bookID), Count: k.count}
	}
	return out
}
