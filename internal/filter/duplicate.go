package filter

import (
	"sync"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// DuplicateThreshold is how many responses of one body length are reported
// before further ones are suppressed.
const DuplicateThreshold = 3

// DuplicateFilter suppresses responses whose body length keeps recurring,
// a cheap signal for soft-404 and placeholder pages. Two distinct pages of
// the same length collide; that is accepted.
//
// Counts only grow: once a length has been seen more than the threshold,
// every later response of that length is suppressed until Reset. One
// instance is shared by all workers.
type DuplicateFilter struct {
	mu        sync.Mutex
	seen      map[int64]int
	threshold int
}

// NewDuplicateFilter returns a filter using DuplicateThreshold.
func NewDuplicateFilter() *DuplicateFilter {
	return &DuplicateFilter{
		seen:      make(map[int64]int),
		threshold: DuplicateThreshold,
	}
}

func (d *DuplicateFilter) Name() string { return "duplicate" }

// ShouldFilter records the result's body length and reports whether it
// should be suppressed.
func (d *DuplicateFilter) ShouldFilter(result *scanner.ScanResult) bool {
	return d.Observe(result.ContentLength)
}

// Observe records one occurrence of length and returns true when the
// post-increment count exceeds the threshold. The increment and the test
// happen under one lock.
func (d *DuplicateFilter) Observe(length int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[length]++
	return d.seen[length] > d.threshold
}

// Reset forgets every observed length.
func (d *DuplicateFilter) Reset() {
	d.mu.Lock()
	d.seen = make(map[int64]int)
	d.mu.Unlock()
}
