package output

import (
	"cmp"
	"slices"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

var sortKeys = map[string]func(a, b scanner.ScanResult) int{
	"status": func(a, b scanner.ScanResult) int { return cmp.Compare(a.StatusCode, b.StatusCode) },
	"size":   func(a, b scanner.ScanResult) int { return cmp.Compare(a.ContentLength, b.ContentLength) },
	"path":   func(a, b scanner.ScanResult) int { return cmp.Compare(a.URL, b.URL) },
	// Shallow hits first, grouped by the directory they were found in.
	"depth": func(a, b scanner.ScanResult) int {
		return cmp.Or(cmp.Compare(a.Depth, b.Depth), cmp.Compare(a.Base, b.Base))
	},
}

// Sorted returns a copy of results ordered by key. Equal keys keep
// aggregation order; an empty or unknown key returns the copy unsorted.
func Sorted(results []scanner.ScanResult, key string) []scanner.ScanResult {
	out := slices.Clone(results)
	if less, ok := sortKeys[key]; ok {
		slices.SortStableFunc(out, less)
	}
	return out
}
