package filter

import "github.com/maxvaer/dfuzz/internal/scanner"

// Filter decides whether a scan result should be dropped.
type Filter interface {
	Name() string
	ShouldFilter(result *scanner.ScanResult) bool
}

// Chain applies multiple filters in order, short-circuiting on the first
// match. Filters after the matching one never see the result, which matters
// for stateful filters such as DuplicateFilter.
type Chain struct {
	filters []Filter
}

// NewChain returns a chain containing filters, in order.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Apply runs every filter against the result. Returns true and the filter
// name if the result should be filtered out.
func (c *Chain) Apply(result *scanner.ScanResult) (bool, string) {
	for _, f := range c.filters {
		if f.ShouldFilter(result) {
			return true, f.Name()
		}
	}
	return false, ""
}

// rule is a stateless Filter built from a predicate.
type rule struct {
	name string
	drop func(*scanner.ScanResult) bool
}

func (r rule) Name() string                                 { return r.name }
func (r rule) ShouldFilter(result *scanner.ScanResult) bool { return r.drop(result) }

func set[T comparable](items []T) map[T]bool {
	m := make(map[T]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// NewStatusFilter drops every response whose status is not in accepted.
// An empty set accepts nothing.
func NewStatusFilter(accepted []int) Filter {
	ok := set(accepted)
	return rule{name: "status", drop: func(r *scanner.ScanResult) bool { return !ok[r.StatusCode] }}
}

// NewSizeFilter drops responses whose body length is in sizes.
func NewSizeFilter(sizes []int) Filter {
	lengths := make([]int64, len(sizes))
	for i, s := range sizes {
		lengths[i] = int64(s)
	}
	deny := set(lengths)
	return rule{name: "size", drop: func(r *scanner.ScanResult) bool { return deny[r.ContentLength] }}
}
