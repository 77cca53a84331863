package scanner

import "time"

// ScanResult holds the outcome of a single path request. A result with a nil
// Error and Filtered == false is a hit.
type ScanResult struct {
	Base          string // base URL the segment was joined onto
	Segment       string
	URL           string // resolved target
	Depth         int    // 1 for top-level segments
	StatusCode    int
	ContentLength int64
	RedirectURL   string // final URL when redirects were followed
	Duration      time.Duration
	Error         error
	Filtered      bool
	FilterReason  string
}

// IsHit reports whether the result passed classification.
func (r *ScanResult) IsHit() bool {
	return r.Error == nil && !r.Filtered
}
