package output

import (
	"time"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// Entry is one hit in a structured report.
type Entry struct {
	URL           string `json:"url" yaml:"url"`
	Base          string `json:"base" yaml:"base"`
	Segment       string `json:"segment" yaml:"segment"`
	Depth         int    `json:"depth" yaml:"depth"`
	StatusCode    int    `json:"status" yaml:"status"`
	ContentLength int64  `json:"size" yaml:"size"`
	RedirectURL   string `json:"redirect,omitempty" yaml:"redirect,omitempty"`
}

// ReportStats mirrors Stats for serialisation.
type ReportStats struct {
	TotalRequests int     `json:"total_requests" yaml:"total_requests"`
	Hits          int     `json:"hits" yaml:"hits"`
	Filtered      int     `json:"filtered" yaml:"filtered"`
	Errors        int     `json:"errors" yaml:"errors"`
	DurationSec   float64 `json:"duration_seconds" yaml:"duration_seconds"`
}

// Report is the document written by the JSON and YAML writers.
type Report struct {
	ScanID    string      `json:"scan_id" yaml:"scan_id"`
	Generated time.Time   `json:"generated" yaml:"generated"`
	Stats     ReportStats `json:"stats" yaml:"stats"`
	Results   []Entry     `json:"results" yaml:"results"`
}

// reportBuilder accumulates entries for the buffered formats.
type reportBuilder struct {
	scanID  string
	entries []Entry
}

func (b *reportBuilder) add(result *scanner.ScanResult) {
	b.entries = append(b.entries, Entry{
		URL:           result.URL,
		Base:          result.Base,
		Segment:       result.Segment,
		Depth:         result.Depth,
		StatusCode:    result.StatusCode,
		ContentLength: result.ContentLength,
		RedirectURL:   result.RedirectURL,
	})
}

func (b *reportBuilder) build(stats Stats) Report {
	results := b.entries
	if results == nil {
		results = []Entry{}
	}
	return Report{
		ScanID:    b.scanID,
		Generated: time.Now().UTC(),
		Stats: ReportStats{
			TotalRequests: stats.TotalRequests,
			Hits:          stats.Hits,
			Filtered:      stats.FilteredCount,
			Errors:        stats.ErrorCount,
			DurationSec:   stats.Duration.Seconds(),
		},
		Results: results,
	}
}
