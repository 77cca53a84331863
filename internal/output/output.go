package output

import (
	"time"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// Stats holds aggregate scan statistics.
type Stats struct {
	TotalRequests  int
	Hits           int
	FilteredCount  int
	ErrorCount     int
	Duration       time.Duration
	RequestsPerSec float64
}

// Writer is implemented by each results-file format. Results are written
// once the whole batch has finished, in aggregation order.
type Writer interface {
	WriteHeader() error
	WriteResult(result *scanner.ScanResult) error
	WriteFooter(stats Stats) error
	Close() error
}

// WriteAll streams results through w and closes it. The first error wins,
// but Close is always attempted.
func WriteAll(w Writer, results []scanner.ScanResult, stats Stats) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for i := range results {
		if err := w.WriteResult(&results[i]); err != nil {
			return err
		}
	}
	return w.WriteFooter(stats)
}
