package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// CSVWriter writes results in CSV format.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVWriter creates a CSV output writer.
func NewCSVWriter(outputFile string) (*CSVWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &CSVWriter{w: csv.NewWriter(w), closer: closer}, nil
}

func (c *CSVWriter) WriteHeader() error {
	return c.w.Write([]string{"url", "base", "segment", "depth", "status", "size", "redirect"})
}

func (c *CSVWriter) WriteResult(result *scanner.ScanResult) error {
	return c.w.Write([]string{
		result.URL,
		result.Base,
		result.Segment,
		strconv.Itoa(result.Depth),
		strconv.Itoa(result.StatusCode),
		strconv.FormatInt(result.ContentLength, 10),
		result.RedirectURL,
	})
}

func (c *CSVWriter) WriteFooter(_ Stats) error {
	c.w.Flush()
	return c.w.Error()
}

func (c *CSVWriter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
