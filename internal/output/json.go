package output

import (
	"encoding/json"
	"io"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// JSONWriter writes results as a single JSON report.
type JSONWriter struct {
	w      io.Writer
	closer io.Closer
	report reportBuilder
}

// NewJSONWriter creates a JSON output writer. scanID identifies the run in
// the report.
func NewJSONWriter(outputFile, scanID string) (*JSONWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{w: w, closer: closer, report: reportBuilder{scanID: scanID}}, nil
}

func (j *JSONWriter) WriteHeader() error { return nil }

func (j *JSONWriter) WriteResult(result *scanner.ScanResult) error {
	j.report.add(result)
	return nil
}

func (j *JSONWriter) WriteFooter(stats Stats) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.report.build(stats))
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
