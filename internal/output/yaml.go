package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// YAMLWriter writes results as a single YAML report.
type YAMLWriter struct {
	w      io.Writer
	closer io.Closer
	report reportBuilder
}

func NewYAMLWriter(outputFile, scanID string) (*YAMLWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &YAMLWriter{w: w, closer: closer, report: reportBuilder{scanID: scanID}}, nil
}

func (y *YAMLWriter) WriteHeader() error { return nil }

func (y *YAMLWriter) WriteResult(result *scanner.ScanResult) error {
	y.report.add(result)
	return nil
}

func (y *YAMLWriter) WriteFooter(stats Stats) error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(y.report.build(stats)); err != nil {
		return err
	}
	return enc.Close()
}

func (y *YAMLWriter) Close() error {
	if y.closer != nil {
		return y.closer.Close()
	}
	return nil
}
