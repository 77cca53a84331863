package output

import (
	"bufio"
	"io"
	"os"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// TextWriter writes one discovered URL per line.
type TextWriter struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewTextWriter creates a text results writer. If outputFile is empty,
// stdout is used.
func NewTextWriter(outputFile string) (*TextWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &TextWriter{w: bufio.NewWriter(w), closer: closer}, nil
}

func (t *TextWriter) WriteHeader() error { return nil }

func (t *TextWriter) WriteResult(result *scanner.ScanResult) error {
	_, err := t.w.WriteString(result.URL + "\n")
	return err
}

func (t *TextWriter) WriteFooter(_ Stats) error {
	return t.w.Flush()
}

func (t *TextWriter) Close() error {
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// openOutput returns stdout for an empty path, otherwise a freshly created
// file and its closer.
func openOutput(outputFile string) (io.Writer, io.Closer, error) {
	if outputFile == "" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}
