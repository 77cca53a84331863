package wordlist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned (wrapped) when a list file cannot be opened.
var ErrNotFound = errors.New("list file not found")

// Load returns the path segments in the wordlist at path, in file order.
// Lines are trimmed and blank lines dropped; duplicates are kept. Every call
// re-reads the file.
func Load(path string) ([]string, error) {
	raw, err := read(path)
	if err != nil {
		return nil, err
	}
	return splitLines(raw), nil
}

// LoadURLs reads a file of base URLs, one per line. Lines without a scheme
// get http:// prepended.
func LoadURLs(path string) ([]string, error) {
	raw, err := read(path)
	if err != nil {
		return nil, err
	}
	lines := splitLines(raw)
	for i, line := range lines {
		if !hasScheme(line, "http://") && !hasScheme(line, "https://") {
			lines[i] = "http://" + line
		}
	}
	return lines, nil
}

func hasScheme(line, scheme string) bool {
	return len(line) >= len(scheme) && strings.EqualFold(line[:len(scheme)], scheme)
}

func read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("reading %s: %w", path, errors.Join(ErrNotFound, err))
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result = append(result, line)
	}
	return result
}
