package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinThreads     = 1
	MaxThreads     = 100
	DefaultThreads = 10
	DefaultTimeout = 5 * time.Second
)

// DefaultAcceptedCodes are the status codes reported as hits when -i is not given.
var DefaultAcceptedCodes = []int{200, 301, 302}

// Options holds all configuration for a dfuzz run. It is treated as
// read-only once the scan starts.
type Options struct {
	// Targets
	URLsFile     string
	RequestFile  string // raw HTTP request supplying a base URL and headers
	WordlistPath string
	CIDRTargets  string
	Ports        string

	// Classification
	AcceptedCodes []int
	ExcludeSize   []int

	// Discovery
	MaxDepth int // 0 and 1 both disable recursion

	// Duplicate suppression
	AutoDuplicate      bool
	DuplicatePerTarget bool // reset the length counter for every base URL

	// Performance
	Threads int
	Timeout time.Duration

	// HTTP
	Headers   map[string]string
	UserAgent string
	Proxy     string

	// Output
	OutputFile   string
	OutputFormat string // "text", "json", "csv", "yaml"
	SortBy       string
	Tree         bool
	Quiet        bool
	NoColor      bool

	// Integrations
	OnResultCmd string
	MetricsAddr string
	ConfigFile  string
}

// Normalize clamps values into their supported ranges and fills defaults.
func (o *Options) Normalize() {
	o.Threads = ClampThreads(o.Threads)
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	if o.OutputFormat == "" {
		o.OutputFormat = "text"
	}
}

// Validate reports configuration that makes a run impossible.
func (o *Options) Validate() error {
	if o.URLsFile == "" && o.CIDRTargets == "" && o.RequestFile == "" {
		return fmt.Errorf("target required: use -f, --request-file or --cidr")
	}
	if o.WordlistPath == "" {
		return fmt.Errorf("wordlist required: use -w")
	}
	if len(o.AcceptedCodes) == 0 {
		return fmt.Errorf("at least one accepted status code is required")
	}
	switch o.OutputFormat {
	case "", "text", "json", "csv", "yaml":
	default:
		return fmt.Errorf("--format must be one of: text, json, csv, yaml")
	}
	switch o.SortBy {
	case "", "status", "path", "size", "depth":
	default:
		return fmt.Errorf("--sort must be one of: status, path, size, depth")
	}
	return nil
}

// ClampThreads bounds a worker count to [MinThreads, MaxThreads].
func ClampThreads(n int) int {
	if n < MinThreads {
		return MinThreads
	}
	if n > MaxThreads {
		return MaxThreads
	}
	return n
}

// ParseStatusCodes parses a comma-separated list such as "200,301,302".
// Spaces around entries are trimmed; an empty or non-integer entry is an error.
func ParseStatusCodes(s string) ([]int, error) {
	var codes []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("invalid status code list %q: empty entry", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid status code %q: %w", p, err)
		}
		codes = append(codes, n)
	}
	return codes, nil
}
