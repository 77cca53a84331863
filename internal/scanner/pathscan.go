package scanner

import (
	"context"
)

// Classifier decides whether a completed request should be dropped.
// It returns true and a reason when the result is not a hit.
type Classifier interface {
	Apply(result *ScanResult) (bool, string)
}

// PathScannerConfig wires a PathScanner to its collaborators.
type PathScannerConfig struct {
	Fetcher    Fetcher
	Classifier Classifier

	// MaxDepth bounds recursion. Top-level segments are depth 1, so 0 and 1
	// both disable it.
	MaxDepth int

	// Wordlist is called each time a directory hit is expanded. An error
	// silently ends that branch.
	Wordlist func() ([]string, error)

	// OnResult is called from the worker goroutine for every attempt,
	// including transport errors and filtered responses. It must be safe
	// for concurrent use.
	OnResult func(result *ScanResult)

	Pauser *Pauser
}

// PathScanner requests one segment against a base URL and expands
// directory-like hits with the full wordlist.
type PathScanner struct {
	cfg PathScannerConfig
}

// NewPathScanner creates a PathScanner. Classifier and OnResult may be nil.
func NewPathScanner(cfg PathScannerConfig) *PathScanner {
	return &PathScanner{cfg: cfg}
}

type frame struct {
	base    string
	segment string
	depth   int
}

// Scan requests base+segment and, for directory hits within the depth budget,
// every wordlist entry beneath it. Hits are returned depth-first in wordlist
// order, each parent before its children. The expansion uses an explicit
// stack on the calling goroutine; nothing is handed back to the pool.
func (s *PathScanner) Scan(ctx context.Context, base, segment string) []ScanResult {
	var hits []ScanResult
	stack := []frame{{base: base, segment: segment, depth: 1}}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			break
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		result, ok := s.attempt(ctx, f)
		if !ok {
			continue
		}
		hits = append(hits, result)

		if !s.shouldExpand(f.depth, result.URL) {
			continue
		}
		words, err := s.wordlist()
		if err != nil {
			continue
		}
		// Reverse push so children pop in wordlist order.
		for i := len(words) - 1; i >= 0; i-- {
			stack = append(stack, frame{base: result.URL, segment: words[i], depth: f.depth + 1})
		}
	}
	return hits
}

func (s *PathScanner) attempt(ctx context.Context, f frame) (ScanResult, bool) {
	result := ScanResult{Base: f.base, Segment: f.segment, Depth: f.depth}

	target, err := JoinTarget(f.base, f.segment)
	if err != nil {
		result.Error = err
		s.report(&result)
		return result, false
	}
	result.URL = target

	s.cfg.Pauser.Wait(ctx)

	resp, err := s.cfg.Fetcher.Fetch(ctx, target)
	if err != nil {
		result.Error = err
		s.report(&result)
		return result, false
	}

	result.StatusCode = resp.StatusCode
	result.ContentLength = resp.ContentLength
	result.Duration = resp.Duration
	if resp.FinalURL != "" && resp.FinalURL != target {
		result.RedirectURL = resp.FinalURL
	}

	if s.cfg.Classifier != nil {
		if filtered, reason := s.cfg.Classifier.Apply(&result); filtered {
			result.Filtered = true
			result.FilterReason = reason
		}
	}
	s.report(&result)
	return result, !result.Filtered
}

func (s *PathScanner) shouldExpand(depth int, target string) bool {
	return s.cfg.MaxDepth > 0 && depth < s.cfg.MaxDepth && IsDirectory(target)
}

func (s *PathScanner) wordlist() ([]string, error) {
	if s.cfg.Wordlist == nil {
		return nil, nil
	}
	return s.cfg.Wordlist()
}

func (s *PathScanner) report(result *ScanResult) {
	if s.cfg.OnResult != nil {
		s.cfg.OnResult(result)
	}
}
