// Package runner drives a dfuzz run: it resolves base URLs, scans each one
// in turn and writes the results file once everything has finished.
package runner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/maxvaer/dfuzz/internal/config"
	"github.com/maxvaer/dfuzz/internal/filter"
	"github.com/maxvaer/dfuzz/internal/hook"
	"github.com/maxvaer/dfuzz/internal/metrics"
	"github.com/maxvaer/dfuzz/internal/netutil"
	"github.com/maxvaer/dfuzz/internal/output"
	"github.com/maxvaer/dfuzz/internal/reqparse"
	"github.com/maxvaer/dfuzz/internal/scanner"
	"github.com/maxvaer/dfuzz/internal/wordlist"
)

// Run executes the full scan pipeline against the real terminal.
// Input errors are returned before any request is made.
func Run(ctx context.Context, opts *config.Options) error {
	console := output.NewConsole(os.Stdout, os.Stderr, opts.NoColor, opts.Quiet)

	pauser, cleanup := startStdinToggle(console)
	defer cleanup()

	_, err := execute(ctx, opts, console, pauser)
	return err
}

func execute(ctx context.Context, opts *config.Options, console *output.Console, pauser *scanner.Pauser) ([]scanner.ScanResult, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	targets, err := resolveTargets(opts)
	if err != nil {
		return nil, err
	}

	words, err := wordlist.Load(opts.WordlistPath)
	if err != nil {
		return nil, fmt.Errorf("loading wordlist: %w", err)
	}

	req, err := scanner.NewRequester(opts)
	if err != nil {
		return nil, fmt.Errorf("creating requester: %w", err)
	}

	collector := metrics.New()
	if opts.MetricsAddr != "" {
		addr, err := collector.Serve(opts.MetricsAddr)
		if err != nil {
			return nil, fmt.Errorf("starting metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = collector.Close(shutdownCtx)
		}()
		console.Infof("Metrics on http://%s/metrics", addr)
	}

	console.Banner(output.BannerInfo{
		Targets:       len(targets),
		Wordlist:      opts.WordlistPath,
		Words:         len(words),
		Threads:       opts.Threads,
		MaxDepth:      opts.MaxDepth,
		AcceptedCodes: opts.AcceptedCodes,
		AutoDuplicate: opts.AutoDuplicate,
		OutputFile:    opts.OutputFile,
	})

	r := New(opts, console, req)
	r.metrics = collector
	r.pauser = pauser
	if opts.OnResultCmd != "" {
		r.hook = hook.NewRunner(opts.OnResultCmd, console)
	}

	start := time.Now()
	results, err := r.Run(ctx, targets)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return results, err
		}
		console.Warnf("Scan interrupted, keeping %d partial results", len(results))
	}

	stats := r.Stats(time.Since(start))

	if opts.OutputFile != "" {
		if err := writeResults(opts, results, stats); err != nil {
			console.Warnf("Could not write to output file: %s", opts.OutputFile)
		} else {
			console.Goodf("Output saved to %s", opts.OutputFile)
		}
	}

	if opts.Tree {
		for _, base := range targets {
			console.Tree(base, results)
		}
	}
	console.Summary(stats)
	return results, nil
}

// resolveTargets builds the ordered list of base URLs: the URL file, then
// the captured request, then any CIDR expansion. Headers from a captured
// request are merged into opts.
func resolveTargets(opts *config.Options) ([]string, error) {
	var targets []string

	if opts.URLsFile != "" {
		urls, err := wordlist.LoadURLs(opts.URLsFile)
		if err != nil {
			return nil, fmt.Errorf("loading URL file: %w", err)
		}
		targets = append(targets, urls...)
	}

	if opts.RequestFile != "" {
		captured, err := reqparse.ParseFile(opts.RequestFile)
		if err != nil {
			return nil, fmt.Errorf("parsing request file: %w", err)
		}
		mergeHeaders(opts, captured.Headers)
		targets = append(targets, captured.BaseURL)
	}

	if opts.CIDRTargets != "" {
		cidrURLs, err := netutil.ExpandTargets(opts.CIDRTargets, opts.Ports, "http")
		if err != nil {
			return nil, fmt.Errorf("expanding CIDR: %w", err)
		}
		targets = append(targets, cidrURLs...)
	}
	return targets, nil
}

// mergeHeaders adds captured headers that the command line did not set.
// An explicit --user-agent beats a captured User-Agent.
func mergeHeaders(opts *config.Options, captured map[string]string) {
	if len(captured) == 0 {
		return
	}
	if opts.Headers == nil {
		opts.Headers = make(map[string]string, len(captured))
	}
	for key, val := range captured {
		if key == "User-Agent" && opts.UserAgent != "" {
			continue
		}
		if _, exists := opts.Headers[key]; !exists {
			opts.Headers[key] = val
		}
	}
}

func writeResults(opts *config.Options, results []scanner.ScanResult, stats output.Stats) error {
	w, err := createWriter(opts)
	if err != nil {
		return err
	}
	return output.WriteAll(w, output.Sorted(results, opts.SortBy), stats)
}

func createWriter(opts *config.Options) (output.Writer, error) {
	var (
		w   output.Writer
		err error
	)
	switch opts.OutputFormat {
	case "json":
		w, err = output.NewJSONWriter(opts.OutputFile, uuid.NewString())
	case "yaml":
		w, err = output.NewYAMLWriter(opts.OutputFile, uuid.NewString())
	case "csv":
		w, err = output.NewCSVWriter(opts.OutputFile)
	default:
		w, err = output.NewTextWriter(opts.OutputFile)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Runner scans base URLs one after another. Its counters accumulate across
// every base URL of the run.
type Runner struct {
	opts    *config.Options
	console *output.Console
	fetcher scanner.Fetcher
	metrics *metrics.Collector
	hook    *hook.Runner
	pauser  *scanner.Pauser

	// dup is shared by every base URL unless DuplicatePerTarget is set.
	dup *filter.DuplicateFilter

	requests atomic.Int64
	hits     atomic.Int64
	filtered atomic.Int64
	errs     atomic.Int64
}

// New creates a Runner that issues requests through fetcher.
func New(opts *config.Options, console *output.Console, fetcher scanner.Fetcher) *Runner {
	return &Runner{
		opts:    opts,
		console: console,
		fetcher: fetcher,
		metrics: metrics.New(),
		dup:     filter.NewDuplicateFilter(),
	}
}

// Run scans bases strictly in order and concatenates their hits. If ctx is
// cancelled it stops and returns what was collected along with ctx.Err().
func (r *Runner) Run(ctx context.Context, bases []string) ([]scanner.ScanResult, error) {
	var all []scanner.ScanResult
	for i, base := range bases {
		if ctx.Err() != nil {
			break
		}
		pct := int(math.RoundToEven(float64(i+1) / float64(len(bases)) * 100))
		r.console.Goodf("Scanning (%d/%d) [%d%%]: %s", i+1, len(bases), pct, base)

		all = append(all, r.scanBase(ctx, base)...)
	}
	return all, ctx.Err()
}

// scanBase runs every top-level wordlist entry against base on the worker
// pool. A wordlist that cannot be read is reported and yields no hits.
func (r *Runner) scanBase(ctx context.Context, base string) []scanner.ScanResult {
	words, err := wordlist.Load(r.opts.WordlistPath)
	if err != nil {
		if errors.Is(err, wordlist.ErrNotFound) {
			r.console.Warnf("Wordlist not found: %s", r.opts.WordlistPath)
		} else {
			r.console.Warnf("Loading wordlist: %v", err)
		}
		return nil
	}

	ps := scanner.NewPathScanner(scanner.PathScannerConfig{
		Fetcher:    r.fetcher,
		Classifier: r.chainFor(),
		MaxDepth:   r.opts.MaxDepth,
		Wordlist:   func() ([]string, error) { return wordlist.Load(r.opts.WordlistPath) },
		OnResult:   func(result *scanner.ScanResult) { r.record(ctx, result) },
		Pauser:     r.pauser,
	})

	if len(words) > 0 {
		r.console.StartProgress(len(words), "Bruteforcing "+base)
		defer r.console.FinishProgress()
	}

	var hits []scanner.ScanResult
	for tr := range scanner.RunWorkerPool(ctx, ps, base, words, r.opts.Threads) {
		r.console.Tick()
		if tr.Err != nil {
			r.console.Warnf("%v", tr.Err)
			continue
		}
		hits = append(hits, tr.Hits...)
	}
	return hits
}

// chainFor builds the classifier for one base URL: accepted status codes,
// then size exclusions, then duplicate suppression. Bases are scanned one at
// a time, so resetting the shared counter here never races with a worker.
func (r *Runner) chainFor() *filter.Chain {
	chain := filter.NewChain(filter.NewStatusFilter(r.opts.AcceptedCodes))
	if len(r.opts.ExcludeSize) > 0 {
		chain.Add(filter.NewSizeFilter(r.opts.ExcludeSize))
	}
	if r.opts.AutoDuplicate {
		if r.opts.DuplicatePerTarget {
			r.dup.Reset()
		}
		chain.Add(r.dup)
	}
	return chain
}

// record is called from worker goroutines for every attempt.
func (r *Runner) record(ctx context.Context, result *scanner.ScanResult) {
	r.requests.Add(1)
	r.metrics.Observe(result)

	switch {
	case result.Error != nil:
		r.errs.Add(1)
	case result.Filtered:
		r.filtered.Add(1)
	default:
		r.hits.Add(1)
		r.console.Hit(result)
		if r.hook != nil {
			r.hook.Run(ctx, result)
		}
	}
}

// Stats snapshots the run counters.
func (r *Runner) Stats(elapsed time.Duration) output.Stats {
	stats := output.Stats{
		TotalRequests: int(r.requests.Load()),
		Hits:          int(r.hits.Load()),
		FilteredCount: int(r.filtered.Load()),
		ErrorCount:    int(r.errs.Load()),
		Duration:      elapsed,
	}
	if elapsed.Seconds() > 0 {
		stats.RequestsPerSec = float64(stats.TotalRequests) / elapsed.Seconds()
	}
	return stats
}
