package scanner

import (
	"context"
	"fmt"
	"sync"

	"github.com/maxvaer/dfuzz/internal/config"
)

// SegmentScanner scans one top-level segment against a base URL, including
// any recursive expansion, and returns the hits it found.
type SegmentScanner interface {
	Scan(ctx context.Context, base, segment string) []ScanResult
}

// TaskResult is the outcome of one top-level task.
type TaskResult struct {
	Segment string
	Hits    []ScanResult
	Err     error // set only when the task panicked
}

// RunWorkerPool fans the top-level segments of one base URL out across
// threads workers (clamped to the supported range) and returns a channel
// with exactly one TaskResult per segment that was started. The channel is
// closed when all workers finish. Cancelling ctx stops new tasks from being
// handed out.
func RunWorkerPool(
	ctx context.Context,
	sc SegmentScanner,
	base string,
	segments []string,
	threads int,
) <-chan TaskResult {
	threads = config.ClampThreads(threads)
	segCh := make(chan string, threads*2)
	resultsCh := make(chan TaskResult, threads*2)

	var wg sync.WaitGroup

	// Producer: feed segments into channel.
	go func() {
		defer close(segCh)
		for _, seg := range segments {
			select {
			case segCh <- seg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seg := range segCh {
				resultsCh <- runTask(ctx, sc, base, seg)
			}
		}()
	}

	// Closer: when all workers finish, close the results channel.
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	return resultsCh
}

// runTask isolates one task so a panic degrades to an empty result.
func runTask(ctx context.Context, sc SegmentScanner, base, segment string) (tr TaskResult) {
	tr.Segment = segment
	defer func() {
		if r := recover(); r != nil {
			tr.Hits = nil
			tr.Err = fmt.Errorf("scanning %q: panic: %v", segment, r)
		}
	}()
	tr.Hits = sc.Scan(ctx, base, segment)
	return tr
}
