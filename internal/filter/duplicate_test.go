package filter

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

func TestDuplicateFilter_Name(t *testing.T) {
	assert.Equal(t, "duplicate", NewDuplicateFilter().Name())
}

func TestDuplicateFilter_FourthIsSuppressed(t *testing.T) {
	f := NewDuplicateFilter()
	for i := 1; i <= 3; i++ {
		assert.False(t, f.Observe(99), "observation %d should pass", i)
	}
	assert.True(t, f.Observe(99), "observation 4 should be suppressed")
	assert.True(t, f.Observe(99), "observation 5 should be suppressed")
	assert.Equal(t, 5, f.count(99))
}

func TestDuplicateFilter_LengthsAreIndependent(t *testing.T) {
	f := NewDuplicateFilter()
	for i := 0; i < 3; i++ {
		f.Observe(10)
	}
	assert.True(t, f.Observe(10))
	assert.False(t, f.Observe(11))
	assert.False(t, f.Observe(0))
}

func TestDuplicateFilter_ShouldFilterUsesLength(t *testing.T) {
	f := NewDuplicateFilter()
	// Status code is irrelevant: only the length is keyed.
	codes := []int{200, 301, 302, 200}
	var filtered []bool
	for _, c := range codes {
		filtered = append(filtered, f.ShouldFilter(&scanner.ScanResult{StatusCode: c, ContentLength: 42}))
	}
	assert.Equal(t, []bool{false, false, false, true}, filtered)
}

func TestDuplicateFilter_Reset(t *testing.T) {
	f := NewDuplicateFilter()
	for i := 0; i < 4; i++ {
		f.Observe(5)
	}
	require.True(t, f.Observe(5))

	f.Reset()
	assert.Equal(t, 0, f.count(5))
	assert.False(t, f.Observe(5))
}

func TestDuplicateFilter_ConcurrentNoLostUpdates(t *testing.T) {
	f := NewDuplicateFilter()
	const goroutines, perG = 50, 20

	var passed atomic.Int32
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				if !f.Observe(1234) {
					passed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perG, f.count(1234))
	assert.Equal(t, int32(DuplicateThreshold), passed.Load(), "exactly threshold observations may pass")
}

// count returns how many times length has been observed.
func (d *DuplicateFilter) count(length int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[length]
}
