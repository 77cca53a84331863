package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

func TestObserveCounters(t *testing.T) {
	c := New()
	base := "http://x.test:8080/"

	c.Observe(&scanner.ScanResult{Base: base, StatusCode: 200, Duration: 10 * time.Millisecond})
	c.Observe(&scanner.ScanResult{Base: base, StatusCode: 200})
	c.Observe(&scanner.ScanResult{Base: base, StatusCode: 404, Filtered: true, FilterReason: "status"})
	c.Observe(&scanner.ScanResult{Base: base, StatusCode: 200, Filtered: true, FilterReason: "duplicate"})
	c.Observe(&scanner.ScanResult{Base: base, Error: errors.New("refused")})

	assert.Equal(t, 5.0, testutil.ToFloat64(c.requests.WithLabelValues("x.test:8080")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("x.test:8080")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.hits.WithLabelValues("x.test:8080", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.filtered.WithLabelValues("x.test:8080", "status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.filtered.WithLabelValues("x.test:8080", "duplicate")))
}

func TestServeExposesMetrics(t *testing.T) {
	c := New()
	c.Observe(&scanner.ScanResult{Base: "http://x.test/", StatusCode: 200})

	addr, err := c.Serve("127.0.0.1:0")
	require.NoError(t, err)
	defer c.Close(context.Background())

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `dfuzz_hits_total{status="200",target="x.test"} 1`)
}

func TestServeBadAddress(t *testing.T) {
	_, err := New().Serve("not-an-address")
	assert.Error(t, err)
}

func TestCloseWithoutServe(t *testing.T) {
	assert.NoError(t, New().Close(context.Background()))
}

func TestHostLabel(t *testing.T) {
	assert.Equal(t, "x.test", hostLabel("http://x.test/app/"))
	assert.Equal(t, "not a url", hostLabel("not a url"))
}
