// Package metrics exposes scan counters for Prometheus scraping.
package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

// Collector records one observation per request. It uses its own registry so
// tests and embedding programs never touch the global one.
type Collector struct {
	registry *prometheus.Registry
	server   *http.Server

	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	hits     *prometheus.CounterVec
	filtered *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New creates a Collector with all metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dfuzz_requests_total",
			Help: "Requests attempted, including failed ones.",
		}, []string{"target"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dfuzz_errors_total",
			Help: "Requests that failed at the transport level.",
		}, []string{"target"}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dfuzz_hits_total",
			Help: "Accepted, non-suppressed responses.",
		}, []string{"target", "status"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dfuzz_filtered_total",
			Help: "Responses dropped by a filter.",
		}, []string{"target", "reason"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dfuzz_response_time_seconds",
			Help:    "Time to receive and drain a response.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"target"}),
	}
	c.registry.MustRegister(c.requests, c.errors, c.hits, c.filtered, c.latency)
	return c
}

// Observe records a request outcome.
func (c *Collector) Observe(result *scanner.ScanResult) {
	target := hostLabel(result.Base)
	c.requests.WithLabelValues(target).Inc()

	switch {
	case result.Error != nil:
		c.errors.WithLabelValues(target).Inc()
		return
	case result.Filtered:
		c.filtered.WithLabelValues(target, result.FilterReason).Inc()
	default:
		c.hits.WithLabelValues(target, strconv.Itoa(result.StatusCode)).Inc()
	}
	if result.Duration > 0 {
		c.latency.WithLabelValues(target).Observe(result.Duration.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve starts a metrics server on addr and returns the bound address.
// Listening errors are returned synchronously.
func (c *Collector) Serve(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listening on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	c.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() { _ = c.server.Serve(ln) }()
	return ln.Addr().String(), nil
}

// Close shuts the metrics server down if it was started.
func (c *Collector) Close(ctx context.Context) error {
	if c.server == nil {
		return nil
	}
	return c.server.Shutdown(ctx)
}

func hostLabel(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base
	}
	return u.Host
}
