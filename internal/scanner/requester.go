package scanner

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/maxvaer/dfuzz/internal/config"
	"github.com/maxvaer/dfuzz/pkg/version"
)

// Response holds the parts of an HTTP response the scanner classifies on.
type Response struct {
	StatusCode    int
	ContentLength int64 // bytes actually read from the body
	FinalURL      string
	Duration      time.Duration
}

// Fetcher issues one request against a fully resolved target.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (*Response, error)
}

// Requester wraps an HTTP client for content discovery. Redirects are always
// followed and every request is bounded by the configured timeout.
type Requester struct {
	client    *http.Client
	headers   map[string]string
	userAgent string
}

// NewRequester creates a Requester from the provided options.
func NewRequester(opts *config.Options) (*Requester, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	threads := config.ClampThreads(opts.Threads)

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		MaxIdleConnsPerHost: threads,
		MaxIdleConns:        threads,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "dfuzz/" + version.Version
	}

	return &Requester{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		headers:   opts.Headers,
		userAgent: ua,
	}, nil
}

// Fetch sends a GET for target and drains the body to measure its length.
func (r *Requester) Fetch(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", r.userAgent)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body for %s: %w", target, err)
	}

	return &Response{
		StatusCode:    resp.StatusCode,
		ContentLength: n,
		FinalURL:      resp.Request.URL.String(),
		Duration:      time.Since(start),
	}, nil
}
