// Package reqparse reads raw HTTP requests such as Burp Suite exports.
package reqparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"net/url"
	"os"
	"strings"
)

// skipped headers belong to the captured connection, not the session.
var skipped = map[string]bool{
	"Host":            true,
	"Content-Length":  true,
	"Accept-Encoding": true,
	"Connection":      true,
}

// Request is the part of a captured request that a scan reuses.
type Request struct {
	Method string
	// BaseURL is the scheme, host and directory of the request target,
	// always ending in "/".
	BaseURL string
	Headers map[string]string
}

// ParseFile reads a raw HTTP request from path.
func ParseFile(path string) (*Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening request file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a request line and header block from r. The body, if any,
// is ignored. HTTP/2 request lines are accepted.
func Parse(r io.Reader) (*Request, error) {
	tp := textproto.NewReader(bufio.NewReaderSize(r, 1<<20))

	line, err := tp.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("request file is empty")
		}
		return nil, fmt.Errorf("reading request line: %w", err)
	}
	method, rest, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok {
		return nil, fmt.Errorf("invalid request line: %q", line)
	}
	target, _, _ := strings.Cut(rest, " ")

	hdr, err := tp.ReadMIMEHeader()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading headers: %w", err)
	}

	base, err := baseURL(target, hdr.Get("Host"))
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(hdr))
	for key, vals := range hdr {
		if skipped[key] || len(vals) == 0 {
			continue
		}
		headers[key] = strings.Join(vals, ", ")
	}
	return &Request{Method: method, BaseURL: base, Headers: headers}, nil
}

// baseURL resolves the request target against Host. Exports rarely say
// whether TLS was used, so https is assumed unless the port is 80.
func baseURL(target, host string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid request target %q: %w", target, err)
	}
	if u.Host == "" {
		if host == "" {
			return "", fmt.Errorf("request file missing Host header")
		}
		u.Host = host
		u.Scheme = "https"
		if strings.HasSuffix(host, ":80") {
			u.Scheme = "http"
		}
	}

	dir := u.Path
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}
	return u.Scheme + "://" + u.Host + dir, nil
}
