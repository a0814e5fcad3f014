// Package http implements page fetching and sitemap discovery over plain
// HTTP, for static documentation sites such as ReadTheDocs.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docagent"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies docagent to documentation hosts.
const DefaultUserAgent = "docagent/1.0 (+https://github.com/fwojciec/docagent)"

// maxBodySize caps how much of a page is read.
const maxBodySize = 10 << 20

// Ensure Fetcher implements docagent.Fetcher at compile time.
var _ docagent.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Returns ENOTFOUND for 404 and 410 responses, ERATELIMIT for 429 and
// EUPSTREAM for any other non-200 status.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docagent.Errorf(docagent.EINVALID, "invalid url %q", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// statusError maps a non-200 status to an application error.
func statusError(status int, url string) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return docagent.Errorf(docagent.ENOTFOUND, "HTTP %d for %s", status, url)
	case status == http.StatusTooManyRequests:
		return docagent.Errorf(docagent.ERATELIMIT, "HTTP %d for %s", status, url)
	default:
		return docagent.Errorf(docagent.EUPSTREAM, "HTTP %d for %s", status, url)
	}
}
