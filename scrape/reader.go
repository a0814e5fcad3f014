// Package scrape turns documentation URLs into pages a model can read.
// It composes a Fetcher, an optional content Extractor, a markdown
// Converter and a LinkSelector behind the docagent.PageReader interface.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/docagent"
)

// Ensure Reader implements docagent.PageReader at compile time.
var _ docagent.PageReader = (*Reader)(nil)

// Reader fetches and converts documentation pages.
// Fetcher and Converter are required; every other field is optional.
type Reader struct {
	Fetcher   docagent.Fetcher
	Converter docagent.Converter

	// Extractor strips boilerplate before conversion. When it fails,
	// the whole page is converted instead.
	Extractor docagent.Extractor

	// Links discovers navigation links on the raw page.
	Links docagent.LinkSelector

	// Title derives a page title when the extractor gives none.
	Title func(html string) string

	RateLimiter docagent.DomainLimiter

	// RetryDelays defaults to DefaultRetryDelays. An empty non-nil slice
	// disables retries.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// ReadPage fetches url and converts it to a Page.
// Returns EINVALID for URLs without a host; fetch errors keep their codes.
func (r *Reader) ReadPage(ctx context.Context, rawURL string) (*docagent.Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "invalid page URL %q", rawURL)
	}

	logger := r.logger().With("url", rawURL)

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := fetchWithRetry(ctx, rawURL, r.Fetcher.Fetch, delays, func(attempt int, err error) {
		logger.Warn("retrying fetch", "attempt", attempt, "err", err)
	})
	if err != nil {
		return nil, err
	}

	page := &docagent.Page{URL: rawURL}
	content := html

	if r.Extractor != nil {
		result, err := r.Extractor.Extract(html)
		if err != nil {
			logger.Debug("extraction failed, converting whole page", "err", err)
		} else {
			content = result.ContentHTML
			page.Title = result.Title
		}
	}
	if page.Title == "" && r.Title != nil {
		page.Title = r.Title(html)
	}

	page.Content, err = r.Converter.Convert(content, rawURL)
	if err != nil {
		return nil, err
	}

	if r.Links != nil {
		links, err := r.Links.ExtractLinks(html, rawURL)
		if err != nil {
			logger.Debug("link extraction failed", "err", err)
		}
		page.Links = links
	}

	return page, nil
}

func (r *Reader) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
