// Package llm provides the memoizing model client. It consults a response
// cache before every call and retries rate-limited requests with bounded
// exponential backoff.
package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

var _ docagent.Caller = (*Client)(nil)

// Client implements docagent.Caller on top of a Transport and a ResponseCache.
// Every cache miss costs exactly one successful round trip; every hit costs none.
type Client struct {
	transport docagent.Transport
	cache     docagent.ResponseCache
	delays    []time.Duration
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRetryDelays sets the waits between rate-limited attempts.
// The number of attempts is len(delays)+1.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.delays = delays
	}
}

// WithLogger sets the logger that reports retries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client sending requests through transport and
// memoizing responses in cache.
func NewClient(transport docagent.Transport, cache docagent.ResponseCache, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		cache:     cache,
		delays:    DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call returns the model's text for req, from the cache when possible.
func (c *Client) Call(ctx context.Context, req *docagent.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	fp := docagent.NewFingerprint(req)
	if text, ok, err := c.cache.Get(ctx, fp); err != nil {
		return "", err
	} else if ok {
		return text, nil
	}

	resp, err := sendWithRetry(ctx, c.transport, req, c.delays, c.logRetry)
	if err != nil {
		return "", err
	}

	if len(resp.Parts) != 1 {
		return "", docagent.Errorf(docagent.EMALFORMEDRESPONSE, "expected exactly one response part, got %d", len(resp.Parts))
	}
	text := resp.Parts[0]

	if err := c.cache.Put(ctx, fp, text); err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) logRetry(attempt int, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("rate limited, retrying", "attempt", attempt, "err", docagent.ErrorMessage(err))
}
