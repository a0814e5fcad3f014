package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

// Ensure LoggingCache implements docagent.ResponseCache.
var _ docagent.ResponseCache = (*LoggingCache)(nil)

// LoggingCache wraps a ResponseCache with debug logging.
type LoggingCache struct {
	next   docagent.ResponseCache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next docagent.ResponseCache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get logs whether the fingerprint was a hit.
func (c *LoggingCache) Get(ctx context.Context, fp docagent.Fingerprint) (text string, ok bool, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache get",
			"fingerprint", fp.String(),
			"hit", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Get(ctx, fp)
}

// Put logs the stored response size.
func (c *LoggingCache) Put(ctx context.Context, fp docagent.Fingerprint, text string) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache put",
			"fingerprint", fp.String(),
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Put(ctx, fp, text)
}
