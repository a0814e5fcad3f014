package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

var _ docagent.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch. Failed fetches are logged at warn
// level with their error code since the agent carries on without the page.
type LoggingFetcher struct {
	next   docagent.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next docagent.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("page fetch",
				"url", url,
				"duration", time.Since(begin),
				"code", docagent.ErrorCode(err),
				"err", err,
			)
			return
		}
		f.logger.Info("page fetch", "url", url, "bytes", len(html), "duration", time.Since(begin))
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
