package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

var _ docagent.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs how many pages a sitemap lookup found and
// whether a filter narrowed them.
type LoggingSitemapService struct {
	next   docagent.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next docagent.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docagent.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", baseURL,
			"pages", len(urls),
			"filtered", filter != nil,
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", docagent.ErrorCode(err), "err", err)
		}
		s.logger.Info("sitemap", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
