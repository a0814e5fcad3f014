package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

var _ docagent.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docagent.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *docagent.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docagent.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
