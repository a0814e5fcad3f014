package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docagent"
)

// Ensure SitemapService implements docagent.SitemapService.
var _ docagent.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from documentation sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds the pages listed in a documentation sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
//
// Sphinx sites built with sphinx-sitemap publish sitemap.xml next to the
// docs root (e.g. /en/latest/sitemap.xml), while the host-level sitemap of
// ReadTheDocs only lists versions. The docs-level sitemap is therefore tried
// first, then robots.txt, then /sitemap.xml. Only URLs under the path of
// baseURL are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docagent.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "invalid base URL %q", baseURL)
	}

	sitemapURLs, err := s.findSitemapURLs(ctx, base)
	if err != nil {
		return nil, err
	}

	prefix := pathPrefix(base.Path)
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	urls := []string{}

	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] || !matchesPathPrefix(u, prefix) || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// pathPrefix returns the directory of a base path, always ending in "/".
func pathPrefix(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i+1]
	}
	return "/"
}

// matchesPathPrefix checks if a URL's path lies under prefix.
func matchesPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsed.Path, prefix)
}

// findSitemapURLs returns the first sitemap source that yields results.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	candidates := []*url.URL{
		base.ResolveReference(&url.URL{Path: pathPrefix(base.Path) + "sitemap.xml"}),
	}

	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String()); err == nil && len(sitemaps) > 0 {
		for _, sm := range sitemaps {
			if u, err := url.Parse(sm); err == nil {
				candidates = append(candidates, u)
			}
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	candidates = append(candidates, base.ResolveReference(&url.URL{Path: "/sitemap.xml"}))

	var found []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		u := c.String()
		if seen[u] {
			continue
		}
		seen[u] = true

		exists, err := s.urlExists(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if exists {
			found = append(found, u)
		}
	}
	return found, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if sitemapURL := strings.TrimSpace(line[len("sitemap:"):]); sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docagent.Errorf(docagent.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}

	var urls []string
	for _, child := range locs(root, "sitemap") {
		found, err := s.processSitemap(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// locs returns the non-empty <loc> values of root's tag children.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "invalid url %q", targetURL)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if err := statusError(resp.StatusCode, targetURL); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, docagent.Errorf(docagent.EINVALID, "invalid url %q", targetURL)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
