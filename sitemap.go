package docagent

import (
	"context"
	"regexp"
)

// SitemapService lists the pages of a documentation site so the agent can
// see pages its start page does not link to.
type SitemapService interface {
	// DiscoverURLs returns the pages below baseURL's path. The sitemap.xml
	// next to baseURL is tried first, then robots.txt Sitemap lines, then
	// the site root. Indexes are followed.
	//
	// A nil filter keeps every URL below baseURL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns: when set, a URL must match at least one.
	Include []*regexp.Regexp

	// Exclude patterns are applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// CompileURLFilter builds a filter from include patterns.
// Returns nil when no pattern is given.
func CompileURLFilter(include []string) (*URLFilter, error) {
	if len(include) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		f.Include = append(f.Include, re)
	}
	return f, nil
}
