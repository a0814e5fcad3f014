// Package goquery discovers navigation links and titles in documentation
// HTML using goquery selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docagent"
)

// SelectorConfig defines a CSS selector with its priority and source label.
type SelectorConfig struct {
	Selector string
	Priority docagent.LinkPriority
	Source   string
}

// ExtractLinks extracts same-host links from HTML using configs in order,
// then from any anchor under the base URL's directory with PriorityFallback.
// Links are deduplicated by URL, keeping the highest priority version, and
// returned in order of first occurrence.
func ExtractLinks(html string, baseURL string, configs []SelectorConfig) ([]docagent.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "failed to parse HTML: %v", err)
	}

	c := &collector{base: base, seen: make(map[string]int)}
	for _, config := range configs {
		doc.Find(config.Selector).Each(func(_ int, sel *goquery.Selection) {
			c.add(sel, config.Priority, config.Source, "")
		})
	}

	// Sites with non-semantic markup still get their links discovered.
	// Links already found above keep their higher priority.
	prefix := basePrefix(base.Path)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		c.add(sel, docagent.PriorityFallback, "fallback", prefix)
	})

	return c.links, nil
}

type collector struct {
	base  *url.URL
	seen  map[string]int
	links []docagent.DiscoveredLink
}

// add records the anchor in sel when it points to the same host and, when
// prefix is set, to a path under prefix.
func (c *collector) add(sel *goquery.Selection, priority docagent.LinkPriority, source, prefix string) {
	href, exists := sel.Attr("href")
	if !exists || href == "" || isNonHTTPLink(href) {
		return
	}

	resolved := resolveURL(c.base, href)
	if resolved == nil || resolved.Host != c.base.Host {
		return
	}
	if prefix != "" && !strings.HasPrefix(resolved.Path, prefix) {
		return
	}

	link := docagent.DiscoveredLink{
		URL:      resolved.String(),
		Priority: priority,
		Text:     strings.Join(strings.Fields(sel.Text()), " "),
		Source:   source,
	}

	if idx, ok := c.seen[link.URL]; ok {
		if priority > c.links[idx].Priority {
			c.links[idx] = link
		}
		return
	}
	c.seen[link.URL] = len(c.links)
	c.links = append(c.links, link)
}

// basePrefix returns the directory part of a page path, so links from
// /en/latest/overview/the_basics.html stay under /en/latest/overview/.
func basePrefix(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i+1]
	}
	return ""
}

// resolveURL resolves href against base with the fragment stripped.
// Returns nil if href cannot be parsed or points back at base itself.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return nil
	}
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
