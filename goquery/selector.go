package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docagent"
)

var _ docagent.LinkSelector = (*LinkSelector)(nil)

// SphinxConfigs covers the ReadTheDocs theme (.wy-nav-side,
// .wy-menu-vertical), the classic theme (.sphinxsidebar) and the toctree
// directives rendered into page bodies.
var SphinxConfigs = []SelectorConfig{
	{".toctree-wrapper a[href]", docagent.PriorityTOC, "toc"},
	{"#localtoc a[href]", docagent.PriorityTOC, "toc"},
	{".wy-nav-side a[href]", docagent.PriorityNavigation, "nav"},
	{".wy-menu-vertical a[href]", docagent.PriorityNavigation, "nav"},
	{".sphinxsidebar a[href]", docagent.PriorityNavigation, "nav"},
	{".rst-footer-buttons a[href]", docagent.PriorityNavigation, "nav"},
	{".document a[href]", docagent.PriorityContent, "content"},
	{".body a[href]", docagent.PriorityContent, "content"},
}

// GenericConfigs uses markup common to most documentation generators.
var GenericConfigs = []SelectorConfig{
	{".toc a[href]", docagent.PriorityTOC, "toc"},
	{".table-of-contents a[href]", docagent.PriorityTOC, "toc"},
	{"nav a[href]", docagent.PriorityNavigation, "nav"},
	{"[role=\"navigation\"] a[href]", docagent.PriorityNavigation, "nav"},
	{"main a[href]", docagent.PriorityContent, "content"},
	{"article a[href]", docagent.PriorityContent, "content"},
	{"footer a[href]", docagent.PriorityFooter, "footer"},
}

// LinkSelector implements docagent.LinkSelector for ReadTheDocs and other
// Sphinx sites, falling back to generic selectors for anything else.
type LinkSelector struct {
	configs []SelectorConfig
}

// NewLinkSelector creates a LinkSelector.
func NewLinkSelector() *LinkSelector {
	configs := make([]SelectorConfig, 0, len(SphinxConfigs)+len(GenericConfigs))
	configs = append(configs, SphinxConfigs...)
	configs = append(configs, GenericConfigs...)
	return &LinkSelector{configs: configs}
}

// ExtractLinks parses HTML and returns discovered links with priority.
func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]docagent.DiscoveredLink, error) {
	return ExtractLinks(html, baseURL, s.configs)
}

// Title returns the page title: the first h1 when present, otherwise the
// <title> element with a trailing site name suffix removed.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if h1 := strings.Join(strings.Fields(doc.Find("h1").First().Text()), " "); h1 != "" {
		return strings.TrimSuffix(h1, "¶")
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	for _, sep := range []string{" — ", " | ", " - "} {
		if i := strings.Index(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return title
}
