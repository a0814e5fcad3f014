package mock

import "github.com/fwojciec/docagent"

var _ docagent.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of docagent.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]docagent.DiscoveredLink, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]docagent.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}
