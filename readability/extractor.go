// Package readability strips boilerplate from documentation pages with
// go-readability. It is the lighter alternative to package trafilatura.
package readability

import (
	"strings"

	"github.com/fwojciec/docagent"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docagent.Extractor at compile time.
var _ docagent.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Returns ENOTFOUND when readability finds no article.
func (e *Extractor) Extract(rawHTML string) (*docagent.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "no main content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "no main content")
	}

	return &docagent.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
