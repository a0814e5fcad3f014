// Package trafilatura strips boilerplate from documentation pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docagent"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docagent.Extractor at compile time.
var _ docagent.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Links are kept in the content so the agent can still navigate from it.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			IncludeLinks:    true,
			ExcludeComments: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
// Returns ENOTFOUND when no main content can be identified.
func (e *Extractor) Extract(rawHTML string) (*docagent.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "no main content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &docagent.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
