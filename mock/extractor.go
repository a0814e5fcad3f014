package mock

import "github.com/fwojciec/docagent"

var _ docagent.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docagent.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docagent.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docagent.ExtractResult, error) {
	return e.ExtractFn(html)
}
