package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

var _ docagent.PageReader = (*PageReader)(nil)

// PageReader is a mock implementation of docagent.PageReader.
type PageReader struct {
	ReadPageFn func(ctx context.Context, url string) (*docagent.Page, error)
}

func (r *PageReader) ReadPage(ctx context.Context, url string) (*docagent.Page, error) {
	return r.ReadPageFn(ctx, url)
}
