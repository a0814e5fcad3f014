package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

var _ docagent.DocTree = (*DocTree)(nil)

// DocTree is a mock implementation of docagent.DocTree.
type DocTree struct {
	FilesFn    func(ctx context.Context) ([]*docagent.DocFile, error)
	ReadFileFn func(ctx context.Context, file *docagent.DocFile) (string, error)
}

func (t *DocTree) Files(ctx context.Context) ([]*docagent.DocFile, error) {
	return t.FilesFn(ctx)
}

func (t *DocTree) ReadFile(ctx context.Context, file *docagent.DocFile) (string, error) {
	return t.ReadFileFn(ctx, file)
}
