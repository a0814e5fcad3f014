package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

var _ docagent.Questioner = (*Questioner)(nil)

// Questioner is a mock implementation of docagent.Questioner.
type Questioner struct {
	AskFn func(ctx context.Context, question string) (string, error)
}

func (q *Questioner) Ask(ctx context.Context, question string) (string, error) {
	return q.AskFn(ctx, question)
}
