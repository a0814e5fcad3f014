package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

// Compile-time interface verification.
var (
	_ docagent.Transport     = (*Transport)(nil)
	_ docagent.Caller        = (*Caller)(nil)
	_ docagent.ResponseCache = (*ResponseCache)(nil)
	_ docagent.TokenCounter  = (*TokenCounter)(nil)
)

// Transport is a mock implementation of docagent.Transport.
type Transport struct {
	SendFn func(ctx context.Context, req *docagent.Request) (*docagent.Response, error)
}

func (t *Transport) Send(ctx context.Context, req *docagent.Request) (*docagent.Response, error) {
	return t.SendFn(ctx, req)
}

// Caller is a mock implementation of docagent.Caller.
type Caller struct {
	CallFn func(ctx context.Context, req *docagent.Request) (string, error)
}

func (c *Caller) Call(ctx context.Context, req *docagent.Request) (string, error) {
	return c.CallFn(ctx, req)
}

// ResponseCache is a mock implementation of docagent.ResponseCache.
type ResponseCache struct {
	GetFn func(ctx context.Context, fp docagent.Fingerprint) (string, bool, error)
	PutFn func(ctx context.Context, fp docagent.Fingerprint, text string) error
}

func (c *ResponseCache) Get(ctx context.Context, fp docagent.Fingerprint) (string, bool, error) {
	return c.GetFn(ctx, fp)
}

func (c *ResponseCache) Put(ctx context.Context, fp docagent.Fingerprint, text string) error {
	return c.PutFn(ctx, fp, text)
}

// TokenCounter is a mock implementation of docagent.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
