package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

// Ensure LoggingTransport implements docagent.Transport.
var _ docagent.Transport = (*LoggingTransport)(nil)

// LoggingTransport wraps a Transport with logging. It sits below the
// cache, so only real provider round trips are logged.
type LoggingTransport struct {
	next   docagent.Transport
	logger *slog.Logger
}

// NewLoggingTransport creates a new LoggingTransport.
func NewLoggingTransport(next docagent.Transport, logger *slog.Logger) *LoggingTransport {
	return &LoggingTransport{next: next, logger: logger}
}

// Send logs the model, request size and error code of each round trip.
func (t *LoggingTransport) Send(ctx context.Context, req *docagent.Request) (resp *docagent.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"model", req.Model,
			"bytes", len(req.Content),
			"duration", time.Since(begin),
		}
		if resp != nil {
			attrs = append(attrs, "parts", len(resp.Parts))
		}
		if err != nil {
			attrs = append(attrs, "code", docagent.ErrorCode(err), "err", err)
		}
		t.logger.Info("llm call", attrs...)
	}(time.Now())
	return t.next.Send(ctx, req)
}
