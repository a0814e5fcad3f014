package llm

import (
	"context"
	"time"

	"github.com/fwojciec/docagent"
)

// MaxAttempts is the number of times a rate-limited request is sent
// before giving up.
const MaxAttempts = 5

// BackoffDelays returns the waits between attempts for exponential backoff
// starting at base and doubling up to limit. attempts includes the first try,
// so the result holds attempts-1 delays.
func BackoffDelays(attempts int, base, limit time.Duration) []time.Duration {
	if attempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, 0, attempts-1)
	d := base
	for i := 0; i < attempts-1; i++ {
		delays = append(delays, min(d, limit))
		d *= 2
	}
	return delays
}

// DefaultRetryDelays returns the backoff delays for rate-limited calls:
// 1s, 2s, 4s, 8s.
func DefaultRetryDelays() []time.Duration {
	return BackoffDelays(MaxAttempts, 1*time.Second, 10*time.Second)
}

// sendWithRetry sends req, retrying only rate-limit failures with the given
// delays. Other failures are returned on the spot.
func sendWithRetry(ctx context.Context, t docagent.Transport, req *docagent.Request, delays []time.Duration, onRetry func(attempt int, err error)) (*docagent.Response, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := t.Send(ctx, req)
		if err == nil {
			return resp, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if docagent.ErrorCode(err) != docagent.ERATELIMIT {
			return nil, upstream(err)
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, docagent.Errorf(docagent.EEXHAUSTED, "rate limited after %d attempts: %s", maxAttempts, docagent.ErrorMessage(lastErr))
}

// upstream keeps application errors as they are and wraps anything else
// as EUPSTREAM.
func upstream(err error) error {
	if docagent.ErrorCode(err) != docagent.EINTERNAL {
		return err
	}
	return docagent.Errorf(docagent.EUPSTREAM, "%v", err)
}
