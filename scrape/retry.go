package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/docagent"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// retryable reports whether a failed fetch may succeed on another attempt.
// Missing pages and malformed URLs never do.
func retryable(err error) bool {
	switch docagent.ErrorCode(err) {
	case docagent.ENOTFOUND, docagent.EINVALID:
		return false
	}
	return true
}

// fetchWithRetry calls fetch until it succeeds, fails permanently, or
// len(delays)+1 attempts have been made. onRetry, if set, is called before
// each wait.
func fetchWithRetry(
	ctx context.Context,
	url string,
	fetch func(ctx context.Context, url string) (string, error),
	delays []time.Duration,
	onRetry func(attempt int, err error),
) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if attempt == len(delays) || !retryable(err) {
			break
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "", lastErr
}
