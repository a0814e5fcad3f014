package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/mock"
	dalog "github.com/fwojciec/docagent/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCache(t *testing.T) {
	t.Parallel()

	fp := docagent.NewFingerprint(&docagent.Request{Model: "m", Content: "c", MaxTokens: 1})
	debug := &slog.HandlerOptions{Level: slog.LevelDebug}

	t.Run("logs hit on get", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ResponseCache{
			GetFn: func(ctx context.Context, got docagent.Fingerprint) (string, bool, error) {
				assert.Equal(t, fp, got)
				return "cached", true, nil
			},
		}

		cache := dalog.NewLoggingCache(inner, slog.New(slog.NewTextHandler(&buf, debug)))
		text, ok, err := cache.Get(context.Background(), fp)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "cached", text)
		assert.Contains(t, buf.String(), `msg="cache get"`)
		assert.Contains(t, buf.String(), "hit=true")
		assert.Contains(t, buf.String(), "fingerprint="+fp.String())
	})

	t.Run("logs put size and error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ResponseCache{
			PutFn: func(ctx context.Context, fp docagent.Fingerprint, text string) error {
				return errors.New("disk full")
			},
		}

		cache := dalog.NewLoggingCache(inner, slog.New(slog.NewTextHandler(&buf, debug)))
		err := cache.Put(context.Background(), fp, "response")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `msg="cache put"`)
		assert.Contains(t, buf.String(), "bytes=8")
		assert.Contains(t, buf.String(), `err="disk full"`)
	})

	t.Run("stays quiet at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ResponseCache{
			GetFn: func(ctx context.Context, fp docagent.Fingerprint) (string, bool, error) {
				return "", false, nil
			},
		}

		cache := dalog.NewLoggingCache(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, _, err := cache.Get(context.Background(), fp)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
