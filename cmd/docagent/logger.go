package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// newLogger returns a colored logger writing to w. Nil attributes are
// dropped and errors highlighted.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() != slog.KindAny {
				return a
			}
			switch a.Value.Any().(type) {
			case nil:
				return slog.Attr{}
			case error:
				return tint.Attr(9, a)
			}
			return a
		},
	}))
}
