// Package slog decorates docagent services with structured logging.
// Each decorator logs one line per operation, carrying its duration and
// any error, and delegates to the wrapped service unchanged.
package slog
