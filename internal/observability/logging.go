// Package observability provides logging and metrics for the data core.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns the standard JSON logger for the application.
func NewLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// NopLogger returns a logger that discards everything, for tests and
// embedders that bring their own logging.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
