package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a structured JSON logger using slog.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout, slog.LevelInfo)
}

// NewWithWriter returns a JSON logger writing to w at the given level.
// The CLI logs to stderr so stdout stays machine readable.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "govos")
}
