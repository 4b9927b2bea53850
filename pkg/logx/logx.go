// Package logx builds the structured logger used by the command layer.
package logx

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a JSON slog logger at the given level. Supported levels:
// "debug", "info", "warn", "error"; anything else falls back to "info".
func New(w io.Writer, level string) *slog.Logger {
	var slevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slevel = slog.LevelDebug
	case "info":
		slevel = slog.LevelInfo
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slevel})
	return slog.New(handler)
}
