// Package log provides structured logging for the sfind CLI and library.
//
// Logs always go to a side channel (stderr by default) because stdout
// carries the JSON data stream.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sourcefield/sfind/internal/config"
)

// New creates a slog.Logger from the application configuration,
// writing to stderr.
func New(cfg config.AppConfig) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
}

// NewWithWriter creates a slog.Logger that writes to w.
func NewWithWriter(w io.Writer, format config.LogFormat, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = newTerminalHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a level name into a slog.Level. Unknown names
// default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
