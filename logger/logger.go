// Package logger builds the slog loggers handed to wasserstein.Options and
// used by the command-line tool.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Default is the process-wide logger used by the command-line tool. Solvers
// never read it; they log only through Options.Logger.
var Default = New("info", os.Stderr)

// ParseLevel maps debug|info|warn|warning|error (any case) to a slog.Level.
// Unknown names fall back to info, matching New.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a JSON logger with the given level and output.
func New(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewText creates a text-formatted logger (useful for development).
func NewText(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewFormat picks New or NewText by name ("json" or "text").
func NewFormat(format, level string, output io.Writer) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return New(level, output), nil
	case "text":
		return NewText(level, output), nil
	default:
		return nil, fmt.Errorf("logger: unknown format %q (must be json or text)", format)
	}
}

// SetDefault replaces Default and the slog package default.
func SetDefault(l *slog.Logger) {
	Default = l
	slog.SetDefault(l)
}

// With returns Default with additional attributes.
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}
