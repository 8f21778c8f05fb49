// Package logging provides structured logging for worldsim. It wraps the
// standard slog package with an environment-controlled level and a few
// helpers for tagging records with a world and tick.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv selects the minimum level: DEBUG, INFO, WARN or ERROR.
const LevelEnv = "WORLDSIM_LOG_LEVEL"

// Logger wraps slog.Logger with application-specific helpers.
type Logger struct {
	*slog.Logger
}

// New returns a text logger writing to w at the level taken from LevelEnv.
func New(w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: LevelFromEnv(),
	})
	return &Logger{slog.New(handler)}
}

// NewJSON returns a JSON logger, used when output is consumed by tools.
func NewJSON(w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: LevelFromEnv(),
	})
	return &Logger{slog.New(handler)}
}

// Default logs to stderr.
func Default() *Logger {
	return New(os.Stderr)
}

// Discard drops every record. It is the library default.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// ForWorld tags records with the scenario name.
func (l *Logger) ForWorld(scenario string) *Logger {
	return l.With("scenario", scenario)
}

// Error logs err under the "error" key.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Log(ctx, slog.LevelError, msg, args...)
}

// LevelFromEnv parses LevelEnv, defaulting to INFO.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
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

// WrapError adds context to err, returning nil for a nil err.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
