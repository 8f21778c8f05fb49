package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}

func TestLoggerForWorld(t *testing.T) {
	t.Setenv(LevelEnv, "DEBUG")

	var buf bytes.Buffer
	l := New(&buf).ForWorld("billiard")
	l.Debug("evicted", "count", 3)
	l.Error(context.Background(), "failed", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"scenario=billiard", "count=3", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not enable any level")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "ctx") != nil {
		t.Error("expected nil for nil error")
	}

	base := errors.New("base")
	err := WrapError(base, "loading %s", "cfg.yaml")
	if !errors.Is(err, base) {
		t.Error("wrapped error lost its cause")
	}
	if err.Error() != "loading cfg.yaml: base" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
