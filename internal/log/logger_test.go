package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"", slog.LevelInfo, true},
		{"DEBUG", slog.LevelDebug, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("%q: unexpected err %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentEntries, Output: &buf})
	l.Info("Fuel entry created", FieldEntryID, int64(3))
	l.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "component=entries") || !strings.Contains(out, "entry_id=3") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}

	child := l.WithComponent(ComponentHTTP)
	if child.Component() != ComponentHTTP {
		t.Fatalf("expected http component, got %s", child.Component())
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard().WithComponent(ComponentCLI)
	ctx := IntoContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("expected the stored logger")
	}
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatalf("expected fallback logger")
	}
}
