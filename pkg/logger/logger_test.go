package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWriterFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "WARN")
	defer InitWriter(&bytes.Buffer{}, "INFO")

	Info("hidden")
	Warn("shown", "index", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at WARN level: %q", out)
	}
	if !strings.Contains(out, `msg=shown`) || !strings.Contains(out, "index=3") {
		t.Errorf("warn record missing: %q", out)
	}
}
