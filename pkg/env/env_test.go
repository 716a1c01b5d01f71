package env

import "testing"

func TestDefaults(t *testing.T) {
	t.Setenv(LOGLevel, "")
	t.Setenv(OutputDir, "")

	if got := LogLevel(); got != "INFO" {
		t.Errorf("LogLevel() = %q, want INFO", got)
	}
	if got := Output(); got != "." {
		t.Errorf("Output() = %q, want .", got)
	}
}

func TestOverrides(t *testing.T) {
	t.Setenv(LOGLevel, "DEBUG")
	t.Setenv(OutputDir, "/tmp/extract")

	if got := LogLevel(); got != "DEBUG" {
		t.Errorf("LogLevel() = %q, want DEBUG", got)
	}
	if got := Output(); got != "/tmp/extract" {
		t.Errorf("Output() = %q, want /tmp/extract", got)
	}
}
