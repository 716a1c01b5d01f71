package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is the process-wide logger. It writes text records to stdout until
// Init is called with a level.
var Log = slog.New(slog.NewTextHandler(os.Stdout, nil))

// ParseLevel maps a LOG_LEVEL style string to a slog level, defaulting to INFO.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
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

// Init initializes the global logger writing to stdout
func Init(levelStr string) {
	InitWriter(os.Stdout, levelStr)
}

// InitWriter initializes the global logger writing to w
func InitWriter(w io.Writer, levelStr string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(levelStr)}
	Log = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(Log)
}

// Helper functions for easy access
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	Log.Error(msg, args...)
	os.Exit(1)
}
