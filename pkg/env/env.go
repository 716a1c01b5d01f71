// Package env consolidates all environment variable reading for the application.
package env

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names (single source of truth)
const (
	LOGLevel  = "LOG_LEVEL"
	OutputDir = "IBDL_OUTPUT_DIR"
)

// Load reads a .env file from the working directory into the process
// environment. Variables already set are left alone.
func Load() error {
	return godotenv.Load()
}

// LogLevel returns LOG_LEVEL with default "INFO".
func LogLevel() string {
	if v := os.Getenv(LOGLevel); v != "" {
		return v
	}
	return "INFO"
}

// Output returns IBDL_OUTPUT_DIR with default ".", the working directory.
func Output() string {
	if v := os.Getenv(OutputDir); v != "" {
		return v
	}
	return "."
}
