package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tylerwhall/hpbdl/lib"
	"github.com/tylerwhall/hpbdl/pkg/env"
	"github.com/tylerwhall/hpbdl/pkg/logger"
)

func main() {
	if len(os.Args) != 2 {
		printUsage()
		os.Exit(1)
	}

	if err := env.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Failed to load .env file:", err)
	}
	logger.Init(env.LogLevel())

	input := os.Args[1]
	outputDir := env.Output()
	logger.Info("Extracting", "input", input, "output", outputDir)

	if err := lib.Extract(input, outputDir); err != nil {
		logger.Fatal("Extraction failed", "input", input, "err", err)
	}
}

// printUsage prints the command-line usage information
func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  ./hpbdl input.ibdl")
}
