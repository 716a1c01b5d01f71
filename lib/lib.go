// Package lib provides extraction of ibdl archives.
// This package re-exports the functionality from the core package.
package lib

import (
	"github.com/tylerwhall/hpbdl/pkg/core"
)

// Constants for archive format re-exported from core
const (
	OuterMagic   = core.OuterMagic
	PackageMagic = core.PackageMagic
)

// Errors re-exported from core
var (
	ErrInvalidMagic       = core.ErrInvalidMagic
	ErrCorruptOffsetTable = core.ErrCorruptOffsetTable
	ErrTruncatedInput     = core.ErrTruncatedInput
	ErrMalformedString    = core.ErrMalformedString
	ErrIO                 = core.ErrIO
)

// OffsetTableEntry re-exported from core
type OffsetTableEntry = core.OffsetTableEntry

// FileEntry re-exported from core
type FileEntry = core.FileEntry

// Extract is a wrapper around core.Extract
func Extract(input, outputDir string) error {
	return core.Extract(input, outputDir)
}
