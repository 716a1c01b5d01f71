package core

import "errors"

// Constants for the ibdl container format
const (
	OuterMagic   = "ibdl" // Magic number of the outer archive
	PackageMagic = "ipkg" // Magic number of every nested package

	OffsetTableStart     = 0x929 // Absolute start of the outer offset table
	OffsetTableEntrySize = 16    // start + size, both u64

	StringSize        = 0x100 // Fixed-width, nul-terminated name field
	PackageNameOffset = 0x220 // Package name, relative to package start
	FileTableOffset   = 0x43d // File table, relative to package start

	// FileRecordSize is one file table record: name, offset, size and trailer.
	FileRecordSize = StringSize + 8 + 8 + 4
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrCorruptOffsetTable = errors.New("corrupt offset table")
	ErrTruncatedInput     = errors.New("truncated input")
	ErrMalformedString    = errors.New("malformed string")
	ErrIO                 = errors.New("i/o error")
)

// OffsetTableEntry locates one package inside the outer archive
type OffsetTableEntry struct {
	Start uint64 // Absolute offset of the package
	Size  uint64 // Recorded length, informational only
}

// PackageHeader is the fixed-layout head of an ipkg block
type PackageHeader struct {
	Magic          [4]byte
	Name           string
	FileTableStart int64 // Relative to package start; fixed at FileTableOffset in this layout
}

// FileEntry is one record of a package's file table
type FileEntry struct {
	Name    string
	Offset  uint64 // Relative to the enclosing package start
	Size    uint64
	Trailer uint32 // Unconfirmed meaning, possibly a checksum; not validated
}
