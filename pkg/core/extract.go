package core

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/tylerwhall/hpbdl/pkg/logger"
	"github.com/tylerwhall/hpbdl/pkg/progress"
)

// Extractor writes the leaf files of an ibdl archive into Fs.
type Extractor struct {
	Fs       afero.Fs
	Progress *progress.Tracker
}

// NewExtractor returns an Extractor writing into fs.
func NewExtractor(fs afero.Fs) *Extractor {
	return &Extractor{Fs: fs, Progress: progress.NewTracker()}
}

// Extract opens the archive at input and extracts every package into
// outputDir. Paths inside the archive cannot escape outputDir.
func Extract(input, outputDir string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("%w: open input: %w", ErrIO, err)
	}
	defer f.Close()

	root, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("%w: resolve output dir: %w", ErrIO, err)
	}

	// The root is created on the first package directory, so an input that
	// fails validation leaves nothing behind.
	e := NewExtractor(afero.NewBasePathFs(afero.NewOsFs(), root))
	return e.Extract(f)
}

// Extract reads the offset table from rs and walks every package it lists.
func (e *Extractor) Extract(rs io.ReadSeeker) error {
	table, err := ReadOffsetTable(rs)
	if err != nil {
		return err
	}

	startTime := time.Now()
	for i, entry := range table {
		if _, err := rs.Seek(int64(entry.Start), io.SeekStart); err != nil {
			return fmt.Errorf("%w: seek package %d: %w", ErrIO, i, err)
		}
		if _, err := e.SplitPackage(rs, i); err != nil {
			return fmt.Errorf("package %d: %w", i, err)
		}
	}

	logger.Info("Extraction complete",
		"packages", len(table),
		"files", e.tracker().Files(),
		"size", progress.FormatSize(e.tracker().Bytes()),
		"elapsed", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// readPackageHeader reads the header of the package starting at start.
// ok is false when the magic does not match.
func readPackageHeader(rs io.ReadSeeker, start int64) (hdr PackageHeader, ok bool, err error) {
	if hdr.Magic, err = readMagic(rs); err != nil {
		return hdr, false, err
	}
	if string(hdr.Magic[:]) != PackageMagic {
		return hdr, false, nil
	}

	if _, err := rs.Seek(start+PackageNameOffset, io.SeekStart); err != nil {
		return hdr, false, fmt.Errorf("%w: seek package name: %w", ErrIO, err)
	}
	if hdr.Name, err = ReadString(rs); err != nil {
		return hdr, false, fmt.Errorf("package name: %w", err)
	}
	hdr.FileTableStart = FileTableOffset
	return hdr, true, nil
}

// SplitPackage extracts every file of the package at the current position
// into "<name>.ipk". A package with the wrong magic is logged and skipped.
// index is only used in log messages. It returns the number of files written.
func (e *Extractor) SplitPackage(rs io.ReadSeeker, index int) (int, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: locate package: %w", ErrIO, err)
	}

	hdr, ok, err := readPackageHeader(rs, start)
	if err != nil {
		return 0, err
	}
	if !ok {
		logger.Warn("Package magic invalid, skipping", "index", index, "magic", fmt.Sprintf("%q", hdr.Magic[:]))
		return 0, nil
	}
	logger.Info("Package", "index", index, "name", hdr.Name)

	dir := hdr.Name + ".ipk"
	if err := e.Fs.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("%w: create package dir %s: %w", ErrIO, dir, err)
	}

	tableStart := start + hdr.FileTableStart
	if _, err := rs.Seek(tableStart, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: seek file table: %w", ErrIO, err)
	}
	first, err := e.ExtractFile(rs, start, dir)
	if err != nil {
		return 0, fmt.Errorf("file 0: %w", err)
	}

	// Records are followed directly by the data of the first file, so its
	// offset closes the table.
	entries := uint64(1)
	if first.Offset >= FileTableOffset+FileRecordSize {
		entries = (first.Offset - FileTableOffset) / FileRecordSize
	} else {
		logger.Warn("First file offset inside file table, assuming one file",
			"package", hdr.Name, "offset", hex(first.Offset))
	}
	logger.Info("File table", "package", hdr.Name, "entries", entries)

	for i := uint64(1); i < entries; i++ {
		pos := tableStart + int64(i*FileRecordSize)
		if _, err := rs.Seek(pos, io.SeekStart); err != nil {
			return int(i), fmt.Errorf("%w: seek file record %d: %w", ErrIO, i, err)
		}
		if _, err := e.ExtractFile(rs, start, dir); err != nil {
			return int(i), fmt.Errorf("file %d: %w", i, err)
		}
	}
	return int(entries), nil
}

// ExtractFile decodes the file record at the current position and copies its
// data from pkgStart+Offset into dir/Name, replacing any existing file.
func (e *Extractor) ExtractFile(rs io.ReadSeeker, pkgStart int64, dir string) (FileEntry, error) {
	entry, err := ReadFileEntry(rs)
	if err != nil {
		return entry, err
	}
	logger.Debug("File", "name", entry.Name, "offset", hex(entry.Offset),
		"size", hex(entry.Size), "trailer", fmt.Sprintf("0x%08x", entry.Trailer))

	if entry.Offset > uint64(math.MaxInt64-pkgStart) || entry.Size > math.MaxInt64 {
		return entry, fmt.Errorf("%w: %s: offset %s size %s out of range",
			ErrCorruptOffsetTable, entry.Name, hex(entry.Offset), hex(entry.Size))
	}

	if !filepath.IsLocal(entry.Name) {
		return entry, fmt.Errorf("%w: %s: name leaves package directory %s", ErrIO, entry.Name, dir)
	}
	destPath := filepath.Join(dir, entry.Name)
	if err := e.Fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return entry, fmt.Errorf("%w: create parent dir for %s: %w", ErrIO, destPath, err)
	}
	out, err := e.Fs.Create(destPath)
	if err != nil {
		return entry, fmt.Errorf("%w: create %s: %w", ErrIO, destPath, err)
	}
	defer out.Close()

	if _, err := rs.Seek(pkgStart+int64(entry.Offset), io.SeekStart); err != nil {
		return entry, fmt.Errorf("%w: seek data of %s: %w", ErrIO, destPath, err)
	}

	pw := &progress.Writer{W: out, Tracker: e.tracker()}
	n, err := io.CopyN(pw, rs, int64(entry.Size))
	if err != nil {
		return entry, fmt.Errorf("%w: copy %s: expected %d bytes, got %d: %w", ErrIO, destPath, entry.Size, n, err)
	}
	if err := out.Close(); err != nil {
		return entry, fmt.Errorf("%w: close %s: %w", ErrIO, destPath, err)
	}
	e.tracker().FileDone()
	return entry, nil
}

func (e *Extractor) tracker() *progress.Tracker {
	if e.Progress == nil {
		e.Progress = progress.NewTracker()
	}
	return e.Progress
}
