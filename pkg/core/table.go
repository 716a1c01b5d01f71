package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/tylerwhall/hpbdl/pkg/logger"
)

// maxPrealloc bounds the table slice capacity taken from an untrusted span.
const maxPrealloc = 4096

// ReadOffsetTable validates the outer magic and reads the package offset
// table. The stream must be positioned at the start of the archive.
//
// The table has no stored count. The first entry points at the first package,
// which follows the table directly, so its start minus OffsetTableStart is the
// byte span of the table.
func ReadOffsetTable(rs io.ReadSeeker) ([]OffsetTableEntry, error) {
	magic, err := readMagic(rs)
	if err != nil {
		return nil, err
	}
	if string(magic[:]) != OuterMagic {
		return nil, fmt.Errorf("%w: %q, want %q", ErrInvalidMagic, magic[:], OuterMagic)
	}

	if _, err := rs.Seek(OffsetTableStart, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek offset table: %w", ErrIO, err)
	}

	first, err := readOffsetTableEntry(rs)
	if err != nil {
		return nil, fmt.Errorf("read first table entry: %w", err)
	}
	logger.Debug("First table entry", "start", hex(first.Start), "size", hex(first.Size))

	if first.Start <= OffsetTableStart {
		return nil, fmt.Errorf("%w: first entry start %s is not past table start %s",
			ErrCorruptOffsetTable, hex(first.Start), hex(OffsetTableStart))
	}
	span := first.Start - OffsetTableStart
	entries := span / OffsetTableEntrySize
	if entries == 0 {
		return nil, fmt.Errorf("%w: table span %d is shorter than one entry", ErrCorruptOffsetTable, span)
	}
	logger.Info("Offset table", "span", span, "entries", entries)

	table := make([]OffsetTableEntry, 0, min(entries, maxPrealloc))
	table = append(table, first)
	for i := uint64(1); i < entries; i++ {
		entry, err := readOffsetTableEntry(rs)
		if err != nil {
			return nil, fmt.Errorf("read table entry %d: %w", i, err)
		}
		logger.Debug("Table entry", "index", i, "start", hex(entry.Start), "size", hex(entry.Size))
		table = append(table, entry)
	}

	for i, entry := range table {
		if entry.Start > math.MaxInt64 {
			return nil, fmt.Errorf("%w: entry %d start %s out of range", ErrCorruptOffsetTable, i, hex(entry.Start))
		}
	}
	return table, nil
}

func readOffsetTableEntry(r io.Reader) (OffsetTableEntry, error) {
	var buf [OffsetTableEntrySize]byte
	if err := readFull(r, buf[:]); err != nil {
		return OffsetTableEntry{}, err
	}
	return OffsetTableEntry{
		Start: binary.LittleEndian.Uint64(buf[0:8]),
		Size:  binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
