package core

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// readFull fills buf or reports ErrTruncatedInput when the stream ends early.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: need %d bytes", ErrTruncatedInput, len(buf))
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// readMagic reads a 4-byte magic number.
func readMagic(r io.Reader) ([4]byte, error) {
	var magic [4]byte
	if err := readFull(r, magic[:]); err != nil {
		return magic, fmt.Errorf("read magic: %w", err)
	}
	return magic, nil
}

// DecodeString decodes a fixed-width name field. The name ends at the first
// nul byte and must be valid UTF-8.
func DecodeString(window []byte) (string, error) {
	nul := bytes.IndexByte(window, 0)
	if nul < 0 {
		return "", fmt.Errorf("%w: no nul terminator in %d byte field", ErrMalformedString, len(window))
	}
	s, _, err := transform.Bytes(encoding.UTF8Validator, window[:nul])
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrMalformedString, window[:nul], err)
	}
	return string(s), nil
}

// ReadString reads and decodes one StringSize name field.
func ReadString(r io.Reader) (string, error) {
	window := make([]byte, StringSize)
	if err := readFull(r, window); err != nil {
		return "", fmt.Errorf("read string: %w", err)
	}
	return DecodeString(window)
}

// ReadFileEntry decodes one file table record from the current position,
// consuming exactly FileRecordSize bytes.
func ReadFileEntry(r io.Reader) (FileEntry, error) {
	var record [FileRecordSize]byte
	if err := readFull(r, record[:]); err != nil {
		return FileEntry{}, fmt.Errorf("read file record: %w", err)
	}

	name, err := DecodeString(record[:StringSize])
	if err != nil {
		return FileEntry{}, fmt.Errorf("file record name: %w", err)
	}

	meta := record[StringSize:]
	return FileEntry{
		Name:    name,
		Offset:  binary.LittleEndian.Uint64(meta[0:8]),
		Size:    binary.LittleEndian.Uint64(meta[8:16]),
		Trailer: binary.LittleEndian.Uint32(meta[16:20]),
	}, nil
}
