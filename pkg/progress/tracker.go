package progress

import (
	"fmt"
	"io"
)

// Tracker counts extracted files and bytes
type Tracker struct {
	files uint64
	bytes uint64
}

// NewTracker returns a zeroed tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// AddBytes adds processed bytes to the counter
func (t *Tracker) AddBytes(n uint64) {
	t.bytes += n
}

// FileDone records one completed file
func (t *Tracker) FileDone() {
	t.files++
}

// Files returns the number of completed files
func (t *Tracker) Files() uint64 { return t.files }

// Bytes returns the number of bytes written so far
func (t *Tracker) Bytes() uint64 { return t.bytes }

// FormatSize returns a human-readable size string
func FormatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Writer is a writer that tracks bytes written for progress reporting
type Writer struct {
	W       io.Writer
	Tracker *Tracker
}

// Write implements io.Writer and tracks bytes written
func (pw *Writer) Write(p []byte) (n int, err error) {
	n, err = pw.W.Write(p)
	if n > 0 && pw.Tracker != nil {
		pw.Tracker.AddBytes(uint64(n))
	}
	return
}
