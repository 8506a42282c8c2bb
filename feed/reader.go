// Package feed memory-maps an ITCH file and hands out fixed-size frames
// to the parser, mirroring the source's buf_t: a read-only mmap and a
// running position, with no buffering or copying beyond what the OS
// page cache already does.
package feed

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Reader is a memory-mapped, position-tracking view over one ITCH file.
// It is not safe for concurrent use; a single backtest run drives it
// from one goroutine, matching the source's single-threaded buf_t.
type Reader struct {
	data []byte
	pos  int
}

// Open memory-maps path read-only for the lifetime of the returned
// Reader. Callers must call Close when done to release the mapping.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("feed: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("feed: stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return &Reader{data: nil}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("feed: mmap %s: %w", path, err)
	}
	return &Reader{data: data}, nil
}

// Close unmaps the file. A Reader must not be used after Close.
func (r *Reader) Close() error {
	if r.data == nil {
		return nil
	}
	return unix.Munmap(r.data)
}

// Get returns a slice starting idx bytes past the current position. The
// caller is responsible for not reading past Available().
func (r *Reader) Get(idx int) []byte {
	return r.data[r.pos+idx:]
}

// Available reports how many unread bytes remain in the mapping.
func (r *Reader) Available() int {
	return len(r.data) - r.pos
}

// Ensure reports whether at least n more bytes are available without
// reading anything; there is nothing to block on since the whole file
// is already resident in the mapping.
func (r *Reader) Ensure(n int) bool {
	return r.pos+n <= len(r.data)
}

// Advance moves the read position forward by n bytes. Advancing past
// the end of the mapping is a caller bug, not a runtime condition to
// recover from.
func (r *Reader) Advance(n int) {
	r.pos += n
	if r.pos > len(r.data) {
		panic("feed: advanced past end of mapped file")
	}
}
