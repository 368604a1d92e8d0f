// Package logfile wraps Casky's single append-only log file: append with
// optional synchronous durability, and a rewind-and-scan reader used by
// recovery and the dump utility.
package logfile

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/casky-db/casky/internal/record"
)

// ErrInvalidPath is returned by OpenOrCreate for an empty path or a path
// whose containing directory does not exist.
var ErrInvalidPath = errors.New("logfile: invalid path")

// File is an append-mode handle on the log, kept open for the lifetime
// of an engine.
type File struct {
	path string
	f    *os.File
}

// OpenOrCreate opens path for append+read, creating it if absent. It
// fails with ErrInvalidPath for an empty path or a missing parent
// directory.
func OpenOrCreate(path string) (*File, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}

	dir := filepath.Dir(path)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, ErrInvalidPath
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &File{path: path, f: f}, nil
}

// Path returns the log file's path on disk.
func (lf *File) Path() string {
	return lf.path
}

// Append writes data to the end of the log, flushing it to the
// filesystem and, if sync is true, issuing an fsync before returning.
// Partial writes are retried until every byte is persisted or a
// terminal error is returned.
func (lf *File) Append(data []byte, sync bool) error {
	for len(data) > 0 {
		n, err := lf.f.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}

	if sync {
		return lf.f.Sync()
	}
	return nil
}

// Close flushes and closes the underlying file handle.
func (lf *File) Close() error {
	if err := lf.f.Sync(); err != nil {
		lf.f.Close()
		return err
	}
	return lf.f.Close()
}

// Scanner replays the log from the start, independent of the append
// handle's position.
type Scanner struct {
	f        *os.File
	maxBytes int
}

// NewScanner opens a fresh read-only handle on path and positions it at
// the start of the file.
func NewScanner(path string, maxBytes int) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Scanner{f: f, maxBytes: maxBytes}, nil
}

// Next decodes the next record in the stream. See record.Decode for the
// status semantics.
func (s *Scanner) Next() (*record.Record, record.Status, error) {
	return record.Decode(s.f, s.maxBytes)
}

// Close releases the scanner's read handle.
func (s *Scanner) Close() error {
	return s.f.Close()
}

// CompactionWriter is the single writer used to rewrite a log from
// live memory during compaction (§4.5): one temp file, one handle, an
// optional Sync, then Finish renames it over the live log.
type CompactionWriter struct {
	tmpPath string
	f       *os.File
}

// NewCompactionWriter creates a temp file alongside finalPath.
func NewCompactionWriter(finalPath string) (*CompactionWriter, error) {
	dir := filepath.Dir(finalPath)
	f, err := os.CreateTemp(dir, filepath.Base(finalPath)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &CompactionWriter{tmpPath: f.Name(), f: f}, nil
}

// Write appends a single record's encoded bytes to the temp file.
func (w *CompactionWriter) Write(data []byte) error {
	for len(data) > 0 {
		n, err := w.f.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Finish flushes (and, if sync, fsyncs) and closes the temp file, then
// atomically renames it over finalPath.
func (w *CompactionWriter) Finish(finalPath string, sync bool) error {
	if sync {
		if err := w.f.Sync(); err != nil {
			w.f.Close()
			os.Remove(w.tmpPath)
			return err
		}
	}
	if err := w.f.Close(); err != nil {
		os.Remove(w.tmpPath)
		return err
	}
	if err := os.Rename(w.tmpPath, finalPath); err != nil {
		os.Remove(w.tmpPath)
		return err
	}
	return nil
}

// Abort discards the temp file without touching the live log.
func (w *CompactionWriter) Abort() {
	w.f.Close()
	os.Remove(w.tmpPath)
}
