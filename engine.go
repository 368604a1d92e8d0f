// Package casky implements an embeddable, Bitcask-derived key-value
// store: a single append-only log on disk backed by an in-memory hash
// directory of current keys, with CRC-checked recovery, tombstone
// deletes, optional per-key expiry, and single-writer compaction.
package casky

import (
	"sync"
	"time"

	"github.com/casky-db/casky/internal/keydir"
	"github.com/casky-db/casky/internal/lock"
	"github.com/casky-db/casky/internal/logfile"
	"github.com/casky-db/casky/internal/record"
)

// Version is Casky's library version string, surfaced by (*Engine).Version
// and the daemon's READY banner.
const Version = "1.0.0"

// Engine is a single open Casky database. The zero value is not usable;
// construct one with Open.
type Engine struct {
	opts Options

	mu  sync.Mutex // guards dir and log; held end-to-end when opts.ThreadSafe
	dir *keydir.Directory
	log *logfile.File

	path      string
	lockF     *lockHandle
	stats     statCounters
	lastErr   error
	corrupted bool
}

// lockHandle isolates the *os.File returned by internal/lock so engine.go
// need not import os directly.
type lockHandle struct{ release func() }

// Open opens (or creates) the log file at path, replays it to rebuild
// the in-memory key directory, and returns a ready-to-use Engine.
//
// Recovery (§4.5) reads every record from the start of the log. A clean
// end-of-stream stops recovery successfully. A truncated or bad-CRC
// record stops recovery at that point; every record before it remains
// live, Open still returns the engine with a nil error, and Corrupted
// reports true while LastError returns ErrCorrupt. Live puts overwrite the directory entry for
// their key; a tombstone (zero-length value) removes it.
func Open(path string, options ...Option) (*Engine, error) {
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	lf, err := logfile.OpenOrCreate(path)
	if err != nil {
		return nil, wrapPath(err)
	}

	lockPath := path + ".lock"
	lockFile, err := lock.Acquire(lockPath)
	if err != nil {
		lf.Close()
		return nil, wrapIO(err)
	}

	e := &Engine{
		opts: opts,
		dir:  keydir.New(),
		log:  lf,
		path: path,
		lockF: &lockHandle{release: func() {
			lock.Release(lockFile)
		}},
	}

	if err := e.recover(); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

func (e *Engine) recover() error {
	scanner, err := logfile.NewScanner(e.path, e.opts.MaxRecordBytes)
	if err != nil {
		return wrapIO(err)
	}
	defer scanner.Close()

	for {
		rec, status, err := scanner.Next()
		switch status {
		case record.StatusEOF:
			e.stats.setTotalKeys(uint64(e.dir.Len()))
			return nil
		case record.StatusOK:
			if rec.IsTombstone() {
				e.dir.Delete(rec.Key)
			} else {
				e.dir.Put(rec.Key, rec.Value, rec.Timestamp, rec.ExpiresAt)
			}
		case record.StatusTruncated, record.StatusBadCRC:
			// A torn or corrupt record stops recovery; everything decoded
			// before it stays live, per §4.5.
			_ = err
			e.corrupted = true
			e.lastErr = ErrCorrupt
			e.stats.setTotalKeys(uint64(e.dir.Len()))
			return nil
		}
	}
}

func (e *Engine) lock() {
	if e.opts.ThreadSafe {
		e.mu.Lock()
	}
}

func (e *Engine) unlock() {
	if e.opts.ThreadSafe {
		e.mu.Unlock()
	}
}

func (e *Engine) setLastErr(err error) error {
	e.lastErr = err
	return err
}

// nowUnix returns the current Unix timestamp in seconds.
func nowUnix() uint64 {
	return uint64(time.Now().Unix())
}

// Put writes key/value to the log and updates the in-memory directory.
// ttl is a duration after which the key expires; zero means no expiry.
//
// The directory is updated before the log append completes (§4.4); if
// the append fails, the in-memory state is not rolled back and ErrIO is
// returned — the next Close/Open cycle will recover from whatever made
// it to disk.
func (e *Engine) Put(key, value []byte, ttl time.Duration) error {
	if len(key) == 0 || value == nil {
		return e.setLastErr(ErrInvalidKey)
	}

	e.lock()
	defer e.unlock()

	now := nowUnix()
	var expiresAt uint64
	if ttl > 0 {
		expiresAt = now + uint64(ttl/time.Second)
	}

	data := record.Encode(now, expiresAt, key, value)

	e.dir.Put(key, value, now, expiresAt)
	e.stats.incPut(uint64(len(data)))
	e.stats.setTotalKeys(uint64(e.dir.Len()))

	if err := e.log.Append(data, e.opts.SyncOnWrite); err != nil {
		return e.setLastErr(wrapIO(err))
	}

	e.lastErr = nil
	return nil
}

// Get looks up key. It returns ErrKeyNotFound if the key is absent or
// has expired; an expired entry is evicted from the directory as a
// side effect of this call, matching the original in-memory lookup
// semantics, but the log is left untouched until the next compaction.
func (e *Engine) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, e.setLastErr(ErrInvalidKey)
	}

	e.lock()
	defer e.unlock()

	e.stats.incGet()

	value, ok := e.dir.Get(key, nowUnix())
	if !ok {
		e.stats.setTotalKeys(uint64(e.dir.Len()))
		return nil, e.setLastErr(ErrKeyNotFound)
	}

	e.lastErr = nil
	return value, nil
}

// Delete removes key from the directory and appends a tombstone record
// for it. Deleting a key that is not live returns ErrKeyNotFound and
// appends nothing to the log, matching the original library's
// memory-first delete semantics.
func (e *Engine) Delete(key []byte) error {
	if len(key) == 0 {
		return e.setLastErr(ErrInvalidKey)
	}

	e.lock()
	defer e.unlock()

	if !e.dir.Delete(key) {
		return e.setLastErr(ErrKeyNotFound)
	}
	e.stats.setTotalKeys(uint64(e.dir.Len()))

	data := record.Encode(nowUnix(), 0, key, nil)
	e.stats.incDelete(uint64(len(data)))

	if err := e.log.Append(data, e.opts.SyncOnWrite); err != nil {
		return e.setLastErr(wrapIO(err))
	}

	e.lastErr = nil
	return nil
}

// Expire sweeps the in-memory directory for entries whose TTL has
// passed and evicts them. It does not touch the log; space is reclaimed
// only on the next Compact. It returns the number of entries evicted.
func (e *Engine) Expire() int {
	e.lock()
	defer e.unlock()

	n := e.dir.ExpireSweep(nowUnix())
	e.stats.setTotalKeys(uint64(e.dir.Len()))
	return n
}

// Compact rewrites the log to contain exactly one live record per
// current key, dropping tombstones, superseded versions, and expired
// entries, using a single temp-file writer and an atomic rename over
// the live log (§4.5). Expired entries are also evicted from the
// in-memory directory; live entries are left as they are.
func (e *Engine) Compact() error {
	e.lock()
	defer e.unlock()

	now := nowUnix()
	e.dir.ExpireSweep(now)

	w, err := logfile.NewCompactionWriter(e.path)
	if err != nil {
		return e.setLastErr(wrapIO(err))
	}

	var writeErr error
	e.dir.ForEach(func(ent keydir.Entry) {
		if writeErr != nil {
			return
		}
		data := record.Encode(ent.Timestamp, ent.ExpiresAt, ent.Key, ent.Value)
		writeErr = w.Write(data)
	})
	if writeErr != nil {
		w.Abort()
		return e.setLastErr(wrapIO(writeErr))
	}

	if err := e.log.Close(); err != nil {
		w.Abort()
		return e.setLastErr(wrapIO(err))
	}

	if err := w.Finish(e.path, e.opts.SyncOnWrite); err != nil {
		lf, reopenErr := logfile.OpenOrCreate(e.path)
		if reopenErr == nil {
			e.log = lf
		}
		return e.setLastErr(wrapIO(err))
	}

	lf, err := logfile.OpenOrCreate(e.path)
	if err != nil {
		return e.setLastErr(wrapPath(err))
	}
	e.log = lf
	e.stats.setTotalKeys(uint64(e.dir.Len()))

	e.lastErr = nil
	return nil
}

// Stats returns a snapshot of the engine's running counters.
func (e *Engine) Stats() Stats {
	return e.stats.snapshot()
}

// LastError returns the error code of the most recent operation, or
// nil if it succeeded. It mirrors casky_last_error() from the original
// C library for callers that prefer polling over checking return values.
func (e *Engine) LastError() error {
	e.lock()
	defer e.unlock()
	return e.lastErr
}

// Version returns the engine's version string.
func (e *Engine) Version() string {
	return Version
}

// Corrupted reports whether recovery at Open stopped early on a
// truncated or CRC-mismatched record. The engine remains usable; the
// caller may schedule a Compact to clean up the tail.
func (e *Engine) Corrupted() bool {
	e.lock()
	defer e.unlock()
	return e.corrupted
}

// Close flushes and closes the log file and releases the advisory
// process lock. It is safe to call Close exactly once per Engine.
func (e *Engine) Close() error {
	e.lock()
	defer e.unlock()

	var err error
	if e.log != nil {
		err = e.log.Close()
	}
	if e.lockF != nil {
		e.lockF.release()
	}
	if err != nil {
		return wrapIO(err)
	}
	return nil
}
