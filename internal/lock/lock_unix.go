//go:build unix

package lock

import (
	"fmt"
	"os"
	"syscall"
)

// Acquire takes an exclusive, non-blocking advisory lock on lockPath,
// creating the file if absent.
//
// On Unix systems this uses flock(2). If the lock cannot be acquired,
// the log is assumed to be in use by another Casky process.
//
// The returned file handle must remain open for the duration of the lock.
func Acquire(lockPath string) (*os.File, error) {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("lock: unable to open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock: log already in use by another casky process")
	}

	return f, nil
}

// Release releases a lock acquired via Acquire.
func Release(f *os.File) {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	f.Close()
}
