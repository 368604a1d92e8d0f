//go:build windows

package lock

import (
	"fmt"
	"os"
)

// Acquire takes an exclusive lock on lockPath.
//
// On Windows this is implemented by atomically creating lockPath with
// O_EXCL. If the file already exists, the log is assumed to be in use
// by another Casky process.
//
// The returned file handle must be kept open for the duration of the lock.
func Acquire(lockPath string) (*os.File, error) {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("lock: log already in use by another casky process")
	}

	return f, nil
}

// Release releases a lock acquired via Acquire by removing the lock file.
func Release(f *os.File) {
	name := f.Name()
	f.Close()
	os.Remove(name)
}
