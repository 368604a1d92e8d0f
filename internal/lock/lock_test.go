package lock

import (
	"path/filepath"
	"testing"
)

func TestAcquireBlocksSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.log.lock")

	f, err := Acquire(path)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	if _, err := Acquire(path); err == nil {
		t.Fatal("second Acquire succeeded while the lock was held")
	}

	Release(f)
}

func TestAcquireAfterReleaseSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.log.lock")

	f, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	Release(f)

	f2, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	Release(f2)
}
