package logfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/casky-db/casky/internal/record"
)

func TestOpenOrCreateRejectsEmptyPath(t *testing.T) {
	if _, err := OpenOrCreate(""); err != ErrInvalidPath {
		t.Fatalf("OpenOrCreate(\"\") = %v, want ErrInvalidPath", err)
	}
}

func TestOpenOrCreateRejectsMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "db.log")
	if _, err := OpenOrCreate(path); err != ErrInvalidPath {
		t.Fatalf("OpenOrCreate() = %v, want ErrInvalidPath", err)
	}
}

func TestAppendAndScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.log")

	f, err := OpenOrCreate(path)
	if err != nil {
		t.Fatalf("OpenOrCreate failed: %v", err)
	}

	if err := f.Append(record.Encode(1, 0, []byte("a"), []byte("1")), false); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := f.Append(record.Encode(2, 0, []byte("b"), []byte("2")), true); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	scanner, err := NewScanner(path, 0)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	defer scanner.Close()

	rec1, status, err := scanner.Next()
	if err != nil || status != record.StatusOK || string(rec1.Key) != "a" {
		t.Fatalf("first record: status=%v err=%v rec=%+v", status, err, rec1)
	}

	rec2, status, err := scanner.Next()
	if err != nil || status != record.StatusOK || string(rec2.Key) != "b" {
		t.Fatalf("second record: status=%v err=%v rec=%+v", status, err, rec2)
	}

	_, status, err = scanner.Next()
	if err != nil || status != record.StatusEOF {
		t.Fatalf("expected clean EOF, got status=%v err=%v", status, err)
	}
}

func TestCompactionWriterRenamesOverLiveLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.log")

	if err := os.WriteFile(path, []byte("stale-contents"), 0644); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	w, err := NewCompactionWriter(path)
	if err != nil {
		t.Fatalf("NewCompactionWriter failed: %v", err)
	}
	if err := w.Write(record.Encode(1, 0, []byte("k"), []byte("v"))); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Finish(path, true); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	scanner, err := NewScanner(path, 0)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	defer scanner.Close()

	rec, status, err := scanner.Next()
	if err != nil || status != record.StatusOK || string(rec.Key) != "k" {
		t.Fatalf("expected compacted record, got status=%v err=%v rec=%+v", status, err, rec)
	}
}

func TestCompactionWriterAbortLeavesLiveLogUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.log")

	original := []byte("original-log-bytes")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	w, err := NewCompactionWriter(path)
	if err != nil {
		t.Fatalf("NewCompactionWriter failed: %v", err)
	}
	w.Abort()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(original) {
		t.Fatalf("live log was modified by an aborted compaction: %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file to be removed, found %d entries", len(entries))
	}
}
