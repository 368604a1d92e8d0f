package record

import (
	"hash/crc32"
	"testing"
)

func TestCalculateCRC(t *testing.T) {
	buf := []byte("language-go-payload")

	want := crc32.ChecksumIEEE(buf)
	got := CalculateCRC(buf)

	if got != want {
		t.Errorf("CalculateCRC() = %v, want %v", got, want)
	}
}
