// Command casky-dump is a read-only log inspector: it scans a Casky
// log file record by record and prints each one, flagging CRC
// mismatches and truncation inline.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/casky-db/casky/internal/logfile"
	"github.com/casky-db/casky/internal/record"
	"github.com/casky-db/casky/internal/utils"
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s <logfile>\n", os.Args[0])
		os.Exit(1)
	}
	path := args[0]

	if !utils.PathExists(path) {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %s does not exist\n", path)
		os.Exit(1)
	}

	scanner, err := logfile.NewScanner(path, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to open log file:", err)
		os.Exit(1)
	}
	defer scanner.Close()

	fmt.Printf("Debug log file: %s\n", path)

	for {
		rec, status, err := scanner.Next()

		switch status {
		case record.StatusEOF:
			return
		case record.StatusTruncated:
			fmt.Printf("Record: [TRUNCATED]%s\n", suffix(err))
			return
		case record.StatusBadCRC:
			fmt.Println("Record: [BAD CRC, key length zero or checksum mismatch]")
			return
		case record.StatusOK:
			printRecord(rec)
		}
	}
}

func printRecord(rec *record.Record) {
	value := string(rec.Value)
	if rec.IsTombstone() {
		value = "<deleted>"
	}
	fmt.Printf("Record: CRC=0x%08X, TS=%d, Expires=%d, Key=%q, Value=%q\n",
		rec.CRC, rec.Timestamp, rec.ExpiresAt, string(rec.Key), value)
}

func suffix(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf(" (%v)", err)
}
