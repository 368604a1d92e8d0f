package protocol

import "fmt"

// Fixed single-line responses defined by §6's command table.
const (
	RespOK       = "OK"
	RespNotFound = "NOT_FOUND"
	RespBye      = "BYE"
)

// FormatValue renders a successful GET response.
func FormatValue(value string) string {
	return "VALUE " + value
}

// FormatErrno renders a numeric-errno error response, used when an
// engine operation fails with a Code.
func FormatErrno(code int) string {
	return fmt.Sprintf("ERROR %d", code)
}

// FormatUsage renders a usage error response for a malformed command.
func FormatUsage(usage string) string {
	return "ERROR usage: " + usage
}

// ErrUnknownCommand is the fixed response for an unrecognised verb.
const ErrUnknownCommand = "ERROR unknown command"

// Banner renders the greeting line sent to every new connection.
func Banner(version string, threadSafe bool) string {
	if threadSafe {
		return fmt.Sprintf("CASKY %s READY (thread-safe)", version)
	}
	return fmt.Sprintf("CASKY %s READY", version)
}

// VersionLine renders the response to the VER command.
func VersionLine(version string, threadSafe bool) string {
	if threadSafe {
		return fmt.Sprintf("%s (thread-safe)", version)
	}
	return version
}

// FormatStats renders the multi-line STATS response.
func FormatStats(totalKeys, numPuts, numGets, numDeletes, memoryBytes uint64) string {
	return fmt.Sprintf(
		"STATS\n total keys=%d\n puts=%d\n gets=%d\n deletes=%d\n memory bytes=%d",
		totalKeys, numPuts, numGets, numDeletes, memoryBytes,
	)
}
