package utils

import "flag"

const (
	DefaultLogPath   = "./casky.log"
	DefaultPort      = 5050
	DefaultHost      = "127.0.0.1"
	DefaultTTLSweep  = 0 // 0 disables the background sweep
)

// DaemonFlags is the parsed set of caskyd startup flags.
type DaemonFlags struct {
	LogPath    string
	Port       int
	Sync       bool
	ThreadSafe bool
	TTLSweep   int // seconds; 0 disables
}

// HandleDaemonFlags parses caskyd's command-line flags.
func HandleDaemonFlags() DaemonFlags {
	logPath := flag.String("dir", DefaultLogPath, "Path to the Casky log file")
	port := flag.Int("port", DefaultPort, "Loopback port for the Casky daemon")
	sync := flag.Bool("sync", false, "fsync the log after every write")
	threadSafe := flag.Bool("threadsafe", true, "serialise engine access for concurrent clients")
	ttlSweep := flag.Int("ttl-sweep", DefaultTTLSweep, "background TTL sweep interval in seconds (0 disables)")
	flag.Parse()

	return DaemonFlags{
		LogPath:    *logPath,
		Port:       *port,
		Sync:       *sync,
		ThreadSafe: *threadSafe,
		TTLSweep:   *ttlSweep,
	}
}

// ClientFlags is the parsed set of casky-cli startup flags.
type ClientFlags struct {
	Host string
	Port int
}

// HandleClientFlags parses casky-cli's command-line flags.
func HandleClientFlags() ClientFlags {
	host := flag.String("host", DefaultHost, "Casky daemon host")
	port := flag.Int("port", DefaultPort, "Casky daemon port")
	flag.Parse()

	return ClientFlags{Host: *host, Port: *port}
}
