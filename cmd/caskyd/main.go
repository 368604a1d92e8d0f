// Command caskyd is the line-oriented TCP daemon (§6) fronting one
// Casky engine.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/casky-db/casky"
	"github.com/casky-db/casky/internal/protocol"
	"github.com/casky-db/casky/internal/server"
	"github.com/casky-db/casky/internal/utils"
)

const drainTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	flags := utils.HandleDaemonFlags()
	logger := utils.NewLogger(utils.ParseLevel(os.Getenv("CASKYD_LOG_LEVEL")))

	engine, err := casky.Open(flags.LogPath,
		casky.WithSyncOnWrite(flags.Sync),
		casky.WithThreadSafe(flags.ThreadSafe),
	)
	if err != nil {
		logger.Errorf("open %s: %v", flags.LogPath, err)
		return 1
	}
	defer engine.Close()

	if engine.Corrupted() {
		logger.Warnf("recovery stopped early on a corrupted record; run COMPACT to clean up")
	}

	srv, err := server.Listen(flags.Port)
	if err != nil {
		logger.Errorf("listen on port %d: %v", flags.Port, err)
		return 1
	}
	logger.Infof("casky %s listening on %s (thread-safe=%v)", casky.Version, srv.Addr(), flags.ThreadSafe)

	ctx, cancel := context.WithCancel(context.Background())

	var sweepStop chan struct{}
	if flags.TTLSweep > 0 {
		sweepStop = make(chan struct{})
		go runTTLSweep(engine, time.Duration(flags.TTLSweep)*time.Second, sweepStop, logger)
	}

	go func() {
		srv.Serve(ctx, func(conn net.Conn) {
			handleConn(conn, engine, flags.ThreadSafe, logger)
		})
	}()

	sig := utils.NotifyShutdown()
	<-sig
	logger.Infof("shutdown requested, draining connections")
	cancel()

	if sweepStop != nil {
		close(sweepStop)
	}

	if !srv.Drain(drainTimeout) {
		logger.Warnf("drain timed out after %s, closing anyway", drainTimeout)
	}

	return 0
}

func runTTLSweep(e *casky.Engine, interval time.Duration, stop <-chan struct{}, logger *utils.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := e.Expire(); n > 0 {
				logger.Debugf("ttl sweep evicted %d entries", n)
			}
		}
	}
}

func handleConn(conn net.Conn, e *casky.Engine, threadSafe bool, logger *utils.Logger) {
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", protocol.Banner(casky.Version, threadSafe)); err != nil {
		return
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		verb, rest := protocol.ParseLine(scanner.Text())

		resp, quit := dispatch(verb, rest, e, threadSafe)
		if resp == "" {
			continue
		}
		if _, err := fmt.Fprintf(conn, "%s\n", resp); err != nil {
			return
		}
		if quit {
			return
		}
	}
}

func dispatch(verb, rest string, e *casky.Engine, threadSafe bool) (resp string, quit bool) {
	switch verb {
	case "":
		return "", false

	case "PUT":
		key, value, ok := protocol.SplitKeyValue(rest)
		if !ok || value == "" {
			return protocol.FormatUsage("PUT <key> <value>"), false
		}
		if err := e.Put([]byte(key), []byte(value), 0); err != nil {
			return errorResponse(err), false
		}
		return protocol.RespOK, false

	case "GET":
		key, ok := protocol.SplitKey(rest)
		if !ok {
			return protocol.FormatUsage("GET <key>"), false
		}
		value, err := e.Get([]byte(key))
		if err != nil {
			if errors.Is(err, casky.ErrKeyNotFound) {
				return protocol.RespNotFound, false
			}
			return errorResponse(err), false
		}
		return protocol.FormatValue(string(value)), false

	case "DEL":
		key, ok := protocol.SplitKey(rest)
		if !ok {
			return protocol.FormatUsage("DEL <key>"), false
		}
		if err := e.Delete([]byte(key)); err != nil {
			if errors.Is(err, casky.ErrKeyNotFound) {
				return protocol.RespNotFound, false
			}
			return errorResponse(err), false
		}
		return protocol.RespOK, false

	case "COMPACT":
		if !threadSafe {
			return "ERROR not supported", false
		}
		if err := e.Compact(); err != nil {
			return errorResponse(err), false
		}
		return protocol.RespOK, false

	case "STATS":
		s := e.Stats()
		return protocol.FormatStats(s.TotalKeys, s.NumPuts, s.NumGets, s.NumDeletes, s.MemoryBytes), false

	case "VER":
		return protocol.VersionLine(casky.Version, threadSafe), false

	case "QUIT":
		return protocol.RespBye, true

	default:
		return protocol.ErrUnknownCommand, false
	}
}

func errorResponse(err error) string {
	var cerr *casky.Error
	if !errors.As(err, &cerr) {
		return protocol.FormatErrno(int(casky.CodeIO))
	}
	return protocol.FormatErrno(int(cerr.Code))
}
