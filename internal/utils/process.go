package utils

import (
	"os"
	"os/signal"
	"syscall"
)

// NotifyShutdown returns a channel that receives a value once when the
// process gets an interrupt (Ctrl+C) or termination signal. Callers
// select on it to begin a graceful shutdown.
func NotifyShutdown() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}
