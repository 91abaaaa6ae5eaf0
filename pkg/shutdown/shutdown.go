// Package shutdown provides the signal handling and crash-diagnostics glue
// used by the demonstration command to bring the runner down cleanly.
package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"chainindexer/pkg/logger"
)

// SetupSignalHandler installs SIGINT/SIGTERM handlers and returns a context
// cancelled when either signal arrives. Callers should treat cancellation
// as the start of a graceful drain, not an immediate exit.
func SetupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigc
		logger.Info("signal_received", "signal", s.String(), "msg", "shutdown requested")
		cancel()
	}()

	return ctx, cancel
}

// Abort logs a fatal startup/runtime error, writes a goroutine stack dump
// for post-mortem inspection, and exits the process after a short delay so
// logs have time to flush.
func Abort(contextMsg string, err error, delaySeconds ...int) {
	delay := 5
	if len(delaySeconds) > 0 && delaySeconds[0] >= 0 {
		delay = delaySeconds[0]
	}
	logger.Error("fatal", "msg", contextMsg, "error", err)

	buf := make([]byte, 1<<20)
	n := runtime.Stack(buf, true)
	fmt.Fprintf(os.Stderr, "--- goroutine stack dump at abort ---\n%s\n", buf[:n])

	for i := delay; i > 0; i-- {
		logger.Info("exiting_in_seconds", "seconds", i)
		time.Sleep(1 * time.Second)
	}
	os.Exit(2)
}
