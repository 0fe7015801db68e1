// Package shutdown runs a blocking component until it finishes or the
// process receives SIGINT/SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Signals are the signals that trigger a graceful shutdown.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// Swapped in tests.
var (
	notify     = signal.Notify
	stopNotify = signal.Stop
)

// RunWithGracefulShutdown starts a component and handles graceful shutdown.
// The runner function should block while the component is running.
//
// When a signal arrives the runner's context is cancelled, cleanup (if
// non-nil) is called with a context bounded by timeout, and the runner gets
// the rest of that window to return. A runner that returns context.Canceled
// after a signal is treated as a clean exit.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
	cleanup func(ctx context.Context) error,
) error {
	if logger == nil {
		logger = slog.Default()
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	sigChan := make(chan os.Signal, 1)
	notify(sigChan, Signals...)
	defer stopNotify(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("received signal, initiating shutdown", "signal", sig)
		runCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			if err := cleanup(shutdownCtx); err != nil {
				logger.Error("shutdown error", "error", err)
			}
		}

		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-shutdownCtx.Done():
			logger.Warn("shutdown timeout exceeded")
		}

		logger.Info("shutdown complete")
		return nil

	case err := <-runDone:
		return err
	}
}
