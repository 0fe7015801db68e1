package tui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/npratt/agentshell/internal/events"
	"github.com/npratt/agentshell/internal/shell"
	"github.com/npratt/agentshell/internal/shutdown"
)

// headlessShutdownTimeout bounds how long the headless loop may take to stop
// after SIGINT/SIGTERM.
const headlessShutdownTimeout = 5 * time.Second

// isTerminal returns true if both stdout and stdin are TTYs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalSize returns the current terminal width and height.
// Returns 0, 0 if the terminal size cannot be determined.
func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// terminalTooSmall returns true if the terminal is below the minimum size.
func terminalTooSmall() bool {
	width, height := terminalSize()
	return width < minWidth || height < minHeight
}

// RunHeadless reads one command per line from the configured input, applies
// it to the session and prints each resulting event as "HH:MM:SS text".
// It returns at end of input, when the event channel closes, or on
// SIGINT/SIGTERM.
func (t *TUI) RunHeadless(ctx context.Context) error {
	return shutdown.RunWithGracefulShutdown(ctx, t.logger, headlessShutdownTimeout, t.runHeadless, nil)
}

func (t *TUI) runHeadless(ctx context.Context) error {
	lines := make(chan string)
	scanDone := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(t.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				scanDone <- nil
				return
			}
		}
		scanDone <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			t.drainEvents()
			return nil

		case event, ok := <-t.eventChan:
			if !ok {
				return nil
			}
			t.printEvent(event)

		case line, ok := <-lines:
			if !ok {
				t.drainEvents()
				return <-scanDone
			}
			t.handleLine(line)
			// Session emits synchronously, so this run's events are already queued.
			t.drainEvents()
		}
	}
}

// handleLine parses and executes one input line.
func (t *TUI) handleLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	cmd, err := shell.ParseCommand(trimmed)
	if err != nil {
		t.logger.Debug("headless parse failed", "line", trimmed, "error", err)
		fmt.Fprintf(t.out, "%s error: %v\n", t.session.FormatTime(t.session.Now()), err)
		return
	}

	out, err := t.session.Execute(cmd)
	if err != nil {
		// Reported through the error event unless nobody is listening.
		if t.eventChan == nil {
			fmt.Fprintf(t.out, "%s error: %v\n", t.session.FormatTime(t.session.Now()), err)
		}
		return
	}
	if cmd.Name == shell.CmdShow || t.eventChan == nil {
		fmt.Fprintln(t.out, out)
	}
}

// drainEvents prints every event already queued without blocking.
func (t *TUI) drainEvents() {
	for {
		select {
		case event, ok := <-t.eventChan:
			if !ok {
				return
			}
			t.printEvent(event)
		default:
			return
		}
	}
}

func (t *TUI) printEvent(event events.Event) {
	text := events.Format(event)
	if text == "" {
		return
	}
	fmt.Fprintf(t.out, "%s %s\n", t.session.FormatTime(event.Timestamp()), text)
}
