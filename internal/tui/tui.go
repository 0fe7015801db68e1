// Package tui provides the terminal front end for the agent shell using
// bubbletea, with a line-oriented fallback for non-interactive stdin/stdout.
package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/agentshell/internal/config"
	"github.com/npratt/agentshell/internal/events"
	"github.com/npratt/agentshell/internal/shell"
)

// TUI is the terminal UI for the agent shell.
type TUI struct {
	session   *shell.Session
	eventChan <-chan events.Event
	header    config.UIConfig
	onQuit    func()
	in        io.Reader
	out       io.Writer
	logger    *slog.Logger
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a TUI over session. eventChan feeds the status line and the
// headless printer; it may be nil.
func New(session *shell.Session, eventChan <-chan events.Event, opts ...Option) *TUI {
	t := &TUI{
		session:   session,
		eventChan: eventChan,
		header:    config.Default().UI,
		in:        os.Stdin,
		out:       os.Stdout,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithHeader sets the eyebrow, title and subtitle shown above every screen.
func WithHeader(ui config.UIConfig) Option {
	return func(t *TUI) {
		t.header = ui
	}
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithIO replaces stdin/stdout for the headless loop.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(t *TUI) {
		t.in = in
		t.out = out
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(t *TUI) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Run starts the interactive UI, or the headless loop when stdin or stdout is
// not a terminal. It blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	if !isTerminal() {
		t.logger.Info("no terminal detected, running headless")
		return t.RunHeadless(ctx)
	}
	if terminalTooSmall() {
		t.logger.Warn("terminal below minimum size", "min_width", minWidth, "min_height", minHeight)
	}

	m := newModel(t.session, t.eventChan, t.header, t.onQuit)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
