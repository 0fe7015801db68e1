package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/npratt/agentshell/internal/config"
	"github.com/npratt/agentshell/internal/events"
	"github.com/npratt/agentshell/internal/shell"
	"github.com/npratt/agentshell/internal/viewmodel"
)

// app wires a shell session to the event router and the optional journal.
type app struct {
	router  *events.Router
	journal *events.JournalSink
	session *shell.Session
	cancel  context.CancelFunc
	logger  *slog.Logger
}

func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...shell.Option) (*app, error) {
	sinkCtx, cancel := context.WithCancel(ctx)
	a := &app{
		router: events.NewRouter(events.DefaultBufferSize),
		cancel: cancel,
		logger: logger,
	}

	if cfg.Journal.Enabled {
		journal := events.NewJournalSink(cfg.Paths.Journal)
		if err := journal.Start(sinkCtx, a.router.Subscribe()); err != nil {
			_ = a.close()
			return nil, fmt.Errorf("start journal: %w", err)
		}
		a.journal = journal
		logger.Debug("journal enabled", "path", journal.Path())
	}

	opts = append([]shell.Option{shell.WithEmitter(a.router)}, opts...)
	session, err := shell.New(cfg, opts...)
	if err != nil {
		_ = a.close()
		return nil, fmt.Errorf("create session: %w", err)
	}
	a.session = session
	return a, nil
}

func (a *app) begin(mode string) {
	a.router.Emit(&events.SessionStartEvent{
		BaseEvent: events.NewEvent(events.EventSessionStart, events.SourceCLI),
		Mode:      mode,
		Screen:    string(a.session.Screen()),
	})
}

func (a *app) end(reason string) {
	a.router.Emit(&events.SessionEndEvent{
		BaseEvent: events.NewEvent(events.EventSessionEnd, events.SourceCLI),
		Reason:    reason,
	})
}

// close shuts the router first so the journal drains everything queued.
func (a *app) close() error {
	a.router.Close()
	var err error
	if a.journal != nil {
		err = a.journal.Stop()
		a.logger.Debug("journal closed", "written", a.journal.Written())
	}
	a.cancel()
	if dropped := a.router.Dropped(); dropped > 0 {
		a.logger.Warn("events dropped by slow subscribers", "count", dropped)
	}
	return err
}

// scriptOutput is the --json shape of the script command.
type scriptOutput struct {
	Results []string            `json:"results"`
	Error   string              `json:"error,omitempty"`
	Screen  string              `json:"screen"`
	View    viewmodel.ShellView `json:"view"`
}

// runScript executes lines against a fresh session and prints each result
// followed by the final state of the active screen.
func runScript(ctx context.Context, w io.Writer, cfg *config.Config, lines []string, asJSON bool, logger *slog.Logger, opts ...shell.Option) error {
	a, err := openApp(ctx, cfg, logger, opts...)
	if err != nil {
		return err
	}

	a.begin("script")
	results, runErr := a.session.RunScript(lines)
	reason := "done"
	if runErr != nil {
		reason = runErr.Error()
	}
	a.end(reason)

	if err := writeScriptOutput(w, a.session, results, runErr, asJSON); err != nil {
		_ = a.close()
		return err
	}
	if err := a.close(); err != nil {
		logger.Warn("failed to close journal", "error", err)
	}
	return runErr
}

func writeScriptOutput(w io.Writer, session *shell.Session, results []string, runErr error, asJSON bool) error {
	if asJSON {
		out := scriptOutput{
			Results: results,
			Screen:  string(session.Screen()),
			View:    session.Snapshot(),
		}
		if out.Results == nil {
			out.Results = []string{}
		}
		if runErr != nil {
			out.Error = runErr.Error()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return nil
	}

	for _, r := range results {
		fmt.Fprintln(w, r)
	}
	if len(results) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, shell.Describe(session.Snapshot(), session.Screen(), session.FormatTime))
	return nil
}
