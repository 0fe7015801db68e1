// Package shell owns the state behind every screen of the agent shell and
// turns user triggers into state changes and events.
package shell

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/npratt/agentshell/internal/config"
	"github.com/npratt/agentshell/internal/eventlog"
	"github.com/npratt/agentshell/internal/events"
	"github.com/npratt/agentshell/internal/statuscycle"
	"github.com/npratt/agentshell/internal/viewmodel"
)

// ErrUnknownStep is returned when a workflow step id is not configured.
var ErrUnknownStep = errors.New("unknown step")

// justNowWindow is how recent a sync must be to render as "Just now".
const justNowWindow = time.Minute

// Session holds the state of one shell run. All methods are safe for
// concurrent use; each trigger is applied atomically.
type Session struct {
	mu      sync.Mutex
	emitter events.Emitter
	now     func() time.Time

	screen     Screen
	timeFormat string
	overview   viewmodel.OverviewView

	steps    []config.StepConfig
	workflow *statuscycle.Set

	toolLines []string
	logs      *eventlog.Log
	toolRuns  int

	validation     *statuscycle.Cycle
	validationRuns int
	lastValidation time.Time

	snapshots        int
	memoryTenths     int
	memoryStepTenths int
	lastSync         time.Time
	retention        string
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	emitter events.Emitter
	now     func() time.Time
	logOpts []eventlog.Option
}

// WithEmitter routes every state change to e.
func WithEmitter(e events.Emitter) Option {
	return func(o *sessionOptions) { o.emitter = e }
}

// WithClock sets the time source for log stamps, validation runs and syncs.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogOptions passes extra options to the tooling event log.
func WithLogOptions(opts ...eventlog.Option) Option {
	return func(o *sessionOptions) { o.logOpts = append(o.logOpts, opts...) }
}

// New builds a session from cfg. It fails with
// statuscycle.ErrInvalidConfiguration when a state list is empty and with
// ErrUnknownScreen when the initial screen is not recognised.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	o := sessionOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	initial := ScreenOverview
	if cfg.UI.InitialScreen != "" {
		s, err := ParseScreen(cfg.UI.InitialScreen)
		if err != nil {
			return nil, err
		}
		initial = s
	}

	ids := make([]string, len(cfg.Workflow.Steps))
	for i, step := range cfg.Workflow.Steps {
		ids[i] = step.ID
	}
	workflow, err := statuscycle.NewSet(cfg.Workflow.States, ids...)
	if err != nil {
		return nil, fmt.Errorf("workflow: %w", err)
	}

	validation, err := statuscycle.New(cfg.Validation.States...)
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}

	logOpts := append([]eventlog.Option{
		eventlog.WithMaxEntries(cfg.Tooling.MaxLogEntries),
		eventlog.WithClock(o.now),
	}, o.logOpts...)

	timeFormat := cfg.UI.TimeFormat
	if timeFormat == "" {
		timeFormat = time.TimeOnly
	}

	metrics := make([]viewmodel.Metric, len(cfg.Overview.Metrics))
	for i, m := range cfg.Overview.Metrics {
		metrics[i] = viewmodel.Metric{Label: m.Label, Value: m.Value, Note: m.Note}
	}

	return &Session{
		emitter:    o.emitter,
		now:        o.now,
		screen:     initial,
		timeFormat: timeFormat,
		overview: viewmodel.OverviewView{
			Summary:    cfg.Overview.Summary,
			Metrics:    metrics,
			Highlights: append([]string(nil), cfg.Overview.Highlights...),
		},
		steps:            append([]config.StepConfig(nil), cfg.Workflow.Steps...),
		workflow:         workflow,
		toolLines:        append([]string(nil), cfg.Tooling.Lines...),
		logs:             eventlog.New(logOpts...),
		validation:       validation,
		snapshots:        cfg.DataVault.InitialSnapshots,
		memoryTenths:     toTenths(cfg.DataVault.InitialMemoryGB),
		memoryStepTenths: toTenths(cfg.DataVault.MemoryStepGB),
		lastSync:         o.now().Add(-cfg.DataVault.InitialSyncAge),
		retention:        cfg.DataVault.Retention,
	}, nil
}

func toTenths(gb float64) int {
	return int(math.Round(gb * 10))
}

func (s *Session) emit(ev events.Event) {
	if s.emitter != nil {
		s.emitter.Emit(ev)
	}
}

func (s *Session) base(t events.EventType) events.BaseEvent {
	return events.BaseEvent{EventType: t, Time: s.now(), Src: events.SourceShell}
}

// Screen returns the active screen.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// SetScreen makes target the active screen. Returns false when it already was.
func (s *Session) SetScreen(target Screen) bool {
	s.mu.Lock()
	from := s.screen
	if from == target {
		s.mu.Unlock()
		return false
	}
	s.screen = target
	s.mu.Unlock()

	s.emit(&events.ScreenChangedEvent{
		BaseEvent: s.base(events.EventScreenChanged),
		From:      string(from),
		To:        string(target),
	})
	return true
}

// MoveScreen shifts the active screen by delta positions, wrapping at both ends.
func (s *Session) MoveScreen(delta int) Screen {
	target := offsetScreen(s.Screen(), delta)
	s.SetScreen(target)
	return target
}

// CycleStep advances the workflow step's status and returns the new label.
func (s *Session) CycleStep(id string) (string, error) {
	s.mu.Lock()
	from, err := s.workflow.Current(id)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, statuscycle.ErrUnknownItem) {
			return "", fmt.Errorf("%w: %q", ErrUnknownStep, id)
		}
		return "", err
	}
	to, _ := s.workflow.Advance(id)
	s.mu.Unlock()

	s.emit(&events.StepCycledEvent{
		BaseEvent: s.base(events.EventStepCycled),
		StepID:    id,
		From:      from,
		To:        to,
	})
	return to, nil
}

// StepIDs returns the workflow step ids in display order.
func (s *Session) StepIDs() []string {
	return s.workflow.IDs()
}

// RunToolchain records one mock toolchain run as a single log batch.
func (s *Session) RunToolchain() []eventlog.Entry {
	s.mu.Lock()
	s.toolRuns++
	run := s.toolRuns
	batch := s.logs.AppendBatch(s.toolLines...)
	s.mu.Unlock()

	ids := make([]string, len(batch))
	lines := make([]string, len(batch))
	for i, e := range batch {
		ids[i] = e.ID
		lines[i] = e.Text
	}
	s.emit(&events.ToolchainRunEvent{
		BaseEvent: s.base(events.EventToolchainRun),
		Run:       run,
		EntryIDs:  ids,
		Lines:     lines,
	})
	return batch
}

// ClearLogs empties the execution log and returns how many entries were removed.
func (s *Session) ClearLogs() int {
	removed := s.logs.Clear()
	s.emit(&events.LogClearedEvent{
		BaseEvent: s.base(events.EventLogCleared),
		Removed:   removed,
	})
	return removed
}

// RunValidation advances the validation status and stamps the run time.
func (s *Session) RunValidation() string {
	s.mu.Lock()
	status := s.validation.Advance()
	s.validationRuns++
	runs := s.validationRuns
	s.lastValidation = s.now()
	s.mu.Unlock()

	s.emit(&events.ValidationRunEvent{
		BaseEvent: s.base(events.EventValidationRun),
		Status:    status,
		Runs:      runs,
	})
	return status
}

// StoreSnapshot adds one snapshot and its memory footprint to the vault.
func (s *Session) StoreSnapshot() (snapshots int, memoryGB float64) {
	s.mu.Lock()
	s.snapshots++
	s.memoryTenths += s.memoryStepTenths
	s.lastSync = s.now()
	snapshots, memoryGB = s.snapshots, float64(s.memoryTenths)/10
	s.mu.Unlock()

	s.emit(&events.SnapshotStoredEvent{
		BaseEvent: s.base(events.EventSnapshotStored),
		Snapshots: snapshots,
		MemoryGB:  memoryGB,
	})
	return snapshots, memoryGB
}

// Purge empties the vault and returns how many snapshots were dropped.
func (s *Session) Purge() int {
	s.mu.Lock()
	removed := s.snapshots
	s.snapshots = 0
	s.memoryTenths = 0
	s.lastSync = s.now()
	s.mu.Unlock()

	s.emit(&events.VaultPurgedEvent{
		BaseEvent: s.base(events.EventVaultPurged),
		Removed:   removed,
	})
	return removed
}

// Now reads the session clock.
func (s *Session) Now() time.Time {
	return s.now()
}

// FormatTime renders t with the configured clock layout.
func (s *Session) FormatTime(t time.Time) string {
	return t.Format(s.timeFormat)
}

// Snapshot returns a consistent copy of every screen's state.
func (s *Session) Snapshot() viewmodel.ShellView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	steps := make([]viewmodel.StepView, len(s.steps))
	for i, step := range s.steps {
		status, _ := s.workflow.Current(step.ID)
		steps[i] = viewmodel.StepView{
			ID:     step.ID,
			Title:  step.Title,
			Note:   step.Note,
			Status: status,
		}
	}

	entries := s.logs.All()
	logs := make([]viewmodel.LogLine, len(entries))
	for i, e := range entries {
		logs[i] = viewmodel.LogLine{ID: e.ID, Time: e.Time, Text: e.Text}
	}

	overview := s.overview
	overview.Metrics = append([]viewmodel.Metric(nil), s.overview.Metrics...)
	overview.Highlights = append([]string(nil), s.overview.Highlights...)

	return viewmodel.ShellView{
		Screen:   string(s.screen),
		TakenAt:  now,
		Overview: overview,
		Workflow: steps,
		Tooling: viewmodel.ToolingView{
			Runs: s.toolRuns,
			Logs: logs,
		},
		Validation: viewmodel.ValidationView{
			Status:  s.validation.Current(),
			Runs:    s.validationRuns,
			LastRun: s.lastValidation,
		},
		DataVault: viewmodel.DataVaultView{
			Snapshots:  s.snapshots,
			MemoryGB:   float64(s.memoryTenths) / 10,
			LastSync:   s.lastSync,
			LastSyncAt: syncLabel(s.lastSync, now),
			Retention:  s.retention,
		},
	}
}

// syncLabel renders a sync time relative to now.
func syncLabel(at, now time.Time) string {
	if now.Sub(at) < justNowWindow {
		return "Just now"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}
