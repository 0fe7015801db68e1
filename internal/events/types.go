// Package events defines the event taxonomy emitted by the shell session and
// the plumbing that routes events to the TUI, the headless printer and the
// on-disk journal.
package events

import "time"

// EventType identifies the category and nature of an event.
type EventType string

const (
	// Session lifecycle
	EventSessionStart EventType = "session.start"
	EventSessionEnd   EventType = "session.end"

	// Navigation
	EventScreenChanged EventType = "screen.changed"

	// Workflow screen
	EventStepCycled EventType = "workflow.step_cycled"

	// Tooling screen
	EventToolchainRun EventType = "tooling.run"
	EventLogCleared   EventType = "tooling.log_cleared"

	// Validation screen
	EventValidationRun EventType = "validation.run"

	// DataVault screen
	EventSnapshotStored EventType = "datavault.snapshot"
	EventVaultPurged    EventType = "datavault.purge"

	// Errors
	EventError EventType = "error"
)

// Source constants identify the origin of events.
const (
	SourceShell = "shell"
	SourceTUI   = "tui"
	SourceCLI   = "cli"
)

// Event is the base interface for all events in the system.
type Event interface {
	Type() EventType
	Timestamp() time.Time
	Source() string
}

// BaseEvent provides the common fields for all events.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      time.Time `json:"timestamp"`
	Src       string    `json:"source"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// Source returns the origin of the event.
func (e BaseEvent) Source() string {
	return e.Src
}

// SessionStartEvent is emitted when a shell session begins.
type SessionStartEvent struct {
	BaseEvent
	Mode   string `json:"mode"` // "tui", "headless" or "script"
	Screen string `json:"screen"`
}

// SessionEndEvent is emitted when a shell session ends.
type SessionEndEvent struct {
	BaseEvent
	Reason string `json:"reason,omitempty"`
}

// ScreenChangedEvent is emitted when the active screen changes.
type ScreenChangedEvent struct {
	BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

// StepCycledEvent is emitted when a workflow step advances its status.
type StepCycledEvent struct {
	BaseEvent
	StepID string `json:"step_id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ToolchainRunEvent is emitted when a mock toolchain run appends its log batch.
type ToolchainRunEvent struct {
	BaseEvent
	Run      int      `json:"run"`
	EntryIDs []string `json:"entry_ids"`
	Lines    []string `json:"lines"`
}

// LogClearedEvent is emitted when the tooling log is cleared.
type LogClearedEvent struct {
	BaseEvent
	Removed int `json:"removed"`
}

// ValidationRunEvent is emitted when a validation run flips the status.
type ValidationRunEvent struct {
	BaseEvent
	Status string `json:"status"`
	Runs   int    `json:"runs"`
}

// SnapshotStoredEvent is emitted when a DataVault snapshot is stored.
type SnapshotStoredEvent struct {
	BaseEvent
	Snapshots int     `json:"snapshots"`
	MemoryGB  float64 `json:"memory_gb"`
}

// VaultPurgedEvent is emitted when the DataVault is purged.
type VaultPurgedEvent struct {
	BaseEvent
	Removed int `json:"removed"`
}

// ErrorEvent is emitted when a trigger fails.
type ErrorEvent struct {
	BaseEvent
	Message string `json:"message"`
	Command string `json:"command,omitempty"`
}

// NewEvent creates a BaseEvent with the current timestamp.
func NewEvent(eventType EventType, source string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Src:       source,
	}
}

// NewShellEvent creates a BaseEvent with the shell session as the source.
func NewShellEvent(eventType EventType) BaseEvent {
	return NewEvent(eventType, SourceShell)
}
