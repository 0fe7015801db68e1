package events

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"nil", nil, ""},
		{
			"session start",
			&SessionStartEvent{BaseEvent: NewShellEvent(EventSessionStart), Mode: "headless", Screen: "workflow"},
			"session started (headless, screen workflow)",
		},
		{"session end no reason", &SessionEndEvent{BaseEvent: NewShellEvent(EventSessionEnd)}, "session ended"},
		{"session end reason", &SessionEndEvent{BaseEvent: NewShellEvent(EventSessionEnd), Reason: "eof"}, "session ended: eof"},
		{
			"screen change",
			&ScreenChangedEvent{BaseEvent: NewShellEvent(EventScreenChanged), From: "overview", To: "datavault"},
			"screen: overview → datavault",
		},
		{
			"step cycled",
			&StepCycledEvent{BaseEvent: NewShellEvent(EventStepCycled), StepID: "parse", From: "Done", To: "Pending"},
			"step parse: Done → Pending",
		},
		{"toolchain no lines", &ToolchainRunEvent{BaseEvent: NewShellEvent(EventToolchainRun), Run: 1}, "toolchain run #1"},
		{
			"toolchain lines",
			&ToolchainRunEvent{BaseEvent: NewShellEvent(EventToolchainRun), Run: 3, Lines: []string{"a", "b"}},
			"toolchain run #3: a; b",
		},
		{"log cleared", &LogClearedEvent{BaseEvent: NewShellEvent(EventLogCleared), Removed: 9}, "execution log cleared (9 entries)"},
		{"validation", &ValidationRunEvent{BaseEvent: NewShellEvent(EventValidationRun), Status: "Failed", Runs: 1}, "validation #1: Failed"},
		{
			"snapshot",
			&SnapshotStoredEvent{BaseEvent: NewShellEvent(EventSnapshotStored), Snapshots: 13, MemoryGB: 2},
			"snapshot stored: 13 snapshots, 2 GB",
		},
		{"purge", &VaultPurgedEvent{BaseEvent: NewShellEvent(EventVaultPurged), Removed: 12}, "datavault purged (12 snapshots removed)"},
		{"error", &ErrorEvent{BaseEvent: NewShellEvent(EventError), Message: "bad"}, "error: bad"},
		{"error with command", &ErrorEvent{BaseEvent: NewShellEvent(EventError), Message: "bad", Command: "cycle x"}, "error: bad (cycle x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.event); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 2, "ab"},
		{"ééééééé", 5, "éé..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormat_LongErrorTruncated(t *testing.T) {
	got := Format(&ErrorEvent{BaseEvent: NewShellEvent(EventError), Message: strings.Repeat("x", 500)})
	if len([]rune(got)) != maxLineLength {
		t.Errorf("length = %d, want %d", len([]rune(got)), maxLineLength)
	}
}
