package events

import (
	"fmt"
	"strings"

	"github.com/npratt/agentshell/internal/viewmodel"
)

const (
	maxLineLength     = 160
	truncateIndicator = "..."
)

// Format converts an event to a one-line human-readable description.
// Returns empty string for nil or unknown event types.
func Format(event Event) string {
	if event == nil {
		return ""
	}

	switch e := event.(type) {
	case *SessionStartEvent:
		return fmt.Sprintf("session started (%s, screen %s)", e.Mode, e.Screen)
	case *SessionEndEvent:
		if e.Reason != "" {
			return "session ended: " + e.Reason
		}
		return "session ended"
	case *ScreenChangedEvent:
		return fmt.Sprintf("screen: %s → %s", e.From, e.To)
	case *StepCycledEvent:
		return fmt.Sprintf("step %s: %s → %s", e.StepID, e.From, e.To)
	case *ToolchainRunEvent:
		return formatToolchainRun(e)
	case *LogClearedEvent:
		return fmt.Sprintf("execution log cleared (%d entries)", e.Removed)
	case *ValidationRunEvent:
		return fmt.Sprintf("validation #%d: %s", e.Runs, e.Status)
	case *SnapshotStoredEvent:
		return fmt.Sprintf("snapshot stored: %d snapshots, %s", e.Snapshots, viewmodel.FormatGB(e.MemoryGB))
	case *VaultPurgedEvent:
		return fmt.Sprintf("datavault purged (%d snapshots removed)", e.Removed)
	case *ErrorEvent:
		if e.Command != "" {
			return truncate(fmt.Sprintf("error: %s (%s)", e.Message, e.Command), maxLineLength)
		}
		return truncate("error: "+e.Message, maxLineLength)
	default:
		return ""
	}
}

func formatToolchainRun(e *ToolchainRunEvent) string {
	if len(e.Lines) == 0 {
		return fmt.Sprintf("toolchain run #%d", e.Run)
	}
	return truncate(fmt.Sprintf("toolchain run #%d: %s", e.Run, strings.Join(e.Lines, "; ")), maxLineLength)
}

// truncate shortens s to at most max runes, marking the cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= len(truncateIndicator) {
		return string(r[:max])
	}
	return string(r[:max-len(truncateIndicator)]) + truncateIndicator
}
