package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/npratt/agentshell/internal/viewmodel"
)

// EmptyLogHint is shown when the execution log has no entries.
const EmptyLogHint = `No runs yet. Tap "Run Toolchain".`

// NeverRun is shown for a validation that has not run yet.
const NeverRun = "—"

// Describe renders one screen of view as plain text for the headless and
// script modes.
func Describe(view viewmodel.ShellView, screen Screen, stamp func(time.Time) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", screen.Label())

	switch screen {
	case ScreenOverview:
		if view.Overview.Summary != "" {
			fmt.Fprintf(&b, "%s\n", view.Overview.Summary)
		}
		for _, m := range view.Overview.Metrics {
			fmt.Fprintf(&b, "  %-16s %6s  %s\n", m.Label, m.Value, m.Note)
		}
		for _, h := range view.Overview.Highlights {
			fmt.Fprintf(&b, "  • %s\n", h)
		}

	case ScreenWorkflow:
		for _, step := range view.Workflow {
			fmt.Fprintf(&b, "  %-10s %-18s %s\n", step.Status, step.Title, step.Note)
		}

	case ScreenTooling:
		fmt.Fprintf(&b, "  runs: %d\n", view.Tooling.Runs)
		if len(view.Tooling.Logs) == 0 {
			fmt.Fprintf(&b, "  %s\n", EmptyLogHint)
		}
		for _, line := range view.Tooling.Logs {
			fmt.Fprintf(&b, "  %s\n", LogText(line, stamp))
		}

	case ScreenValidation:
		fmt.Fprintf(&b, "  status:   %s\n", view.Validation.Status)
		fmt.Fprintf(&b, "  last run: %s\n", LastRunText(view.Validation, stamp))

	case ScreenDataVault:
		fmt.Fprintf(&b, "  snapshots: %d\n", view.DataVault.Snapshots)
		fmt.Fprintf(&b, "  memory:    %s\n", viewmodel.FormatGB(view.DataVault.MemoryGB))
		fmt.Fprintf(&b, "  last sync: %s\n", view.DataVault.LastSyncAt)
		fmt.Fprintf(&b, "  retention: %s\n", view.DataVault.Retention)
	}

	return strings.TrimRight(b.String(), "\n")
}

// LogText renders a log line as "[stamp] text".
func LogText(line viewmodel.LogLine, stamp func(time.Time) string) string {
	return fmt.Sprintf("[%s] %s", stamp(line.Time), line.Text)
}

// LastRunText renders the validation's last run stamp, or NeverRun.
func LastRunText(v viewmodel.ValidationView, stamp func(time.Time) string) string {
	if v.LastRun.IsZero() {
		return NeverRun
	}
	return stamp(v.LastRun)
}
