package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/agentshell/internal/shell"
	"github.com/npratt/agentshell/internal/viewmodel"
)

// Card copy for each screen.
const (
	overviewTitle   = "Framework Summary"
	highlightsTitle = "Highlights"

	workflowTitle = "Workflow Steps"
	workflowCopy  = "Select a step and press enter to cycle its status."

	toolingTitle = "Tool Orchestration"
	toolingCopy  = "Trigger a mock tool run to generate execution logs."
	logsTitle    = "Execution Logs"

	validationTitle = "Dual LLM Validation"
	validationCopy  = "Simulate a verification loop. Each run flips pass/fail."

	vaultTitle = "DataVault Storage"
	vaultCopy  = "External storage offloads intermediate context to keep the main model lean."
)

// minCardWidth is the narrowest metric card before cards wrap to fewer per row.
const minCardWidth = 18

func (m model) renderOverview(w int) string {
	ov := m.view.Overview

	lines := []string{
		styles.CardTitle.Render(overviewTitle),
		styles.CardCopy.Width(w).Render(safeString(ov.Summary)),
		renderMetrics(ov.Metrics, w),
		styles.CardTitle.Render(highlightsTitle),
	}
	for _, h := range ov.Highlights {
		lines = append(lines, styles.CardCopy.Render(fitLine("• "+h, w)))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderWorkflow(w int) string {
	lines := []string{
		styles.CardTitle.Render(workflowTitle),
		styles.CardCopy.Render(fitLine(workflowCopy, w)),
	}

	titleWidth := 0
	for _, step := range m.view.Workflow {
		titleWidth = max(titleWidth, lipgloss.Width(step.Title))
	}

	for i, step := range m.view.Workflow {
		cursor := "  "
		if i == m.selected {
			cursor = styles.Cursor.Render("› ")
		}
		badge := badgeStyle(step.Status).Render(statusSymbol(step.Status) + " " + step.Status)
		title := styles.StepName.Render(fmt.Sprintf("%-*s", titleWidth, fitLine(step.Title, max(1, w/2))))
		lines = append(lines,
			cursor+title+"  "+badge,
			"    "+styles.StepNote.Render(fitLine(step.Note, max(1, w-4))),
		)
	}
	return strings.Join(lines, "\n")
}

func (m model) renderTooling(w int) string {
	tooling := m.view.Tooling
	lines := []string{
		styles.CardTitle.Render(toolingTitle),
		styles.CardCopy.Render(fitLine(toolingCopy, w)),
		styles.CardTitle.Render(logsTitle) + styles.MetricNote.Render(fmt.Sprintf("  %d runs", tooling.Runs)),
	}
	if len(tooling.Logs) == 0 {
		lines = append(lines, styles.Empty.Render(fitLine(shell.EmptyLogHint, w)))
	} else {
		lines = append(lines, m.logView.View())
	}
	return strings.Join(lines, "\n")
}

// renderLogLines renders the execution log newest first for the viewport.
func (m model) renderLogLines(w int) string {
	logs := m.view.Tooling.Logs
	if len(logs) == 0 || w <= 0 {
		return ""
	}
	out := make([]string, len(logs))
	for i, l := range logs {
		stamp := "[" + m.session.FormatTime(l.Time) + "] "
		text := fitLine(l.Text, max(1, w-lipgloss.Width(stamp)))
		out[i] = styles.LogTime.Render(stamp) + styles.LogText.Render(text)
	}
	return strings.Join(out, "\n")
}

func (m model) renderValidation(w int) string {
	v := m.view.Validation
	return strings.Join([]string{
		styles.CardTitle.Render(validationTitle),
		styles.CardCopy.Render(fitLine(validationCopy, w)),
		"",
		styles.MetricName.Render("Current Status"),
		badgeStyle(v.Status).Render(statusSymbol(v.Status) + " " + v.Status),
		styles.MetricNote.Render("Last run: " + shell.LastRunText(v, m.session.FormatTime)),
		styles.MetricNote.Render(fmt.Sprintf("Runs: %d", v.Runs)),
	}, "\n")
}

func (m model) renderDataVault(w int) string {
	dv := m.view.DataVault
	metrics := []viewmodel.Metric{
		{Label: "Snapshots", Value: fmt.Sprint(dv.Snapshots), Note: "Stored tasks"},
		{Label: "Memory", Value: viewmodel.FormatGB(dv.MemoryGB), Note: "Context offload"},
		{Label: "Last Sync", Value: dv.LastSyncAt, Note: "DataVault"},
		{Label: "Retention", Value: dv.Retention, Note: "Policy"},
	}
	return strings.Join([]string{
		styles.CardTitle.Render(vaultTitle),
		styles.CardCopy.Width(w).Render(vaultCopy),
		renderMetrics(metrics, w),
	}, "\n")
}

// renderMetrics lays metric cards out in rows of up to four.
func renderMetrics(metrics []viewmodel.Metric, w int) string {
	perRow := 4
	for perRow > 1 && w/perRow < minCardWidth {
		perRow /= 2
	}
	cardWidth := w / perRow

	var rows []string
	for i := 0; i < len(metrics); i += perRow {
		end := min(i+perRow, len(metrics))
		cards := make([]string, 0, end-i)
		for _, mt := range metrics[i:end] {
			cards = append(cards, renderMetric(mt, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderMetric renders one bordered card that is outer cells wide.
func renderMetric(mt viewmodel.Metric, outer int) string {
	inner := safeWidth(outer - 4) // border + padding
	content := strings.Join([]string{
		styles.MetricName.Render(fitLine(mt.Label, inner)),
		styles.MetricVal.Render(fitLine(mt.Value, inner)),
		styles.MetricNote.Render(fitLine(mt.Note, inner)),
	}, "\n")
	return styles.Card.Width(safeWidth(outer - 2)).Render(content)
}
