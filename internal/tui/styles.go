package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Eyebrow  lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Navigation
	NavItem   lipgloss.Style
	NavActive lipgloss.Style

	// Cards
	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	CardCopy   lipgloss.Style
	MetricName lipgloss.Style
	MetricVal  lipgloss.Style
	MetricNote lipgloss.Style

	// Workflow
	Cursor   lipgloss.Style
	StepName lipgloss.Style
	StepNote lipgloss.Style

	// Log
	LogTime lipgloss.Style
	LogText lipgloss.Style
	Empty   lipgloss.Style

	// Footer
	Status lipgloss.Style
	Error  lipgloss.Style

	// Status badges
	BadgeIdle   lipgloss.Style
	BadgeActive lipgloss.Style
	BadgeDone   lipgloss.Style
	BadgeFailed lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Eyebrow: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")),

	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	NavItem: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 1),

	NavActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("63")).
		Padding(0, 1),

	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1),

	CardTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	CardCopy: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	MetricName: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	MetricVal: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220")),

	MetricNote: lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")),

	Cursor: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")),

	StepName: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),

	StepNote: lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")),

	LogTime: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	LogText: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	Empty: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("241")),

	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("177")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),

	BadgeIdle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	BadgeActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")),

	BadgeDone: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	BadgeFailed: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196")),
}

// badgeStyle picks a colour for a status label. Labels come from config, so
// anything unrecognised renders neutral.
func badgeStyle(status string) lipgloss.Style {
	switch status {
	case "Running":
		return styles.BadgeActive
	case "Done", "Passed":
		return styles.BadgeDone
	case "Failed":
		return styles.BadgeFailed
	default:
		return styles.BadgeIdle
	}
}
