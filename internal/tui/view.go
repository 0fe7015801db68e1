package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/agentshell/internal/shell"
)

// View implements tea.Model. This renders the full TUI display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	w := safeWidth(m.width - 4) // Account for container borders
	bodyHeight := max(1, m.height-chromeLines)

	var sections []string
	sections = append(sections, m.renderHeader(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderBody(w, bodyHeight))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderNav(w))
	sections = append(sections, m.renderStatus(w))
	sections = append(sections, m.help.View(m.keys))

	content := strings.Join(sections, "\n")

	rendered := styles.Container.
		Width(safeWidth(m.width - 2)).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, rendered)
}

// renderTooSmall renders a minimal message for terminals that are too small.
func (m model) renderTooSmall() string {
	return fmt.Sprintf("Terminal too small (%dx%d). Need %dx%d minimum.",
		m.width, m.height, minWidth, minHeight)
}

// renderHeader renders the eyebrow, title and subtitle.
func (m model) renderHeader(w int) string {
	return strings.Join([]string{
		styles.Eyebrow.Render(fitLine(strings.ToUpper(m.header.Eyebrow), w)),
		styles.Title.Render(fitLine(m.header.Title, w)),
		styles.Subtitle.Render(fitLine(m.header.Subtitle, w)),
	}, "\n")
}

// renderDivider renders a horizontal divider line.
func (m model) renderDivider(w int) string {
	return styles.Divider.Render(strings.Repeat("─", w))
}

// renderNav renders the bottom navigation bar with the active screen highlighted.
func (m model) renderNav(w int) string {
	active := m.screen()
	items := make([]string, len(shell.Screens))
	for i, s := range shell.Screens {
		label := fmt.Sprintf("%d %s", i+1, s.Label())
		if s == active {
			items[i] = styles.NavActive.Render(label)
		} else {
			items[i] = styles.NavItem.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	if lipgloss.Width(bar) > w {
		// Drop the numbers before clipping labels.
		for i, s := range shell.Screens {
			if s == active {
				items[i] = styles.NavActive.Render(s.Label())
			} else {
				items[i] = styles.NavItem.Render(s.Label())
			}
		}
		bar = lipgloss.JoinHorizontal(lipgloss.Top, items...)
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, bar)
}

// renderStatus renders the last event line, or a blank line.
func (m model) renderStatus(w int) string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styles.Error.Render(fitLine(m.status, w))
	}
	return styles.Status.Render(fitLine(m.status, w))
}

// renderBody renders the active screen clipped to height lines.
func (m model) renderBody(w, height int) string {
	var body string
	switch m.screen() {
	case shell.ScreenOverview:
		body = m.renderOverview(w)
	case shell.ScreenWorkflow:
		body = m.renderWorkflow(w)
	case shell.ScreenTooling:
		body = m.renderTooling(w)
	case shell.ScreenValidation:
		body = m.renderValidation(w)
	case shell.ScreenDataVault:
		body = m.renderDataVault(w)
	}
	return clipLines(body, height)
}

// clipLines keeps at most n lines of s and pads short content to n lines.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// safeWidth returns a width that is at least 1 to prevent negative values.
func safeWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
