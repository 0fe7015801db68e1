package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/agentshell/internal/events"
	"github.com/npratt/agentshell/internal/shell"
)

// tickInterval refreshes relative labels such as the DataVault last sync.
const tickInterval = time.Second

// channelClosedMsg signals that the event channel was closed.
type channelClosedMsg struct{}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// waitForEvent creates a command that waits for the next event from the channel.
// Returns channelClosedMsg if the channel is closed and nil for a nil channel.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}
		return eventMsg(event)
	}
}

// doTick creates a command that waits for the tick interval and sends a tickMsg.
func doTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case eventMsg:
		m.handleEvent(events.Event(msg))
		return m, waitForEvent(m.eventChan)

	case channelClosedMsg:
		slog.Info("event channel closed, exiting TUI")
		return m, tea.Quit

	case tickMsg:
		m.refresh()
		return m, doTick()

	case tea.MouseMsg:
		if m.screen() == shell.ScreenTooling {
			var cmd tea.Cmd
			m.logView, cmd = m.logView.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		return m, nil
	}
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		target := shell.Screens[msg.String()[0]-'1']
		m.session.SetScreen(target)

	case key.Matches(msg, m.keys.Next):
		m.session.MoveScreen(1)

	case key.Matches(msg, m.keys.Prev):
		m.session.MoveScreen(-1)

	case key.Matches(msg, m.keys.Up):
		if m.screen() == shell.ScreenTooling {
			m.logView.LineUp(1)
			return m, nil
		}
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.screen() == shell.ScreenTooling {
			m.logView.LineDown(1)
			return m, nil
		}
		if m.selected < len(m.view.Workflow)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Action):
		m.runAction()

	case key.Matches(msg, m.keys.Clear):
		m.session.ClearLogs()

	case key.Matches(msg, m.keys.Purge):
		m.session.Purge()

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// runAction fires the active screen's primary trigger.
func (m *model) runAction() {
	switch m.screen() {
	case shell.ScreenWorkflow:
		if len(m.view.Workflow) == 0 {
			return
		}
		id := m.view.Workflow[m.selected].ID
		if _, err := m.session.CycleStep(id); err != nil {
			slog.Error("cycle step failed", "step", id, "error", err)
			m.status, m.statusErr = err.Error(), true
		}
	case shell.ScreenTooling:
		m.session.RunToolchain()
		m.logView.GotoTop()
	case shell.ScreenValidation:
		m.session.RunValidation()
	case shell.ScreenDataVault:
		m.session.StoreSnapshot()
	}
}

// handleEvent records the event on the status line and refreshes the view.
func (m *model) handleEvent(event events.Event) {
	if text := events.Format(event); text != "" {
		_, isErr := event.(*events.ErrorEvent)
		m.status, m.statusErr = text, isErr
	}
	m.refresh()
}
