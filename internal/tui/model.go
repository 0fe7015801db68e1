package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/agentshell/internal/config"
	"github.com/npratt/agentshell/internal/events"
	"github.com/npratt/agentshell/internal/shell"
	"github.com/npratt/agentshell/internal/viewmodel"
)

// Layout size constants.
const (
	minWidth  = 60
	minHeight = 18

	// chromeLines is everything outside the screen body: borders (2),
	// header (3), dividers (2), nav (1), status (1), help (1).
	chromeLines = 10
)

// model is the bubbletea model for the TUI.
type model struct {
	session   *shell.Session
	eventChan <-chan events.Event
	header    config.UIConfig

	// Latest read model, refreshed after every trigger and event
	view     viewmodel.ShellView
	selected int // Workflow step under the cursor

	// Last event or error line shown above the help footer
	status    string
	statusErr bool

	// UI state
	width   int
	height  int
	keys    keyMap
	help    help.Model
	logView viewport.Model

	onQuit func()
}

// eventMsg wraps an event for the bubbletea message system.
type eventMsg events.Event

// newModel creates a model bound to session. eventChan may be nil.
func newModel(session *shell.Session, eventChan <-chan events.Event, header config.UIConfig, onQuit func()) model {
	m := model{
		session:   session,
		eventChan: eventChan,
		header:    header,
		keys:      defaultKeyMap(),
		help:      help.New(),
		logView:   viewport.New(0, 0),
		onQuit:    onQuit,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.eventChan),
		doTick(),
	)
}

// Update, handleKey, handleEvent are implemented in update.go
// View is implemented in view.go

// screen returns the active screen.
func (m model) screen() shell.Screen {
	return shell.Screen(m.view.Screen)
}

// refresh pulls a fresh snapshot and rebuilds derived UI state.
func (m *model) refresh() {
	m.view = m.session.Snapshot()
	if n := len(m.view.Workflow); m.selected >= n {
		m.selected = max(0, n-1)
	}
	m.keys.forScreen(m.screen())
	m.logView.SetContent(m.renderLogLines(m.logView.Width))
}

// resize applies a new terminal size to the sized components.
func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = safeWidth(width - 4)
	m.logView.Width = safeWidth(width - 4)
	// Tooling body spends two lines on its card title and copy.
	m.logView.Height = max(1, height-chromeLines-3)
	m.logView.SetContent(m.renderLogLines(m.logView.Width))
}
