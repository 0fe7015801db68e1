package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/agentshell/internal/config"
	"github.com/npratt/agentshell/internal/events"
	"github.com/npratt/agentshell/internal/shell"
)

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// newTestSession builds a default session on a fixed clock.
func newTestSession(t *testing.T, opts ...shell.Option) *shell.Session {
	t.Helper()
	opts = append([]shell.Option{shell.WithClock(func() time.Time { return testNow })}, opts...)
	s, err := shell.New(config.Default(), opts...)
	if err != nil {
		t.Fatalf("shell.New failed: %v", err)
	}
	return s
}

// newTestModel returns a sized model over a fresh session.
func newTestModel(t *testing.T) model {
	t.Helper()
	m := newModel(newTestSession(t), nil, config.Default().UI, nil)
	m.resize(100, 30)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m model, msgs ...tea.KeyMsg) model {
	for _, msg := range msgs {
		next, _ := m.handleKey(msg)
		m = next.(model)
	}
	return m
}

func TestHandleKey_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q key", runes("q")},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quitCalled := false
			m := newTestModel(t)
			m.onQuit = func() { quitCalled = true }

			_, cmd := m.handleKey(tt.msg)

			if !quitCalled {
				t.Error("onQuit callback should be called")
			}
			if cmd == nil {
				t.Error("should return tea.Quit command")
			}
		})
	}
}

func TestHandleKey_JumpToScreen(t *testing.T) {
	tests := []struct {
		key  string
		want shell.Screen
	}{
		{"1", shell.ScreenOverview},
		{"2", shell.ScreenWorkflow},
		{"3", shell.ScreenTooling},
		{"4", shell.ScreenValidation},
		{"5", shell.ScreenDataVault},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := press(newTestModel(t), runes(tt.key))
			if m.screen() != tt.want {
				t.Errorf("screen = %q, want %q", m.screen(), tt.want)
			}
		})
	}
}

func TestHandleKey_TabWraps(t *testing.T) {
	m := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.screen() != shell.ScreenDataVault {
		t.Errorf("shift+tab from overview = %q, want datavault", m.screen())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen() != shell.ScreenOverview {
		t.Errorf("tab from datavault = %q, want overview", m.screen())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.screen() != shell.ScreenTooling {
		t.Errorf("right twice = %q, want tooling", m.screen())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.screen() != shell.ScreenWorkflow {
		t.Errorf("left = %q, want workflow", m.screen())
	}
}

func TestHandleKey_WorkflowCycle(t *testing.T) {
	m := press(newTestModel(t), runes("2"))

	// Select "route" and cycle it twice.
	m = press(m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeySpace},
	)

	if m.selected != 2 {
		t.Fatalf("selected = %d, want 2", m.selected)
	}
	want := map[string]string{"parse": "Pending", "plan": "Pending", "route": "Done", "execute": "Pending"}
	for _, step := range m.view.Workflow {
		if step.Status != want[step.ID] {
			t.Errorf("%s status = %q, want %q", step.ID, step.Status, want[step.ID])
		}
	}
}

func TestHandleKey_WorkflowSelectionClamps(t *testing.T) {
	m := press(newTestModel(t), runes("2"))

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != 0 {
		t.Errorf("selected = %d after up at top, want 0", m.selected)
	}

	for i := 0; i < 10; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.selected != 3 {
		t.Errorf("selected = %d after many downs, want 3", m.selected)
	}
}

func TestHandleKey_ToolingRunAndClear(t *testing.T) {
	m := press(newTestModel(t), runes("3"))

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(m.view.Tooling.Logs); got != 6 {
		t.Fatalf("logs = %d after two runs, want 6", got)
	}
	if m.view.Tooling.Runs != 2 {
		t.Errorf("runs = %d, want 2", m.view.Tooling.Runs)
	}

	m = press(m, runes("c"))
	if got := len(m.view.Tooling.Logs); got != 0 {
		t.Errorf("logs = %d after clear, want 0", got)
	}
}

func TestHandleKey_ScreenScopedKeys(t *testing.T) {
	m := newTestModel(t)

	// c and x do nothing away from their screens.
	m = press(m, runes("3"), tea.KeyMsg{Type: tea.KeyEnter}, runes("1"), runes("c"), runes("x"))
	if got := len(m.view.Tooling.Logs); got != 3 {
		t.Errorf("clear fired off-screen: logs = %d", got)
	}
	if m.view.DataVault.Snapshots != 12 {
		t.Errorf("purge fired off-screen: snapshots = %d", m.view.DataVault.Snapshots)
	}

	// Overview has no primary action.
	before := m.view
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view.Tooling.Runs != before.Tooling.Runs || m.view.Validation.Runs != before.Validation.Runs {
		t.Error("enter on overview should not trigger anything")
	}
}

func TestHandleKey_Validation(t *testing.T) {
	m := press(newTestModel(t), runes("4"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.view.Validation.Status != "Failed" {
		t.Errorf("status = %q, want Failed", m.view.Validation.Status)
	}
	if !m.view.Validation.LastRun.Equal(testNow) {
		t.Errorf("last run = %v, want %v", m.view.Validation.LastRun, testNow)
	}
}

func TestHandleKey_DataVault(t *testing.T) {
	m := press(newTestModel(t), runes("5"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.view.DataVault.Snapshots != 13 {
		t.Errorf("snapshots = %d, want 13", m.view.DataVault.Snapshots)
	}

	m = press(m, runes("x"))
	if m.view.DataVault.Snapshots != 0 || m.view.DataVault.MemoryGB != 0 {
		t.Errorf("after purge: %+v", m.view.DataVault)
	}
}

func TestHandleKey_HelpToggle(t *testing.T) {
	m := newTestModel(t)

	m = press(m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
	m = press(m, runes("?"))
	if m.help.ShowAll {
		t.Error("second ? should collapse help")
	}
}

func TestKeyMap_ForScreen(t *testing.T) {
	tests := []struct {
		screen     shell.Screen
		action     bool
		actionHelp string
		clear      bool
		purge      bool
		arrows     bool
	}{
		{shell.ScreenOverview, false, "", false, false, false},
		{shell.ScreenWorkflow, true, "cycle step", false, false, true},
		{shell.ScreenTooling, true, "run toolchain", true, false, true},
		{shell.ScreenValidation, true, "run validation", false, false, false},
		{shell.ScreenDataVault, true, "store snapshot", false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.screen), func(t *testing.T) {
			k := defaultKeyMap()
			k.forScreen(tt.screen)

			if k.Action.Enabled() != tt.action {
				t.Errorf("Action enabled = %v, want %v", k.Action.Enabled(), tt.action)
			}
			if tt.action && k.Action.Help().Desc != tt.actionHelp {
				t.Errorf("Action help = %q, want %q", k.Action.Help().Desc, tt.actionHelp)
			}
			if k.Clear.Enabled() != tt.clear {
				t.Errorf("Clear enabled = %v, want %v", k.Clear.Enabled(), tt.clear)
			}
			if k.Purge.Enabled() != tt.purge {
				t.Errorf("Purge enabled = %v, want %v", k.Purge.Enabled(), tt.purge)
			}
			if k.Up.Enabled() != tt.arrows || k.Down.Enabled() != tt.arrows {
				t.Errorf("arrows enabled = %v/%v, want %v", k.Up.Enabled(), k.Down.Enabled(), tt.arrows)
			}
		})
	}
}

func TestUpdate_EventSetsStatus(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(eventMsg(&events.ValidationRunEvent{
		BaseEvent: events.BaseEvent{EventType: events.EventValidationRun, Time: testNow},
		Status:    "Failed",
		Runs:      1,
	}))
	m = next.(model)

	if m.status != "validation #1: Failed" {
		t.Errorf("status = %q", m.status)
	}
	if m.statusErr {
		t.Error("validation event should not be flagged as error")
	}
	if cmd != nil {
		t.Error("nil event channel should not schedule another wait")
	}

	next, _ = m.Update(eventMsg(&events.ErrorEvent{
		BaseEvent: events.BaseEvent{EventType: events.EventError, Time: testNow},
		Message:   "unknown item",
	}))
	if !next.(model).statusErr {
		t.Error("error event should be flagged")
	}
}

func TestUpdate_ChannelClosedQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(channelClosedMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("channel close should quit")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(model)

	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
	if m.logView.Width != 116 {
		t.Errorf("log viewport width = %d, want 116", m.logView.Width)
	}
	if m.logView.Height != 40-chromeLines-3 {
		t.Errorf("log viewport height = %d", m.logView.Height)
	}
}

func TestWaitForEvent(t *testing.T) {
	if waitForEvent(nil) != nil {
		t.Error("nil channel should produce no command")
	}

	ch := make(chan events.Event, 1)
	ev := &events.LogClearedEvent{BaseEvent: events.BaseEvent{EventType: events.EventLogCleared}}
	ch <- ev
	if msg := waitForEvent(ch)(); msg != eventMsg(ev) {
		t.Errorf("got %v, want the queued event", msg)
	}

	close(ch)
	if _, ok := waitForEvent(ch)().(channelClosedMsg); !ok {
		t.Error("closed channel should yield channelClosedMsg")
	}
}
