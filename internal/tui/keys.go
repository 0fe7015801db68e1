package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/npratt/agentshell/internal/shell"
)

// keyMap holds every binding the shell responds to. Bindings that do not
// apply to the active screen are disabled so help only lists live keys.
type keyMap struct {
	Jump   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Action key.Binding
	Clear  key.Binding
	Purge  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "jump"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next screen"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "prev screen"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Action: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "run"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear logs"),
		),
		Purge: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "purge"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// actionHelp is the enter-key description per screen. Screens without a
// primary action are absent.
var actionHelp = map[shell.Screen]string{
	shell.ScreenWorkflow:   "cycle step",
	shell.ScreenTooling:    "run toolchain",
	shell.ScreenValidation: "run validation",
	shell.ScreenDataVault:  "store snapshot",
}

// forScreen enables the bindings that apply to screen.
func (k *keyMap) forScreen(screen shell.Screen) {
	desc, ok := actionHelp[screen]
	k.Action.SetEnabled(ok)
	if ok {
		k.Action.SetHelp("enter", desc)
	}

	scrolls := screen == shell.ScreenWorkflow || screen == shell.ScreenTooling
	k.Up.SetEnabled(scrolls)
	k.Down.SetEnabled(scrolls)
	if screen == shell.ScreenWorkflow {
		k.Up.SetHelp("↑/k", "prev step")
		k.Down.SetHelp("↓/j", "next step")
	} else {
		k.Up.SetHelp("↑/k", "scroll up")
		k.Down.SetHelp("↓/j", "scroll down")
	}

	k.Clear.SetEnabled(screen == shell.ScreenTooling)
	k.Purge.SetEnabled(screen == shell.ScreenDataVault)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Clear, k.Purge, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Action, k.Clear, k.Purge},
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Jump},
		{k.Help, k.Quit},
	}
}
