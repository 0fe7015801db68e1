package shell

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScreen is returned when a screen name does not match any screen.
var ErrUnknownScreen = errors.New("unknown screen")

// Screen identifies one of the shell's screens.
type Screen string

// The screens in navigation order.
const (
	ScreenOverview   Screen = "overview"
	ScreenWorkflow   Screen = "workflow"
	ScreenTooling    Screen = "tooling"
	ScreenValidation Screen = "validation"
	ScreenDataVault  Screen = "datavault"
)

// Screens lists every screen in navigation order.
var Screens = []Screen{
	ScreenOverview,
	ScreenWorkflow,
	ScreenTooling,
	ScreenValidation,
	ScreenDataVault,
}

var screenLabels = map[Screen]string{
	ScreenOverview:   "Overview",
	ScreenWorkflow:   "Workflow",
	ScreenTooling:    "Tooling",
	ScreenValidation: "Validation",
	ScreenDataVault:  "DataVault",
}

// Label returns the navigation label for the screen.
func (s Screen) Label() string {
	if l, ok := screenLabels[s]; ok {
		return l
	}
	return string(s)
}

// Index returns the screen's position in Screens, or -1.
func (s Screen) Index() int {
	for i, sc := range Screens {
		if sc == s {
			return i
		}
	}
	return -1
}

// ParseScreen resolves a case-insensitive screen name or 1-based number.
func ParseScreen(name string) (Screen, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range Screens {
		if n == string(s) || n == fmt.Sprint(i+1) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
}

// offsetScreen returns the screen delta positions away from s, wrapping.
func offsetScreen(s Screen, delta int) Screen {
	i := s.Index()
	if i < 0 {
		i = 0
	}
	n := len(Screens)
	return Screens[((i+delta)%n+n)%n]
}
