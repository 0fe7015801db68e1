// Package statuscycle provides finite status values that rotate through a
// fixed order of labels on each trigger.
package statuscycle

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInvalidConfiguration is returned when a cycle is built without states
	// or with an empty label.
	ErrInvalidConfiguration = errors.New("statuscycle: invalid configuration")
	// ErrUnknownItem is returned when a Set has no cycle for the requested id.
	ErrUnknownItem = errors.New("statuscycle: unknown item")
)

// Cycle tracks one status that advances through a fixed ordered set of labels,
// wrapping back to the first label after the last.
type Cycle struct {
	mu      sync.Mutex
	states  []string
	current int
}

// New creates a Cycle positioned on the first of the given states.
func New(states ...string) (*Cycle, error) {
	if err := validate(states); err != nil {
		return nil, err
	}
	return &Cycle{
		states: append([]string(nil), states...),
	}, nil
}

func validate(states []string) error {
	if len(states) == 0 {
		return fmt.Errorf("%w: no states", ErrInvalidConfiguration)
	}
	for i, s := range states {
		if s == "" {
			return fmt.Errorf("%w: state %d is empty", ErrInvalidConfiguration, i)
		}
	}
	return nil
}

// Advance moves to the next state and returns its label.
func (c *Cycle) Advance() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = (c.current + 1) % len(c.states)
	return c.states[c.current]
}

// Current returns the label of the current state.
func (c *Cycle) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[c.current]
}

// Index returns the position of the current state.
func (c *Cycle) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Len returns the number of states in the cycle.
func (c *Cycle) Len() int {
	return len(c.states)
}

// States returns a copy of the state order.
func (c *Cycle) States() []string {
	return append([]string(nil), c.states...)
}
