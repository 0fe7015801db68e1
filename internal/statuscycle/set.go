package statuscycle

import "fmt"

// Set holds one Cycle per tracked item, all sharing the same state order.
// Item order is the order given at construction.
type Set struct {
	ids    []string
	cycles map[string]*Cycle
}

// NewSet creates a Set with a fresh cycle for each id.
// Duplicate or empty ids are rejected.
func NewSet(states []string, ids ...string) (*Set, error) {
	if err := validate(states); err != nil {
		return nil, err
	}

	s := &Set{cycles: make(map[string]*Cycle, len(ids))}
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty item id", ErrInvalidConfiguration)
		}
		if _, dup := s.cycles[id]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrInvalidConfiguration, id)
		}
		c, _ := New(states...)
		s.cycles[id] = c
		s.ids = append(s.ids, id)
	}
	return s, nil
}

// Advance advances the cycle for id and returns its new label.
func (s *Set) Advance(id string) (string, error) {
	c, ok := s.cycles[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return c.Advance(), nil
}

// Current returns the current label for id.
func (s *Set) Current(id string) (string, error) {
	c, ok := s.cycles[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return c.Current(), nil
}

// IDs returns the tracked ids in construction order.
func (s *Set) IDs() []string {
	return append([]string(nil), s.ids...)
}
