package normalize

import (
	"github.com/dshills/actionbind/internal/input/action"
)

// Normalizer turns records into events and records their strength in the
// registry.
type Normalizer struct {
	registry *action.Registry
}

// New creates a normalizer over registry.
func New(registry *action.Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

// Normalize resolves the record's actions and presses each of them with
// the record's strength. Key records press through PressKey, so they
// replace whatever their key carried over from the previous frame. The registry is updated before the event is
// returned, so subscribers observe the new state.
//
// A direct record maps to exactly its action. A key record maps to every
// action bound to the key, in registration order; the list may be empty.
func (n *Normalizer) Normalize(rec Record) Event {
	var actions []string
	if rec.IsDirect() {
		actions = []string{rec.Action}
	} else {
		actions = n.registry.ActionsForKey(rec.Key)
	}

	for _, name := range actions {
		if rec.IsDirect() {
			n.registry.Press(name, rec.Strength)
		} else {
			n.registry.PressKey(name, rec.Key, rec.Strength)
		}
	}
	return NewEvent(rec, actions, n.registry)
}
