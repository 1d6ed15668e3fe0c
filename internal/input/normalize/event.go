package normalize

import (
	"fmt"
	"slices"

	"github.com/dshills/actionbind/internal/input/action"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/platform"
)

// States answers frame-level action queries. *action.Registry implements it.
type States interface {
	IsPressed(name string) bool
	IsJustPressed(name string) bool
	IsReleased(name string) bool
	IsJustReleased(name string) bool
}

// Event is the canonical, read-only view of one input occurrence handed to
// subscribers. Events are values; the action list is never shared.
type Event struct {
	key       key.Key
	kind      platform.Kind
	position  platform.Vec3
	delta     platform.Vec3
	strength  float64
	changed   bool
	modifiers key.Modifier
	actions   []string
	states    States
}

// NewEvent builds an event from a record and its resolved actions.
// The actions slice is copied.
func NewEvent(rec Record, actions []string, states States) Event {
	return Event{
		key:       rec.Key,
		kind:      rec.Kind,
		position:  rec.Position,
		delta:     rec.Delta,
		strength:  action.Clamp(rec.Strength),
		changed:   rec.Changed,
		modifiers: rec.Modifiers,
		actions:   slices.Clone(actions),
		states:    states,
	}
}

// Key returns the source key. Zero for direct-action events.
func (e Event) Key() key.Key { return e.key }

// Kind returns the platform event type.
func (e Event) Kind() platform.Kind { return e.kind }

// Position returns the sample position.
func (e Event) Position() platform.Vec3 { return e.position }

// Delta returns the sample delta.
func (e Event) Delta() platform.Vec3 { return e.delta }

// Strength returns the press strength in [0,1].
func (e Event) Strength() float64 { return e.strength }

// Changed returns true for events derived from a continuous sample.
func (e Event) Changed() bool { return e.changed }

// Modifiers returns the modifier keys held with the event.
func (e Event) Modifiers() key.Modifier { return e.modifiers }

// Actions returns a copy of the actions this event maps to.
func (e Event) Actions() []string { return slices.Clone(e.actions) }

// AsText returns the display name of the source key.
func (e Event) AsText() string { return e.key.String() }

// IsAction returns true if the event maps to the named action.
func (e Event) IsAction(name string) bool {
	return slices.Contains(e.actions, name)
}

// IsRawKey returns true if the event maps to no action at all.
func (e Event) IsRawKey() bool {
	return len(e.actions) == 0
}

// IsActionPressed returns true if the event maps to name and the action is
// pressed this frame.
func (e Event) IsActionPressed(name string) bool {
	return e.IsAction(name) && e.states != nil && e.states.IsPressed(name)
}

// IsActionJustPressed returns true if the event maps to name and the action
// became pressed this frame.
func (e Event) IsActionJustPressed(name string) bool {
	return e.IsAction(name) && e.states != nil && e.states.IsJustPressed(name)
}

// IsActionReleased returns true if the event maps to name and the action is
// released this frame.
func (e Event) IsActionReleased(name string) bool {
	return e.IsAction(name) && e.states != nil && e.states.IsReleased(name)
}

// IsActionJustReleased returns true if the event maps to name and the action
// became released this frame.
func (e Event) IsActionJustReleased(name string) bool {
	return e.IsAction(name) && e.states != nil && e.states.IsJustReleased(name)
}

// IsPressed compares the event's own strength against min.
func (e Event) IsPressed(min float64) bool {
	return e.strength >= min
}

// IsReleased compares the event's own strength against min.
func (e Event) IsReleased(min float64) bool {
	return e.strength < min
}

// HasModifier returns true if every modifier in mod was held.
func (e Event) HasModifier(mod key.Modifier) bool {
	return e.modifiers.Has(mod)
}

// String returns a compact description for logs.
func (e Event) String() string {
	if e.key.IsZero() {
		return fmt.Sprintf("action %v %.2f", e.actions, e.strength)
	}
	return fmt.Sprintf("%s %s %.2f %v", e.kind, e.key, e.strength, e.actions)
}
