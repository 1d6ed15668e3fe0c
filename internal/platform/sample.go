package platform

import (
	"fmt"

	"github.com/dshills/actionbind/internal/input/key"
)

// Kind is the platform event type a sample originated from.
type Kind uint8

const (
	KindNone Kind = iota
	KindKeyboard
	KindMouseButton
	KindMouseWheel
	KindMouseMovement
	KindGamepad
	KindFocus
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindKeyboard:
		return "keyboard"
	case KindMouseButton:
		return "mouse-button"
	case KindMouseWheel:
		return "mouse-wheel"
	case KindMouseMovement:
		return "mouse-movement"
	case KindGamepad:
		return "gamepad"
	case KindFocus:
		return "focus"
	default:
		return "none"
	}
}

// State is the transition a sample reports.
type State uint8

const (
	// StateNone samples carry no transition and are ignored by the core.
	StateNone State = iota

	// StateBegin reports a key or button going down.
	StateBegin

	// StateChange reports a new position of a continuous source.
	StateChange

	// StateEnd reports a key or button going up.
	StateEnd

	// StateCancel reports that the platform withdrew the input (focus loss).
	StateCancel
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateBegin:
		return "begin"
	case StateChange:
		return "change"
	case StateEnd:
		return "end"
	case StateCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Sample is one raw input occurrence as reported by a platform back-end.
type Sample struct {
	// Key identifies the source. Axis sources use their physical axis key
	// (key.CodeThumbstick1, key.CodeMouseWheel, key.CodeMouseMovement).
	Key key.Key

	// Kind is the platform event type.
	Kind Kind

	// State is the reported transition.
	State State

	// Position is the absolute position: stick deflection in [-1,1] for
	// thumbsticks, pointer coordinates for the mouse, wheel travel in Z.
	Position Vec3

	// Delta is the platform-reported change since the previous sample.
	Delta Vec3

	// Strength is the analog press strength for StateChange samples of
	// pressure-sensitive buttons (triggers). Begin and End imply 1 and 0.
	Strength float64

	// Modifiers are the modifier keys held when the sample was taken.
	Modifiers key.Modifier
}

// String returns a compact description for logs.
func (s Sample) String() string {
	return fmt.Sprintf("%s %s %s pos=%v", s.Kind, s.Key, s.State, s.Position)
}

// Vec3 is a three-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}
