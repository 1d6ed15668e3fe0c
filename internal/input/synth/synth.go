package synth

import (
	"math"

	"github.com/dshills/actionbind/internal/input/action"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/input/normalize"
	"github.com/dshills/actionbind/internal/platform"
)

// DefaultDeadzone is the thumbstick dead-zone used when none is configured.
const DefaultDeadzone = 0.2

// EmitFunc receives each synthesized record.
type EmitFunc func(rec normalize.Record)

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithDefaultDeadzone sets the dead-zone of thumbsticks without an explicit
// setting. Values outside [0,1] are ignored.
func WithDefaultDeadzone(v float64) Option {
	return func(s *Synthesizer) {
		if action.ValidUnit(v) {
			s.defaultDeadzone = v
		}
	}
}

// Synthesizer decomposes continuous axis samples into directional virtual
// keys. It caches the last strength emitted for every virtual key and
// suppresses repeats, except for the mouse wheel whose ticks are discrete.
//
// A Synthesizer is not safe for concurrent use.
type Synthesizer struct {
	last            map[key.Key]float64
	mouse           platform.Vec3
	deadzones       map[key.Key]float64
	defaultDeadzone float64
}

// New creates a synthesizer with every virtual key at strength 0.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		last:            make(map[key.Key]float64),
		deadzones:       make(map[key.Key]float64),
		defaultDeadzone: DefaultDeadzone,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset zeroes the strength cache and the saved mouse position.
func (s *Synthesizer) Reset() {
	s.ReleaseAll()
	s.mouse = platform.Vec3{}
}

// ReleaseAll returns every virtual key to rest without emitting. The saved
// mouse position is kept so the next motion sample is measured from where
// the pointer last was.
func (s *Synthesizer) ReleaseAll() {
	for _, k := range key.BuiltinVirtuals() {
		s.last[k] = 0
	}
}

// Release returns the directions of an axis to rest without emitting.
func (s *Synthesizer) Release(axis key.Key) {
	if !axis.IsAxis() {
		return
	}
	d, _ := key.AxisDirections(axis.Code())
	for _, k := range d.All() {
		if !k.IsZero() {
			s.last[k] = 0
		}
	}
}

// SetDefaultDeadzone changes the dead-zone of thumbsticks without an
// explicit setting.
func (s *Synthesizer) SetDefaultDeadzone(v float64) error {
	if !action.ValidUnit(v) {
		return &ConfigError{Value: v, Err: ErrInvalidDeadzone}
	}
	s.defaultDeadzone = v
	return nil
}

// SetDeadzone sets the dead-zone of a thumbstick. Setting it on the axis key
// applies to all four directions; setting it on one direction overrides the
// axis value for that direction only.
func (s *Synthesizer) SetDeadzone(k key.Key, v float64) error {
	if !HasDeadzone(k) {
		return &ConfigError{Key: k, Value: v, Err: ErrNoDeadzone}
	}
	if !action.ValidUnit(v) {
		return &ConfigError{Key: k, Value: v, Err: ErrInvalidDeadzone}
	}
	s.deadzones[k] = v
	return nil
}

// Deadzone returns the effective dead-zone for a thumbstick axis or one of
// its directions.
func (s *Synthesizer) Deadzone(k key.Key) float64 {
	if v, ok := s.deadzones[k]; ok {
		return v
	}
	if src, ok := key.SourceOf(k); ok {
		if v, ok := s.deadzones[src]; ok {
			return v
		}
	}
	return s.defaultDeadzone
}

// Strength returns the last strength emitted for a virtual key, in [0,1].
func (s *Synthesizer) Strength(k key.Key) float64 {
	return action.Clamp(s.last[k])
}

// EachHeld calls fn for every sustained virtual key whose last emitted
// strength is non-zero.
func (s *Synthesizer) EachHeld(fn func(k key.Key, strength float64)) {
	for _, code := range []key.Code{key.CodeThumbstick1, key.CodeThumbstick2} {
		d, _ := key.AxisDirections(code)
		for _, k := range d.All() {
			if v := s.last[k]; v != 0 {
				fn(k, action.Clamp(v))
			}
		}
	}
}

// Sustained reports whether a virtual key stays down while its axis is held.
// Thumbstick directions are sustained; wheel and mouse-movement directions
// are impulses that last one frame.
func Sustained(k key.Key) bool {
	src, ok := key.SourceOf(k)
	if !ok {
		return false
	}
	c := src.Code()
	return c == key.CodeThumbstick1 || c == key.CodeThumbstick2
}

// Handles reports whether samples from k are decomposed by the synthesizer.
func Handles(k key.Key) bool {
	return k.IsAxis()
}

// Synthesize decomposes one sample and passes every virtual key whose
// strength changed to emit. Only Change samples of axis sources produce
// output. It returns the number of records emitted.
func (s *Synthesizer) Synthesize(smp platform.Sample, emit EmitFunc) int {
	if smp.State != platform.StateChange || !Handles(smp.Key) {
		return 0
	}

	d, _ := key.AxisDirections(smp.Key.Code())
	n := 0
	set := func(k key.Key, strength float64, force bool) {
		if !force && s.last[k] == strength {
			return
		}
		s.last[k] = strength

		rec := normalize.FromKey(k, smp.Kind)
		rec.Position = smp.Position
		rec.Delta = smp.Delta
		rec.Strength = action.Clamp(strength)
		rec.Changed = true
		rec.Modifiers = smp.Modifiers
		n++
		if emit != nil {
			emit(rec)
		}
	}

	switch smp.Key.Code() {
	case key.CodeThumbstick1, key.CodeThumbstick2:
		x, y := smp.Position.X, smp.Position.Y
		set(d.Left, s.stick(d.Left, x, -1, 0), false)
		set(d.Right, s.stick(d.Right, x, 0, 1), false)
		set(d.Up, s.stick(d.Up, y, 0, 1), false)
		set(d.Down, s.stick(d.Down, y, -1, 0), false)

	case key.CodeMouseWheel:
		z := smp.Position.Z
		if down := extract(z, -1, 0); down != 0 {
			set(d.Down, down, true)
		}
		if up := extract(z, 0, 1); up != 0 {
			set(d.Up, up, true)
		}

	case key.CodeMouseMovement:
		moved := smp.Position.Sub(s.mouse)
		s.mouse = smp.Position
		total := moved.Add(smp.Delta)

		set(d.Left, math.Abs(min(total.X, 0)), false)
		set(d.Right, max(total.X, 0), false)
		set(d.Down, max(total.Y, 0), false)
		set(d.Up, math.Abs(min(total.Y, 0)), false)
	}
	return n
}

// stick extracts one thumbstick direction, applying the direction's dead-zone.
func (s *Synthesizer) stick(k key.Key, v, lo, hi float64) float64 {
	if math.Abs(v) < s.Deadzone(k) {
		return 0
	}
	return extract(v, lo, hi)
}

func extract(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Abs(max(lo, min(v, hi)))
}

// HasDeadzone reports whether k is a thumbstick or a thumbstick direction.
func HasDeadzone(k key.Key) bool {
	if k.IsPhysical() {
		c := k.Code()
		return c == key.CodeThumbstick1 || c == key.CodeThumbstick2
	}
	return Sustained(k)
}
