package action

import (
	"math"
	"slices"

	"github.com/dshills/actionbind/internal/input/key"
)

// DefaultThreshold is the activation threshold of actions created without one.
const DefaultThreshold = 0.5

// entry is the live state of one action.
type entry struct {
	name      string
	seq       int
	threshold float64
	keys      []key.Key

	// current is the strongest contribution this frame: the larger of
	// pressed and every carried value. previous is the value current had
	// when the last Tick ran.
	current  float64
	previous float64

	// pressed is the strongest fresh press this frame. carried holds the
	// strength of keys still held from an earlier frame until a fresh
	// press from the same key replaces it.
	pressed float64
	carried map[key.Key]float64
}

func (e *entry) recompute() {
	v := e.pressed
	for _, c := range e.carried {
		v = max(v, c)
	}
	e.current = v
}

// Registry holds the named actions, their key bindings and their
// frame-local press strengths.
//
// A Registry is not safe for concurrent use. It is owned by the goroutine
// that feeds input and advances frames.
type Registry struct {
	actions map[string]*entry
	ordered []*entry
	byKey   map[key.Key][]*entry
	nextSeq int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*entry),
		byKey:   make(map[key.Key][]*entry),
	}
}

// Add registers an action or updates an existing one.
// Re-adding replaces the threshold and bindings; strength state in progress
// is preserved.
func (r *Registry) Add(name string, threshold float64, keys ...key.Key) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateThreshold(name, threshold); err != nil {
		return err
	}
	for _, k := range keys {
		if k.IsZero() {
			return &ConfigError{Action: name, Field: "key", Err: ErrInvalidKey}
		}
	}

	e := r.ensure(name)
	e.threshold = threshold
	for _, k := range slices.Clone(e.keys) {
		r.unbind(e, k)
	}
	for _, k := range keys {
		r.bind(e, k)
	}
	return nil
}

// Remove deletes an action and its bindings.
// Returns false if the action does not exist.
func (r *Registry) Remove(name string) bool {
	e, ok := r.actions[name]
	if !ok {
		return false
	}
	for _, k := range slices.Clone(e.keys) {
		r.unbind(e, k)
	}
	delete(r.actions, name)
	r.ordered = slices.DeleteFunc(r.ordered, func(o *entry) bool { return o == e })
	return true
}

// Bind adds a key to an action, creating the action with DefaultThreshold
// if needed. Binding a key that is already bound is a no-op.
func (r *Registry) Bind(name string, k key.Key) error {
	if err := validateName(name); err != nil {
		return err
	}
	if k.IsZero() {
		return &ConfigError{Action: name, Field: "key", Err: ErrInvalidKey}
	}
	r.bind(r.ensure(name), k)
	return nil
}

// Unbind removes a key from an action.
// Returns false if the key was not bound to it.
func (r *Registry) Unbind(name string, k key.Key) bool {
	e, ok := r.actions[name]
	if !ok {
		return false
	}
	return r.unbind(e, k)
}

// SetThreshold changes the activation threshold of an action, creating it
// if needed.
func (r *Registry) SetThreshold(name string, threshold float64) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateThreshold(name, threshold); err != nil {
		return err
	}
	r.ensure(name).threshold = threshold
	return nil
}

// Press records a press of the given strength for this frame.
// The strength is clamped to [0,1]; the action keeps the strongest press
// received since the last Tick. Unknown actions are created.
func (r *Registry) Press(name string, strength float64) {
	if name == "" {
		return
	}
	e := r.ensure(name)
	e.pressed = max(e.pressed, Clamp(strength))
	e.recompute()
}

// PressKey is Press for a press that came from k. It first drops any
// strength carried for k from the previous frame, so a held source that
// eases off or lets go is seen at its new strength at once. Fresh presses
// within one frame still keep the strongest.
func (r *Registry) PressKey(name string, k key.Key, strength float64) {
	if name == "" {
		return
	}
	e := r.ensure(name)
	delete(e.carried, k)
	e.pressed = max(e.pressed, Clamp(strength))
	e.recompute()
}

// Carry keeps a held key's strength for the current frame. It is replaced
// by the next PressKey from the same key and dropped at the next Tick.
func (r *Registry) Carry(name string, k key.Key, strength float64) {
	if name == "" {
		return
	}
	e := r.ensure(name)
	if e.carried == nil {
		e.carried = make(map[key.Key]float64)
	}
	e.carried[k] = Clamp(strength)
	e.recompute()
}

// Tick advances to the next frame: every action's current strength becomes
// its previous strength and current restarts at zero. Sources that are still
// held must be carried again after Tick.
func (r *Registry) Tick() {
	for _, e := range r.ordered {
		e.previous = e.current
		e.current = 0
		e.pressed = 0
		clear(e.carried)
	}
}

// ActionsForKey returns the names of every action bound to k, in the order
// the actions were registered.
func (r *Registry) ActionsForKey(k key.Key) []string {
	bound := r.byKey[k]
	if len(bound) == 0 {
		return nil
	}
	names := make([]string, len(bound))
	for i, e := range bound {
		names[i] = e.name
	}
	return names
}

// Has returns true if the action is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Names returns all action names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, e := range r.ordered {
		names[i] = e.name
	}
	return names
}

// Keys returns the keys bound to an action, in binding order.
func (r *Registry) Keys(name string) []key.Key {
	e, ok := r.actions[name]
	if !ok {
		return nil
	}
	return slices.Clone(e.keys)
}

func (r *Registry) ensure(name string) *entry {
	if e, ok := r.actions[name]; ok {
		return e
	}
	e := &entry{name: name, seq: r.nextSeq, threshold: DefaultThreshold}
	r.nextSeq++
	r.actions[name] = e
	r.ordered = append(r.ordered, e)
	return e
}

func (r *Registry) bind(e *entry, k key.Key) {
	if slices.Contains(e.keys, k) {
		return
	}
	e.keys = append(e.keys, k)

	bound := r.byKey[k]
	i, _ := slices.BinarySearchFunc(bound, e.seq, func(o *entry, seq int) int { return o.seq - seq })
	r.byKey[k] = slices.Insert(bound, i, e)
}

func (r *Registry) unbind(e *entry, k key.Key) bool {
	i := slices.Index(e.keys, k)
	if i < 0 {
		return false
	}
	e.keys = slices.Delete(e.keys, i, i+1)
	if _, ok := e.carried[k]; ok {
		delete(e.carried, k)
		e.recompute()
	}

	bound := slices.DeleteFunc(r.byKey[k], func(o *entry) bool { return o == e })
	if len(bound) == 0 {
		delete(r.byKey, k)
	} else {
		r.byKey[k] = bound
	}
	return true
}

// Clamp limits a strength to [0,1]. NaN becomes 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}

// ValidUnit reports whether v lies within [0,1].
func ValidUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func validateName(name string) error {
	if name == "" {
		return &ConfigError{Action: name, Field: "name", Err: ErrEmptyName}
	}
	return nil
}

func validateThreshold(name string, v float64) error {
	if !ValidUnit(v) {
		return &ConfigError{Action: name, Field: "threshold", Value: v, Err: ErrInvalidThreshold}
	}
	return nil
}
