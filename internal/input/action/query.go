package action

// Phase describes where an action is in its press cycle.
type Phase uint8

const (
	// PhaseIdle means the action was not pressed last frame or this frame.
	PhaseIdle Phase = iota
	// PhasePressed means the action crossed its threshold this frame.
	PhasePressed
	// PhaseHeld means the action was pressed last frame and still is.
	PhaseHeld
	// PhaseReleased means the action dropped below its threshold this frame.
	PhaseReleased
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseHeld:
		return "held"
	case PhaseReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of one action's state.
type Snapshot struct {
	Name      string
	Threshold float64
	Strength  float64
	Previous  float64
	Phase     Phase
}

// IsPressed returns true if the action's current strength meets its threshold.
func (r *Registry) IsPressed(name string) bool {
	e, ok := r.actions[name]
	return ok && e.current >= e.threshold
}

// IsPressedMin is IsPressed with min substituted for the action's threshold.
func (r *Registry) IsPressedMin(name string, min float64) bool {
	e, ok := r.actions[name]
	return ok && e.current >= min
}

// IsJustPressed returns true if the action is pressed now but was not
// pressed on the previous frame.
func (r *Registry) IsJustPressed(name string) bool {
	e, ok := r.actions[name]
	return ok && e.current >= e.threshold && e.previous < e.threshold
}

// IsJustPressedMin is IsJustPressed with min substituted for the threshold.
func (r *Registry) IsJustPressedMin(name string, min float64) bool {
	e, ok := r.actions[name]
	return ok && e.current >= min && e.previous < min
}

// IsReleased returns true if the action's strength is below its threshold.
// Unknown actions are reported as not released.
func (r *Registry) IsReleased(name string) bool {
	e, ok := r.actions[name]
	return ok && e.current < e.threshold
}

// IsReleasedMin is IsReleased with min substituted for the threshold.
func (r *Registry) IsReleasedMin(name string, min float64) bool {
	e, ok := r.actions[name]
	return ok && e.current < min
}

// IsJustReleased returns true if the action was pressed on the previous
// frame and is not pressed now.
func (r *Registry) IsJustReleased(name string) bool {
	e, ok := r.actions[name]
	return ok && e.current < e.threshold && e.previous >= e.threshold
}

// IsJustReleasedMin is IsJustReleased with min substituted for the threshold.
func (r *Registry) IsJustReleasedMin(name string, min float64) bool {
	e, ok := r.actions[name]
	return ok && e.current < min && e.previous >= min
}

// Strength returns the action's strongest press this frame, or 0.
func (r *Registry) Strength(name string) float64 {
	if e, ok := r.actions[name]; ok {
		return e.current
	}
	return 0
}

// PreviousStrength returns the action's strength as of the last Tick, or 0.
func (r *Registry) PreviousStrength(name string) float64 {
	if e, ok := r.actions[name]; ok {
		return e.previous
	}
	return 0
}

// Threshold returns the action's activation threshold.
// The second result is false for unknown actions.
func (r *Registry) Threshold(name string) (float64, bool) {
	if e, ok := r.actions[name]; ok {
		return e.threshold, true
	}
	return 0, false
}

// Phase returns where the action is in its press cycle.
func (r *Registry) Phase(name string) Phase {
	e, ok := r.actions[name]
	if !ok {
		return PhaseIdle
	}
	return e.phase()
}

// Snapshot copies the state of every action, in registration order.
func (r *Registry) Snapshot() []Snapshot {
	out := make([]Snapshot, len(r.ordered))
	for i, e := range r.ordered {
		out[i] = Snapshot{
			Name:      e.name,
			Threshold: e.threshold,
			Strength:  e.current,
			Previous:  e.previous,
			Phase:     e.phase(),
		}
	}
	return out
}

func (e *entry) phase() Phase {
	now := e.current >= e.threshold
	before := e.previous >= e.threshold
	switch {
	case now && !before:
		return PhasePressed
	case now:
		return PhaseHeld
	case before:
		return PhaseReleased
	default:
		return PhaseIdle
	}
}
