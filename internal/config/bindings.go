package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/actionbind/internal/input/action"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/input/synth"
)

// Bindings is the data form of an action configuration.
type Bindings struct {
	// Deadzone replaces the default dead-zone of every thumbstick.
	Deadzone *float64 `toml:"deadzone,omitempty" yaml:"deadzone,omitempty" json:"deadzone,omitempty"`

	// Deadzones maps thumbstick key names (a stick or one of its
	// directions) to dead-zones.
	Deadzones map[string]float64 `toml:"deadzones,omitempty" yaml:"deadzones,omitempty" json:"deadzones,omitempty"`

	// Thresholds overrides the thresholds of declared actions by name.
	// It is how environment variables adjust a file without repeating
	// its action list.
	Thresholds map[string]float64 `toml:"thresholds,omitempty" yaml:"thresholds,omitempty" json:"thresholds,omitempty"`

	// Actions lists the actions in registration order.
	Actions []ActionBinding `toml:"actions" yaml:"actions" json:"actions"`
}

// ActionBinding declares one action.
type ActionBinding struct {
	Name string `toml:"name" yaml:"name" json:"name"`

	// Threshold defaults to action.DefaultThreshold when nil.
	Threshold *float64 `toml:"threshold,omitempty" yaml:"threshold,omitempty" json:"threshold,omitempty"`

	// Keys are key names as accepted by key.Parse.
	Keys []string `toml:"keys" yaml:"keys" json:"keys"`
}

// Binder receives bindings. *input.Manager implements it.
type Binder interface {
	AddAction(name string, threshold float64, keys ...key.Key) error
	SetDeadzone(k key.Key, v float64) error
	SetDefaultDeadzone(v float64) error
}

// FromMap decodes a generic configuration map, as produced by the loader
// package, into Bindings. Every problem found is reported; the result is
// not validated.
func FromMap(m map[string]any) (*Bindings, error) {
	b := &Bindings{}
	var errs []error

	for _, field := range slices.Sorted(maps.Keys(m)) {
		v := m[field]
		switch field {
		case "deadzone":
			f, ok := number(v)
			if !ok {
				errs = append(errs, typeErr(field, "number", v))
				continue
			}
			b.Deadzone = &f
		case "deadzones":
			b.Deadzones = numberTable(field, v, &errs)
		case "thresholds":
			b.Thresholds = numberTable(field, v, &errs)
		case "actions":
			list, ok := v.([]any)
			if !ok {
				errs = append(errs, typeErr(field, "list", v))
				continue
			}
			for i, item := range list {
				if a, ok := actionFromValue(fmt.Sprintf("actions[%d]", i), item, &errs); ok {
					b.Actions = append(b.Actions, a)
				}
			}
		default:
			errs = append(errs, fieldErr(field, ErrUnknownField))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

func actionFromValue(path string, v any, errs *[]error) (ActionBinding, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		*errs = append(*errs, typeErr(path, "table", v))
		return ActionBinding{}, false
	}

	var a ActionBinding
	for _, field := range slices.Sorted(maps.Keys(m)) {
		v := m[field]
		fpath := path + "." + field
		switch field {
		case "name":
			s, ok := v.(string)
			if !ok {
				*errs = append(*errs, typeErr(fpath, "string", v))
				continue
			}
			a.Name = s
		case "threshold":
			f, ok := number(v)
			if !ok {
				*errs = append(*errs, typeErr(fpath, "number", v))
				continue
			}
			a.Threshold = &f
		case "keys":
			list, ok := v.([]any)
			if !ok {
				*errs = append(*errs, typeErr(fpath, "list", v))
				continue
			}
			for i, item := range list {
				s, ok := item.(string)
				if !ok {
					*errs = append(*errs, typeErr(fmt.Sprintf("%s[%d]", fpath, i), "string", item))
					continue
				}
				a.Keys = append(a.Keys, s)
			}
		default:
			*errs = append(*errs, fieldErr(fpath, ErrUnknownField))
		}
	}
	return a, true
}

func numberTable(path string, v any, errs *[]error) map[string]float64 {
	m, ok := v.(map[string]any)
	if !ok {
		*errs = append(*errs, typeErr(path, "table", v))
		return nil
	}
	out := make(map[string]float64, len(m))
	for name, item := range m {
		f, ok := number(item)
		if !ok {
			*errs = append(*errs, typeErr(path+"."+name, "number", item))
			continue
		}
		out[name] = f
	}
	return out
}

// number accepts the numeric types the TOML, YAML and JSON decoders
// produce.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func typeErr(path, want string, got any) error {
	return fieldErr(path, fmt.Errorf("%w: want %s, got %T", ErrInvalidType, want, got))
}

// Validate checks every key name, value range and action name, returning
// all problems joined.
func (b *Bindings) Validate() error {
	var errs []error

	if b.Deadzone != nil && !action.ValidUnit(*b.Deadzone) {
		errs = append(errs, fieldErr("deadzone",
			&synth.ConfigError{Value: *b.Deadzone, Err: synth.ErrInvalidDeadzone}))
	}

	for _, name := range slices.Sorted(maps.Keys(b.Deadzones)) {
		v := b.Deadzones[name]
		path := "deadzones." + name
		k, err := key.Parse(name)
		switch {
		case err != nil:
			errs = append(errs, fieldErr(path, err))
		case !synth.HasDeadzone(k):
			errs = append(errs, fieldErr(path, &synth.ConfigError{Key: k, Value: v, Err: synth.ErrNoDeadzone}))
		case !action.ValidUnit(v):
			errs = append(errs, fieldErr(path, &synth.ConfigError{Key: k, Value: v, Err: synth.ErrInvalidDeadzone}))
		}
	}

	declared := make(map[string]bool, len(b.Actions))
	for i, a := range b.Actions {
		path := fmt.Sprintf("actions[%d]", i)
		switch {
		case a.Name == "":
			errs = append(errs, fieldErr(path+".name",
				&action.ConfigError{Field: "name", Err: action.ErrEmptyName}))
		case declared[a.Name]:
			errs = append(errs, fieldErr(path+".name", fmt.Errorf("%w: %q", ErrDuplicateAction, a.Name)))
		}
		declared[a.Name] = true

		if a.Threshold != nil && !action.ValidUnit(*a.Threshold) {
			errs = append(errs, fieldErr(path+".threshold", &action.ConfigError{
				Action: a.Name, Field: "threshold", Value: *a.Threshold, Err: action.ErrInvalidThreshold,
			}))
		}
		for j, name := range a.Keys {
			if _, err := key.Parse(name); err != nil {
				errs = append(errs, fieldErr(fmt.Sprintf("%s.keys[%d]", path, j), err))
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(b.Thresholds)) {
		v := b.Thresholds[name]
		path := "thresholds." + name
		if !declared[name] {
			errs = append(errs, fieldErr(path, fmt.Errorf("%w: %q", ErrUnknownAction, name)))
			continue
		}
		if !action.ValidUnit(v) {
			errs = append(errs, fieldErr(path, &action.ConfigError{
				Action: name, Field: "threshold", Value: v, Err: action.ErrInvalidThreshold,
			}))
		}
	}

	return errors.Join(errs...)
}

// ThresholdOf returns the effective threshold of a declared action: the
// Thresholds override, else the action's own threshold, else
// action.DefaultThreshold. The second result is false for undeclared
// actions.
func (b *Bindings) ThresholdOf(name string) (float64, bool) {
	i := slices.IndexFunc(b.Actions, func(a ActionBinding) bool { return a.Name == name })
	if i < 0 {
		return 0, false
	}
	if v, ok := b.Thresholds[name]; ok {
		return v, true
	}
	if t := b.Actions[i].Threshold; t != nil {
		return *t, true
	}
	return action.DefaultThreshold, true
}

// Apply validates the bindings and pushes them into target: the default
// dead-zone first, then per-key dead-zones, then actions in order.
// Nothing is applied when validation fails.
func (b *Bindings) Apply(target Binder) error {
	if err := b.Validate(); err != nil {
		return err
	}

	if b.Deadzone != nil {
		if err := target.SetDefaultDeadzone(*b.Deadzone); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(b.Deadzones)) {
		if err := target.SetDeadzone(key.MustParse(name), b.Deadzones[name]); err != nil {
			return err
		}
	}
	for _, a := range b.Actions {
		keys, err := key.ParseAll(a.Keys)
		if err != nil {
			return err
		}
		threshold, _ := b.ThresholdOf(a.Name)
		if err := target.AddAction(a.Name, threshold, keys...); err != nil {
			return err
		}
	}
	return nil
}

// Stale returns the actions declared by prev that b no longer declares,
// in prev's order. Callers remove them after applying a reload.
func (b *Bindings) Stale(prev *Bindings) []string {
	if prev == nil {
		return nil
	}
	var stale []string
	for _, a := range prev.Actions {
		if !slices.ContainsFunc(b.Actions, func(o ActionBinding) bool { return o.Name == a.Name }) {
			stale = append(stale, a.Name)
		}
	}
	return stale
}
