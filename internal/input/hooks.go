package input

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/dshills/actionbind/internal/event"
	"github.com/dshills/actionbind/internal/input/normalize"
	"github.com/dshills/actionbind/internal/platform"
)

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHighest runs before all other hooks.
	HookPriorityHighest HookPriority = -1000
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
	// HookPriorityLowest runs after all other hooks.
	HookPriorityLowest HookPriority = 1000
)

// Hook intercepts raw samples before they reach the binding pipeline and
// observes every event after dispatch.
type Hook interface {
	// PreSample is called before a sample is processed. The hook may
	// rewrite the sample. Return true to consume it: no actions are
	// pressed and no subscriber sees it.
	PreSample(s *platform.Sample) bool

	// PostEvent is called after an event has been published.
	PostEvent(ev normalize.Event, out event.Outcome)
}

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager manages input hooks with support for priorities and named registration.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{enabled: true}
}

// Register adds a hook with default priority and no name.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterNamed adds a hook with a name for later reference.
// A hook registered under an existing name replaces it.
func (m *HookManager) RegisterNamed(hook Hook, name string) HookID {
	return m.RegisterWithOptions(hook, name, HookPriorityNormal)
}

// RegisterWithOptions adds a hook with all options specified.
func (m *HookManager) RegisterWithOptions(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name != "" {
		m.hooks = slices.DeleteFunc(m.hooks, func(r HookRegistration) bool { return r.Name == name })
	}

	m.nextID++
	reg := HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	}

	// Insert after every hook of equal or lower priority value.
	i := len(m.hooks)
	for i > 0 && m.hooks[i-1].Priority > priority {
		i--
	}
	m.hooks = slices.Insert(m.hooks, i, reg)
	return reg.ID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.hooks)
	m.hooks = slices.DeleteFunc(m.hooks, func(r HookRegistration) bool { return r.ID == id })
	return len(m.hooks) != n
}

// UnregisterByName removes a hook by name.
func (m *HookManager) UnregisterByName(name string) bool {
	if name == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.hooks)
	m.hooks = slices.DeleteFunc(m.hooks, func(r HookRegistration) bool { return r.Name == name })
	return len(m.hooks) != n
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// IsEnabled returns whether hooks are enabled.
func (m *HookManager) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.hooks)
}

// Clear removes all hooks.
func (m *HookManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = nil
}

// active copies the hooks for iteration outside the lock.
func (m *HookManager) active() []Hook {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.enabled || len(m.hooks) == 0 {
		return nil
	}
	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].Hook
	}
	return hooks
}

// RunPreSample runs all PreSample hooks in priority order.
// Returns true if any hook consumed the sample.
func (m *HookManager) RunPreSample(s *platform.Sample) bool {
	for _, hook := range m.active() {
		if hook.PreSample(s) {
			return true
		}
	}
	return false
}

// RunPostEvent runs all PostEvent hooks in priority order.
func (m *HookManager) RunPostEvent(ev normalize.Event, out event.Outcome) {
	for _, hook := range m.active() {
		hook.PostEvent(ev, out)
	}
}

// BaseHook provides a default implementation of the Hook interface.
// Embed this in custom hooks to only implement the methods you need.
type BaseHook struct{}

// PreSample is a no-op that does not consume samples.
func (BaseHook) PreSample(*platform.Sample) bool {
	return false
}

// PostEvent is a no-op.
func (BaseHook) PostEvent(normalize.Event, event.Outcome) {}

// FuncHook wraps functions into a Hook interface implementation.
type FuncHook struct {
	PreSampleFunc func(*platform.Sample) bool
	PostEventFunc func(normalize.Event, event.Outcome)
}

// PreSample calls the PreSampleFunc if set.
func (h FuncHook) PreSample(s *platform.Sample) bool {
	if h.PreSampleFunc != nil {
		return h.PreSampleFunc(s)
	}
	return false
}

// PostEvent calls the PostEventFunc if set.
func (h FuncHook) PostEvent(ev normalize.Event, out event.Outcome) {
	if h.PostEventFunc != nil {
		h.PostEventFunc(ev, out)
	}
}

// LoggingHook logs all samples and dispatched events at debug level.
// Useful for debugging and development.
type LoggingHook struct {
	Logger *slog.Logger
}

// PreSample logs the raw sample.
func (h LoggingHook) PreSample(s *platform.Sample) bool {
	if h.Logger != nil {
		h.Logger.Debug("sample",
			"kind", s.Kind.String(),
			"key", s.Key.String(),
			"state", s.State.String(),
		)
	}
	return false
}

// PostEvent logs the dispatched event and its outcome.
func (h LoggingHook) PostEvent(ev normalize.Event, out event.Outcome) {
	if h.Logger != nil {
		h.Logger.Debug("event",
			"key", ev.Key().String(),
			"actions", ev.Actions(),
			"strength", ev.Strength(),
			"handled", out.Handled,
			"stopped_by", out.StoppedBy,
		)
	}
}

// FilterHook drops samples matching a predicate.
type FilterHook struct {
	BaseHook

	// SampleFilter returns true to block/consume a sample.
	SampleFilter func(*platform.Sample) bool
}

// PreSample applies the sample filter.
func (h FilterHook) PreSample(s *platform.Sample) bool {
	if h.SampleFilter != nil {
		return h.SampleFilter(s)
	}
	return false
}
