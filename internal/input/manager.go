package input

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dshills/actionbind/internal/event"
	"github.com/dshills/actionbind/internal/input/action"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/input/normalize"
	"github.com/dshills/actionbind/internal/input/synth"
	"github.com/dshills/actionbind/internal/platform"
)

// DefaultTickInterval is the frame interval used by Run when none is given.
const DefaultTickInterval = time.Second / 60

// Config configures a Manager.
type Config struct {
	// Deadzone is the default thumbstick dead-zone.
	// Default: synth.DefaultDeadzone
	Deadzone float64

	// Logger receives configuration changes at debug level.
	// Default: discard.
	Logger *slog.Logger

	// PanicHandler is called when a subscriber panics.
	PanicHandler event.PanicHandler

	// FrameFunc, if set, is called by Step after samples are processed and
	// before Tick, while frame queries are valid.
	FrameFunc func(frame uint64)
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Deadzone: synth.DefaultDeadzone,
	}
}

// Option configures a Manager.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithDeadzone sets the default thumbstick dead-zone.
func WithDeadzone(v float64) Option {
	return func(c *Config) {
		c.Deadzone = v
	}
}

// WithPanicHandler sets the handler called when a subscriber panics.
func WithPanicHandler(h event.PanicHandler) Option {
	return func(c *Config) {
		c.PanicHandler = h
	}
}

// WithFrameFunc sets the per-frame callback used by Step and Run.
func WithFrameFunc(fn func(frame uint64)) Option {
	return func(c *Config) {
		c.FrameFunc = fn
	}
}

// heldKey is a physical source that is currently down.
type heldKey struct {
	strength float64
}

// Manager is the entry point of the binding layer. It owns the action
// registry, the virtual-key synthesizer, the normalizer and the dispatch
// bus, and turns raw platform samples into action state and events.
//
// A Manager is not safe for concurrent use: configuration, samples, Tick
// and queries must all happen on one goroutine. Subscriptions may be
// cancelled from anywhere.
type Manager struct {
	config Config
	logger *slog.Logger

	registry   *action.Registry
	synth      *synth.Synthesizer
	normalizer *normalize.Normalizer
	bus        *event.Bus[normalize.Event]
	hooks      *HookManager
	metrics    *Metrics

	// held tracks physical keys between Begin and End so they can be
	// pressed again after each Tick.
	held  map[key.Key]heldKey
	frame uint64
	batch []platform.Sample
}

// NewManager creates a manager with no actions.
func NewManager(opts ...Option) *Manager {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	busOpts := []event.BusOption{event.WithLogger(logger)}
	if config.PanicHandler != nil {
		busOpts = append(busOpts, event.WithPanicHandler(config.PanicHandler))
	}

	registry := action.NewRegistry()
	return &Manager{
		config:     config,
		logger:     logger,
		registry:   registry,
		synth:      synth.New(synth.WithDefaultDeadzone(config.Deadzone)),
		normalizer: normalize.New(registry),
		bus:        event.NewBus[normalize.Event](busOpts...),
		hooks:      NewHookManager(),
		metrics:    NewMetrics(),
		held:       make(map[key.Key]heldKey),
	}
}

// AddAction registers an action with a threshold and its keys, replacing
// the threshold and bindings of an existing action.
func (m *Manager) AddAction(name string, threshold float64, keys ...key.Key) error {
	if err := m.registry.Add(name, threshold, keys...); err != nil {
		return err
	}
	m.logger.Debug("action added", "action", name, "threshold", threshold, "keys", len(keys))
	return nil
}

// BindKeyToAction binds a key to an action, creating the action with the
// default threshold if needed.
func (m *Manager) BindKeyToAction(name string, k key.Key) error {
	if err := m.registry.Bind(name, k); err != nil {
		return err
	}
	m.logger.Debug("key bound", "action", name, "key", k.String())
	return nil
}

// UnbindKey removes a key from an action.
func (m *Manager) UnbindKey(name string, k key.Key) bool {
	ok := m.registry.Unbind(name, k)
	if ok {
		m.logger.Debug("key unbound", "action", name, "key", k.String())
	}
	return ok
}

// RemoveAction deletes an action and its bindings.
func (m *Manager) RemoveAction(name string) bool {
	ok := m.registry.Remove(name)
	if ok {
		m.logger.Debug("action removed", "action", name)
	}
	return ok
}

// SetActivationThreshold changes an action's threshold.
func (m *Manager) SetActivationThreshold(name string, threshold float64) error {
	if err := m.registry.SetThreshold(name, threshold); err != nil {
		return err
	}
	m.logger.Debug("threshold set", "action", name, "threshold", threshold)
	return nil
}

// SetDeadzone sets the dead-zone of a thumbstick or one of its directions.
func (m *Manager) SetDeadzone(k key.Key, v float64) error {
	if err := m.synth.SetDeadzone(k, v); err != nil {
		return err
	}
	m.logger.Debug("dead-zone set", "key", k.String(), "deadzone", v)
	return nil
}

// SetDefaultDeadzone changes the dead-zone used by thumbsticks without an
// explicit setting.
func (m *Manager) SetDefaultDeadzone(v float64) error {
	if err := m.synth.SetDefaultDeadzone(v); err != nil {
		return err
	}
	m.logger.Debug("default dead-zone set", "deadzone", v)
	return nil
}

// Deadzone returns the effective dead-zone for a thumbstick key.
func (m *Manager) Deadzone(k key.Key) float64 {
	return m.synth.Deadzone(k)
}

// HandleSample processes one raw sample: axis Change samples are first
// decomposed into virtual keys, then the sample itself is normalized,
// its actions pressed and the event published. It reports whether a
// subscriber handled the raw event.
//
// None samples are ignored. Cancel samples release held state without
// dispatching anything.
func (m *Manager) HandleSample(s platform.Sample) bool {
	timer := m.metrics.StartSampleTimer()
	defer timer.Stop()

	m.metrics.RecordSample(s.Kind)
	if m.hooks.RunPreSample(&s) {
		m.metrics.RecordHookConsumption()
		return true
	}

	switch s.State {
	case platform.StateNone:
		m.metrics.RecordIgnored()
		return false
	case platform.StateCancel:
		m.metrics.RecordIgnored()
		m.cancel(s.Key)
		return false
	}

	rec := normalize.FromKey(s.Key, s.Kind)
	rec.Position = s.Position
	rec.Delta = s.Delta
	rec.Modifiers = s.Modifiers
	rec.Changed = s.State == platform.StateChange
	switch s.State {
	case platform.StateBegin:
		rec.Strength = 1
	case platform.StateChange:
		rec.Strength = action.Clamp(s.Strength)
	}
	m.track(s.Key, s.State, rec.Strength)

	if rec.Changed && synth.Handles(s.Key) {
		m.synth.Synthesize(s, func(v normalize.Record) {
			m.dispatch(v, originSynthesized)
		})
	}
	return m.dispatch(rec, originRaw).Handled
}

// HandleSamples processes samples in order. It returns how many were handled.
func (m *Manager) HandleSamples(samples []platform.Sample) int {
	n := 0
	for _, s := range samples {
		if m.HandleSample(s) {
			n++
		}
	}
	return n
}

// PressAction fires an event that targets one action directly, bypassing
// key bindings. It reports whether a subscriber handled the event.
func (m *Manager) PressAction(name string, strength float64) bool {
	if name == "" {
		return false
	}
	rec := normalize.FromAction(name)
	rec.Strength = strength
	return m.dispatch(rec, originDirect).Handled
}

// dispatch normalizes a record, which presses its actions, then publishes
// the resulting event.
func (m *Manager) dispatch(rec normalize.Record, origin eventOrigin) event.Outcome {
	ev := m.normalizer.Normalize(rec)
	out := m.bus.Publish(ev)
	m.metrics.recordEvent(origin, out)
	m.hooks.RunPostEvent(ev, out)
	return out
}

// track updates held physical keys.
func (m *Manager) track(k key.Key, state platform.State, strength float64) {
	if k.IsAxis() || k.IsZero() {
		return
	}
	switch state {
	case platform.StateBegin, platform.StateChange:
		if strength > 0 {
			m.held[k] = heldKey{strength: strength}
			return
		}
		delete(m.held, k)
	case platform.StateEnd:
		delete(m.held, k)
	}
}

// cancel forgets a held key. Cancelling an axis returns its virtual keys
// to rest.
func (m *Manager) cancel(k key.Key) {
	delete(m.held, k)
	m.synth.Release(k)
}

// ReleaseAll forgets every held key and returns every virtual key to rest,
// as after the window loses focus. Actions read as released after the next
// Tick. The last pointer position is kept.
func (m *Manager) ReleaseAll() {
	clear(m.held)
	m.synth.ReleaseAll()
}

// Tick closes the current frame. Held physical keys and deflected
// thumbsticks carry their strength into the new frame until a fresh sample
// from the same key replaces it.
func (m *Manager) Tick() {
	m.registry.Tick()

	for k, h := range m.held {
		for _, name := range m.registry.ActionsForKey(k) {
			m.registry.Carry(name, k, h.strength)
		}
	}
	m.synth.EachHeld(func(k key.Key, strength float64) {
		for _, name := range m.registry.ActionsForKey(k) {
			m.registry.Carry(name, k, strength)
		}
	})

	m.frame++
	m.metrics.RecordFrame()
}

// Step runs one frame: it drains src, calls the frame callback and ticks.
func (m *Manager) Step(src platform.Source) {
	m.batch = src.Poll(m.batch[:0])
	m.HandleSamples(m.batch)
	clear(m.batch)

	if m.config.FrameFunc != nil {
		m.config.FrameFunc(m.frame)
	}
	m.Tick()
}

// Run steps the manager at a fixed rate until ctx is done.
// An interval <= 0 uses DefaultTickInterval.
func (m *Manager) Run(ctx context.Context, src platform.Source, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Debug("input loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("input loop stopped", "frames", m.frame)
			return ctx.Err()
		case <-ticker.C:
			m.Step(src)
		}
	}
}

// Subscribe registers an event handler on the dispatch bus.
func (m *Manager) Subscribe(fn event.Handler[normalize.Event], opts ...event.SubscriptionOption) (event.Subscription, error) {
	return m.bus.Subscribe(fn, opts...)
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(sub event.Subscription) error {
	return m.bus.Unsubscribe(sub)
}

// IsPressed reports whether the action meets its threshold this frame.
func (m *Manager) IsPressed(name string) bool { return m.registry.IsPressed(name) }

// IsJustPressed reports whether the action became pressed this frame.
func (m *Manager) IsJustPressed(name string) bool { return m.registry.IsJustPressed(name) }

// IsReleased reports whether the action is below its threshold this frame.
func (m *Manager) IsReleased(name string) bool { return m.registry.IsReleased(name) }

// IsJustReleased reports whether the action became released this frame.
func (m *Manager) IsJustReleased(name string) bool { return m.registry.IsJustReleased(name) }

// IsPressedMin is IsPressed with a caller-supplied threshold.
func (m *Manager) IsPressedMin(name string, min float64) bool {
	return m.registry.IsPressedMin(name, min)
}

// IsJustPressedMin is IsJustPressed with a caller-supplied threshold.
func (m *Manager) IsJustPressedMin(name string, min float64) bool {
	return m.registry.IsJustPressedMin(name, min)
}

// IsReleasedMin is IsReleased with a caller-supplied threshold.
func (m *Manager) IsReleasedMin(name string, min float64) bool {
	return m.registry.IsReleasedMin(name, min)
}

// IsJustReleasedMin is IsJustReleased with a caller-supplied threshold.
func (m *Manager) IsJustReleasedMin(name string, min float64) bool {
	return m.registry.IsJustReleasedMin(name, min)
}

// Strength returns the action's strongest press this frame.
func (m *Manager) Strength(name string) float64 { return m.registry.Strength(name) }

// Phase returns where the action is in its press cycle.
func (m *Manager) Phase(name string) action.Phase { return m.registry.Phase(name) }

// Actions returns a snapshot of every action's state.
func (m *Manager) Actions() []action.Snapshot { return m.registry.Snapshot() }

// ActionsForKey returns the actions bound to a key.
func (m *Manager) ActionsForKey(k key.Key) []string { return m.registry.ActionsForKey(k) }

// Keys returns the keys bound to an action.
func (m *Manager) Keys(name string) []key.Key { return m.registry.Keys(name) }

// Frame returns the number of completed ticks.
func (m *Manager) Frame() uint64 { return m.frame }

// Hooks returns the sample hook manager.
func (m *Manager) Hooks() *HookManager { return m.hooks }

// Metrics returns a snapshot of processing metrics.
func (m *Manager) Metrics() MetricsSnapshot { return m.metrics.Snapshot() }

// BusStats returns dispatch bus statistics.
func (m *Manager) BusStats() event.Stats { return m.bus.Stats() }
