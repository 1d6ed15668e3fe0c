package event

import (
	"sync/atomic"
)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is the handle returned by Subscribe.
// Cancelling it disconnects the handler; no further events are delivered,
// including the remainder of a publish already in progress.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Name returns the name given with WithName, or "".
	Name() string

	// Priority returns the dispatch priority.
	Priority() Priority

	// Mode returns the dispatch mode.
	Mode() Mode

	// State returns the current subscription state.
	State() SubscriptionState

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Pause temporarily stops event delivery to this subscription.
	Pause()

	// Resume restarts event delivery after a pause.
	Resume()

	// Cancel permanently disconnects the subscription.
	// Cancelling more than once is a no-op.
	Cancel()
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (higher values execute first).
	Priority Priority

	// Mode selects normal or sink semantics.
	Mode Mode

	// Name labels the subscription in outcomes and logs.
	Name string

	// Once indicates the subscription should auto-cancel after the first event.
	Once bool

	// filter holds a FilterFunc of the bus event type.
	filter any
}

// DefaultSubscriptionConfig returns a default subscription configuration.
func DefaultSubscriptionConfig() SubscriptionConfig {
	return SubscriptionConfig{
		Priority: PriorityNormal,
		Mode:     ModeNormal,
	}
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithMode sets the dispatch mode.
func WithMode(m Mode) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Mode = m
	}
}

// AsSink is shorthand for WithMode(ModeSink).
func AsSink() SubscriptionOption {
	return WithMode(ModeSink)
}

// WithName labels the subscription.
func WithName(name string) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Name = name
	}
}

// WithFilter sets a filter predicate. The event type must match the bus
// the option is passed to.
func WithFilter[E any](f func(e E) bool) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		if f == nil {
			c.filter = nil
			return
		}
		c.filter = FilterFunc[E](f)
	}
}

// WithOnce sets the subscription to auto-cancel after the first event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// subscription is the internal implementation of Subscription.
type subscription[E any] struct {
	id      string
	seq     uint64
	handler Handler[E]
	filter  FilterFunc[E]
	config  SubscriptionConfig
	state   atomic.Int32

	// detach removes the subscription from its registry.
	detach func()
}

// newSubscription creates a new subscription.
func newSubscription[E any](id string, h Handler[E], opts ...SubscriptionOption) (*subscription[E], error) {
	config := DefaultSubscriptionConfig()
	for _, opt := range opts {
		opt(&config)
	}

	s := &subscription[E]{
		id:      id,
		handler: h,
		config:  config,
	}
	if config.filter != nil {
		f, ok := config.filter.(FilterFunc[E])
		if !ok {
			return nil, ErrFilterType
		}
		s.filter = f
	}
	s.state.Store(int32(SubscriptionStateActive))
	return s, nil
}

// ID returns the subscription ID.
func (s *subscription[E]) ID() string {
	return s.id
}

// Name returns the subscription name.
func (s *subscription[E]) Name() string {
	return s.config.Name
}

// Priority returns the subscription priority.
func (s *subscription[E]) Priority() Priority {
	return s.config.Priority
}

// Mode returns the dispatch mode.
func (s *subscription[E]) Mode() Mode {
	return s.config.Mode
}

// State returns the current subscription state.
func (s *subscription[E]) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive returns true if the subscription is active.
func (s *subscription[E]) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

// IsCancelled returns true if the subscription is cancelled.
func (s *subscription[E]) IsCancelled() bool {
	return s.State() == SubscriptionStateCancelled
}

// Pause temporarily stops event delivery.
func (s *subscription[E]) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStatePaused))
}

// Resume restarts event delivery.
func (s *subscription[E]) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionStatePaused), int32(SubscriptionStateActive))
}

// Cancel permanently cancels the subscription and detaches it from its bus.
func (s *subscription[E]) Cancel() {
	if SubscriptionState(s.state.Swap(int32(SubscriptionStateCancelled))) == SubscriptionStateCancelled {
		return
	}
	if s.detach != nil {
		s.detach()
	}
}

// label identifies the subscription in outcomes.
func (s *subscription[E]) label() string {
	if s.config.Name != "" {
		return s.config.Name
	}
	return s.id
}

// shouldDeliver returns true if the event should be delivered to this subscription.
func (s *subscription[E]) shouldDeliver(e E) bool {
	if !s.IsActive() {
		return false
	}
	if s.filter != nil && !s.filter(e) {
		return false
	}
	return true
}
