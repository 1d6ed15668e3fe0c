package event

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bus delivers events of type E to subscribers in priority order.
//
// Publish runs handlers synchronously on the caller's goroutine. The
// subscriber list is captured when Publish starts: handlers may subscribe,
// unsubscribe or cancel themselves while an event is in flight. A
// subscription cancelled mid-dispatch receives nothing further; one added
// mid-dispatch first sees the next event.
type Bus[E any] struct {
	registry *registry[E]
	config   busConfig

	// Stats
	eventsPublished  atomic.Uint64
	eventsHandled    atomic.Uint64
	eventsStopped    atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus[E any](opts ...BusOption) *Bus[E] {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Bus[E]{
		registry: newRegistry[E](),
		config:   config,
	}
}

// Subscribe registers a handler.
func (b *Bus[E]) Subscribe(handler Handler[E], opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub, err := newSubscription(uuid.NewString(), handler, opts...)
	if err != nil {
		return nil, err
	}
	sub.detach = func() { b.registry.remove(sub.id) }
	b.registry.add(sub)

	b.config.logger.Debug("subscribed",
		"id", sub.id,
		"name", sub.config.Name,
		"priority", int(sub.config.Priority),
		"mode", sub.config.Mode.String(),
	)
	return sub, nil
}

// Unsubscribe cancels a subscription and removes it from the bus.
func (b *Bus[E]) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	s, ok := b.registry.get(sub.ID())
	if !ok {
		return ErrSubscriptionNotFound
	}
	if Subscription(s) != sub {
		return ErrInvalidSubscription
	}

	s.Cancel()
	b.config.logger.Debug("unsubscribed", "id", s.id, "name", s.config.Name)
	return nil
}

// Publish delivers e to every active subscriber whose filter accepts it,
// highest priority first. A sink returning Stop ends propagation.
func (b *Bus[E]) Publish(e E) Outcome {
	b.eventsPublished.Add(1)

	var out Outcome
	for _, sub := range b.registry.snapshot() {
		if !sub.shouldDeliver(e) {
			continue
		}
		if sub.config.Once {
			sub.Cancel()
		}

		res, ok := b.execute(sub, e)
		out.Delivered++
		if !ok || res != Stop {
			continue
		}

		out.Handled = true
		if sub.config.Mode == ModeSink {
			out.StoppedBy = sub.label()
			break
		}
	}

	b.handlersExecuted.Add(uint64(out.Delivered))
	if out.Handled {
		b.eventsHandled.Add(1)
	}
	if out.Stopped() {
		b.eventsStopped.Add(1)
	}
	return out
}

// execute runs one handler, recovering from panics.
// ok is false if the handler panicked.
func (b *Bus[E]) execute(sub *subscription[E], e E) (res Result, ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		stack := debug.Stack()
		b.handlerPanics.Add(1)
		b.config.logger.Warn("handler panicked",
			"err", &PanicError{SubscriptionID: sub.id, Name: sub.config.Name, Value: r},
		)

		if b.config.panicHandler != nil {
			func() {
				// A panicking panic handler must not take down dispatch.
				defer func() { _ = recover() }()
				b.config.panicHandler(sub, r, stack)
			}()
		}
		res, ok = Continue, false
	}()

	return sub.handler(e), true
}

// Len returns the number of subscriptions, including paused ones.
func (b *Bus[E]) Len() int {
	return b.registry.count()
}

// Clear cancels and removes every subscription.
func (b *Bus[E]) Clear() {
	for _, sub := range b.registry.clear() {
		sub.Cancel()
	}
}

// Stats returns current bus statistics.
func (b *Bus[E]) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsHandled:     b.eventsHandled.Load(),
		EventsStopped:     b.eventsStopped.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: b.registry.countActive(),
	}
}
