package event

// Priority determines handler execution order.
// Higher values execute first; equal priorities run in subscription order.
type Priority int

const (
	// PriorityLow is for observers that should see whatever is left.
	PriorityLow Priority = -100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 0

	// PriorityHigh is for handlers that should get the first look, such as
	// menus and modal overlays that sink input.
	PriorityHigh Priority = 100
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p >= PriorityHigh:
		return "high"
	case p > PriorityLow:
		return "normal"
	default:
		return "low"
	}
}

// Mode controls whether a handler can stop propagation.
type Mode int

const (
	// ModeNormal handlers observe the event. Returning Stop marks the event
	// handled but lets lower priorities run.
	ModeNormal Mode = iota

	// ModeSink handlers may consume the event. Returning Stop ends
	// propagation immediately.
	ModeSink
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSink:
		return "sink"
	default:
		return "unknown"
	}
}

// Result is returned by a handler.
type Result int

const (
	// Continue passes the event on.
	Continue Result = iota

	// Stop reports the event as handled.
	Stop
)

// String returns a human-readable result name.
func (r Result) String() string {
	if r == Stop {
		return "stop"
	}
	return "continue"
}

// Handler receives published events.
type Handler[E any] func(e E) Result

// FilterFunc is a predicate for filtering events.
// Return true to allow the event, false to filter it out.
type FilterFunc[E any] func(e E) bool

// Outcome summarizes one Publish call.
type Outcome struct {
	// Handled is true if any handler returned Stop.
	Handled bool

	// StoppedBy is the name (or ID, if unnamed) of the sink that ended
	// propagation. Empty if propagation ran to the end.
	StoppedBy string

	// Delivered is the number of handlers invoked.
	Delivered int
}

// Stopped returns true if a sink ended propagation.
func (o Outcome) Stopped() bool {
	return o.StoppedBy != ""
}

// Stats contains event bus statistics.
type Stats struct {
	// EventsPublished is the total number of Publish calls.
	EventsPublished uint64

	// EventsHandled is the number of events some handler returned Stop for.
	EventsHandled uint64

	// EventsStopped is the number of events a sink stopped.
	EventsStopped uint64

	// HandlersExecuted is the total number of handler invocations.
	HandlersExecuted uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of active subscriptions.
	ActiveSubscribers int
}

// PanicHandler is called when a handler panics.
type PanicHandler func(sub Subscription, recovered any, stack []byte)
