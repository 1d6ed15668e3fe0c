// Package event provides the prioritized, synchronous event bus that fans
// classified input out to subscribers.
//
// # Ordering
//
// Handlers run on the publisher's goroutine in descending priority. Handlers
// with equal priority run in the order they subscribed.
//
//	PriorityHigh   (100)  menus, modal overlays
//	PriorityNormal (0)    gameplay handlers (default)
//	PriorityLow    (-100) observers, debug overlays
//
// # Sinks
//
// A handler subscribed with ModeSink consumes the events it returns Stop
// for: no lower-priority handler sees them. A ModeNormal handler returning
// Stop marks the event handled but does not end propagation. Publish returns
// an Outcome describing what happened.
//
//	bus := event.NewBus[Click]()
//	menu, _ := bus.Subscribe(func(c Click) event.Result {
//	    if menuOpen {
//	        return event.Stop
//	    }
//	    return event.Continue
//	}, event.WithPriority(event.PriorityHigh), event.AsSink(), event.WithName("menu"))
//	defer menu.Cancel()
//
// # Re-entrancy
//
// The subscriber list is captured when Publish starts. A handler may cancel
// any subscription, itself included, or add new ones while an event is in
// flight. Cancelled subscriptions get no further deliveries; new ones start
// with the next Publish.
//
// # Thread Safety
//
// Subscribing and cancelling are safe from any goroutine. Publish runs
// handlers synchronously, so handlers must manage their own thread safety.
package event
