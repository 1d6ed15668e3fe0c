package event_test

import (
	"fmt"

	"github.com/dshills/actionbind/internal/event"
)

type click struct {
	X, Y int
}

// Example_sink demonstrates a high-priority sink hiding events from the
// handlers below it.
func Example_sink() {
	bus := event.NewBus[click]()
	menuOpen := true

	_, _ = bus.Subscribe(func(c click) event.Result {
		if menuOpen {
			fmt.Println("menu consumed click")
			return event.Stop
		}
		return event.Continue
	}, event.WithPriority(event.PriorityHigh), event.AsSink(), event.WithName("menu"))

	_, _ = bus.Subscribe(func(c click) event.Result {
		fmt.Printf("world click at %d,%d\n", c.X, c.Y)
		return event.Continue
	})

	out := bus.Publish(click{3, 4})
	fmt.Println("stopped by", out.StoppedBy)

	menuOpen = false
	bus.Publish(click{5, 6})

	// Output:
	// menu consumed click
	// stopped by menu
	// world click at 5,6
}
