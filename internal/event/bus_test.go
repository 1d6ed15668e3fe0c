package event

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

type press struct {
	name string
}

// recorder collects the order handlers ran in.
type recorder struct {
	calls []string
}

func (r *recorder) handler(name string, res Result) Handler[press] {
	return func(press) Result {
		r.calls = append(r.calls, name)
		return res
	}
}

func mustSubscribe(t *testing.T, bus *Bus[press], h Handler[press], opts ...SubscriptionOption) Subscription {
	t.Helper()
	sub, err := bus.Subscribe(h, opts...)
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}
	return sub
}

func TestNewBus(t *testing.T) {
	bus := NewBus[press]()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.Len() != 0 {
		t.Errorf("expected no subscriptions, got %d", bus.Len())
	}
}

func TestBus_PriorityOrder(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	mustSubscribe(t, bus, rec.handler("low", Continue), WithPriority(PriorityLow))
	mustSubscribe(t, bus, rec.handler("normal-1", Continue))
	mustSubscribe(t, bus, rec.handler("high", Continue), WithPriority(PriorityHigh))
	mustSubscribe(t, bus, rec.handler("normal-2", Continue))
	mustSubscribe(t, bus, rec.handler("five", Continue), WithPriority(5))

	out := bus.Publish(press{})

	want := []string{"high", "five", "normal-1", "normal-2", "low"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("call order = %v, want %v", rec.calls, want)
	}
	if out.Delivered != 5 || out.Handled || out.Stopped() {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func TestBus_SinkStopsPropagation(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	mustSubscribe(t, bus, rec.handler("A", Stop), WithPriority(10), AsSink(), WithName("A"))
	mustSubscribe(t, bus, rec.handler("B", Continue), WithPriority(5))

	out := bus.Publish(press{})

	if !slices.Equal(rec.calls, []string{"A"}) {
		t.Errorf("calls = %v, want [A]", rec.calls)
	}
	if !out.Handled || out.StoppedBy != "A" || out.Delivered != 1 {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func TestBus_SinkContinue(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	mustSubscribe(t, bus, rec.handler("A", Continue), WithPriority(10), AsSink())
	mustSubscribe(t, bus, rec.handler("B", Continue))

	out := bus.Publish(press{})
	if !slices.Equal(rec.calls, []string{"A", "B"}) {
		t.Errorf("calls = %v, want [A B]", rec.calls)
	}
	if out.Handled {
		t.Error("expected event not handled")
	}
}

func TestBus_NormalStopDoesNotPropagate(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	mustSubscribe(t, bus, rec.handler("A", Stop), WithPriority(10))
	mustSubscribe(t, bus, rec.handler("B", Continue))

	out := bus.Publish(press{})
	if !slices.Equal(rec.calls, []string{"A", "B"}) {
		t.Errorf("calls = %v, want [A B]", rec.calls)
	}
	if !out.Handled || out.Stopped() {
		t.Errorf("expected handled but not stopped, got %+v", out)
	}
}

func TestBus_UnnamedSinkReportsID(t *testing.T) {
	bus := NewBus[press]()
	sub := mustSubscribe(t, bus, func(press) Result { return Stop }, AsSink())

	if out := bus.Publish(press{}); out.StoppedBy != sub.ID() {
		t.Errorf("StoppedBy = %q, want %q", out.StoppedBy, sub.ID())
	}
}

func TestBus_SelfUnsubscribeDuringDispatch(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	mustSubscribe(t, bus, rec.handler("A", Continue), WithPriority(10))

	var self Subscription
	self = mustSubscribe(t, bus, func(p press) Result {
		rec.calls = append(rec.calls, "C")
		if err := bus.Unsubscribe(self); err != nil {
			t.Errorf("Unsubscribe() in handler failed: %v", err)
		}
		return Continue
	}, WithPriority(5))

	mustSubscribe(t, bus, rec.handler("B", Continue))

	bus.Publish(press{})
	bus.Publish(press{})

	want := []string{"A", "C", "B", "A", "B"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
	if bus.Len() != 2 {
		t.Errorf("expected 2 subscriptions, got %d", bus.Len())
	}
}

func TestBus_CancelLaterSubscriberDuringDispatch(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	var victim Subscription
	mustSubscribe(t, bus, func(press) Result {
		rec.calls = append(rec.calls, "A")
		victim.Cancel()
		return Continue
	}, WithPriority(10))
	victim = mustSubscribe(t, bus, rec.handler("B", Continue))

	out := bus.Publish(press{})
	if !slices.Equal(rec.calls, []string{"A"}) {
		t.Errorf("calls = %v, want [A]", rec.calls)
	}
	if out.Delivered != 1 {
		t.Errorf("Delivered = %d, want 1", out.Delivered)
	}
}

func TestBus_SubscribeDuringDispatch(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	added := false
	mustSubscribe(t, bus, func(press) Result {
		rec.calls = append(rec.calls, "A")
		if !added {
			added = true
			mustSubscribe(t, bus, rec.handler("late", Continue), WithPriority(-1))
		}
		return Continue
	})

	bus.Publish(press{})
	if !slices.Equal(rec.calls, []string{"A"}) {
		t.Errorf("first publish calls = %v, want [A]", rec.calls)
	}

	rec.calls = nil
	bus.Publish(press{})
	if !slices.Equal(rec.calls, []string{"A", "late"}) {
		t.Errorf("second publish calls = %v, want [A late]", rec.calls)
	}
}

func TestBus_Once(t *testing.T) {
	bus := NewBus[press]()
	count := 0
	sub := mustSubscribe(t, bus, func(press) Result {
		count++
		return Continue
	}, WithOnce())

	bus.Publish(press{})
	bus.Publish(press{})

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
	if sub.State() != SubscriptionStateCancelled {
		t.Errorf("expected cancelled, got %v", sub.State())
	}
	if bus.Len() != 0 {
		t.Errorf("expected once subscription removed, got %d", bus.Len())
	}
}

func TestBus_OnceReentrantPublish(t *testing.T) {
	bus := NewBus[press]()
	count := 0
	mustSubscribe(t, bus, func(press) Result {
		count++
		bus.Publish(press{})
		return Continue
	}, WithOnce())

	bus.Publish(press{})
	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
}

func TestBus_Filter(t *testing.T) {
	bus := NewBus[press]()
	var rec recorder

	mustSubscribe(t, bus, rec.handler("jump-only", Continue),
		WithFilter(func(p press) bool { return p.name == "jump" }))

	bus.Publish(press{name: "fire"})
	bus.Publish(press{name: "jump"})

	if !slices.Equal(rec.calls, []string{"jump-only"}) {
		t.Errorf("calls = %v, want one delivery", rec.calls)
	}
}

func TestBus_FilterTypeMismatch(t *testing.T) {
	bus := NewBus[press]()
	_, err := bus.Subscribe(func(press) Result { return Continue },
		WithFilter(func(s string) bool { return true }))
	if !errors.Is(err, ErrFilterType) {
		t.Errorf("expected ErrFilterType, got %v", err)
	}
}

func TestBus_PauseResume(t *testing.T) {
	bus := NewBus[press]()
	count := 0
	sub := mustSubscribe(t, bus, func(press) Result {
		count++
		return Continue
	})

	sub.Pause()
	bus.Publish(press{})
	if count != 0 {
		t.Error("paused subscription received an event")
	}

	sub.Resume()
	bus.Publish(press{})
	if count != 1 {
		t.Errorf("expected 1 delivery after resume, got %d", count)
	}
}

func TestBus_PanicRecovery(t *testing.T) {
	var (
		panicked  Subscription
		recovered any
	)
	bus := NewBus[press](WithPanicHandler(func(sub Subscription, r any, stack []byte) {
		panicked = sub
		recovered = r
		if len(stack) == 0 {
			t.Error("expected a stack trace")
		}
	}))
	var rec recorder

	bad := mustSubscribe(t, bus, func(press) Result { panic("boom") }, WithPriority(10), AsSink())
	mustSubscribe(t, bus, rec.handler("after", Continue))

	out := bus.Publish(press{})

	if panicked != bad || recovered != "boom" {
		t.Errorf("panic handler got (%v, %v)", panicked, recovered)
	}
	if !slices.Equal(rec.calls, []string{"after"}) {
		t.Errorf("dispatch did not continue after panic: %v", rec.calls)
	}
	if out.Handled || out.Delivered != 2 {
		t.Errorf("unexpected outcome %+v", out)
	}
	if bus.Stats().HandlerPanics != 1 {
		t.Errorf("expected 1 panic, got %d", bus.Stats().HandlerPanics)
	}
}

func TestBus_PanicHandlerPanics(t *testing.T) {
	bus := NewBus[press](WithPanicHandler(func(Subscription, any, []byte) {
		panic("again")
	}))
	mustSubscribe(t, bus, func(press) Result { panic("boom") })

	// Must not propagate.
	bus.Publish(press{})
}

func TestBus_SubscribeNilHandler(t *testing.T) {
	bus := NewBus[press]()
	if _, err := bus.Subscribe(nil); err != ErrNilHandler {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus[press]()
	sub := mustSubscribe(t, bus, func(press) Result { return Continue })

	if err := bus.Unsubscribe(sub); err != nil {
		t.Fatalf("Unsubscribe() failed: %v", err)
	}
	if sub.IsActive() {
		t.Error("expected subscription inactive")
	}
	if err := bus.Unsubscribe(sub); err != ErrSubscriptionNotFound {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
	if err := bus.Unsubscribe(nil); err != ErrInvalidSubscription {
		t.Errorf("expected ErrInvalidSubscription, got %v", err)
	}
}

func TestBus_UnsubscribeForeign(t *testing.T) {
	a := NewBus[press]()
	b := NewBus[press]()
	sub := mustSubscribe(t, a, func(press) Result { return Continue })

	if err := b.Unsubscribe(sub); err != ErrSubscriptionNotFound {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
	if !sub.IsActive() {
		t.Error("foreign unsubscribe cancelled the subscription")
	}
}

func TestBus_CancelIsIdempotent(t *testing.T) {
	bus := NewBus[press]()
	sub := mustSubscribe(t, bus, func(press) Result { return Continue })

	sub.Cancel()
	sub.Cancel()
	sub.Resume()

	if sub.State() != SubscriptionStateCancelled {
		t.Errorf("expected cancelled, got %v", sub.State())
	}
	if bus.Len() != 0 {
		t.Errorf("expected 0 subscriptions, got %d", bus.Len())
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus[press]()
	sub := mustSubscribe(t, bus, func(press) Result { return Continue })
	mustSubscribe(t, bus, func(press) Result { return Continue })

	bus.Clear()
	if bus.Len() != 0 {
		t.Errorf("expected 0 subscriptions, got %d", bus.Len())
	}
	if sub.IsActive() {
		t.Error("expected cleared subscription cancelled")
	}
}

func TestBus_Stats(t *testing.T) {
	bus := NewBus[press]()
	mustSubscribe(t, bus, func(p press) Result {
		if p.name == "menu" {
			return Stop
		}
		return Continue
	}, AsSink(), WithPriority(1))
	mustSubscribe(t, bus, func(press) Result { return Continue })
	paused := mustSubscribe(t, bus, func(press) Result { return Continue })
	paused.Pause()

	bus.Publish(press{name: "menu"})
	bus.Publish(press{name: "move"})

	stats := bus.Stats()
	if stats.EventsPublished != 2 {
		t.Errorf("EventsPublished = %d, want 2", stats.EventsPublished)
	}
	if stats.EventsHandled != 1 || stats.EventsStopped != 1 {
		t.Errorf("handled/stopped = %d/%d, want 1/1", stats.EventsHandled, stats.EventsStopped)
	}
	if stats.HandlersExecuted != 3 {
		t.Errorf("HandlersExecuted = %d, want 3", stats.HandlersExecuted)
	}
	if stats.ActiveSubscribers != 2 {
		t.Errorf("ActiveSubscribers = %d, want 2", stats.ActiveSubscribers)
	}
}

func TestBus_ConcurrentSubscribe(t *testing.T) {
	bus := NewBus[press]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, err := bus.Subscribe(func(press) Result { return Continue })
			if err != nil {
				t.Errorf("Subscribe() failed: %v", err)
				return
			}
			if i%2 == 0 {
				sub.Cancel()
			}
		}()
	}
	wg.Wait()

	if bus.Len() != 25 {
		t.Errorf("expected 25 subscriptions, got %d", bus.Len())
	}
}
