package input

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/dshills/actionbind/internal/event"
	"github.com/dshills/actionbind/internal/input/action"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/input/normalize"
	"github.com/dshills/actionbind/internal/input/synth"
	"github.com/dshills/actionbind/internal/platform"
)

var (
	space  = key.Physical(key.CodeSpace)
	enter  = key.Physical(key.CodeEnter)
	btnA   = key.Physical(key.CodeButtonA)
	rt     = key.Physical(key.CodeButtonR2)
	stick1 = key.Physical(key.CodeThumbstick1)
	wheel  = key.Physical(key.CodeMouseWheel)
	motion = key.Physical(key.CodeMouseMovement)
)

func begin(k key.Key) platform.Sample {
	return platform.Sample{Key: k, Kind: platform.KindKeyboard, State: platform.StateBegin}
}

func end(k key.Key) platform.Sample {
	return platform.Sample{Key: k, Kind: platform.KindKeyboard, State: platform.StateEnd}
}

func stick(x, y float64) platform.Sample {
	return platform.Sample{
		Key:      stick1,
		Kind:     platform.KindGamepad,
		State:    platform.StateChange,
		Position: platform.Vec3{X: x, Y: y},
	}
}

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(opts...)
	if err := m.AddAction("jump", 0.5, space, btnA); err != nil {
		t.Fatalf("AddAction(jump) failed: %v", err)
	}
	if err := m.AddAction("left", 0.5, key.Thumbstick1Left); err != nil {
		t.Fatalf("AddAction(left) failed: %v", err)
	}
	return m
}

func TestManager_PressLifecycle(t *testing.T) {
	m := newTestManager(t)

	m.HandleSample(begin(space))
	if !m.IsPressed("jump") || !m.IsJustPressed("jump") {
		t.Fatal("expected jump just pressed after Begin")
	}
	m.Tick()

	// Held across frames without new samples.
	for i := 0; i < 3; i++ {
		if !m.IsPressed("jump") {
			t.Fatalf("frame %d: expected jump held", i)
		}
		if m.IsJustPressed("jump") {
			t.Fatalf("frame %d: just pressed fired again", i)
		}
		m.Tick()
	}

	m.HandleSample(end(space))
	if !m.IsJustReleased("jump") {
		t.Error("expected jump just released in the frame of End")
	}
	m.Tick()
	if m.IsJustReleased("jump") || !m.IsReleased("jump") {
		t.Error("expected jump plain released")
	}
}

func TestManager_JustPressedOncePerCycle(t *testing.T) {
	m := newTestManager(t)
	count := 0

	frames := [][]platform.Sample{
		{begin(space)},
		nil,
		{begin(space)}, // key repeat
		nil,
		{end(space)},
		nil,
		{begin(btnA)},
		{end(btnA)},
		nil,
	}
	for _, samples := range frames {
		m.HandleSamples(samples)
		if m.IsJustPressed("jump") {
			count++
		}
		m.Tick()
	}

	if count != 2 {
		t.Errorf("IsJustPressed fired %d times, want 2", count)
	}
}

func TestManager_TwoKeysKeepStrongest(t *testing.T) {
	m := NewManager()
	if err := m.AddAction("accelerate", 0.5, rt, key.Physical(key.CodeButtonL2)); err != nil {
		t.Fatal(err)
	}

	m.HandleSample(platform.Sample{Key: rt, Kind: platform.KindGamepad, State: platform.StateChange, Strength: 0.3})
	m.HandleSample(platform.Sample{Key: key.Physical(key.CodeButtonL2), Kind: platform.KindGamepad, State: platform.StateChange, Strength: 0.8})

	if got := m.Strength("accelerate"); got != 0.8 {
		t.Errorf("Strength = %v, want 0.8", got)
	}
	if !m.IsPressed("accelerate") {
		t.Error("expected accelerate pressed")
	}

	// Analog triggers stay held at their last strength.
	m.Tick()
	if got := m.Strength("accelerate"); got != 0.8 {
		t.Errorf("Strength after Tick = %v, want 0.8", got)
	}
}

func TestManager_ThumbstickHeld(t *testing.T) {
	m := newTestManager(t)

	m.HandleSample(stick(-0.6, 0))
	if got := m.Strength("left"); got != 0.6 {
		t.Fatalf("Strength(left) = %v, want 0.6", got)
	}
	m.Tick()

	// The same position is suppressed but the action stays held.
	m.HandleSample(stick(-0.6, 0))
	if !m.IsPressed("left") || m.IsJustPressed("left") {
		t.Error("expected left held, not just pressed")
	}
	m.Tick()

	m.HandleSample(stick(0, 0))
	if !m.IsJustReleased("left") {
		t.Error("expected left just released after centering")
	}
}

func TestManager_HeldSourceEasesOff(t *testing.T) {
	m := newTestManager(t)
	var released []bool
	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		if ev.Key() == key.Thumbstick1Left && ev.Strength() == 0 {
			released = append(released, ev.IsActionReleased("left") && !m.IsPressed("left"))
		}
		return event.Continue
	})

	steps := []struct {
		x    float64
		want float64
	}{
		{-0.9, 0.9},
		{-0.6, 0.6},
		{0, 0},
	}
	for i, st := range steps {
		m.HandleSample(stick(st.x, 0))
		if got := m.Strength("left"); got != st.want {
			t.Errorf("frame %d: Strength(left) = %v, want %v", i, got, st.want)
		}
		m.Tick()
	}

	if !slices.Equal(released, []bool{true}) {
		t.Errorf("release event saw released = %v, want [true]", released)
	}
}

func TestManager_TriggerEasesOff(t *testing.T) {
	m := NewManager()
	if err := m.AddAction("aim", 0.5, rt); err != nil {
		t.Fatal(err)
	}
	trigger := func(v float64) platform.Sample {
		return platform.Sample{Key: rt, Kind: platform.KindGamepad, State: platform.StateChange, Strength: v}
	}

	m.HandleSample(trigger(0.9))
	m.Tick()
	if got := m.Strength("aim"); got != 0.9 {
		t.Fatalf("carried Strength(aim) = %v, want 0.9", got)
	}

	m.HandleSample(trigger(0.2))
	if got := m.Strength("aim"); got != 0.2 {
		t.Errorf("Strength(aim) = %v, want 0.2", got)
	}
	if m.IsPressed("aim") || !m.IsJustReleased("aim") {
		t.Error("expected aim just released below its threshold")
	}
}

func TestManager_DeadzoneSuppresses(t *testing.T) {
	m := newTestManager(t)
	var got []key.Key
	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		got = append(got, ev.Key())
		return event.Continue
	})

	m.HandleSample(stick(0.1, 0))

	// Only the raw axis event is dispatched.
	if !slices.Equal(got, []key.Key{stick1}) {
		t.Errorf("dispatched %v, want only the raw thumbstick", got)
	}
}

func TestManager_SynthesizedBeforeRaw(t *testing.T) {
	m := newTestManager(t)
	var got []key.Key
	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		got = append(got, ev.Key())
		return event.Continue
	})

	m.HandleSample(stick(-1, 0))

	want := []key.Key{key.Thumbstick1Left, stick1}
	if !slices.Equal(got, want) {
		t.Errorf("dispatch order = %v, want %v", got, want)
	}
}

func TestManager_WheelIsImpulse(t *testing.T) {
	m := NewManager()
	if err := m.AddAction("zoom-in", 0.5, key.MouseWheelUp); err != nil {
		t.Fatal(err)
	}
	count := 0
	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		if ev.Key() == key.MouseWheelUp {
			count++
		}
		return event.Continue
	})

	tick := platform.Sample{Key: wheel, Kind: platform.KindMouseWheel, State: platform.StateChange, Position: platform.Vec3{Z: 1}}
	m.HandleSample(tick)
	m.HandleSample(tick)

	if count != 2 {
		t.Errorf("wheel-up dispatched %d times, want 2", count)
	}
	if !m.IsJustPressed("zoom-in") {
		t.Error("expected zoom-in just pressed")
	}
	m.Tick()
	if m.IsPressed("zoom-in") {
		t.Error("wheel must not stay pressed across frames")
	}
}

func TestManager_MouseMovementIsImpulse(t *testing.T) {
	m := NewManager()
	if err := m.AddAction("look-right", 0.5, key.MouseRight); err != nil {
		t.Fatal(err)
	}

	m.HandleSample(platform.Sample{Key: motion, Kind: platform.KindMouseMovement, State: platform.StateChange, Position: platform.Vec3{X: 5}})
	if !m.IsPressed("look-right") {
		t.Fatal("expected look-right pressed")
	}
	m.Tick()
	if m.IsPressed("look-right") {
		t.Error("mouse motion must not stay pressed across frames")
	}
}

func TestManager_SinkStopsLowerPriority(t *testing.T) {
	m := newTestManager(t)
	var calls []string

	_, err := m.Subscribe(func(normalize.Event) event.Result {
		calls = append(calls, "A")
		return event.Stop
	}, event.WithPriority(10), event.AsSink(), event.WithName("A"))
	if err != nil {
		t.Fatal(err)
	}
	_, _ = m.Subscribe(func(normalize.Event) event.Result {
		calls = append(calls, "B")
		return event.Continue
	}, event.WithPriority(5))

	if !m.HandleSample(begin(space)) {
		t.Error("expected sample handled")
	}
	if !slices.Equal(calls, []string{"A"}) {
		t.Errorf("calls = %v, want [A]", calls)
	}
	// The registry was updated even though dispatch stopped.
	if !m.IsPressed("jump") {
		t.Error("expected jump pressed")
	}
}

func TestManager_RegistryUpdatedBeforeDispatch(t *testing.T) {
	m := newTestManager(t)
	seen := false
	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		seen = ev.IsActionJustPressed("jump") && m.IsPressed("jump")
		return event.Continue
	})

	m.HandleSample(begin(space))
	if !seen {
		t.Error("subscriber did not observe the pressed state")
	}
}

func TestManager_NestedDispatch(t *testing.T) {
	m := newTestManager(t)
	var calls []string
	nested := false

	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		calls = append(calls, ev.Key().String())
		if ev.Key() == space && !nested {
			nested = true
			if err := m.AddAction("dodge", 0.5, key.Thumbstick1Left); err != nil {
				t.Errorf("AddAction inside a handler: %v", err)
			}
			m.HandleSample(stick(-1, 0))
			if !m.IsPressed("dodge") || !m.IsPressed("left") {
				t.Error("nested sample did not press dodge and left")
			}
		}
		return event.Continue
	})

	m.HandleSample(begin(space))

	want := []string{space.String(), key.Thumbstick1Left.String(), stick1.String()}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if !m.IsPressed("jump") {
		t.Error("outer press lost after nested dispatch")
	}
	if got := m.ActionsForKey(key.Thumbstick1Left); !slices.Equal(got, []string{"left", "dodge"}) {
		t.Errorf("ActionsForKey(thumbstick-1-left) = %v", got)
	}
}

func TestManager_SelfUnsubscribe(t *testing.T) {
	m := newTestManager(t)
	var calls []string

	var sub event.Subscription
	sub, _ = m.Subscribe(func(normalize.Event) event.Result {
		calls = append(calls, "C")
		_ = m.Unsubscribe(sub)
		return event.Continue
	}, event.WithPriority(1))
	_, _ = m.Subscribe(func(normalize.Event) event.Result {
		calls = append(calls, "D")
		return event.Continue
	})

	m.HandleSample(begin(space))
	m.HandleSample(end(space))

	if !slices.Equal(calls, []string{"C", "D", "D"}) {
		t.Errorf("calls = %v, want [C D D]", calls)
	}
}

func TestManager_IgnoresNoneAndCancel(t *testing.T) {
	m := newTestManager(t)
	count := 0
	_, _ = m.Subscribe(func(normalize.Event) event.Result {
		count++
		return event.Continue
	})

	m.HandleSample(platform.Sample{Key: space, State: platform.StateNone})
	m.HandleSample(platform.Sample{Key: space, State: platform.StateCancel})

	if count != 0 {
		t.Errorf("dispatched %d events, want 0", count)
	}
	if m.IsPressed("jump") {
		t.Error("ignored sample pressed an action")
	}
	if got := m.Metrics().IgnoredSamples; got != 2 {
		t.Errorf("IgnoredSamples = %d, want 2", got)
	}
}

func TestManager_CancelReleasesHeldKey(t *testing.T) {
	m := newTestManager(t)

	m.HandleSample(begin(space))
	m.Tick()
	m.HandleSample(platform.Sample{Key: space, State: platform.StateCancel})
	m.Tick()

	if m.IsPressed("jump") {
		t.Error("cancelled key still held")
	}
}

func TestManager_CancelReleasesThumbstick(t *testing.T) {
	m := newTestManager(t)

	m.HandleSample(stick(-0.8, 0))
	m.HandleSample(platform.Sample{Key: stick1, State: platform.StateCancel})
	m.Tick()

	if m.IsPressed("left") {
		t.Error("cancelled thumbstick still held")
	}
}

func TestManager_ReleaseAll(t *testing.T) {
	m := newTestManager(t)
	m.HandleSample(begin(space))
	m.HandleSample(stick(-1, 0))

	m.ReleaseAll()
	m.Tick()

	if m.IsPressed("jump") || m.IsPressed("left") {
		t.Error("ReleaseAll left actions held")
	}
}

func TestManager_ReleaseAllKeepsPointer(t *testing.T) {
	m := NewManager()
	if err := m.AddAction("look-right", 0.5, key.MouseRight); err != nil {
		t.Fatal(err)
	}
	move := func(x, y float64) platform.Sample {
		return platform.Sample{Key: motion, Kind: platform.KindMouseMovement, State: platform.StateChange, Position: platform.Vec3{X: x, Y: y}}
	}

	m.HandleSample(move(400, 300))
	m.Tick()
	m.ReleaseAll()
	m.Tick()

	m.HandleSample(move(400, 300.2))
	if m.IsPressed("look-right") {
		t.Error("first motion after ReleaseAll read as a jump from the origin")
	}
}

func TestManager_PressAction(t *testing.T) {
	m := newTestManager(t)
	var got []string
	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		got = ev.Actions()
		if !ev.Key().IsZero() {
			t.Errorf("direct event has key %v", ev.Key())
		}
		return event.Stop
	})

	if !m.PressAction("pause", 1) {
		t.Error("expected PressAction handled")
	}
	if !slices.Equal(got, []string{"pause"}) {
		t.Errorf("actions = %v, want [pause]", got)
	}
	if !m.IsJustPressed("pause") {
		t.Error("expected pause just pressed")
	}
	if m.PressAction("", 1) {
		t.Error("empty action name should not dispatch")
	}

	// Direct presses are impulses.
	m.Tick()
	if m.IsPressed("pause") {
		t.Error("direct press held across frames")
	}
}

func TestManager_UnboundKeyStillDispatched(t *testing.T) {
	m := newTestManager(t)
	var raw bool
	_, _ = m.Subscribe(func(ev normalize.Event) event.Result {
		raw = ev.IsRawKey()
		return event.Continue
	})

	m.HandleSample(begin(key.Rune('z')))
	if !raw {
		t.Error("expected an event with no actions")
	}
}

func TestManager_ConfigurationErrors(t *testing.T) {
	m := NewManager()

	if err := m.AddAction("", 0.5); !errors.Is(err, action.ErrEmptyName) {
		t.Errorf("AddAction(\"\") = %v, want ErrEmptyName", err)
	}
	if err := m.AddAction("a", 1.5); !errors.Is(err, action.ErrInvalidThreshold) {
		t.Errorf("AddAction(1.5) = %v, want ErrInvalidThreshold", err)
	}
	if err := m.SetActivationThreshold("a", -1); !errors.Is(err, action.ErrInvalidThreshold) {
		t.Errorf("SetActivationThreshold(-1) = %v, want ErrInvalidThreshold", err)
	}
	if err := m.SetDeadzone(stick1, 2); !errors.Is(err, synth.ErrInvalidDeadzone) {
		t.Errorf("SetDeadzone(2) = %v, want ErrInvalidDeadzone", err)
	}
	if err := m.BindKeyToAction("a", key.None); !errors.Is(err, action.ErrInvalidKey) {
		t.Errorf("BindKeyToAction(None) = %v, want ErrInvalidKey", err)
	}
}

func TestManager_BindingChanges(t *testing.T) {
	m := newTestManager(t)

	if err := m.BindKeyToAction("jump", enter); err != nil {
		t.Fatal(err)
	}
	if err := m.BindKeyToAction("jump", enter); err != nil {
		t.Fatal(err)
	}
	if got := m.Keys("jump"); len(got) != 3 {
		t.Errorf("Keys(jump) = %v, want 3 keys", got)
	}

	if !m.UnbindKey("jump", space) {
		t.Error("UnbindKey(space) = false")
	}
	m.HandleSample(begin(space))
	if m.IsPressed("jump") {
		t.Error("unbound key still presses jump")
	}

	if !m.RemoveAction("jump") {
		t.Error("RemoveAction(jump) = false")
	}
	if m.ActionsForKey(enter) != nil {
		t.Error("removed action still bound")
	}
}

func TestManager_SetDeadzone(t *testing.T) {
	m := newTestManager(t, WithDeadzone(0.05))

	if got := m.Deadzone(stick1); got != 0.05 {
		t.Errorf("Deadzone = %v, want 0.05", got)
	}
	if err := m.SetDeadzone(key.Thumbstick1Left, 0.7); err != nil {
		t.Fatal(err)
	}
	m.HandleSample(stick(-0.6, 0))
	if m.Strength("left") != 0 {
		t.Error("left pressed inside its dead-zone")
	}
}

func TestManager_SetDefaultDeadzone(t *testing.T) {
	m := newTestManager(t)

	if err := m.SetDefaultDeadzone(0.4); err != nil {
		t.Fatal(err)
	}
	if got := m.Deadzone(key.Thumbstick2Down); got != 0.4 {
		t.Errorf("Deadzone = %v, want 0.4", got)
	}
	if err := m.SetDefaultDeadzone(1.5); !errors.Is(err, synth.ErrInvalidDeadzone) {
		t.Errorf("SetDefaultDeadzone(1.5) = %v, want ErrInvalidDeadzone", err)
	}
	if got := m.Deadzone(key.Thumbstick2Down); got != 0.4 {
		t.Errorf("Deadzone after rejected set = %v, want 0.4", got)
	}
}

func TestManager_UnknownActionQueries(t *testing.T) {
	m := NewManager()
	if m.IsPressed("x") || m.IsJustPressed("x") || m.IsReleased("x") || m.IsJustReleased("x") {
		t.Error("unknown action reported state")
	}
	if m.IsPressedMin("x", 0) || m.IsJustPressedMin("x", 0) || m.IsReleasedMin("x", 1) || m.IsJustReleasedMin("x", 1) {
		t.Error("unknown action reported min state")
	}
	if m.Strength("x") != 0 {
		t.Error("unknown action has strength")
	}
}

func TestManager_MinQueries(t *testing.T) {
	m := NewManager()
	_ = m.AddAction("brake", 0.9, rt)
	m.HandleSample(platform.Sample{Key: rt, Kind: platform.KindGamepad, State: platform.StateChange, Strength: 0.4})

	if m.IsPressed("brake") {
		t.Error("brake pressed below threshold")
	}
	if !m.IsPressedMin("brake", 0.3) || !m.IsJustPressedMin("brake", 0.3) {
		t.Error("expected brake pressed at min 0.3")
	}
	if !m.IsReleasedMin("brake", 0.5) {
		t.Error("expected brake released at min 0.5")
	}
	if m.Phase("brake") != action.PhaseIdle {
		t.Errorf("Phase = %v, want idle", m.Phase("brake"))
	}
}

func TestManager_Hooks(t *testing.T) {
	m := newTestManager(t)
	var posted int
	m.Hooks().Register(FuncHook{
		PreSampleFunc: func(s *platform.Sample) bool {
			return s.Kind == platform.KindGamepad
		},
		PostEventFunc: func(normalize.Event, event.Outcome) { posted++ },
	})

	if !m.HandleSample(platform.Sample{Key: btnA, Kind: platform.KindGamepad, State: platform.StateBegin}) {
		t.Error("consumed sample should report handled")
	}
	if m.IsPressed("jump") {
		t.Error("consumed sample pressed an action")
	}

	m.HandleSample(begin(space))
	if posted != 1 {
		t.Errorf("PostEvent called %d times, want 1", posted)
	}
	if got := m.Metrics().HookConsumed; got != 1 {
		t.Errorf("HookConsumed = %d, want 1", got)
	}
}

func TestManager_HookRewritesSample(t *testing.T) {
	m := newTestManager(t)
	m.Hooks().Register(FuncHook{
		PreSampleFunc: func(s *platform.Sample) bool {
			if s.Key == enter {
				s.Key = space
			}
			return false
		},
	})

	m.HandleSample(begin(enter))
	if !m.IsPressed("jump") {
		t.Error("rewritten sample did not press jump")
	}
}

func TestManager_Metrics(t *testing.T) {
	m := newTestManager(t)
	_, _ = m.Subscribe(func(normalize.Event) event.Result { return event.Stop }, event.AsSink())

	m.HandleSample(begin(space))
	m.HandleSample(stick(-1, 0))
	m.PressAction("pause", 1)
	m.Tick()

	snap := m.Metrics()
	if snap.KeyboardSamples != 1 || snap.GamepadSamples != 1 {
		t.Errorf("samples = %d keyboard, %d gamepad", snap.KeyboardSamples, snap.GamepadSamples)
	}
	if snap.EventsTotal != 4 {
		t.Errorf("EventsTotal = %d, want 4", snap.EventsTotal)
	}
	if snap.SynthesizedTotal != 1 || snap.DirectTotal != 1 {
		t.Errorf("synthesized/direct = %d/%d, want 1/1", snap.SynthesizedTotal, snap.DirectTotal)
	}
	if snap.StoppedTotal != 4 || snap.HandledTotal != 4 {
		t.Errorf("stopped/handled = %d/%d, want 4/4", snap.StoppedTotal, snap.HandledTotal)
	}
	if snap.Frames != 1 || m.Frame() != 1 {
		t.Errorf("frames = %d/%d, want 1", snap.Frames, m.Frame())
	}
	if m.BusStats().EventsPublished != 4 {
		t.Errorf("bus published = %d, want 4", m.BusStats().EventsPublished)
	}
}

func TestManager_PanicHandler(t *testing.T) {
	var recovered any
	m := newTestManager(t, WithPanicHandler(func(_ event.Subscription, r any, _ []byte) {
		recovered = r
	}))
	_, _ = m.Subscribe(func(normalize.Event) event.Result { panic("bad handler") })

	m.HandleSample(begin(space))
	if recovered != "bad handler" {
		t.Errorf("recovered = %v", recovered)
	}
	if !m.IsPressed("jump") {
		t.Error("panic lost the press")
	}
}

func TestManager_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := NewManager(WithLogger(logger))

	_ = m.AddAction("jump", 0.5, space)
	if !strings.Contains(buf.String(), "action added") || !strings.Contains(buf.String(), "action=jump") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestManager_Step(t *testing.T) {
	var frames []uint64
	var pressedInFrame bool
	var m *Manager
	m = newTestManager(t, WithFrameFunc(func(frame uint64) {
		frames = append(frames, frame)
		if frame == 0 {
			pressedInFrame = m.IsJustPressed("jump")
		}
	}))

	var q platform.Queue
	q.Push(begin(space))
	m.Step(&q)
	m.Step(&q)

	if !slices.Equal(frames, []uint64{0, 1}) {
		t.Errorf("frames = %v, want [0 1]", frames)
	}
	if !pressedInFrame {
		t.Error("frame callback did not see the press")
	}
	if q.Len() != 0 {
		t.Errorf("queue still holds %d samples", q.Len())
	}
}

func TestManager_Run(t *testing.T) {
	m := newTestManager(t)
	var q platform.Queue
	q.Push(begin(space))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.Run(ctx, &q, time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want DeadlineExceeded", err)
	}
	if m.Frame() == 0 {
		t.Error("Run() did not tick")
	}
	if !m.IsPressed("jump") {
		t.Error("held key lost during Run")
	}
}
