package ebitensrc

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/platform"
)

// Pad is the state of one standard-layout gamepad.
type Pad struct {
	// Buttons holds the digital buttons, indexed like padButtons.
	Buttons []bool

	// Triggers holds the left and right analog trigger values in [0,1].
	Triggers [2]float64

	// Sticks holds the left and right stick deflections, up positive.
	Sticks [2]platform.Vec3
}

// Frame is the input state captured during one Update.
type Frame struct {
	Focused bool
	Keys    []ebiten.Key
	Mouse   [3]bool
	Cursor  platform.Vec3
	Wheel   float64

	// Pad is nil when no standard gamepad is connected.
	Pad *Pad
}

// Capture reads the current Ebitengine input state into f, reusing its
// slices. It must be called from Update.
func Capture(f *Frame) {
	f.Focused = ebiten.IsFocused()
	f.Keys = inpututil.AppendPressedKeys(f.Keys[:0])
	for i, b := range mouseButtons {
		f.Mouse[i] = ebiten.IsMouseButtonPressed(b.button)
	}
	x, y := ebiten.CursorPosition()
	f.Cursor = platform.Vec3{X: float64(x), Y: float64(y)}
	_, f.Wheel = ebiten.Wheel()

	f.Pad = nil
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		f.Pad = capturePad(id)
		break
	}
}

func capturePad(id ebiten.GamepadID) *Pad {
	p := &Pad{Buttons: make([]bool, len(padButtons))}
	for i, b := range padButtons {
		p.Buttons[i] = ebiten.IsStandardGamepadButtonPressed(id, b.button)
	}
	p.Triggers[0] = ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	p.Triggers[1] = ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight)
	p.Sticks[0] = platform.Vec3{
		X: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
		Y: -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
	}
	p.Sticks[1] = platform.Vec3{
		X: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
		Y: -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
	}
	return p
}

var (
	sticks   = [2]key.Code{key.CodeThumbstick1, key.CodeThumbstick2}
	triggers = [2]key.Code{key.CodeButtonL2, key.CodeButtonR2}
)

// Source diffs successive frames into samples.
//
// The previous frame keeps only what Feed diffs against; held keys are
// tracked separately as converted keys.
type Source struct {
	queue platform.Queue
	prev  Frame
	keys  []key.Key
	mods  key.Modifier
	frame Frame
}

// New creates a source. The previous state starts focused with nothing held.
func New() *Source {
	return &Source{prev: Frame{Focused: true}}
}

// Update captures the current Ebitengine state and queues its transitions.
func (s *Source) Update() {
	Capture(&s.frame)
	s.Feed(s.frame)
}

// Poll implements platform.Source.
func (s *Source) Poll(dst []platform.Sample) []platform.Sample {
	return s.queue.Poll(dst)
}

// Feed queues the transitions from the previous frame to f.
func (s *Source) Feed(f Frame) {
	if !f.Focused {
		if s.prev.Focused {
			s.cancelAll()
		}
		s.prev = Frame{Focused: false}
		return
	}

	s.feedKeys(f.Keys)
	s.feedMouse(f)
	s.feedPad(f.Pad)

	s.prev = Frame{
		Focused: true,
		Mouse:   f.Mouse,
		Cursor:  f.Cursor,
		Pad:     clonePad(f.Pad),
	}
}

func (s *Source) feedKeys(pressed []ebiten.Key) {
	var now []key.Key
	for _, ek := range pressed {
		if k := convertKey(ek); !k.IsZero() {
			now = append(now, k)
		}
	}
	mods := key.ModNone
	for _, k := range now {
		mods |= key.ModifierOf(k)
	}

	for _, k := range s.keys {
		if !slices.Contains(now, k) {
			s.push(k, platform.KindKeyboard, platform.StateEnd, mods)
		}
	}
	for _, k := range now {
		if !slices.Contains(s.keys, k) {
			s.push(k, platform.KindKeyboard, platform.StateBegin, mods)
		}
	}
	s.keys = now
	s.mods = mods
}

func (s *Source) feedMouse(f Frame) {
	if f.Cursor != s.prev.Cursor {
		s.queue.Push(platform.Sample{
			Key:       key.Physical(key.CodeMouseMovement),
			Kind:      platform.KindMouseMovement,
			State:     platform.StateChange,
			Position:  f.Cursor,
			Modifiers: s.mods,
		})
	}
	for i, b := range mouseButtons {
		if f.Mouse[i] == s.prev.Mouse[i] {
			continue
		}
		state := platform.StateEnd
		if f.Mouse[i] {
			state = platform.StateBegin
		}
		s.push(key.Physical(b.code), platform.KindMouseButton, state, s.mods)
	}
	if f.Wheel != 0 {
		s.queue.Push(platform.Sample{
			Key:       key.Physical(key.CodeMouseWheel),
			Kind:      platform.KindMouseWheel,
			State:     platform.StateChange,
			Position:  platform.Vec3{Z: f.Wheel},
			Modifiers: s.mods,
		})
	}
}

func (s *Source) feedPad(p *Pad) {
	prev := s.prev.Pad
	if p == nil {
		if prev != nil {
			// Disconnected: release everything the pad held.
			s.feedPad(&Pad{Buttons: make([]bool, len(padButtons))})
		}
		return
	}
	if prev == nil {
		prev = &Pad{Buttons: make([]bool, len(padButtons))}
	}

	for i, b := range padButtons {
		if p.Buttons[i] == prev.Buttons[i] {
			continue
		}
		state := platform.StateEnd
		if p.Buttons[i] {
			state = platform.StateBegin
		}
		s.push(key.Physical(b.code), platform.KindGamepad, state, key.ModNone)
	}
	for i, code := range triggers {
		if p.Triggers[i] != prev.Triggers[i] {
			s.queue.Push(platform.Sample{
				Key:      key.Physical(code),
				Kind:     platform.KindGamepad,
				State:    platform.StateChange,
				Strength: p.Triggers[i],
			})
		}
	}
	for i, code := range sticks {
		if p.Sticks[i] != prev.Sticks[i] {
			s.queue.Push(platform.Sample{
				Key:      key.Physical(code),
				Kind:     platform.KindGamepad,
				State:    platform.StateChange,
				Position: p.Sticks[i],
				Delta:    p.Sticks[i].Sub(prev.Sticks[i]),
			})
		}
	}
}

// cancelAll cancels everything held in the previous frame.
func (s *Source) cancelAll() {
	cancel := func(k key.Key) {
		s.push(k, platform.KindFocus, platform.StateCancel, key.ModNone)
	}
	for _, k := range s.keys {
		cancel(k)
	}
	for i, b := range mouseButtons {
		if s.prev.Mouse[i] {
			cancel(key.Physical(b.code))
		}
	}
	if p := s.prev.Pad; p != nil {
		for i, b := range padButtons {
			if p.Buttons[i] {
				cancel(key.Physical(b.code))
			}
		}
		for i, code := range triggers {
			if p.Triggers[i] != 0 {
				cancel(key.Physical(code))
			}
		}
		for i, code := range sticks {
			if p.Sticks[i] != (platform.Vec3{}) {
				cancel(key.Physical(code))
			}
		}
	}
	s.keys = nil
	s.mods = key.ModNone
}

func (s *Source) push(k key.Key, kind platform.Kind, state platform.State, mods key.Modifier) {
	s.queue.Push(platform.Sample{Key: k, Kind: kind, State: state, Modifiers: mods})
}

func clonePad(p *Pad) *Pad {
	if p == nil {
		return nil
	}
	c := *p
	c.Buttons = slices.Clone(p.Buttons)
	return &c
}
