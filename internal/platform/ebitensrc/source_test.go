package ebitensrc

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/platform"
)

func focused(keys ...ebiten.Key) Frame {
	return Frame{Focused: true, Keys: keys}
}

func newPad() *Pad {
	return &Pad{Buttons: make([]bool, len(padButtons))}
}

func padIndex(t *testing.T, code key.Code) int {
	t.Helper()
	for i, b := range padButtons {
		if b.code == code {
			return i
		}
	}
	t.Fatalf("no pad button for %v", code)
	return -1
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   ebiten.Key
		want key.Key
	}{
		{ebiten.KeyA, key.Rune('a')},
		{ebiten.KeyZ, key.Rune('z')},
		{ebiten.KeyDigit7, key.Rune('7')},
		{ebiten.KeySlash, key.Rune('/')},
		{ebiten.KeySpace, key.Physical(key.CodeSpace)},
		{ebiten.KeyArrowLeft, key.Physical(key.CodeLeft)},
		{ebiten.KeyNumpadEnter, key.Physical(key.CodeKPEnter)},
		{ebiten.KeyShiftLeft, key.Physical(key.CodeLeftShift)},
		{ebiten.KeyF24, key.None},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertKey(tt.in), "convertKey(%v)", tt.in)
	}
}

func TestFeed_Keys(t *testing.T) {
	s := New()

	s.Feed(focused(ebiten.KeyShiftLeft, ebiten.KeyW))
	got := s.Poll(nil)
	require.Len(t, got, 2)
	assert.Equal(t, key.Physical(key.CodeLeftShift), got[0].Key)
	assert.Equal(t, key.Rune('w'), got[1].Key)
	for _, smp := range got {
		assert.Equal(t, platform.StateBegin, smp.State)
		assert.Equal(t, key.ModShift, smp.Modifiers)
	}

	// Held keys produce nothing new.
	s.Feed(focused(ebiten.KeyShiftLeft, ebiten.KeyW))
	assert.Empty(t, s.Poll(nil))

	s.Feed(focused(ebiten.KeyW))
	got = s.Poll(nil)
	require.Len(t, got, 1)
	assert.Equal(t, key.Physical(key.CodeLeftShift), got[0].Key)
	assert.Equal(t, platform.StateEnd, got[0].State)
}

func TestFeed_Mouse(t *testing.T) {
	s := New()

	f := focused()
	f.Cursor = platform.Vec3{X: 10, Y: 20}
	f.Mouse[0] = true
	f.Wheel = 1
	s.Feed(f)

	got := s.Poll(nil)
	require.Len(t, got, 3)
	assert.Equal(t, platform.KindMouseMovement, got[0].Kind)
	assert.Equal(t, f.Cursor, got[0].Position)
	assert.Equal(t, key.Physical(key.CodeMouseButton1), got[1].Key)
	assert.Equal(t, platform.StateBegin, got[1].State)
	assert.Equal(t, platform.KindMouseWheel, got[2].Kind)
	assert.Equal(t, 1.0, got[2].Position.Z)

	// Wheel is reported only while it moves.
	f.Wheel = 0
	s.Feed(f)
	assert.Empty(t, s.Poll(nil))

	f.Mouse[0] = false
	s.Feed(f)
	got = s.Poll(nil)
	require.Len(t, got, 1)
	assert.Equal(t, platform.StateEnd, got[0].State)
}

func TestFeed_Gamepad(t *testing.T) {
	s := New()
	a := padIndex(t, key.CodeButtonA)

	p := newPad()
	p.Buttons[a] = true
	p.Triggers[1] = 0.4
	p.Sticks[0] = platform.Vec3{X: -0.7}

	f := focused()
	f.Pad = p
	s.Feed(f)

	got := s.Poll(nil)
	require.Len(t, got, 3)
	assert.Equal(t, platform.Sample{Key: key.Physical(key.CodeButtonA), Kind: platform.KindGamepad, State: platform.StateBegin}, got[0])
	assert.Equal(t, key.Physical(key.CodeButtonR2), got[1].Key)
	assert.Equal(t, platform.StateChange, got[1].State)
	assert.Equal(t, 0.4, got[1].Strength)
	assert.Equal(t, key.Physical(key.CodeThumbstick1), got[2].Key)
	assert.Equal(t, platform.Vec3{X: -0.7}, got[2].Position)

	// Unchanged pad state is quiet even when the caller reuses the Pad.
	s.Feed(f)
	assert.Empty(t, s.Poll(nil))

	p.Sticks[0] = platform.Vec3{}
	s.Feed(f)
	got = s.Poll(nil)
	require.Len(t, got, 1)
	assert.Equal(t, platform.Vec3{}, got[0].Position)
	assert.Equal(t, platform.Vec3{X: 0.7}, got[0].Delta)
}

func TestFeed_GamepadDisconnect(t *testing.T) {
	s := New()
	p := newPad()
	p.Buttons[padIndex(t, key.CodeDPadUp)] = true
	p.Sticks[1] = platform.Vec3{Y: 1}

	f := focused()
	f.Pad = p
	s.Feed(f)
	s.Poll(nil)

	s.Feed(focused())
	got := s.Poll(nil)
	require.Len(t, got, 2)
	assert.Equal(t, key.Physical(key.CodeDPadUp), got[0].Key)
	assert.Equal(t, platform.StateEnd, got[0].State)
	assert.Equal(t, key.Physical(key.CodeThumbstick2), got[1].Key)
	assert.Equal(t, platform.Vec3{}, got[1].Position)
}

func TestFeed_FocusLoss(t *testing.T) {
	s := New()
	p := newPad()
	p.Triggers[0] = 1

	f := focused(ebiten.KeySpace)
	f.Mouse[1] = true
	f.Pad = p
	s.Feed(f)
	s.Poll(nil)

	s.Feed(Frame{})
	got := s.Poll(nil)
	require.Len(t, got, 3)
	for _, smp := range got {
		assert.Equal(t, platform.StateCancel, smp.State)
	}
	assert.Equal(t, key.Physical(key.CodeSpace), got[0].Key)
	assert.Equal(t, key.Physical(key.CodeMouseButton2), got[1].Key)
	assert.Equal(t, key.Physical(key.CodeButtonL2), got[2].Key)

	// Still unfocused: nothing more.
	s.Feed(Frame{})
	assert.Empty(t, s.Poll(nil))

	// Regaining focus with the key still down presses it again.
	s.Feed(focused(ebiten.KeySpace))
	got = s.Poll(nil)
	require.Len(t, got, 1)
	assert.Equal(t, platform.StateBegin, got[0].State)
}
