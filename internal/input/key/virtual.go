package key

// Built-in virtual keys synthesized from continuous sources.
var (
	Thumbstick1Left  = Virtual("thumbstick-1-left")
	Thumbstick1Right = Virtual("thumbstick-1-right")
	Thumbstick1Up    = Virtual("thumbstick-1-up")
	Thumbstick1Down  = Virtual("thumbstick-1-down")

	Thumbstick2Left  = Virtual("thumbstick-2-left")
	Thumbstick2Right = Virtual("thumbstick-2-right")
	Thumbstick2Up    = Virtual("thumbstick-2-up")
	Thumbstick2Down  = Virtual("thumbstick-2-down")

	MouseWheelUp   = Virtual("mouse-wheel-up")
	MouseWheelDown = Virtual("mouse-wheel-down")

	MouseLeft  = Virtual("mouse-left")
	MouseRight = Virtual("mouse-right")
	MouseUp    = Virtual("mouse-up")
	MouseDown  = Virtual("mouse-down")
)

// Directions groups the four directional virtual keys of one axis source.
type Directions struct {
	Left, Right, Up, Down Key
}

// All returns the directions in left, right, up, down order.
func (d Directions) All() [4]Key {
	return [4]Key{d.Left, d.Right, d.Up, d.Down}
}

var axisDirections = map[Code]Directions{
	CodeThumbstick1:   {Thumbstick1Left, Thumbstick1Right, Thumbstick1Up, Thumbstick1Down},
	CodeThumbstick2:   {Thumbstick2Left, Thumbstick2Right, Thumbstick2Up, Thumbstick2Down},
	CodeMouseMovement: {MouseLeft, MouseRight, MouseUp, MouseDown},
	CodeMouseWheel:    {Up: MouseWheelUp, Down: MouseWheelDown},
}

// virtualSource maps each built-in virtual key back to the axis it is derived from.
var virtualSource = func() map[Key]Code {
	m := make(map[Key]Code)
	for code, d := range axisDirections {
		for _, k := range d.All() {
			if !k.IsZero() {
				m[k] = code
			}
		}
	}
	return m
}()

// AxisDirections returns the virtual keys derived from an axis code.
func AxisDirections(c Code) (Directions, bool) {
	d, ok := axisDirections[c]
	return d, ok
}

// SourceOf returns the physical axis a built-in virtual key is derived from.
func SourceOf(k Key) (Key, bool) {
	c, ok := virtualSource[k]
	if !ok {
		return None, false
	}
	return Physical(c), true
}

// IsBuiltinVirtual returns true if k is one of the synthesized virtual keys.
func IsBuiltinVirtual(k Key) bool {
	_, ok := virtualSource[k]
	return ok
}

// BuiltinVirtuals returns every synthesized virtual key in a stable order.
func BuiltinVirtuals() []Key {
	return []Key{
		Thumbstick1Left, Thumbstick1Right, Thumbstick1Up, Thumbstick1Down,
		Thumbstick2Left, Thumbstick2Right, Thumbstick2Up, Thumbstick2Down,
		MouseWheelUp, MouseWheelDown,
		MouseLeft, MouseRight, MouseUp, MouseDown,
	}
}
