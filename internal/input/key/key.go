package key

import (
	"cmp"
	"fmt"
	"strings"
)

// Kind tags which namespace a Key belongs to.
type Kind uint8

const (
	// KindNone is the zero Key.
	KindNone Kind = iota

	// KindPhysical identifies a platform key, button or axis.
	KindPhysical

	// KindVirtual identifies a synthesized key such as one direction of a thumbstick.
	KindVirtual
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPhysical:
		return "physical"
	case KindVirtual:
		return "virtual"
	default:
		return "none"
	}
}

// Code identifies a physical input source independent of the platform
// that reported it.
type Code uint16

const (
	// CodeNone represents no key.
	CodeNone Code = iota

	// Special keys
	CodeEscape
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown

	// Arrow keys
	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	// Function keys
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	// Other special keys
	CodeSpace
	CodePause
	CodePrintScreen
	CodeScrollLock
	CodeNumLock
	CodeCapsLock

	// Keypad keys
	CodeKP0
	CodeKP1
	CodeKP2
	CodeKP3
	CodeKP4
	CodeKP5
	CodeKP6
	CodeKP7
	CodeKP8
	CodeKP9
	CodeKPAdd
	CodeKPSubtract
	CodeKPMultiply
	CodeKPDivide
	CodeKPDecimal
	CodeKPEnter

	// Modifier keys
	CodeLeftShift
	CodeRightShift
	CodeLeftControl
	CodeRightControl
	CodeLeftAlt
	CodeRightAlt
	CodeLeftMeta
	CodeRightMeta

	// CodeRune is used for character keys. The character is carried by the Key.
	CodeRune

	// Mouse
	CodeMouseButton1
	CodeMouseButton2
	CodeMouseButton3
	CodeMouseWheel
	CodeMouseMovement

	// Gamepad buttons (standard layout)
	CodeButtonA
	CodeButtonB
	CodeButtonX
	CodeButtonY
	CodeButtonL1
	CodeButtonR1
	CodeButtonL2
	CodeButtonR2
	CodeButtonL3
	CodeButtonR3
	CodeButtonStart
	CodeButtonSelect
	CodeButtonHome
	CodeDPadUp
	CodeDPadDown
	CodeDPadLeft
	CodeDPadRight

	// Gamepad axes
	CodeThumbstick1
	CodeThumbstick2

	codeCount
)

var codeNames = [codeCount]string{
	CodeNone:          "None",
	CodeEscape:        "Escape",
	CodeEnter:         "Enter",
	CodeTab:           "Tab",
	CodeBackspace:     "Backspace",
	CodeDelete:        "Delete",
	CodeInsert:        "Insert",
	CodeHome:          "Home",
	CodeEnd:           "End",
	CodePageUp:        "PageUp",
	CodePageDown:      "PageDown",
	CodeUp:            "Up",
	CodeDown:          "Down",
	CodeLeft:          "Left",
	CodeRight:         "Right",
	CodeF1:            "F1",
	CodeF2:            "F2",
	CodeF3:            "F3",
	CodeF4:            "F4",
	CodeF5:            "F5",
	CodeF6:            "F6",
	CodeF7:            "F7",
	CodeF8:            "F8",
	CodeF9:            "F9",
	CodeF10:           "F10",
	CodeF11:           "F11",
	CodeF12:           "F12",
	CodeSpace:         "Space",
	CodePause:         "Pause",
	CodePrintScreen:   "PrintScreen",
	CodeScrollLock:    "ScrollLock",
	CodeNumLock:       "NumLock",
	CodeCapsLock:      "CapsLock",
	CodeKP0:           "KP0",
	CodeKP1:           "KP1",
	CodeKP2:           "KP2",
	CodeKP3:           "KP3",
	CodeKP4:           "KP4",
	CodeKP5:           "KP5",
	CodeKP6:           "KP6",
	CodeKP7:           "KP7",
	CodeKP8:           "KP8",
	CodeKP9:           "KP9",
	CodeKPAdd:         "KP+",
	CodeKPSubtract:    "KP-",
	CodeKPMultiply:    "KP*",
	CodeKPDivide:      "KP/",
	CodeKPDecimal:     "KP.",
	CodeKPEnter:       "KPEnter",
	CodeLeftShift:     "LeftShift",
	CodeRightShift:    "RightShift",
	CodeLeftControl:   "LeftControl",
	CodeRightControl:  "RightControl",
	CodeLeftAlt:       "LeftAlt",
	CodeRightAlt:      "RightAlt",
	CodeLeftMeta:      "LeftMeta",
	CodeRightMeta:     "RightMeta",
	CodeRune:          "Rune",
	CodeMouseButton1:  "MouseButton1",
	CodeMouseButton2:  "MouseButton2",
	CodeMouseButton3:  "MouseButton3",
	CodeMouseWheel:    "MouseWheel",
	CodeMouseMovement: "MouseMovement",
	CodeButtonA:       "ButtonA",
	CodeButtonB:       "ButtonB",
	CodeButtonX:       "ButtonX",
	CodeButtonY:       "ButtonY",
	CodeButtonL1:      "ButtonL1",
	CodeButtonR1:      "ButtonR1",
	CodeButtonL2:      "ButtonL2",
	CodeButtonR2:      "ButtonR2",
	CodeButtonL3:      "ButtonL3",
	CodeButtonR3:      "ButtonR3",
	CodeButtonStart:   "ButtonStart",
	CodeButtonSelect:  "ButtonSelect",
	CodeButtonHome:    "ButtonHome",
	CodeDPadUp:        "DPadUp",
	CodeDPadDown:      "DPadDown",
	CodeDPadLeft:      "DPadLeft",
	CodeDPadRight:     "DPadRight",
	CodeThumbstick1:   "Thumbstick1",
	CodeThumbstick2:   "Thumbstick2",
}

// String returns a human-readable name for the code.
func (c Code) String() string {
	if c < codeCount {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", c)
}

// IsMouse returns true for mouse buttons and mouse axes.
func (c Code) IsMouse() bool {
	return c >= CodeMouseButton1 && c <= CodeMouseMovement
}

// IsGamepad returns true for gamepad buttons and sticks.
func (c Code) IsGamepad() bool {
	return c >= CodeButtonA && c <= CodeThumbstick2
}

// IsAxis returns true for continuous sources that report positions rather
// than press/release transitions.
func (c Code) IsAxis() bool {
	switch c {
	case CodeThumbstick1, CodeThumbstick2, CodeMouseWheel, CodeMouseMovement:
		return true
	}
	return false
}

// Key identifies any input source: a physical key, button or axis, or a
// synthesized virtual key. Keys are comparable and may be used as map keys.
// Physical and virtual keys never compare equal, even when their names match.
type Key struct {
	kind Kind
	code Code
	ch   rune
	name string
}

// None is the zero Key.
var None Key

// Physical returns the key for a physical code.
func Physical(c Code) Key {
	if c == CodeNone {
		return None
	}
	return Key{kind: KindPhysical, code: c}
}

// Rune returns the physical key for a character.
func Rune(r rune) Key {
	return Key{kind: KindPhysical, code: CodeRune, ch: r}
}

// Virtual returns a synthesized key with the given identifier.
func Virtual(name string) Key {
	if name == "" {
		return None
	}
	return Key{kind: KindVirtual, name: name}
}

// Kind returns the key namespace.
func (k Key) Kind() Kind { return k.kind }

// Code returns the physical code, or CodeNone for virtual keys.
func (k Key) Code() Code { return k.code }

// Rune returns the character of a character key.
func (k Key) Rune() rune { return k.ch }

// Name returns the identifier of a virtual key.
func (k Key) Name() string { return k.name }

// IsZero returns true for the zero Key.
func (k Key) IsZero() bool { return k.kind == KindNone }

// IsPhysical returns true for platform keys.
func (k Key) IsPhysical() bool { return k.kind == KindPhysical }

// IsVirtual returns true for synthesized keys.
func (k Key) IsVirtual() bool { return k.kind == KindVirtual }

// IsAxis returns true if the key is a continuous physical source.
func (k Key) IsAxis() bool { return k.kind == KindPhysical && k.code.IsAxis() }

// String returns the display name of the key.
func (k Key) String() string {
	switch k.kind {
	case KindPhysical:
		if k.code == CodeRune {
			if k.ch == ' ' {
				return "Space"
			}
			return string(k.ch)
		}
		return k.code.String()
	case KindVirtual:
		return k.name
	default:
		return "None"
	}
}

// GoString includes the namespace so %#v output tells physical and virtual keys apart.
func (k Key) GoString() string {
	return fmt.Sprintf("key.Key{%s %q}", k.kind, k.String())
}

// Compare orders keys by kind, then code, then character, then name.
// It returns -1, 0 or +1.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.code, b.code); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ch, b.ch); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}
