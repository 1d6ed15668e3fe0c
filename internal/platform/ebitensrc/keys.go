package ebitensrc

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/actionbind/internal/input/key"
)

var namedKeys = map[ebiten.Key]key.Code{
	ebiten.KeySpace:          key.CodeSpace,
	ebiten.KeyEnter:          key.CodeEnter,
	ebiten.KeyEscape:         key.CodeEscape,
	ebiten.KeyTab:            key.CodeTab,
	ebiten.KeyBackspace:      key.CodeBackspace,
	ebiten.KeyDelete:         key.CodeDelete,
	ebiten.KeyInsert:         key.CodeInsert,
	ebiten.KeyHome:           key.CodeHome,
	ebiten.KeyEnd:            key.CodeEnd,
	ebiten.KeyPageUp:         key.CodePageUp,
	ebiten.KeyPageDown:       key.CodePageDown,
	ebiten.KeyArrowUp:        key.CodeUp,
	ebiten.KeyArrowDown:      key.CodeDown,
	ebiten.KeyArrowLeft:      key.CodeLeft,
	ebiten.KeyArrowRight:     key.CodeRight,
	ebiten.KeyF1:             key.CodeF1,
	ebiten.KeyF2:             key.CodeF2,
	ebiten.KeyF3:             key.CodeF3,
	ebiten.KeyF4:             key.CodeF4,
	ebiten.KeyF5:             key.CodeF5,
	ebiten.KeyF6:             key.CodeF6,
	ebiten.KeyF7:             key.CodeF7,
	ebiten.KeyF8:             key.CodeF8,
	ebiten.KeyF9:             key.CodeF9,
	ebiten.KeyF10:            key.CodeF10,
	ebiten.KeyF11:            key.CodeF11,
	ebiten.KeyF12:            key.CodeF12,
	ebiten.KeyPause:          key.CodePause,
	ebiten.KeyPrintScreen:    key.CodePrintScreen,
	ebiten.KeyScrollLock:     key.CodeScrollLock,
	ebiten.KeyNumLock:        key.CodeNumLock,
	ebiten.KeyCapsLock:       key.CodeCapsLock,
	ebiten.KeyNumpad0:        key.CodeKP0,
	ebiten.KeyNumpad1:        key.CodeKP1,
	ebiten.KeyNumpad2:        key.CodeKP2,
	ebiten.KeyNumpad3:        key.CodeKP3,
	ebiten.KeyNumpad4:        key.CodeKP4,
	ebiten.KeyNumpad5:        key.CodeKP5,
	ebiten.KeyNumpad6:        key.CodeKP6,
	ebiten.KeyNumpad7:        key.CodeKP7,
	ebiten.KeyNumpad8:        key.CodeKP8,
	ebiten.KeyNumpad9:        key.CodeKP9,
	ebiten.KeyNumpadAdd:      key.CodeKPAdd,
	ebiten.KeyNumpadSubtract: key.CodeKPSubtract,
	ebiten.KeyNumpadMultiply: key.CodeKPMultiply,
	ebiten.KeyNumpadDivide:   key.CodeKPDivide,
	ebiten.KeyNumpadDecimal:  key.CodeKPDecimal,
	ebiten.KeyNumpadEnter:    key.CodeKPEnter,
	ebiten.KeyShiftLeft:      key.CodeLeftShift,
	ebiten.KeyShiftRight:     key.CodeRightShift,
	ebiten.KeyControlLeft:    key.CodeLeftControl,
	ebiten.KeyControlRight:   key.CodeRightControl,
	ebiten.KeyAltLeft:        key.CodeLeftAlt,
	ebiten.KeyAltRight:       key.CodeRightAlt,
	ebiten.KeyMetaLeft:       key.CodeLeftMeta,
	ebiten.KeyMetaRight:      key.CodeRightMeta,
}

// runeKeys maps character keys; letters and digits are added by init.
var runeKeys = map[ebiten.Key]rune{
	ebiten.KeyMinus:        '-',
	ebiten.KeyEqual:        '=',
	ebiten.KeyComma:        ',',
	ebiten.KeyPeriod:       '.',
	ebiten.KeySlash:        '/',
	ebiten.KeySemicolon:    ';',
	ebiten.KeyQuote:        '\'',
	ebiten.KeyBracketLeft:  '[',
	ebiten.KeyBracketRight: ']',
	ebiten.KeyBackslash:    '\\',
	ebiten.KeyBackquote:    '`',
}

var (
	letterKeys = [26]ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
		ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
		ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
		ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
		ebiten.KeyY, ebiten.KeyZ,
	}
	digitKeys = [10]ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
)

func init() {
	for i, k := range letterKeys {
		runeKeys[k] = rune('a' + i)
	}
	for i, k := range digitKeys {
		runeKeys[k] = rune('0' + i)
	}
}

// convertKey maps an Ebitengine key to a key. Letters become lower-case
// character keys. The zero key is returned for keys with no equivalent.
func convertKey(k ebiten.Key) key.Key {
	if c, ok := namedKeys[k]; ok {
		return key.Physical(c)
	}
	if r, ok := runeKeys[k]; ok {
		return key.Rune(r)
	}
	return key.None
}

type mouseButton struct {
	button ebiten.MouseButton
	code   key.Code
}

var mouseButtons = [3]mouseButton{
	{ebiten.MouseButtonLeft, key.CodeMouseButton1},
	{ebiten.MouseButtonRight, key.CodeMouseButton2},
	{ebiten.MouseButtonMiddle, key.CodeMouseButton3},
}

type padButton struct {
	button ebiten.StandardGamepadButton
	code   key.Code
}

// padButtons lists the digital buttons of the standard layout. The bottom
// front buttons are analog triggers and are read separately.
var padButtons = []padButton{
	{ebiten.StandardGamepadButtonRightBottom, key.CodeButtonA},
	{ebiten.StandardGamepadButtonRightRight, key.CodeButtonB},
	{ebiten.StandardGamepadButtonRightLeft, key.CodeButtonX},
	{ebiten.StandardGamepadButtonRightTop, key.CodeButtonY},
	{ebiten.StandardGamepadButtonFrontTopLeft, key.CodeButtonL1},
	{ebiten.StandardGamepadButtonFrontTopRight, key.CodeButtonR1},
	{ebiten.StandardGamepadButtonLeftStick, key.CodeButtonL3},
	{ebiten.StandardGamepadButtonRightStick, key.CodeButtonR3},
	{ebiten.StandardGamepadButtonCenterRight, key.CodeButtonStart},
	{ebiten.StandardGamepadButtonCenterLeft, key.CodeButtonSelect},
	{ebiten.StandardGamepadButtonCenterCenter, key.CodeButtonHome},
	{ebiten.StandardGamepadButtonLeftTop, key.CodeDPadUp},
	{ebiten.StandardGamepadButtonLeftBottom, key.CodeDPadDown},
	{ebiten.StandardGamepadButtonLeftLeft, key.CodeDPadLeft},
	{ebiten.StandardGamepadButtonLeftRight, key.CodeDPadRight},
}
