package tcellsrc

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/actionbind/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBacktab:    key.CodeTab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyF1:         key.CodeF1,
	tcell.KeyF2:         key.CodeF2,
	tcell.KeyF3:         key.CodeF3,
	tcell.KeyF4:         key.CodeF4,
	tcell.KeyF5:         key.CodeF5,
	tcell.KeyF6:         key.CodeF6,
	tcell.KeyF7:         key.CodeF7,
	tcell.KeyF8:         key.CodeF8,
	tcell.KeyF9:         key.CodeF9,
	tcell.KeyF10:        key.CodeF10,
	tcell.KeyF11:        key.CodeF11,
	tcell.KeyF12:        key.CodeF12,
	tcell.KeyPause:      key.CodePause,
	tcell.KeyPrint:      key.CodePrintScreen,
}

// convertKey maps a tcell key event to a key and its modifiers.
// The zero key is returned for keys with no equivalent.
func convertKey(ev *tcell.EventKey) (key.Key, key.Modifier) {
	mods := convertMod(ev.Modifiers())

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		if ev.Rune() == ' ' {
			return key.Physical(key.CodeSpace), mods
		}
		return key.Rune(ev.Rune()), mods

	case k == tcell.KeyCtrlSpace:
		return key.Physical(key.CodeSpace), mods | key.ModCtrl

	default:
		if c, ok := specialKeys[k]; ok {
			if k == tcell.KeyBacktab {
				mods |= key.ModShift
			}
			return key.Physical(c), mods
		}
		// Control letters that were not claimed above (Tab, Enter and
		// Backspace share their codes).
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return key.Rune(rune('a' + k - tcell.KeyCtrlA)), mods | key.ModCtrl
		}
	}
	return key.None, mods
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}

// mouseButtons pairs tcell button bits with mouse button keys.
var mouseButtons = []struct {
	mask tcell.ButtonMask
	code key.Code
}{
	{tcell.Button1, key.CodeMouseButton1},
	{tcell.Button2, key.CodeMouseButton2},
	{tcell.Button3, key.CodeMouseButton3},
}
