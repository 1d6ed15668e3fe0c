package key

import "strings"

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates either Shift key.
	ModShift Modifier = 1 << (iota - 1)

	// ModCtrl indicates either Control key.
	ModCtrl

	// ModAlt indicates either Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates either Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains every bit of mod.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

// String returns a representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if m&ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// ModifierOf returns the modifier bit a physical modifier key contributes.
// Non-modifier keys return ModNone.
func ModifierOf(k Key) Modifier {
	if !k.IsPhysical() {
		return ModNone
	}
	switch k.code {
	case CodeLeftShift, CodeRightShift:
		return ModShift
	case CodeLeftControl, CodeRightControl:
		return ModCtrl
	case CodeLeftAlt, CodeRightAlt:
		return ModAlt
	case CodeLeftMeta, CodeRightMeta:
		return ModMeta
	}
	return ModNone
}
