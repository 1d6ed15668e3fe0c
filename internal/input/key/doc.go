// Package key defines the canonical identity of every input source.
//
// A Key is a small comparable value tagged with its namespace:
//
//   - Physical keys name a platform key, mouse button, gamepad button or axis
//     by Code (plus the character for CodeRune keys).
//   - Virtual keys are synthesized identifiers such as "thumbstick-1-left" or
//     "mouse-wheel-up", derived from continuous axes that the platform does not
//     report as discrete presses.
//
// The two namespaces never overlap: Physical(CodeSpace) and Virtual("Space")
// are distinct map keys even though they print the same.
//
// # Key Names
//
// Binding files refer to keys by name; Parse accepts physical names and
// aliases ("Space", "esc", "ButtonA"), single characters ("w"), built-in virtual
// names ("mouse-wheel-up") and custom virtual keys ("virtual:dash").
package key
