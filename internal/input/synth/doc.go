// Package synth derives directional virtual keys from continuous sources.
//
// Thumbsticks, the mouse wheel and pointer motion are reported by platforms
// as positions, not presses. The Synthesizer splits each Change sample into
// up to four directions and emits a normalize.Record for every direction
// whose strength differs from the last one emitted:
//
//	thumbstick     left/right from X, up/down from Y, with a dead-zone
//	mouse wheel    up/down from Z, emitted on every non-zero tick
//	mouse motion   left/right/up/down from position change plus delta
//
// Thumbstick dead-zones are configured per stick or per direction.
package synth
