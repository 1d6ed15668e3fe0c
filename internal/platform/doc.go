// Package platform defines the boundary between device back-ends and the
// input core.
//
// A back-end (terminal, game window, test fixture) turns whatever its
// platform reports into Samples: one per discrete transition, and one per
// sampled update while a continuous source such as a thumbstick moves.
// Samples are handed to the core in delivery order from a single goroutine.
//
// Back-ends live in sub-packages:
//
//   - tcellsrc: terminal keyboard and mouse via github.com/gdamore/tcell/v2
//   - ebitensrc: keyboard, mouse and gamepads via github.com/hajimehoshi/ebiten/v2
package platform
