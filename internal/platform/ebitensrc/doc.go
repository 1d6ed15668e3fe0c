// Package ebitensrc reports Ebitengine keyboard, mouse and gamepad state as
// platform samples.
//
// Ebitengine exposes input as state to be polled once per Update. The
// source captures that state into a Frame, diffs it against the previous
// frame and queues the transitions:
//
//	func (g *Game) Update() error {
//	    g.src.Update()
//	    g.input.Step(g.src)
//	    ...
//	}
//
// Only the first gamepad with the standard layout is read. Sticks are
// reported as thumbstick Change samples with up as positive Y, analog
// triggers as Change samples carrying their strength.
package ebitensrc
