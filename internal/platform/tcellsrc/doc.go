// Package tcellsrc reads terminal input through tcell and reports it as
// platform samples.
//
// Terminals report key presses but not key releases. The source emits a
// Begin sample for every key event and the matching End on the next Poll
// in which the key did not repeat, so a key held down with auto-repeat
// stays down from the binding layer's point of view.
//
// Mouse button masks are diffed into Begin and End samples, wheel masks
// become wheel Change samples with Z = +1 or -1, and pointer motion becomes
// a mouse-movement Change sample carrying the cell position. Losing focus
// cancels everything that is held.
//
// PollEvent blocks, so events are read on a separate goroutine and handed
// to the tick goroutine through a channel. Call Fini on the screen to stop
// the reader.
package tcellsrc
