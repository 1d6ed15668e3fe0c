// Package action tracks named input actions and how strongly they are pressed.
//
// Each action has an activation threshold in [0,1] and a set of bound keys.
// During a frame, callers Press actions with a strength; the action keeps the
// strongest press it receives. Tick closes the frame: the current strength
// becomes the previous strength and the current strength restarts at zero.
//
// Queries compare the two frames:
//
//	pressed       current >= threshold
//	just pressed  current >= threshold && previous < threshold
//	released      current <  threshold
//	just released current <  threshold && previous >= threshold
//
// Every query has a Min variant that uses a caller-supplied threshold.
// Unknown action names always answer false or zero.
package action
