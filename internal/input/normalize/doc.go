// Package normalize converts raw input records into canonical Events.
//
// A Record either names an action directly or carries a key whose bound
// actions are looked up in the action registry. Normalize presses every
// resolved action before returning the Event, so by the time any subscriber
// sees the event the frame state already reflects it.
package normalize
