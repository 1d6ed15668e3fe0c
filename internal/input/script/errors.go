package script

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEntryPoint is returned for scripts that define neither
	// pre_sample nor post_event.
	ErrNoEntryPoint = errors.New("script defines neither pre_sample nor post_event")

	// ErrClosed is returned when using a closed hook.
	ErrClosed = errors.New("script hook is closed")
)

// Error reports a failure inside a script.
type Error struct {
	// Script is the hook name.
	Script string

	// Func is the entry point that failed, empty while loading.
	Func string

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Func == "" {
		return fmt.Sprintf("script %s: %v", e.Script, e.Err)
	}
	return fmt.Sprintf("script %s: %s: %v", e.Script, e.Func, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
