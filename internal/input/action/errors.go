package action

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when an action name is blank.
	ErrEmptyName = errors.New("action name cannot be empty")

	// ErrInvalidThreshold is returned for activation thresholds outside [0,1].
	ErrInvalidThreshold = errors.New("activation threshold must be within [0,1]")

	// ErrInvalidKey is returned when binding the zero key.
	ErrInvalidKey = errors.New("cannot bind an empty key")
)

// ConfigError reports a rejected configuration call.
type ConfigError struct {
	// Action is the action being configured.
	Action string

	// Field names the rejected setting ("name", "threshold", "key").
	Field string

	// Value is the rejected value, when numeric.
	Value float64

	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field == "threshold" {
		return fmt.Sprintf("action %q: %v (got %v)", e.Action, e.Err, e.Value)
	}
	return fmt.Sprintf("action %q: %v", e.Action, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
