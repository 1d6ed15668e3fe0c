package synth

import (
	"errors"
	"fmt"

	"github.com/dshills/actionbind/internal/input/key"
)

var (
	// ErrInvalidDeadzone is returned for dead-zones outside [0,1].
	ErrInvalidDeadzone = errors.New("dead-zone must be within [0,1]")

	// ErrNoDeadzone is returned when setting a dead-zone on a key that is
	// not a thumbstick or one of its directions.
	ErrNoDeadzone = errors.New("key has no dead-zone")
)

// ConfigError reports a rejected dead-zone setting. Key is zero for the
// default dead-zone.
type ConfigError struct {
	Key   key.Key
	Value float64
	Err   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key.IsZero() {
		return fmt.Sprintf("default dead-zone: %v (got %v)", e.Err, e.Value)
	}
	return fmt.Sprintf("dead-zone %s: %v (got %v)", e.Key, e.Err, e.Value)
}

// Unwrap returns the underlying sentinel.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
