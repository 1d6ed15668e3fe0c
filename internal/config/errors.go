package config

import (
	"errors"
	"fmt"

	"github.com/dshills/actionbind/internal/config/loader"
)

var (
	// ErrDuplicateAction is returned when a file declares an action twice.
	ErrDuplicateAction = errors.New("duplicate action")

	// ErrUnknownAction is returned for threshold overrides naming an action
	// the bindings do not declare.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownField is returned for settings the bindings format does not
	// define.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidType is returned when a setting has the wrong type.
	ErrInvalidType = errors.New("invalid type")
)

// ParseError reports a malformed binding file.
type ParseError = loader.ParseError

// FieldError locates a problem within a bindings document.
type FieldError struct {
	// Path is the dotted location of the field, e.g. "actions[2].keys[0]".
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(path string, err error) error {
	return &FieldError{Path: path, Err: err}
}
