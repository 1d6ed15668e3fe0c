package replay

import "errors"

var (
	// ErrUnsupportedVersion is returned when loading a file written by a
	// newer format version.
	ErrUnsupportedVersion = errors.New("unsupported recording version")

	// ErrCorrupt is returned when a file's frames are out of order or
	// outside its length.
	ErrCorrupt = errors.New("corrupt recording")
)
