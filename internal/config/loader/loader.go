// Package loader reads binding files into generic configuration maps.
//
// TOML, YAML and JSON files are supported, chosen by file extension.
// Environment variables with a prefix can override individual values.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension is not
// .toml, .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota + 1
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FileLoader loads configuration from a TOML, YAML or JSON file.
type FileLoader struct {
	fs   FileSystem
	path string
}

// NewFileLoader creates a loader for the given path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fs FileSystem, path string) *FileLoader {
	return &FileLoader{
		fs:   fs,
		path: path,
	}
}

// Path returns the configured path.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads configuration from the configured path.
func (l *FileLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *FileLoader) LoadFrom(path string) (map[string]any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(format, path, data)
}

// LoadFromReader reads configuration in the given format from a reader.
func LoadFromReader(format Format, r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(format, "<reader>", data)
}

// Parse decodes data into a map. source names the data in errors.
func Parse(format Format, source string, data []byte) (map[string]any, error) {
	switch format {
	case FormatTOML:
		return parseTOML(source, data)
	case FormatYAML:
		return parseYAML(source, data)
	case FormatJSON:
		return parseJSON(source, data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
