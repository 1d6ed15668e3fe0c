package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of override variables.
const DefaultEnvPrefix = "ACTIONBIND_"

// EnvLoader loads configuration overrides from environment variables.
//
//	ACTIONBIND_DEADZONE=0.15                 deadzone = 0.15
//	ACTIONBIND_DEADZONES_THUMBSTICK_1_LEFT=0.3  deadzones.thumbstick-1-left = 0.3
//	ACTIONBIND_THRESHOLDS_JUMP=0.4           thresholds.jump = 0.4
//
// Underscores inside a map key become dashes.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "ACTIONBIND_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Load reads environment variables and returns a configuration map.
// Variables outside the known sections are ignored.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.envToPath(name)
		if !ok {
			continue
		}
		setByPath(config, path, parseValue(value))
	}

	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// envToPath converts ACTIONBIND_DEADZONES_THUMBSTICK_1 to
// deadzones.thumbstick-1.
func (l *EnvLoader) envToPath(env string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	if name == "deadzone" {
		return name, true
	}

	section, rest, ok := strings.Cut(name, "_")
	if !ok || rest == "" {
		return "", false
	}
	switch section {
	case "deadzones", "thresholds":
		return section + "." + strings.ReplaceAll(rest, "_", "-"), true
	default:
		return "", false
	}
}

// parseValue returns a float64 when s is numeric and the string otherwise,
// leaving validation to the caller.
func parseValue(s string) any {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	// Navigate/create intermediate maps
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
