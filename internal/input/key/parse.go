package key

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// ErrEmptyKeyName is returned when parsing a blank key name.
	ErrEmptyKeyName = errors.New("empty key name")

	// ErrUnknownKey is returned when a key name matches no physical or virtual key.
	ErrUnknownKey = errors.New("unknown key")
)

// VirtualPrefix marks a custom virtual key in configuration files.
const VirtualPrefix = "virtual:"

// aliases maps alternate spellings (already case-folded) to codes.
var aliases = map[string]Code{
	"esc":        CodeEscape,
	"return":     CodeEnter,
	"cr":         CodeEnter,
	"bs":         CodeBackspace,
	"del":        CodeDelete,
	"ins":        CodeInsert,
	"pgup":       CodePageUp,
	"pgdn":       CodePageDown,
	"shift":      CodeLeftShift,
	"ctrl":       CodeLeftControl,
	"control":    CodeLeftControl,
	"alt":        CodeLeftAlt,
	"meta":       CodeLeftMeta,
	"mouse1":     CodeMouseButton1,
	"mouse2":     CodeMouseButton2,
	"mouse3":     CodeMouseButton3,
	"lmb":        CodeMouseButton1,
	"rmb":        CodeMouseButton2,
	"mmb":        CodeMouseButton3,
	"wheel":      CodeMouseWheel,
	"lb":         CodeButtonL1,
	"rb":         CodeButtonR1,
	"lt":         CodeButtonL2,
	"rt":         CodeButtonR2,
	"back":       CodeButtonSelect,
	"leftstick":  CodeThumbstick1,
	"rightstick": CodeThumbstick2,
}

var (
	codeByName    map[string]Code
	virtualByName map[string]Key
)

func init() {
	codeByName = make(map[string]Code, int(codeCount)+len(aliases))
	for c := CodeNone + 1; c < codeCount; c++ {
		if c == CodeRune {
			continue
		}
		codeByName[fold(codeNames[c])] = c
	}
	for name, c := range aliases {
		codeByName[name] = c
	}

	virtualByName = make(map[string]Key)
	for _, k := range BuiltinVirtuals() {
		virtualByName[fold(k.name)] = k
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Parse resolves a key name as written in binding configuration.
//
// Accepted forms, matched case-insensitively:
//
//   - built-in virtual keys: "thumbstick-1-left", "mouse-wheel-up"
//   - physical names and aliases: "Space", "esc", "ButtonA", "Thumbstick1"
//   - single characters: "w", "1", "/"
//   - custom virtual keys: "virtual:dash"
func Parse(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None, ErrEmptyKeyName
	}

	folded := fold(s)
	if strings.HasPrefix(folded, VirtualPrefix) {
		name := strings.TrimSpace(s[len(VirtualPrefix):])
		if name == "" {
			return None, fmt.Errorf("%w: %q", ErrEmptyKeyName, s)
		}
		if k, ok := virtualByName[fold(name)]; ok {
			return k, nil
		}
		return Virtual(name), nil
	}

	if k, ok := virtualByName[folded]; ok {
		return k, nil
	}
	if c, ok := codeByName[folded]; ok {
		return Physical(c), nil
	}
	if r := []rune(s); len(r) == 1 {
		return Rune(r[0]), nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// MustParse is like Parse but panics on error. Intended for static tables.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseAll parses every name, stopping at the first error.
func ParseAll(names []string) ([]Key, error) {
	keys := make([]Key, 0, len(names))
	for _, n := range names {
		k, err := Parse(n)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Canonical returns a name Parse maps back to k: the display name, with
// the virtual: prefix for custom virtual keys. The zero Key yields "".
// Rune(' ') has no name of its own and becomes "Space".
func (k Key) Canonical() string {
	switch {
	case k.IsZero():
		return ""
	case k.IsVirtual():
		if p, err := Parse(k.name); err != nil || p != k {
			return VirtualPrefix + k.name
		}
	}
	return k.String()
}

// MarshalText implements encoding.TextMarshaler using Canonical.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.Canonical()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields
// the zero Key.
func (k *Key) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = None
		return nil
	}
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = p
	return nil
}
