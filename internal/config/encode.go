package config

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/actionbind/internal/config/loader"
)

// Encode serializes bindings in the given format.
func Encode(format loader.Format, b *Bindings) ([]byte, error) {
	switch format {
	case loader.FormatTOML:
		return EncodeTOML(b)
	case loader.FormatYAML:
		return EncodeYAML(b)
	case loader.FormatJSON:
		return EncodeJSON(b)
	default:
		return nil, fmt.Errorf("%w: %s", loader.ErrUnsupportedFormat, format)
	}
}

// EncodeTOML serializes bindings as TOML.
func EncodeTOML(b *Bindings) ([]byte, error) {
	return toml.Marshal(b)
}

// EncodeYAML serializes bindings as YAML.
func EncodeYAML(b *Bindings) ([]byte, error) {
	return yaml.Marshal(b)
}

// EncodeJSON serializes bindings as indented JSON. Map entries are sorted
// by name; each action lists its name first.
func EncodeJSON(b *Bindings) ([]byte, error) {
	doc := []byte("{}")
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}
	setRaw := func(path, raw string) {
		if err == nil {
			doc, err = sjson.SetRawBytes(doc, path, []byte(raw))
		}
	}

	// Names are never spliced into paths: sjson treats characters such as
	// '#', '|' and '@' as syntax and all-digit parts as array indexes.
	setTable := func(path string, table map[string]float64) {
		if err != nil || len(table) == 0 {
			return
		}
		var raw []byte
		if raw, err = json.Marshal(table); err == nil {
			setRaw(path, string(raw))
		}
	}

	if b.Deadzone != nil {
		set("deadzone", *b.Deadzone)
	}
	setTable("deadzones", b.Deadzones)
	setTable("thresholds", b.Thresholds)

	setRaw("actions", "[]")
	for i, a := range b.Actions {
		setRaw("actions.-1", "{}")
		base := fmt.Sprintf("actions.%d.", i)
		set(base+"name", a.Name)
		if a.Threshold != nil {
			set(base+"threshold", *a.Threshold)
		}
		keys := a.Keys
		if keys == nil {
			keys = []string{}
		}
		set(base+"keys", keys)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding bindings: %w", err)
	}
	return pretty.Pretty(doc), nil
}
