package loader

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrInvalidJSON is wrapped by ParseError for malformed JSON documents.
var ErrInvalidJSON = errors.New("invalid JSON")

func parseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return config, nil
}

func parseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return config, nil
}

// parseJSON validates the document with gjson and walks it into a map.
func parseJSON(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "malformed document", Err: ErrInvalidJSON}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{
			Path:    source,
			Message: fmt.Sprintf("top level must be an object, got %s", root.Type),
			Err:     ErrInvalidJSON,
		}
	}
	m, _ := jsonValue(root).(map[string]any)
	return m, nil
}

// jsonValue converts a gjson result into the same shapes the TOML and YAML
// decoders produce.
func jsonValue(r gjson.Result) any {
	switch {
	case r.IsObject():
		m := make(map[string]any)
		r.ForEach(func(k, v gjson.Result) bool {
			m[k.String()] = jsonValue(v)
			return true
		})
		return m
	case r.IsArray():
		arr := r.Array()
		out := make([]any, len(arr))
		for i, v := range arr {
			out[i] = jsonValue(v)
		}
		return out
	}
	switch r.Type {
	case gjson.Number:
		return r.Float()
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Null:
		return nil
	default:
		return r.String()
	}
}
