package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/actionbind/internal/config/loader"
)

func sampleBindings() *Bindings {
	return &Bindings{
		Deadzone:   ptr(0.1),
		Deadzones:  map[string]float64{"thumbstick-2": 0.25, "thumbstick-1-left": 0.3},
		Thresholds: map[string]float64{"jump": 0.4},
		Actions: []ActionBinding{
			{Name: "jump", Keys: []string{"Space", "ButtonA"}},
			{Name: "left", Threshold: ptr(0.3), Keys: []string{"a", "thumbstick-1-left"}},
			{Name: "idle"},
		},
	}
}

func TestEncode_Reparses(t *testing.T) {
	for _, format := range []loader.Format{loader.FormatTOML, loader.FormatYAML, loader.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			want := sampleBindings()

			data, err := Encode(format, want)
			require.NoError(t, err)

			m, err := loader.Parse(format, "encoded", data)
			require.NoError(t, err)
			got, err := FromMap(m)
			require.NoError(t, err)

			assert.Equal(t, want, got)
		})
	}
}

func TestEncode_ReparsesPathCharacters(t *testing.T) {
	names := []string{"#", "a|b", "@this", `back\slash`, "0", "x.y", "any*", "what?"}
	for _, format := range []loader.Format{loader.FormatTOML, loader.FormatYAML, loader.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			want := &Bindings{Thresholds: map[string]float64{}}
			for i, name := range names {
				want.Actions = append(want.Actions, ActionBinding{Name: name, Keys: []string{}})
				want.Thresholds[name] = float64(i+1) / 10
			}
			require.NoError(t, want.Validate())

			data, err := Encode(format, want)
			require.NoError(t, err)

			m, err := loader.Parse(format, "encoded", data)
			require.NoError(t, err)
			got, err := FromMap(m)
			require.NoError(t, err)

			assert.Equal(t, want.Thresholds, got.Thresholds)
			require.Len(t, got.Actions, len(names))
			for i, a := range got.Actions {
				assert.Equal(t, names[i], a.Name)
			}
		})
	}
}

func TestEncodeJSON_Layout(t *testing.T) {
	data, err := EncodeJSON(&Bindings{
		Deadzones: map[string]float64{"b.c": 0.5},
		Actions:   []ActionBinding{{Name: "jump", Threshold: ptr(0.5), Keys: []string{"Space"}}},
	})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"b.c": 0.5`)
	assert.Less(t, strings.Index(s, `"name"`), strings.Index(s, `"threshold"`))
	assert.Less(t, strings.Index(s, `"threshold"`), strings.Index(s, `"keys"`))
	assert.NotContains(t, s, "deadzone\"")
}

func TestEncodeJSON_Empty(t *testing.T) {
	data, err := EncodeJSON(&Bindings{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"actions":[]}`, string(data))
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	_, err := Encode(loader.Format(0), sampleBindings())
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}
