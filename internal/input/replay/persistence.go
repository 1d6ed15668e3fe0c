package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/platform"
)

const currentVersion = 1

type persistedVec [3]float64

// persistedSample is the stored form of platform.Sample. Keys are written
// by name.
type persistedSample struct {
	Key       key.Key       `json:"key"`
	Kind      uint8         `json:"kind"`
	State     uint8         `json:"state"`
	Position  *persistedVec `json:"pos,omitempty"`
	Delta     *persistedVec `json:"delta,omitempty"`
	Strength  float64       `json:"strength,omitempty"`
	Modifiers uint8         `json:"mods,omitempty"`
}

type persistedFrame struct {
	Index   int               `json:"frame"`
	Samples []persistedSample `json:"samples"`
}

type persistedData struct {
	Version int              `json:"version"`
	SavedAt time.Time        `json:"saved_at"`
	Length  int              `json:"length"`
	Frames  []persistedFrame `json:"frames"`
}

func toVec(v platform.Vec3) *persistedVec {
	if v == (platform.Vec3{}) {
		return nil
	}
	return &persistedVec{v.X, v.Y, v.Z}
}

func fromVec(v *persistedVec) platform.Vec3 {
	if v == nil {
		return platform.Vec3{}
	}
	return platform.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func toPersistedSample(s platform.Sample) persistedSample {
	return persistedSample{
		Key:       s.Key,
		Kind:      uint8(s.Kind),
		State:     uint8(s.State),
		Position:  toVec(s.Position),
		Delta:     toVec(s.Delta),
		Strength:  s.Strength,
		Modifiers: uint8(s.Modifiers),
	}
}

func toSample(p persistedSample) platform.Sample {
	return platform.Sample{
		Key:       p.Key,
		Kind:      platform.Kind(p.Kind),
		State:     platform.State(p.State),
		Position:  fromVec(p.Position),
		Delta:     fromVec(p.Delta),
		Strength:  p.Strength,
		Modifiers: key.Modifier(p.Modifiers),
	}
}

// Marshal encodes a recording.
func Marshal(rec *Recording) ([]byte, error) {
	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now().UTC(),
		Length:  rec.Length,
		Frames:  make([]persistedFrame, len(rec.Frames)),
	}
	for i, f := range rec.Frames {
		pf := persistedFrame{Index: f.Index, Samples: make([]persistedSample, len(f.Samples))}
		for j, s := range f.Samples {
			pf.Samples[j] = toPersistedSample(s)
		}
		data.Frames[i] = pf
	}
	return json.MarshalIndent(data, "", "  ")
}

// Unmarshal decodes a recording and checks its frame order.
func Unmarshal(b []byte) (*Recording, error) {
	var data persistedData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decoding recording: %w", err)
	}
	if data.Version > currentVersion {
		return nil, fmt.Errorf("%w: %d (max supported: %d)", ErrUnsupportedVersion, data.Version, currentVersion)
	}

	rec := &Recording{Length: data.Length, Frames: make([]Frame, 0, len(data.Frames))}
	last := -1
	for _, pf := range data.Frames {
		if pf.Index <= last || pf.Index >= data.Length {
			return nil, fmt.Errorf("%w: frame %d (length %d)", ErrCorrupt, pf.Index, data.Length)
		}
		last = pf.Index

		f := Frame{Index: pf.Index, Samples: make([]platform.Sample, len(pf.Samples))}
		for i, p := range pf.Samples {
			f.Samples[i] = toSample(p)
		}
		rec.Frames = append(rec.Frames, f)
	}
	return rec, nil
}

// Save writes a recording to path. The file is replaced atomically using
// a temporary file and rename.
func Save(rec *Recording, path string) error {
	b, err := Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding recording: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Load reads a recording written by Save.
func Load(path string) (*Recording, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}
	return Unmarshal(b)
}
