package normalize

import (
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/platform"
)

// NoAction marks a Record whose actions are resolved from its key.
const NoAction = "*"

// Record is the mutable raw form of an input occurrence, filled in by the
// binding layer or the synthesizer before normalization.
type Record struct {
	// Key is the source key. Zero for direct-action records.
	Key key.Key

	// Kind is the platform event type the record came from.
	Kind platform.Kind

	// Position and Delta are copied from the platform sample.
	Position platform.Vec3
	Delta    platform.Vec3

	// Strength is the press strength in [0,1].
	Strength float64

	// Changed is set for records derived from a continuous (Change) sample.
	Changed bool

	// Modifiers held when the record was produced.
	Modifiers key.Modifier

	// Action, when not NoAction, bypasses key resolution and targets
	// exactly this action.
	Action string
}

// FromKey creates a record for a key whose actions are looked up in the
// registry.
func FromKey(k key.Key, kind platform.Kind) Record {
	return Record{Key: k, Kind: kind, Action: NoAction}
}

// FromAction creates a record that targets one action directly.
func FromAction(name string) Record {
	return Record{Action: name}
}

// IsDirect returns true if the record names its action explicitly.
func (r Record) IsDirect() bool {
	return r.Action != NoAction && r.Action != ""
}
