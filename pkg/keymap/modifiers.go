package keymap

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// Modifiers is the set of modifier flags attached to a KEY entry.
//
// The bit positions match the on-disk encoding, which stores 1 + the OR of
// the regular flags. ModSpecialInput never appears in that sum: it stands for
// the reserved byte 255.
type Modifiers uint8

const (
	// ModShift is the Shift key.
	ModShift Modifiers = 1 << 2
	// ModSuper is Cmd on macOS, Win on Windows.
	ModSuper Modifiers = 1 << 3
	// ModAlt is Alt, Opt on macOS.
	ModAlt Modifiers = 1 << 4
	// ModControl is the Control key.
	ModControl Modifiers = 1 << 5
	// ModSpecialInput marks a mouse wheel, multitouch or media key input.
	ModSpecialInput Modifiers = 1 << 7

	// ModNone is the empty set, encoded as byte 1.
	ModNone Modifiers = 0
)

// SpecialInputCode is the modifier byte reserved for special inputs.
const SpecialInputCode uint8 = 255

// regularMask holds every flag that can be combined freely.
const regularMask = ModShift | ModSuper | ModAlt | ModControl

// modifierOrder is the order modifiers appear in key combination labels.
var modifierOrder = []struct {
	mod     Modifiers
	label   string
	jsonKey string
}{
	{ModSuper, "Cmd", "SUPER"},
	{ModAlt, "Opt", "ALT"},
	{ModShift, "Shift", "SHIFT"},
	{ModControl, "Control", "CONTROL"},
}

// Code returns the byte used for m in keymap files.
func (m Modifiers) Code() uint8 {
	if m.IsSpecialInput() {
		return SpecialInputCode
	}
	return 1 + uint8(m&regularMask)
}

// ModifiersFromCode decodes a modifier byte. It reports false for 0 and for
// bytes whose value minus one carries bits outside the known flags. 255 always
// decodes to ModSpecialInput alone.
func ModifiersFromCode(code uint8) (Modifiers, bool) {
	if code == SpecialInputCode {
		return ModSpecialInput, true
	}
	if code < 1 {
		return ModNone, false
	}
	bits := Modifiers(code - 1)
	if bits&^regularMask != 0 {
		return ModNone, false
	}
	return bits, true
}

// IsSpecialInput reports whether m is the special input sentinel.
func (m Modifiers) IsSpecialInput() bool {
	return m&ModSpecialInput != 0
}

// Has reports whether every flag in mod is set in m.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// IsEmpty reports whether no flags are set.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// Labels returns the display names of the regular flags in m, in the order
// Cmd, Opt, Shift, Control.
func (m Modifiers) Labels() []string {
	var labels []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			labels = append(labels, o.label)
		}
	}
	return labels
}

// String returns a label like "Cmd+Shift". The sentinel renders as
// "Special"; the empty set as "".
func (m Modifiers) String() string {
	if m.IsSpecialInput() {
		return "Special"
	}
	return strings.Join(m.Labels(), "+")
}

// modifierLabels maps lower-cased names accepted by ParseTrigger.
var modifierLabels = map[string]Modifiers{
	"cmd":     ModSuper,
	"command": ModSuper,
	"super":   ModSuper,
	"win":     ModSuper,
	"meta":    ModSuper,
	"opt":     ModAlt,
	"option":  ModAlt,
	"alt":     ModAlt,
	"shift":   ModShift,
	"control": ModControl,
	"ctrl":    ModControl,
}

// MarshalJSON encodes m as a list of flag names, e.g. ["SHIFT","CONTROL"].
func (m Modifiers) MarshalJSON() ([]byte, error) {
	names := []string{}
	if m.IsSpecialInput() {
		names = append(names, "SPECIAL_INPUT")
	} else {
		for _, o := range modifierOrder {
			if m.Has(o.mod) {
				names = append(names, o.jsonKey)
			}
		}
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (m *Modifiers) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return errors.Wrap(err, "decoding modifiers")
	}
	var out Modifiers
	for _, name := range names {
		switch strings.ToUpper(name) {
		case "SPECIAL_INPUT":
			out |= ModSpecialInput
		case "SUPER":
			out |= ModSuper
		case "ALT":
			out |= ModAlt
		case "SHIFT":
			out |= ModShift
		case "CONTROL":
			out |= ModControl
		default:
			return errors.Newf("unknown modifier %q", name)
		}
	}
	if out.IsSpecialInput() && out != ModSpecialInput {
		return errors.Newf("SPECIAL_INPUT cannot be combined with other modifiers")
	}
	*m = out
	return nil
}
