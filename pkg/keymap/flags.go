package keymap

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// TerminationBehavior controls what the host does when a script is started
// while a previous instance is still running.
type TerminationBehavior uint32

const (
	TerminationPrompt            TerminationBehavior = 4
	TerminationTerminateExisting TerminationBehavior = 260
	TerminationAlwaysNewInstance TerminationBehavior = 516
)

var terminationNames = map[TerminationBehavior]string{
	TerminationPrompt:            "Prompt",
	TerminationTerminateExisting: "TerminateExisting",
	TerminationAlwaysNewInstance: "AlwaysNewInstance",
}

// TerminationFromCode validates a numeric termination code.
func TerminationFromCode(code uint32) (TerminationBehavior, bool) {
	t := TerminationBehavior(code)
	_, ok := terminationNames[t]
	return t, ok
}

// Valid reports whether t is a known behavior.
func (t TerminationBehavior) Valid() bool {
	_, ok := terminationNames[t]
	return ok
}

func (t TerminationBehavior) String() string {
	if name, ok := terminationNames[t]; ok {
		return name
	}
	return "Termination(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// MarshalJSON encodes t by name.
func (t TerminationBehavior) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Newf("cannot encode unknown termination behavior %d", uint32(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts a name or a numeric code.
func (t *TerminationBehavior) UnmarshalJSON(data []byte) error {
	var code uint32
	if err := json.Unmarshal(data, &code); err == nil {
		v, ok := TerminationFromCode(code)
		if !ok {
			return errors.Wrapf(ErrInvalidTermination, "%d", code)
		}
		*t = v
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Wrap(err, "decoding termination behavior")
	}
	for v, n := range terminationNames {
		if strings.EqualFold(n, name) {
			*t = v
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidTermination, "%q", name)
}

// ActionFlags are the option bits of a custom action.
type ActionFlags uint32

const (
	ActionConsolidateUndo ActionFlags = 1 << 0
	ActionShowInMenus     ActionFlags = 1 << 1
	ActionActiveIfAll     ActionFlags = 1 << 4
	ActionActiveIfAny     ActionFlags = 1 << 5

	knownActionFlags = ActionConsolidateUndo | ActionShowInMenus | ActionActiveIfAll | ActionActiveIfAny
)

var actionFlagNames = []struct {
	flag ActionFlags
	name string
}{
	{ActionConsolidateUndo, "CONSOLIDATE_UNDO"},
	{ActionShowInMenus, "SHOW_IN_MENUS"},
	{ActionActiveIfAll, "ACTIVE_IF_ALL"},
	{ActionActiveIfAny, "ACTIVE_IF_ANY"},
}

// ActionFlagsFromBits keeps the known bits of raw and drops the rest.
func ActionFlagsFromBits(raw uint32) ActionFlags {
	return ActionFlags(raw) & knownActionFlags
}

// Has reports whether every flag in f is set.
func (a ActionFlags) Has(f ActionFlags) bool {
	return a&f == f
}

// Bits returns the numeric value written to keymap files.
func (a ActionFlags) Bits() uint32 {
	return uint32(a & knownActionFlags)
}

func (a ActionFlags) String() string {
	var names []string
	for _, n := range actionFlagNames {
		if a.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, " | ")
}

// MarshalJSON encodes the flags as a list of names.
func (a ActionFlags) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, n := range actionFlagNames {
		if a.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return json.Marshal(names)
}

// UnmarshalJSON accepts a list of names or a raw number. Unknown bits in a
// raw number are truncated, matching the line parser.
func (a *ActionFlags) UnmarshalJSON(data []byte) error {
	var raw uint32
	if err := json.Unmarshal(data, &raw); err == nil {
		*a = ActionFlagsFromBits(raw)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return errors.Wrap(err, "decoding action flags")
	}
	var out ActionFlags
	for _, name := range names {
		found := false
		for _, n := range actionFlagNames {
			if strings.EqualFold(n.name, name) {
				out |= n.flag
				found = true
				break
			}
		}
		if !found {
			return errors.Newf("unknown action flag %q", name)
		}
	}
	*a = out
	return nil
}
