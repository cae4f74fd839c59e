package keymap

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// JSON keys used for the externally tagged entry encoding:
//
//	[{"Key": {...}}, {"Script": {...}}, {"Action": {...}}]
const (
	jsonKeyVariant    = "Key"
	jsonScriptVariant = "Script"
	jsonActionVariant = "Action"
)

type inputJSON struct {
	Regular *uint16 `json:"regular,omitempty"`
	Special string  `json:"special,omitempty"`
	Code    *uint16 `json:"code,omitempty"`
	Name    string  `json:"name,omitempty"`
}

// MarshalJSON encodes a key as {"regular":77,"name":"M"} and a special input
// as {"special":"Mousewheel","code":248}.
func (i Input) MarshalJSON() ([]byte, error) {
	code := i.Code()
	if s, ok := i.Special(); ok {
		return json.Marshal(inputJSON{Special: s.Kind.String(), Code: &code})
	}
	return json.Marshal(inputJSON{Regular: &code, Name: i.key.String()})
}

// UnmarshalJSON decodes the form written by MarshalJSON. For special inputs
// the code wins; a closed kind name alone selects its canonical code.
func (i *Input) UnmarshalJSON(data []byte) error {
	var raw inputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decoding input")
	}

	switch {
	case raw.Regular != nil:
		k, ok := KeyCodeFromCode(*raw.Regular)
		if !ok {
			return errors.Wrapf(ErrInvalidKeyCode, "%d", *raw.Regular)
		}
		*i = RegularInput(k)
	case raw.Code != nil:
		s := DecodeSpecial(*raw.Code)
		if raw.Special != "" && raw.Special != s.Kind.String() {
			return errors.Newf("special input code %d is %s, not %s", *raw.Code, s.Kind, raw.Special)
		}
		*i = SpecialInputValue(s)
	case raw.Special != "":
		s, ok := SpecialInputFromName(raw.Special)
		if !ok {
			return errors.Newf("unknown special input %q", raw.Special)
		}
		*i = SpecialInputValue(s)
	default:
		return errors.New("input needs a regular key code or a special input")
	}
	return nil
}

type keyBindingJSON struct {
	Modifiers Modifiers `json:"modifiers"`
	Input     Input     `json:"input"`
	CommandID string    `json:"command_id"`
	Section   Section   `json:"section"`
	Comment   *Comment  `json:"comment,omitempty"`
}

func (b KeyBinding) MarshalJSON() ([]byte, error) {
	v := keyBindingJSON{
		Modifiers: b.mods,
		Input:     b.input,
		CommandID: b.commandID,
		Section:   b.section,
	}
	if b.hasComment {
		c := b.comment
		v.Comment = &c
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes and validates a binding.
func (b *KeyBinding) UnmarshalJSON(data []byte) error {
	var v keyBindingJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decoding KEY entry")
	}
	out := KeyBinding{mods: v.Modifiers, input: v.Input, commandID: v.CommandID, section: v.Section}
	if v.Comment != nil {
		out = out.WithComment(*v.Comment)
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*b = out
	return nil
}

// MarshalJSON encodes the list with one single-key object per entry.
func (l List) MarshalJSON() ([]byte, error) {
	out := make([]map[string]Entry, 0, len(l))
	for i, e := range l {
		var variant string
		switch e.(type) {
		case KeyBinding:
			variant = jsonKeyVariant
		case ScriptBinding:
			variant = jsonScriptVariant
		case CustomActionBinding:
			variant = jsonActionVariant
		default:
			return nil, errors.Newf("entry %d: unsupported entry type %T", i, e)
		}
		out = append(out, map[string]Entry{variant: e})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON. Every entry is
// validated.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decoding entry list")
	}

	out := make(List, 0, len(raw))
	for i, obj := range raw {
		if len(obj) != 1 {
			return errors.Newf("entry %d: want exactly one of Key, Script, Action; got %d keys", i, len(obj))
		}
		for variant, body := range obj {
			e, err := decodeEntry(variant, body)
			if err != nil {
				return errors.Wrapf(err, "entry %d", i)
			}
			out = append(out, e)
		}
	}
	*l = out
	return nil
}

func decodeEntry(variant string, body json.RawMessage) (Entry, error) {
	switch variant {
	case jsonKeyVariant:
		var k KeyBinding
		if err := json.Unmarshal(body, &k); err != nil {
			return nil, err
		}
		return k, nil
	case jsonScriptVariant:
		var s ScriptBinding
		if err := strictUnmarshal(body, &s); err != nil {
			return nil, errors.Wrap(err, "decoding SCR entry")
		}
		return s, s.Validate()
	case jsonActionVariant:
		var a CustomActionBinding
		if err := strictUnmarshal(body, &a); err != nil {
			return nil, errors.Wrap(err, "decoding ACT entry")
		}
		if len(a.ActionIDs) == 0 {
			a.ActionIDs = nil
		}
		return a, a.Validate()
	default:
		return nil, errors.Newf("unknown entry variant %q", variant)
	}
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
