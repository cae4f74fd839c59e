package keymap

import "strconv"

// Input is the physical input of a KEY entry: either a keyboard key or a
// special input. The zero value is an invalid regular input.
//
// Input is comparable and can be used as a map key.
type Input struct {
	special bool
	key     KeyCode
	gesture SpecialInput
}

// RegularInput wraps a keyboard key.
func RegularInput(k KeyCode) Input {
	return Input{key: k}
}

// SpecialInputValue wraps a special input.
func SpecialInputValue(s SpecialInput) Input {
	return Input{special: true, gesture: s}
}

// DecodeInput interprets a numeric key code. When mods is the special input
// sentinel the code goes through the special input table, which accepts every
// value; otherwise it must be a known keyboard key.
func DecodeInput(code uint16, mods Modifiers) (Input, error) {
	if mods.IsSpecialInput() {
		return SpecialInputValue(DecodeSpecial(code)), nil
	}
	k, ok := KeyCodeFromCode(code)
	if !ok {
		return Input{}, &ParseError{
			Tag:   string(TagKey),
			Field: "key_code",
			Value: strconv.FormatUint(uint64(code), 10),
			Err:   ErrInvalidKeyCode,
		}
	}
	return RegularInput(k), nil
}

// IsSpecial reports whether the input is a special input.
func (i Input) IsSpecial() bool {
	return i.special
}

// Key returns the keyboard key and true for regular inputs.
func (i Input) Key() (KeyCode, bool) {
	return i.key, !i.special
}

// Special returns the special input and true for special inputs.
func (i Input) Special() (SpecialInput, bool) {
	return i.gesture, i.special
}

// Code returns the numeric code written to keymap files.
func (i Input) Code() uint16 {
	if i.special {
		return i.gesture.Code
	}
	return uint16(i.key)
}

// Valid reports whether the input encodes to a code that decodes back to it.
func (i Input) Valid() bool {
	if i.special {
		return i.gesture.Valid()
	}
	return i.key.Valid()
}

// String returns the display name of the key or special input.
func (i Input) String() string {
	if i.special {
		return i.gesture.String()
	}
	return i.key.String()
}
