package keymap

import (
	"fmt"
	"strings"
)

// SpecialKind identifies a non-keyboard input used with the 255 modifier
// sentinel.
type SpecialKind uint8

const (
	// SpecialUnknown is a code outside every known range. The raw code is kept.
	SpecialUnknown SpecialKind = iota
	// SpecialMediaKey is a media keyboard key. The raw code is kept.
	SpecialMediaKey

	Mousewheel
	CtrlMousewheel
	AltMousewheel
	CtrlAltMousewheel
	ShiftMousewheel
	CtrlShiftMousewheel
	AltShiftMousewheel
	CtrlAltShiftMousewheel

	HorizWheel
	CtrlHorizWheel
	AltHorizWheel
	CtrlAltHorizWheel
	ShiftHorizWheel
	CtrlShiftHorizWheel
	AltShiftHorizWheel
	CtrlAltShiftHorizWheel

	MultiZoom
	CtrlMultiZoom
	AltMultiZoom
	CtrlAltShiftMultiZoom

	MultiRotate
	CtrlMultiRotate

	MultiHorz
	MultiVert
)

type specialSpec struct {
	name      string
	canonical uint16
	aliases   []uint16
}

// specialTable lists every closed variant with the code written on output
// and the older codes also accepted on input.
var specialTable = map[SpecialKind]specialSpec{
	Mousewheel:             {"Mousewheel", 248, []uint16{120}},
	CtrlMousewheel:         {"Ctrl+Mousewheel", 249, []uint16{121}},
	AltMousewheel:          {"Alt+Mousewheel", 250, []uint16{122}},
	CtrlAltMousewheel:      {"Ctrl+Alt+Mousewheel", 251, []uint16{123}},
	ShiftMousewheel:        {"Shift+Mousewheel", 252, nil},
	CtrlShiftMousewheel:    {"Ctrl+Shift+Mousewheel", 253, []uint16{125}},
	AltShiftMousewheel:     {"Alt+Shift+Mousewheel", 254, nil},
	CtrlAltShiftMousewheel: {"Ctrl+Alt+Shift+Mousewheel", 255, nil},

	HorizWheel:             {"HorizWheel", 216, []uint16{88}},
	CtrlHorizWheel:         {"Ctrl+HorizWheel", 217, nil},
	AltHorizWheel:          {"Alt+HorizWheel", 218, []uint16{90}},
	CtrlAltHorizWheel:      {"Ctrl+Alt+HorizWheel", 219, nil},
	ShiftHorizWheel:        {"Shift+HorizWheel", 220, nil},
	CtrlShiftHorizWheel:    {"Ctrl+Shift+HorizWheel", 221, nil},
	AltShiftHorizWheel:     {"Alt+Shift+HorizWheel", 222, nil},
	CtrlAltShiftHorizWheel: {"Ctrl+Alt+Shift+HorizWheel", 223, nil},

	MultiZoom:             {"MultiZoom", 200, []uint16{72}},
	CtrlMultiZoom:         {"Ctrl+MultiZoom", 201, []uint16{73}},
	AltMultiZoom:          {"Alt+MultiZoom", 202, []uint16{74}},
	CtrlAltShiftMultiZoom: {"Ctrl+Alt+Shift+MultiZoom", 207, nil},

	MultiRotate:     {"MultiRotate", 152, []uint16{24}},
	CtrlMultiRotate: {"Ctrl+MultiRotate", 153, []uint16{25}},

	MultiHorz: {"MultiHorz", 168, []uint16{40}},
	MultiVert: {"MultiVert", 184, []uint16{56}},
}

// Media key codes start at 232 and repeat every 256; anything from 488 up is
// also treated as a media key.
const (
	mediaKeyBase   = 232
	mediaKeyStride = 256
	mediaKeyFloor  = 488
)

var (
	specialByCode = buildSpecialByCode()
	specialByName = buildSpecialByName()
)

func buildSpecialByCode() map[uint16]SpecialKind {
	byCode := make(map[uint16]SpecialKind, len(specialTable)*2)
	for kind, spec := range specialTable {
		byCode[spec.canonical] = kind
		for _, alias := range spec.aliases {
			byCode[alias] = kind
		}
	}
	return byCode
}

func buildSpecialByName() map[string]SpecialKind {
	byName := make(map[string]SpecialKind, len(specialTable))
	for kind, spec := range specialTable {
		byName[strings.ToLower(spec.name)] = kind
	}
	return byName
}

// SpecialInput is a decoded special input. Code is the exact numeric value it
// was read from (or will be written as), so alias codes and unknown codes
// survive a round trip unchanged.
type SpecialInput struct {
	Kind SpecialKind
	Code uint16
}

// DecodeSpecial maps a key code seen next to the 255 sentinel to a special
// input. It never fails.
func DecodeSpecial(code uint16) SpecialInput {
	if kind, ok := specialByCode[code]; ok {
		return SpecialInput{Kind: kind, Code: code}
	}
	if isMediaKeyCode(code) {
		return SpecialInput{Kind: SpecialMediaKey, Code: code}
	}
	return SpecialInput{Kind: SpecialUnknown, Code: code}
}

func isMediaKeyCode(code uint16) bool {
	if code >= mediaKeyBase && (code-mediaKeyBase)%mediaKeyStride == 0 {
		return true
	}
	return code >= mediaKeyFloor
}

// SpecialInputOf returns the closed variant kind with its canonical code. For
// SpecialMediaKey and SpecialUnknown use SpecialInput literals with an
// explicit code instead.
func SpecialInputOf(kind SpecialKind) SpecialInput {
	return SpecialInput{Kind: kind, Code: specialTable[kind].canonical}
}

// IsFallback reports whether s is a media key or unknown input carrying its
// raw code.
func (s SpecialInput) IsFallback() bool {
	return s.Kind == SpecialMediaKey || s.Kind == SpecialUnknown
}

// Valid reports whether Code actually decodes to Kind.
func (s SpecialInput) Valid() bool {
	return DecodeSpecial(s.Code).Kind == s.Kind
}

// String returns the display name, e.g. "Alt+HorizWheel" or "MediaKey(12520)".
func (s SpecialInput) String() string {
	switch s.Kind {
	case SpecialMediaKey:
		return fmt.Sprintf("MediaKey(%d)", s.Code)
	case SpecialUnknown:
		return fmt.Sprintf("Unknown(%d)", s.Code)
	}
	return s.Kind.String()
}

// String returns the variant name without any raw code.
func (k SpecialKind) String() string {
	switch k {
	case SpecialMediaKey:
		return "MediaKey"
	case SpecialUnknown:
		return "Unknown"
	}
	if spec, ok := specialTable[k]; ok {
		return spec.name
	}
	return fmt.Sprintf("SpecialKind(%d)", uint8(k))
}

// SpecialInputFromName parses the display form produced by String.
func SpecialInputFromName(name string) (SpecialInput, bool) {
	name = strings.TrimSpace(name)
	var code uint16
	if n, _ := fmt.Sscanf(name, "MediaKey(%d)", &code); n == 1 {
		return SpecialInput{Kind: SpecialMediaKey, Code: code}, isMediaKeyCode(code)
	}
	if n, _ := fmt.Sscanf(name, "Unknown(%d)", &code); n == 1 {
		s := DecodeSpecial(code)
		return s, s.Kind == SpecialUnknown
	}
	kind, ok := specialByName[strings.ToLower(name)]
	if !ok {
		return SpecialInput{}, false
	}
	return SpecialInputOf(kind), true
}
