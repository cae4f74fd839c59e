package keymap

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Section is the host context a binding applies in.
type Section uint32

// Known sections with their on-disk codes.
const (
	SectionMain             Section = 0
	SectionMainAlt1         Section = 1
	SectionMainAlt16        Section = 16
	SectionMainAltRecording Section = 100
	SectionMIDIEditor       Section = 32060
	SectionMIDIEventList    Section = 32061
	SectionMIDIInline       Section = 32062
	SectionMediaExplorer    Section = 32063
)

type sectionSpec struct {
	ident   string
	display string
}

var sectionTable = buildSectionTable()

func buildSectionTable() map[Section]sectionSpec {
	t := map[Section]sectionSpec{
		SectionMain:             {"Main", "Main"},
		SectionMainAltRecording: {"MainAltRecording", "Main (alt recording)"},
		SectionMIDIEditor:       {"MidiEditor", "MIDI Editor"},
		SectionMIDIEventList:    {"MidiEventList", "MIDI Event List"},
		SectionMIDIInline:       {"MidiInline", "MIDI Inline Editor"},
		SectionMediaExplorer:    {"MediaExplorer", "Media Explorer"},
	}
	for s := SectionMainAlt1; s <= SectionMainAlt16; s++ {
		t[s] = sectionSpec{
			ident:   fmt.Sprintf("MainAlt%d", s),
			display: fmt.Sprintf("Main (alt-%d)", s),
		}
	}
	return t
}

// SectionFromCode validates a numeric section code.
func SectionFromCode(code uint32) (Section, bool) {
	s := Section(code)
	_, ok := sectionTable[s]
	return s, ok
}

// SectionFromName accepts either the identifier ("MidiEditor"), the display
// name ("MIDI Editor") or the numeric code, case-insensitively.
func SectionFromName(name string) (Section, bool) {
	name = strings.TrimSpace(name)
	if n, err := strconv.ParseUint(name, 10, 32); err == nil {
		return SectionFromCode(uint32(n))
	}
	for s, spec := range sectionTable {
		if strings.EqualFold(spec.ident, name) || strings.EqualFold(spec.display, name) {
			return s, true
		}
	}
	return 0, false
}

// Sections returns every known section in ascending code order.
func Sections() []Section {
	return slices.Sorted(maps.Keys(sectionTable))
}

// Valid reports whether s is in the section table.
func (s Section) Valid() bool {
	_, ok := sectionTable[s]
	return ok
}

// Code returns the on-disk code.
func (s Section) Code() uint32 {
	return uint32(s)
}

// DisplayName is the name used in structured comments, e.g. "Main (alt-4)".
func (s Section) DisplayName() string {
	if spec, ok := sectionTable[s]; ok {
		return spec.display
	}
	return fmt.Sprintf("Section %d", uint32(s))
}

// String returns the identifier, e.g. "MainAlt4".
func (s Section) String() string {
	if spec, ok := sectionTable[s]; ok {
		return spec.ident
	}
	return fmt.Sprintf("Section(%d)", uint32(s))
}

// MarshalJSON encodes s as its identifier.
func (s Section) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Newf("cannot encode unknown section %d", uint32(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts an identifier, display name or numeric code.
func (s *Section) UnmarshalJSON(data []byte) error {
	var code uint32
	if err := json.Unmarshal(data, &code); err == nil {
		sec, ok := SectionFromCode(code)
		if !ok {
			return errors.Wrapf(ErrInvalidSection, "%d", code)
		}
		*s = sec
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Wrap(err, "decoding section")
	}
	sec, ok := SectionFromName(name)
	if !ok {
		return errors.Wrapf(ErrInvalidSection, "%q", name)
	}
	*s = sec
	return nil
}
