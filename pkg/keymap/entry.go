package keymap

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Tag is the leading keyword of a keymap line.
type Tag string

const (
	TagKey    Tag = "KEY"
	TagScript Tag = "SCR"
	TagAction Tag = "ACT"
)

// Entry is one parsed keymap line: a KeyBinding, ScriptBinding or
// CustomActionBinding. Entries are values; modify a copy.
type Entry interface {
	// Tag returns the line keyword.
	Tag() Tag
	// Line renders the entry as a keymap line without a trailing newline.
	Line() string
	// Validate reports whether the entry can be written and read back.
	Validate() error

	entry()
}

// KeyBinding binds a key or special input to a command in a section.
//
// The modifier sentinel and the special input are kept in agreement: build
// bindings with NewKeyBinding or ParseLine.
type KeyBinding struct {
	mods       Modifiers
	input      Input
	commandID  string
	section    Section
	comment    Comment
	hasComment bool
}

// NewKeyBinding validates and builds a KEY entry without a comment.
func NewKeyBinding(mods Modifiers, in Input, commandID string, section Section) (KeyBinding, error) {
	b := KeyBinding{mods: mods, input: in, commandID: commandID, section: section}
	if err := b.Validate(); err != nil {
		return KeyBinding{}, err
	}
	return b, nil
}

// NewSpecialBinding is NewKeyBinding for a special input; it sets the
// modifier sentinel.
func NewSpecialBinding(s SpecialInput, commandID string, section Section) (KeyBinding, error) {
	return NewKeyBinding(ModSpecialInput, SpecialInputValue(s), commandID, section)
}

func (KeyBinding) Tag() Tag { return TagKey }
func (KeyBinding) entry()   {}

func (b KeyBinding) Modifiers() Modifiers { return b.mods }
func (b KeyBinding) Input() Input         { return b.input }
func (b KeyBinding) CommandID() string    { return b.commandID }
func (b KeyBinding) Section() Section     { return b.section }

// Trigger returns the physical input combination of the binding.
func (b KeyBinding) Trigger() Trigger {
	return Trigger{Modifiers: b.mods, Input: b.input}
}

// Comment returns the stored comment, if the binding has one.
func (b KeyBinding) Comment() (Comment, bool) {
	return b.comment, b.hasComment
}

// EffectiveComment returns the stored comment or a derived one.
func (b KeyBinding) EffectiveComment() Comment {
	if b.hasComment {
		return b.comment
	}
	return DeriveComment(b)
}

// IsDisabled reports whether the binding unbinds a default, which the host
// writes as command "0".
func (b KeyBinding) IsDisabled() bool {
	return b.commandID == "0"
}

func (b KeyBinding) WithComment(c Comment) KeyBinding {
	b.comment, b.hasComment = c, true
	return b
}

func (b KeyBinding) WithoutComment() KeyBinding {
	b.comment, b.hasComment = Comment{}, false
	return b
}

func (b KeyBinding) WithCommandID(id string) KeyBinding {
	b.commandID = id
	return b
}

func (b KeyBinding) WithSection(s Section) KeyBinding {
	b.section = s
	return b
}

func (b KeyBinding) Line() string {
	return FormatLine(b)
}

func (b KeyBinding) Validate() error {
	switch {
	case b.mods.IsSpecialInput() != b.input.IsSpecial():
		return errors.Wrapf(ErrInvalidEntry, "KEY: modifiers %q do not match input %q", b.mods, b.input)
	case b.mods.IsSpecialInput() && b.mods != ModSpecialInput:
		return errors.Wrap(ErrInvalidEntry, "KEY: special input sentinel combined with other modifiers")
	case b.mods&^(regularMask|ModSpecialInput) != 0:
		return errors.Wrapf(ErrInvalidEntry, "KEY: unknown modifier bits %#x", uint8(b.mods))
	case !b.input.Valid():
		return errors.Wrapf(ErrInvalidEntry, "KEY: input %q does not round trip through its code", b.input)
	case !b.section.Valid():
		return errors.Wrapf(ErrInvalidEntry, "KEY: unknown section %d", uint32(b.section))
	case !isBareToken(b.commandID):
		return errors.Wrapf(ErrInvalidEntry, "KEY: command id %q must be a single bare token", b.commandID)
	case hasLineBreak(b.comment.Section, b.comment.KeyCombination, b.comment.BehaviorFlag, b.comment.ActionDescription):
		return errors.Wrap(ErrInvalidEntry, "KEY: comment cannot contain line breaks")
	}
	return nil
}

// ScriptBinding registers a script file as an action.
type ScriptBinding struct {
	Termination TerminationBehavior `json:"termination_behavior"`
	Section     Section             `json:"section"`
	CommandID   string              `json:"command_id"`
	Description string              `json:"description"`
	Path        string              `json:"path"`
}

func (ScriptBinding) Tag() Tag { return TagScript }
func (ScriptBinding) entry()   {}

func (s ScriptBinding) Line() string {
	return FormatLine(s)
}

func (s ScriptBinding) Validate() error {
	switch {
	case !s.Termination.Valid():
		return errors.Wrapf(ErrInvalidEntry, "SCR: unknown termination behavior %d", uint32(s.Termination))
	case !s.Section.Valid():
		return errors.Wrapf(ErrInvalidEntry, "SCR: unknown section %d", uint32(s.Section))
	case s.Path == "":
		return errors.Wrap(ErrInvalidEntry, "SCR: path is required")
	case hasLineBreak(s.CommandID, s.Description, s.Path):
		return errors.Wrap(ErrInvalidEntry, "SCR: fields cannot contain line breaks")
	}
	return nil
}

// CustomActionBinding is a macro that runs ActionIDs in order.
type CustomActionBinding struct {
	Flags       ActionFlags `json:"action_flags"`
	Section     Section     `json:"section"`
	CommandID   string      `json:"command_id"`
	Description string      `json:"description"`
	ActionIDs   []string    `json:"action_ids,omitempty"`
}

func (CustomActionBinding) Tag() Tag { return TagAction }
func (CustomActionBinding) entry()   {}

func (a CustomActionBinding) Line() string {
	return FormatLine(a)
}

func (a CustomActionBinding) Validate() error {
	if !a.Section.Valid() {
		return errors.Wrapf(ErrInvalidEntry, "ACT: unknown section %d", uint32(a.Section))
	}
	if a.Flags&^knownActionFlags != 0 {
		return errors.Wrapf(ErrInvalidEntry, "ACT: unknown flag bits %#x", uint32(a.Flags&^knownActionFlags))
	}
	if hasLineBreak(a.CommandID, a.Description) {
		return errors.Wrap(ErrInvalidEntry, "ACT: fields cannot contain line breaks")
	}
	for i, id := range a.ActionIDs {
		if !isBareToken(id) {
			return errors.Wrapf(ErrInvalidEntry, "ACT: action id %d (%q) must be a single bare token", i, id)
		}
	}
	return nil
}

// Equal reports whether a and other have the same fields. ActionIDs are
// compared element-wise; nil and empty are equal.
func (a CustomActionBinding) Equal(other CustomActionBinding) bool {
	if a.Flags != other.Flags || a.Section != other.Section ||
		a.CommandID != other.CommandID || a.Description != other.Description ||
		len(a.ActionIDs) != len(other.ActionIDs) {
		return false
	}
	for i := range a.ActionIDs {
		if a.ActionIDs[i] != other.ActionIDs[i] {
			return false
		}
	}
	return true
}

// SectionOf returns the section of any entry.
func SectionOf(e Entry) Section {
	switch v := e.(type) {
	case KeyBinding:
		return v.section
	case ScriptBinding:
		return v.Section
	case CustomActionBinding:
		return v.Section
	}
	return 0
}

// CommandIDOf returns the command identifier of any entry.
func CommandIDOf(e Entry) string {
	switch v := e.(type) {
	case KeyBinding:
		return v.commandID
	case ScriptBinding:
		return v.CommandID
	case CustomActionBinding:
		return v.CommandID
	}
	return ""
}

// isBareToken reports whether s can be written unquoted in any field.
func isBareToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '#' {
			return false
		}
	}
	return true
}

func hasLineBreak(fields ...string) bool {
	for _, f := range fields {
		if strings.ContainsAny(f, "\r\n") {
			return true
		}
	}
	return false
}
