package keymap

import (
	"encoding/json"
	"strings"
)

// Behavior flag markers written by the host into KEY comments.
const (
	FlagOverrideDefault = "OVERRIDE DEFAULT"
	FlagDisabledDefault = "DISABLED DEFAULT"
)

var behaviorMarkers = []string{FlagOverrideDefault, FlagDisabledDefault}

// Descriptions containing one of these name a continuous control, usually a
// mouse wheel or MIDI CC bound to a relative action.
var relativeMarkers = []string{
	"(MIDI CC relative/mousewheel)",
	"(MIDI relative/mousewheel)",
}

const commentSeparator = " : "

// Comment is the structured annotation trailing a KEY line:
//
//	# Main : Cmd+N : OVERRIDE DEFAULT : File: New project
//
// It is descriptive only. ActionName and IsRelativeControl are derived from
// ActionDescription; build comments with NewComment or ParseComment to keep
// them in sync.
type Comment struct {
	Section           string `json:"section"`
	KeyCombination    string `json:"key_combination"`
	BehaviorFlag      string `json:"behavior_flag,omitempty"`
	ActionDescription string `json:"action_description,omitempty"`
	ActionName        string `json:"action_name,omitempty"`
	IsRelativeControl bool   `json:"is_relative_control"`
}

// NewComment builds a comment and fills in the derived fields.
func NewComment(section, combination, flag, description string) Comment {
	return Comment{
		Section:           section,
		KeyCombination:    combination,
		BehaviorFlag:      flag,
		ActionDescription: description,
		ActionName:        actionName(description),
		IsRelativeControl: isRelative(description),
	}
}

// ParseComment parses the text of a KEY comment, with or without the leading
// '#'. It reports false when the text does not have at least a section and a
// key combination.
func ParseComment(text string) (Comment, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimPrefix(text, "#"))
	if text == "" {
		return Comment{}, false
	}

	fields := strings.Split(text, ":")
	if len(fields) < 2 {
		return Comment{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == "" {
		return Comment{}, false
	}

	var flag string
	rest := fields[2:]
	if len(rest) > 0 && isBehaviorFlag(rest[0]) {
		flag = rest[0]
		rest = rest[1:]
	}
	return NewComment(fields[0], fields[1], flag, strings.Join(rest, ": ")), true
}

// DeriveComment synthesizes a comment from the binding's own fields. It is
// what FormatLine writes for bindings loaded without a comment.
func DeriveComment(b KeyBinding) Comment {
	flag := FlagOverrideDefault
	if b.commandID == "0" {
		flag = FlagDisabledDefault
	}
	return NewComment(b.section.DisplayName(), KeyCombinationLabel(b.mods, b.input), flag, "")
}

// KeyCombinationLabel renders modifiers and input the way the host does in
// comments, e.g. "Cmd+Shift+M" or "Mousewheel".
func KeyCombinationLabel(mods Modifiers, in Input) string {
	parts := mods.Labels()
	parts = append(parts, in.String())
	return strings.Join(parts, "+")
}

// Line renders the comment including the leading "# ".
func (c Comment) Line() string {
	fields := []string{c.Section, c.KeyCombination}
	if c.BehaviorFlag != "" {
		fields = append(fields, c.BehaviorFlag)
	}
	if c.ActionDescription != "" {
		fields = append(fields, c.ActionDescription)
	}
	return "# " + strings.Join(fields, commentSeparator)
}

// IsOverride reports whether the flag marks an overridden default binding.
func (c Comment) IsOverride() bool {
	return strings.Contains(c.BehaviorFlag, FlagOverrideDefault)
}

// IsDisabled reports whether the flag marks a disabled default binding.
func (c Comment) IsDisabled() bool {
	return strings.Contains(c.BehaviorFlag, FlagDisabledDefault)
}

// UnmarshalJSON decodes the stored fields and recomputes the derived ones.
func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = NewComment(p.Section, p.KeyCombination, p.BehaviorFlag, p.ActionDescription)
	return nil
}

func isBehaviorFlag(field string) bool {
	for _, m := range behaviorMarkers {
		if strings.Contains(field, m) {
			return true
		}
	}
	return false
}

func isRelative(description string) bool {
	for _, m := range relativeMarkers {
		if strings.Contains(description, m) {
			return true
		}
	}
	return false
}

func actionName(description string) string {
	if i := strings.IndexByte(description, '('); i >= 0 {
		description = description[:i]
	}
	return strings.TrimSpace(description)
}
