package keymap

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidTrigger is returned by ParseTrigger.
var ErrInvalidTrigger = errors.New("invalid key combination")

// Trigger is the physical input of a KEY binding: modifiers plus key or
// special input.
type Trigger struct {
	Modifiers Modifiers
	Input     Input
}

// String renders the trigger the way comments do, e.g. "Cmd+Shift+M".
func (t Trigger) String() string {
	return KeyCombinationLabel(t.Modifiers, t.Input)
}

// Matches reports whether t and other describe the same physical input.
// Special inputs of a closed kind match regardless of which of their codes
// was used.
func (t Trigger) Matches(other Trigger) bool {
	if t.Modifiers != other.Modifiers {
		return false
	}
	a, aSpecial := t.Input.Special()
	b, bSpecial := other.Input.Special()
	if aSpecial && bSpecial && !a.IsFallback() && !b.IsFallback() {
		return a.Kind == b.Kind
	}
	return t.Input == other.Input
}

// ParseTrigger parses a combination such as "Cmd+Shift+M", "Ctrl+Alt+F5" or
// "Opt+Mousewheel". Modifier names are case-insensitive and accept the
// common aliases (Cmd/Command/Super/Win, Opt/Option/Alt, Ctrl/Control).
// Special input names are matched whole first, since they contain '+'
// themselves; otherwise modifiers in front of a bare special name select the
// matching variant.
func ParseTrigger(s string) (Trigger, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Trigger{}, errors.Wrap(ErrInvalidTrigger, "empty combination")
	}
	if sp, ok := SpecialInputFromName(s); ok {
		return Trigger{Modifiers: ModSpecialInput, Input: SpecialInputValue(sp)}, nil
	}

	parts := strings.Split(s, "+")
	if sp, ok := specialFromParts(parts); ok {
		return Trigger{Modifiers: ModSpecialInput, Input: SpecialInputValue(sp)}, nil
	}
	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := KeyCodeFromName(keyName)
	if !ok {
		return Trigger{}, errors.Wrapf(ErrInvalidTrigger, "unknown key %q in %q", keyName, s)
	}

	var mods Modifiers
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierLabels[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Trigger{}, errors.Wrapf(ErrInvalidTrigger, "unknown modifier %q in %q", p, s)
		}
		mods |= m
	}
	return Trigger{Modifiers: mods, Input: RegularInput(key)}, nil
}

// specialPrefixes is the order modifiers appear in special input names.
var specialPrefixes = []struct {
	mod   Modifiers
	label string
}{
	{ModControl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
}

// specialFromParts resolves labels like "Opt+Shift+Mousewheel" to the closed
// variant "Alt+Shift+Mousewheel". Cmd has no special input variants.
func specialFromParts(parts []string) (SpecialInput, bool) {
	if len(parts) < 2 {
		return SpecialInput{}, false
	}
	base, ok := SpecialInputFromName(parts[len(parts)-1])
	if !ok || base.IsFallback() || strings.Contains(base.Kind.String(), "+") {
		return SpecialInput{}, false
	}

	var mods Modifiers
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierLabels[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return SpecialInput{}, false
		}
		mods |= m
	}

	var sb strings.Builder
	for _, sp := range specialPrefixes {
		if mods.Has(sp.mod) {
			sb.WriteString(sp.label)
			sb.WriteByte('+')
			mods &^= sp.mod
		}
	}
	if mods != ModNone {
		return SpecialInput{}, false
	}
	sb.WriteString(base.Kind.String())
	return SpecialInputFromName(sb.String())
}
