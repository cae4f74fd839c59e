package keymap

import "strconv"

// List is an ordered sequence of entries as they appear in a keymap file.
// Order is preserved and duplicates are kept.
type List []Entry

// Keys returns the KEY entries in order.
func (l List) Keys() []KeyBinding {
	var out []KeyBinding
	for _, e := range l {
		if k, ok := e.(KeyBinding); ok {
			out = append(out, k)
		}
	}
	return out
}

// Scripts returns the SCR entries in order.
func (l List) Scripts() []ScriptBinding {
	var out []ScriptBinding
	for _, e := range l {
		if s, ok := e.(ScriptBinding); ok {
			out = append(out, s)
		}
	}
	return out
}

// Actions returns the ACT entries in order.
func (l List) Actions() []CustomActionBinding {
	var out []CustomActionBinding
	for _, e := range l {
		if a, ok := e.(CustomActionBinding); ok {
			out = append(out, a)
		}
	}
	return out
}

// Lookup returns the first KEY binding for t in any section.
func (l List) Lookup(t Trigger) (KeyBinding, bool) {
	for _, k := range l.Keys() {
		if k.Trigger().Matches(t) {
			return k, true
		}
	}
	return KeyBinding{}, false
}

// LookupInSection returns the first KEY binding for t in section s.
func (l List) LookupInSection(t Trigger, s Section) (KeyBinding, bool) {
	for _, k := range l.Keys() {
		if k.section == s && k.Trigger().Matches(t) {
			return k, true
		}
	}
	return KeyBinding{}, false
}

// LookupCommandID returns the command bound to t in any section.
func (l List) LookupCommandID(t Trigger) (string, bool) {
	k, ok := l.Lookup(t)
	return k.commandID, ok
}

// Filter returns the entries for which keep returns true.
func (l List) Filter(keep func(Entry) bool) List {
	var out List
	for _, e := range l {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// InSection returns the entries of section s.
func (l List) InSection(s Section) List {
	return l.Filter(func(e Entry) bool { return SectionOf(e) == s })
}

// ByCommandID returns the entries referring to command id.
func (l List) ByCommandID(id string) List {
	return l.Filter(func(e Entry) bool { return CommandIDOf(e) == id })
}

// Counts returns the number of entries per tag.
func (l List) Counts() map[Tag]int {
	counts := make(map[Tag]int, 3)
	for _, e := range l {
		counts[e.Tag()]++
	}
	return counts
}

// Validate checks every entry and returns the first failure with its index.
func (l List) Validate() error {
	for i, e := range l {
		if err := e.Validate(); err != nil {
			return &EntryError{Index: i, Err: err}
		}
	}
	return nil
}

// EntryError reports an invalid entry in a List.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return "entry " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
