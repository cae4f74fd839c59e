package validator

import (
	"strconv"

	"github.com/thoreinstein/rkm/pkg/keymap"
)

// Options controls how a keymap is judged.
type Options struct {
	// Strict promotes skipped lines from warnings to errors.
	Strict bool
}

// CheckKeymap builds a Result from a loaded list and its load report.
//
// Skipped lines become warnings (errors when strict). Two enabled KEY
// bindings for the same trigger in the same section are reported as a
// conflict warning; the host keeps only one of them. Disabled bindings are
// noted as info.
func CheckKeymap(source string, list keymap.List, report *keymap.Report, opts Options) *Result {
	res := &Result{Source: source, Entries: len(list)}

	if report != nil {
		sev := SeverityWarning
		if opts.Strict {
			sev = SeverityError
		}
		for _, s := range report.Skipped {
			issue := Issue{
				Severity: sev,
				Line:     s.Number,
				Message:  "line skipped",
				Value:    s.Text,
			}
			if s.Err != nil {
				issue.Kind = s.Err.Kind()
				issue.Message = s.Err.Error()
			}
			res.Add(issue)
		}
	}

	checkConflicts(res, list)

	for _, e := range list {
		if k, ok := e.(keymap.KeyBinding); ok && k.IsDisabled() {
			res.Add(Issue{
				Severity: SeverityInfo,
				Kind:     "disabled",
				Field:    k.Trigger().String(),
				Message:  "default binding disabled",
				Context:  map[string]string{"section": k.Section().DisplayName()},
			})
		}
	}

	return res
}

type conflictKey struct {
	section keymap.Section
	trigger string
}

func checkConflicts(res *Result, list keymap.List) {
	first := make(map[conflictKey]keymap.KeyBinding)
	for i, e := range list {
		k, ok := e.(keymap.KeyBinding)
		if !ok || k.IsDisabled() {
			continue
		}
		key := conflictKey{section: k.Section(), trigger: triggerKey(k.Trigger())}
		prev, seen := first[key]
		if !seen {
			first[key] = k
			continue
		}
		if prev.CommandID() == k.CommandID() {
			continue
		}
		res.Add(Issue{
			Severity: SeverityWarning,
			Kind:     "conflict",
			Field:    k.Trigger().String(),
			Message:  "bound to more than one command",
			Value:    prev.CommandID() + ", " + k.CommandID(),
			Context: map[string]string{
				"section": k.Section().DisplayName(),
				"entry":   strconv.Itoa(i),
			},
		})
	}
}

// triggerKey folds alias special codes onto their kind so aliases conflict
// with canonical codes the same way Trigger.Matches treats them.
func triggerKey(t keymap.Trigger) string {
	if s, ok := t.Input.Special(); ok && !s.IsFallback() {
		return "special:" + s.Kind.String()
	}
	return t.Modifiers.String() + "|" + strconv.Itoa(int(t.Input.Code()))
}
