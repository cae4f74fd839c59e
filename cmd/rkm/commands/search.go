package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

var (
	searchKind    string
	searchSection string
)

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "", "only search one kind: key, script, action")
	searchCmd.Flags().StringVarP(&searchSection, "section", "s", "", "only search one section")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [FILE]",
	Short: "Interactively search a keymap",
	Long: `Fuzzy-find an entry by key combination, command id or description.

The selected entry is printed as a keymap line, so it can be piped or pasted
into another keymap.`,
	Example: `  rkm search
  rkm search --kind script
  rkm search shared.ReaperKeyMap >> mine.ReaperKeyMap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

// finder runs the interactive picker. Tests replace it.
var finder = func(items keymap.List, label func(int) string, preview func(i, w, h int) string) (int, error) {
	return fuzzyfinder.Find(items, label, fuzzyfinder.WithPreviewWindow(preview))
}

func runSearch(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 0)
	if err != nil {
		return err
	}
	list, _, err := loadKeymap(cmd.Context(), path)
	if err != nil {
		return err
	}
	filtered, err := filterEntries(list, searchKind, searchSection)
	if err != nil {
		return err
	}
	return runInteractiveSearch(cmd.OutOrStdout(), list, filtered)
}

func runInteractiveSearch(w io.Writer, all, entries keymap.List) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return nil
	}

	idx, err := finder(
		entries,
		func(i int) string {
			return searchLabel(all, entries[i])
		},
		func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return searchPreview(entries[i])
		},
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive search failed")
	}

	fmt.Fprintln(w, entries[idx].Line())
	return nil
}

// searchLabel is the line matched against the query.
func searchLabel(all keymap.List, e keymap.Entry) string {
	sec := keymap.SectionOf(e).DisplayName()
	switch v := e.(type) {
	case keymap.KeyBinding:
		return fmt.Sprintf("%s %s [%s] %s %s", e.Tag(), v.Trigger(), sec, v.CommandID(), bindingDescription(all, v))
	case keymap.ScriptBinding:
		return fmt.Sprintf("%s [%s] %s %s", e.Tag(), sec, v.CommandID, v.Description)
	case keymap.CustomActionBinding:
		return fmt.Sprintf("%s [%s] %s %s", e.Tag(), sec, v.CommandID, v.Description)
	}
	return e.Line()
}

func searchPreview(e keymap.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Section: %s\n", keymap.SectionOf(e).DisplayName())
	fmt.Fprintf(&sb, "Command: %s\n", keymap.CommandIDOf(e))
	switch v := e.(type) {
	case keymap.KeyBinding:
		c := v.EffectiveComment()
		fmt.Fprintf(&sb, "Trigger: %s\n", v.Trigger())
		if c.BehaviorFlag != "" {
			fmt.Fprintf(&sb, "Flag:    %s\n", c.BehaviorFlag)
		}
		if c.ActionDescription != "" {
			fmt.Fprintf(&sb, "\nDescription:\n%s\n", c.ActionDescription)
		}
	case keymap.ScriptBinding:
		fmt.Fprintf(&sb, "On rerun: %s\nPath:    %s\n\nDescription:\n%s\n", v.Termination, v.Path, v.Description)
	case keymap.CustomActionBinding:
		fmt.Fprintf(&sb, "Flags:   %s\n\nDescription:\n%s\n\nSteps:\n", v.Flags, v.Description)
		for _, id := range v.ActionIDs {
			fmt.Fprintf(&sb, "  %s\n", id)
		}
	}
	fmt.Fprintf(&sb, "\n%s\n", e.Line())
	return sb.String()
}
