package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

var (
	lookupSection string
	lookupAll     bool
)

func init() {
	lookupCmd.Flags().StringVarP(&lookupSection, "section", "s", "", "only look in this section")
	lookupCmd.Flags().BoolVarP(&lookupAll, "all", "a", false, "show every binding of the combination, not just the first")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup COMBO [FILE]",
	Short: "Show the command bound to a key combination",
	Long: `Show which command a key combination runs.

COMBO is written the way keymap comments write it: modifiers joined with '+'
followed by a key name or special input, e.g. "Cmd+Shift+M", "Opt+F5",
"Mousewheel" or "Alt+HorizWheel". Modifier aliases (Ctrl, Option, Win) are
accepted.

When the command is a script or custom action defined in the same keymap,
its description is shown too. Exits with status 1 when nothing is bound.`,
	Example: `  rkm lookup Cmd+Shift+M
  rkm lookup Mousewheel --section "MIDI Editor"
  rkm lookup --all Space shared.ReaperKeyMap`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 1)
	if err != nil {
		return err
	}
	list, _, err := loadKeymap(cmd.Context(), path)
	if err != nil {
		return err
	}
	return runLookupWithWriter(cmd.Context(), cmd.OutOrStdout(), list, args[0])
}

func runLookupWithWriter(_ context.Context, w io.Writer, list keymap.List, combo string) error {
	trigger, err := keymap.ParseTrigger(combo)
	if err != nil {
		return errors.NewUserError(err, `Write combinations like "Cmd+Shift+M", "Opt+F5" or "Mousewheel"`)
	}

	sec, err := parseSection(lookupSection)
	if err != nil {
		return err
	}

	var matches []keymap.KeyBinding
	for _, k := range list.Keys() {
		if sec != nil && k.Section() != *sec {
			continue
		}
		if k.Trigger().Matches(trigger) {
			matches = append(matches, k)
			if !lookupAll {
				break
			}
		}
	}

	if len(matches) == 0 {
		return errors.NewExitError(errors.Wrapf(errors.ErrNoBinding, "%s", trigger), errors.ExitUser)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			k.Trigger(),
			k.Section().DisplayName(),
			styleID.Sprint(k.CommandID()),
			bindingDescription(list, k))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

// bindingDescription describes what k runs, preferring a script or custom
// action defined in the same keymap over the comment text.
func bindingDescription(list keymap.List, k keymap.KeyBinding) string {
	if k.IsDisabled() {
		return "(disabled)"
	}
	for _, e := range list.ByCommandID(k.CommandID()) {
		switch v := e.(type) {
		case keymap.ScriptBinding:
			return fmt.Sprintf("script: %s (%s)", v.Description, v.Path)
		case keymap.CustomActionBinding:
			return fmt.Sprintf("custom action: %s (%d steps)", v.Description, len(v.ActionIDs))
		}
	}
	return k.EffectiveComment().ActionDescription
}
