package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/export"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

var (
	listKind    string
	listSection string
	listJSON    bool
)

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "only list one kind: key, script, action")
	listCmd.Flags().StringVarP(&listSection, "section", "s", "", `only list one section, e.g. "Main" or "MIDI Editor"`)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [FILE]",
	Short: "List the entries of a keymap",
	Long: `List key bindings, script registrations and custom actions, grouped by
section in file order.

Lines that do not parse are not listed; run 'rkm check' to see them.`,
	Example: `  # Everything in the default keymap
  rkm list

  # Key bindings in the MIDI editor
  rkm list --kind key --section MidiEditor

  # Machine readable
  rkm list --json shared.ReaperKeyMap

  See Also:
    rkm check  - Report unparseable lines and conflicts
    rkm lookup - Show the command bound to a key combination`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 0)
	if err != nil {
		return err
	}
	list, _, err := loadKeymap(cmd.Context(), path)
	if err != nil {
		return err
	}
	return runListWithWriter(cmd.OutOrStdout(), list)
}

func runListWithWriter(w io.Writer, list keymap.List) error {
	filtered, err := filterEntries(list, listKind, listSection)
	if err != nil {
		return err
	}

	if listJSON {
		data, err := export.Encode(filtered, export.FormatJSON)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return errors.Wrap(err, "writing output")
	}
	return outputListTabular(w, filtered)
}

// parseKind maps a --kind value to a line tag.
func parseKind(kind string) (keymap.Tag, error) {
	switch strings.ToLower(kind) {
	case "key", "keys", "kbd":
		return keymap.TagKey, nil
	case "script", "scripts", "scr":
		return keymap.TagScript, nil
	case "action", "actions", "act":
		return keymap.TagAction, nil
	}
	return "", errors.NewUserError(
		errors.Newf("unknown kind %q", kind),
		"Use one of: key, script, action",
	)
}

func filterEntries(list keymap.List, kind, section string) (keymap.List, error) {
	if kind != "" {
		tag, err := parseKind(kind)
		if err != nil {
			return nil, err
		}
		list = list.Filter(func(e keymap.Entry) bool { return e.Tag() == tag })
	}
	sec, err := parseSection(section)
	if err != nil {
		return nil, err
	}
	if sec != nil {
		list = list.InSection(*sec)
	}
	return list, nil
}

func outputListTabular(w io.Writer, list keymap.List) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return nil
	}

	first := true
	for _, sec := range keymap.Sections() {
		entries := list.InSection(sec)
		if len(entries) == 0 {
			continue
		}

		// Blank line between sections (but not before the first)
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		fmt.Fprintf(w, "%s\n", styleSection.Sprint(sec.DisplayName()))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			styleHeader.Sprint("KIND"),
			styleHeader.Sprint("TRIGGER"),
			styleHeader.Sprint("COMMAND"),
			styleHeader.Sprint("DESCRIPTION"))
		for _, e := range entries {
			trigger, desc := describeEntry(e)
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				e.Tag(),
				trigger,
				styleID.Sprint(truncate(keymap.CommandIDOf(e), 40)),
				truncate(desc, 70))
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "writing table")
		}
	}

	counts := list.Counts()
	fmt.Fprintf(w, "\n%s\n", styleMuted.Sprintf("%d entries: %d keys, %d scripts, %d actions",
		len(list), counts[keymap.TagKey], counts[keymap.TagScript], counts[keymap.TagAction]))
	return nil
}

// describeEntry returns the trigger column and a one-line description.
func describeEntry(e keymap.Entry) (trigger, desc string) {
	switch v := e.(type) {
	case keymap.KeyBinding:
		desc = v.EffectiveComment().ActionDescription
		if v.IsDisabled() {
			desc = "(disabled)"
		}
		return v.Trigger().String(), desc
	case keymap.ScriptBinding:
		return "-", fmt.Sprintf("%s [%s] %s", v.Description, v.Termination, v.Path)
	case keymap.CustomActionBinding:
		return "-", fmt.Sprintf("%s (%d steps)", v.Description, len(v.ActionIDs))
	}
	return "-", ""
}
