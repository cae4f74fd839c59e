package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the sections a binding can belong to",
	Long: `List every section code with the identifier and display name rkm
accepts for --section flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSectionsWithWriter(cmd.OutOrStdout())
	},
}

func runSectionsWithWriter(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		styleHeader.Sprint("CODE"),
		styleHeader.Sprint("NAME"),
		styleHeader.Sprint("DISPLAY NAME"))
	for _, s := range keymap.Sections() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Code(), s, s.DisplayName())
	}
	return errors.Wrap(tw.Flush(), "writing output")
}
