package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/export"
	"github.com/thoreinstein/rkm/internal/paths"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

var (
	importFormat string
	importOutput string
)

func init() {
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "json, yaml or toml (default: from DATA extension)")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "write the keymap to this file (a backup of an existing file is taken first)")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import DATA",
	Short: "Convert a JSON, YAML or TOML document to a keymap",
	Long: `Read a document produced by 'rkm export' and write it as a keymap.

Every entry is checked before anything is written, so a document with an
invalid entry leaves the output file untouched.`,
	Example: `  rkm import keys.yaml > edited.ReaperKeyMap
  rkm import keys.json -o ~/Library/Application\ Support/REAPER/KeyMaps/edited.ReaperKeyMap

  See Also:
    rkm export - Convert a keymap to a document`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := paths.ExpandHome(args[0])
	if err != nil {
		return err
	}
	return runImportWithWriter(cmd.Context(), cmd.OutOrStdout(), data)
}

func runImportWithWriter(ctx context.Context, w io.Writer, data string) error {
	var format export.Format
	if importFormat != "" {
		f, err := export.ParseFormat(importFormat)
		if err != nil {
			return errors.NewUserError(err, "Use --format json, yaml or toml")
		}
		format = f
	}

	list, err := export.ReadFile(data, format)
	if err != nil {
		if errors.Is(err, errors.ErrUnknownFormat) {
			return errors.NewUserError(err, "Pass --format json, yaml or toml")
		}
		return errors.NewUserError(errors.Wrapf(err, "reading %s", data), "")
	}

	if err := list.Validate(); err != nil {
		var ee *keymap.EntryError
		if errors.As(err, &ee) {
			return errors.NewUserError(err, fmt.Sprintf("Fix entry %d of %s", ee.Index+1, data))
		}
		return err
	}

	if importOutput == "" {
		return keymap.Save(w, list)
	}

	if err := saveKeymap(ctx, importOutput, list, "import "+data); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Imported %d entries to %s\n", styleOK.Sprint("✓"), len(list), importOutput)
	return nil
}
