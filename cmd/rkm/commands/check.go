package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/validator"
)

var (
	checkFormat string
	checkStrict bool
	checkNotes  bool
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "output format: text, json")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat skipped lines as errors (default from config `strict`)")
	checkCmd.Flags().BoolVar(&checkNotes, "notes", false, "also show informational notes such as disabled defaults")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [FILE]",
	Short: "Report unparseable lines and binding conflicts",
	Long: `Check a keymap the way REAPER would read it.

Lines REAPER would ignore are reported with their line number and the reason.
Two bindings for the same key combination in the same section are reported
as conflicts, since REAPER keeps only one of them.

Skipped lines are warnings unless --strict is given (or strict: true is set
in config.yaml), in which case they are errors and rkm exits with status 1.`,
	Example: `  # Check the default keymap
  rkm check

  # Fail a CI job on any unparseable line
  rkm check --strict shared.ReaperKeyMap

  # Machine readable report
  rkm check --format json

  See Also:
    rkm fmt - Rewrite a keymap in canonical form`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 0)
	if err != nil {
		return err
	}
	strict := checkStrict
	if !cmd.Flags().Changed("strict") {
		strict = currentConfig().Strict
	}
	return runCheckWithWriter(cmd.Context(), cmd.OutOrStdout(), path, strict)
}

func runCheckWithWriter(ctx context.Context, w io.Writer, path string, strict bool) error {
	format := validator.Format(checkFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown report format %q", checkFormat), "Use --format text or --format json")
	}

	list, report, err := loadKeymap(ctx, path)
	if err != nil {
		return err
	}

	result := validator.CheckKeymap(path, list, report, validator.Options{Strict: strict})
	if err := validator.NewReporter(w, format, validator.WithInfos(checkNotes)).Report(result); err != nil {
		return errors.Wrap(err, "writing report")
	}

	if result.HasErrors() {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrSkippedLines, "%s: %d lines", path, len(result.Errors())),
			"Fix or remove the reported lines, or rerun without --strict",
		)
	}
	return nil
}
