package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/backup"
	"github.com/thoreinstein/rkm/internal/editor"
	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/validator"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit [FILE]",
	Short: "Open a keymap in your editor, then check it",
	Long: `Open a keymap in $RKM_EDITOR, $EDITOR or $VISUAL (falling back to nano,
then vi). A backup is taken before the editor starts. When the editor exits
the keymap is checked and any problems are reported.

Restore the pre-edit version with 'rkm backup restore latest FILE'.`,
	Example: `  rkm edit
  RKM_EDITOR="code --wait" rkm edit shared.ReaperKeyMap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

// openEditor launches the editor. Tests replace it.
var openEditor = editor.Open

func runEdit(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 0)
	if err != nil {
		return err
	}
	return runEditWithWriter(cmd.Context(), cmd.OutOrStdout(), path)
}

func runEditWithWriter(ctx context.Context, w io.Writer, path string) error {
	if currentConfig().BackupRetention > 0 {
		if err := backup.EnsureBackedUp(backupManager(), path, "edit"); err != nil {
			return errors.Wrap(err, "backing up keymap before edit")
		}
	}

	if err := openEditor(ctx, path); err != nil {
		return errors.NewSystemError(err, "Set RKM_EDITOR or EDITOR to an installed editor")
	}

	list, report, err := loadKeymap(ctx, path)
	if err != nil {
		return err
	}

	result := validator.CheckKeymap(path, list, report, validator.Options{Strict: currentConfig().Strict})
	if err := validator.NewReporter(w, validator.FormatText).Report(result); err != nil {
		return errors.Wrap(err, "writing report")
	}
	if result.HasErrors() {
		return errors.NewUserError(errors.Wrapf(errors.ErrSkippedLines, "%s", path), "Run 'rkm edit' again to fix the reported lines")
	}
	return nil
}
