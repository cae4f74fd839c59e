package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/backup"
	"github.com/thoreinstein/rkm/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupCreateCmd)
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [FILE]",
	Short: "Snapshot a keymap now",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := keymapPath(args, 0)
		if err != nil {
			return err
		}
		return runBackupCreateWithWriter(cmd.OutOrStdout(), backupManager(), path)
	},
}

func runBackupCreateWithWriter(w io.Writer, mgr *backup.Manager, path string) error {
	m, err := mgr.Backup(path, "manual")
	if err != nil {
		if errors.Is(err, backup.ErrSourceRequired) {
			return errors.NewUserError(err, "Pass a FILE argument")
		}
		if isNotExist(err) {
			return errors.NewKeymapNotFoundError(path)
		}
		return errors.Wrap(err, "creating backup")
	}
	fmt.Fprintf(w, "%s Created backup %s of %s\n", styleOK.Sprint("✓"), styleID.Sprint(m.ID), path)
	return nil
}
