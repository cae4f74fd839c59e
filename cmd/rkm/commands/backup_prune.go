package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/backup"
	"github.com/thoreinstein/rkm/internal/errors"
)

var backupPruneKeep int

func init() {
	backupPruneCmd.Flags().IntVar(&backupPruneKeep, "keep", backup.DefaultRetentionCount, "number of snapshots to keep")
	backupCmd.AddCommand(backupPruneCmd)
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune [FILE]",
	Short: "Remove old snapshots of a keymap",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := keymapPath(args, 0)
		if err != nil {
			return err
		}
		return runBackupPruneWithWriter(cmd.OutOrStdout(), backupManager(), path, backupPruneKeep)
	},
}

func runBackupPruneWithWriter(w io.Writer, mgr *backup.Manager, path string, keep int) error {
	if keep < 0 {
		return errors.NewUserError(errors.Newf("--keep must be >= 0, got %d", keep), "")
	}
	before, _ := mgr.List(path)
	if err := mgr.Prune(path, keep); err != nil {
		return errors.Wrap(err, "pruning backups")
	}
	removed := len(before) - keep
	if removed < 0 {
		removed = 0
	}
	fmt.Fprintf(w, "%s Removed %d backups of %s\n", styleOK.Sprint("✓"), removed, path)
	return nil
}
