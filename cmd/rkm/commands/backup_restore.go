package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/backup"
	"github.com/thoreinstein/rkm/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupRestoreCmd)
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore ID [FILE]",
	Short: "Restore a keymap from a snapshot",
	Long: `Restore a keymap from one of its snapshots. ID "latest" picks the most
recent one.

The current file is snapshotted first, so a restore can itself be undone.
The snapshot's SHA256 hash is verified before anything is written.`,
	Example: `  # Undo the last rewrite
  rkm backup restore latest

  # Restore a specific snapshot
  rkm backup restore 20260123T100712 shared.ReaperKeyMap

  See Also:
    rkm backup list - List snapshots`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := keymapPath(args, 1)
		if err != nil {
			return err
		}
		return runBackupRestoreWithWriter(cmd.OutOrStdout(), backupManager(), path, args[0])
	},
}

func runBackupRestoreWithWriter(w io.Writer, mgr *backup.Manager, path, id string) error {
	if id == "latest" {
		manifests, err := mgr.List(path)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(errors.Wrapf(err, "%s", path), "Run 'rkm backup list' to see available snapshots")
			}
			return errors.Wrap(err, "listing backups")
		}
		id = manifests[0].ID
		fmt.Fprintf(w, "Using most recent backup: %s\n", id)
	}

	m, err := mgr.Restore(path, id)
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrNoBackupsFound):
			return errors.NewUserError(err, "Run 'rkm backup list' to see available snapshots")
		case errors.Is(err, backup.ErrBackupCorrupted):
			return errors.NewSystemError(err, "Pick an older snapshot with 'rkm backup list'")
		}
		return errors.Wrap(err, "restoring backup")
	}

	fmt.Fprintf(w, "%s Restored %s from backup %s\n", styleOK.Sprint("✓"), m.Source, styleID.Sprint(m.ID))
	return nil
}
