package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/cmd"
	"github.com/thoreinstein/rkm/internal/backup"
)

func init() {
	backup.Version = cmd.Version
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage keymap backups",
	Long: `Manage snapshots of keymap files.

rkm takes a snapshot automatically before 'fmt -w', 'import -o' and 'edit'
change a file. Snapshots live under $XDG_DATA_HOME/rkm/backups, one
directory per keymap, and only the newest backup_retention (default 10) are
kept.`,
	Example: `  # List snapshots of the default keymap
  rkm backup list

  # Undo the last rewrite
  rkm backup restore latest

  See Also:
    rkm backup create  - Snapshot a keymap now
    rkm backup restore - Restore a snapshot`,
}
