package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/backup"
	"github.com/thoreinstein/rkm/internal/errors"
)

var backupListJSON bool

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output in JSON format")
	backupCmd.AddCommand(backupListCmd)
}

var backupListCmd = &cobra.Command{
	Use:   "list [FILE]",
	Short: "List snapshots of a keymap",
	Long:  `List the snapshots of a keymap, most recent first.`,
	Example: `  rkm backup list
  rkm backup list --json shared.ReaperKeyMap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupList,
}

// backupInfoOutput represents a single backup in JSON output.
type backupInfoOutput struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Reason     string    `json:"reason,omitempty"`
	Size       int64     `json:"size"`
	SHA256     string    `json:"sha256"`
	RKMVersion string    `json:"rkm_version"`
}

// backupListOutput represents the JSON output for backup list.
type backupListOutput struct {
	Source  string             `json:"source"`
	Backups []backupInfoOutput `json:"backups"`
}

func runBackupList(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 0)
	if err != nil {
		return err
	}
	return runBackupListWithWriter(cmd.OutOrStdout(), backupManager(), path)
}

func runBackupListWithWriter(w io.Writer, mgr *backup.Manager, path string) error {
	manifests, err := mgr.List(path)
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrapf(err, "listing backups for %s", path)
	}

	if backupListJSON {
		out := backupListOutput{Source: path, Backups: make([]backupInfoOutput, len(manifests))}
		for i, m := range manifests {
			out.Backups[i] = backupInfoOutput{
				ID:         m.ID,
				CreatedAt:  m.CreatedAt,
				Reason:     m.Reason,
				Size:       m.File.Size,
				SHA256:     m.File.SHA256Hash,
				RKMVersion: m.RKMVersion,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%s\n", styleSection.Sprintf("Keymap: %s", path))
	if len(manifests) == 0 {
		fmt.Fprintf(w, "  %s\n", styleMuted.Sprint("(no backups available)"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before rkm rewrites a keymap.")
		fmt.Fprintln(w, "You can also create one manually with: rkm backup create")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
		styleHeader.Sprint("ID"),
		styleHeader.Sprint("CREATED"),
		styleHeader.Sprint("SIZE"),
		styleHeader.Sprint("REASON"),
		styleHeader.Sprint("VERSION"))
	for _, m := range manifests {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\t%s\n",
			styleID.Sprint(m.ID),
			m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			m.File.Size,
			m.Reason,
			m.RKMVersion)
	}
	return errors.Wrap(tw.Flush(), "writing table")
}
