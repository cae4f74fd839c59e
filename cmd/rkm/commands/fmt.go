package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/logging"
	"github.com/thoreinstein/rkm/pkg/fileutil"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

var (
	fmtWrite       bool
	fmtOutput      string
	fmtCheck       bool
	fmtDropInvalid bool
)

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite FILE in place (a backup is taken first)")
	fmtCmd.Flags().StringVarP(&fmtOutput, "output", "o", "", "write the formatted keymap to this file")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "exit 1 if FILE is not already formatted; write nothing")
	fmtCmd.Flags().BoolVar(&fmtDropInvalid, "drop-invalid", false, "allow writing when unparseable lines would be lost")
	fmtCmd.MarkFlagsMutuallyExclusive("write", "output", "check")
	rootCmd.AddCommand(fmtCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [FILE]",
	Short: "Rewrite a keymap in canonical form",
	Long: `Print a keymap the way rkm writes it: one entry per line, fields quoted
only where needed, and a structured comment on every KEY line.

Lines that do not parse cannot be written back. Writing to a file refuses
to drop them unless --drop-invalid is given.`,
	Example: `  # Preview
  rkm fmt shared.ReaperKeyMap

  # Rewrite in place
  rkm fmt -w shared.ReaperKeyMap

  # CI: is the file formatted?
  rkm fmt --check shared.ReaperKeyMap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 0)
	if err != nil {
		return err
	}
	return runFmtWithWriter(cmd.Context(), cmd.OutOrStdout(), path)
}

func runFmtWithWriter(ctx context.Context, w io.Writer, path string) error {
	logger := logging.FromContext(ctx)

	list, report, err := loadKeymap(ctx, path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := keymap.Save(&buf, list); err != nil {
		return err
	}

	if fmtCheck {
		original, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		if !bytes.Equal(original, buf.Bytes()) {
			return errors.NewExitError(errors.Newf("%s is not formatted", path), errors.ExitUser)
		}
		fmt.Fprintf(w, "%s %s\n", styleOK.Sprint("✓"), path)
		return nil
	}

	target := fmtOutput
	if fmtWrite {
		target = path
	}

	if target == "" {
		if report.HasSkipped() {
			logger.Warn("unparseable lines omitted from output", "count", len(report.Skipped))
		}
		_, err := w.Write(buf.Bytes())
		return errors.Wrap(err, "writing output")
	}

	if report.HasSkipped() && !fmtDropInvalid {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrSkippedLines, "%d lines of %s would be lost", len(report.Skipped), path),
			"Run 'rkm check' to see them, or pass --drop-invalid",
		)
	}

	if err := saveKeymap(ctx, target, list, "fmt"); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Wrote %d entries to %s\n", styleOK.Sprint("✓"), len(list), target)
	return nil
}
