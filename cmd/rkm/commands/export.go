package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/export"
	"github.com/thoreinstein/rkm/internal/logging"
)

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "json, yaml or toml (default: from -o extension, then config export_format)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Convert a keymap to JSON, YAML or TOML",
	Long: `Convert a keymap to a structured document that can be edited with any
tool and converted back with 'rkm import'.

Unparseable lines are not exported.`,
	Example: `  rkm export > keys.json
  rkm export --format yaml shared.ReaperKeyMap
  rkm export -o keys.toml

  See Also:
    rkm import - Convert a document back to a keymap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	path, err := keymapPath(args, 0)
	if err != nil {
		return err
	}
	return runExportWithWriter(cmd.Context(), cmd.OutOrStdout(), path)
}

// resolveExportFormat picks the explicit format, then the output file's
// extension, then the configured default.
func resolveExportFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		f, err := export.ParseFormat(flag)
		if err != nil {
			return "", errors.NewUserError(err, "Use --format json, yaml or toml")
		}
		return f, nil
	}
	if output != "" {
		if f, ok := export.FormatFromPath(output); ok {
			return f, nil
		}
	}
	f, err := export.ParseFormat(currentConfig().ExportFormat)
	if err != nil {
		return "", errors.NewConfigError(err)
	}
	return f, nil
}

func runExportWithWriter(ctx context.Context, w io.Writer, path string) error {
	format, err := resolveExportFormat(exportFormat, exportOutput)
	if err != nil {
		return err
	}

	list, report, err := loadKeymap(ctx, path)
	if err != nil {
		return err
	}
	if report.HasSkipped() {
		logging.FromContext(ctx).Warn("unparseable lines not exported", "count", len(report.Skipped))
	}

	if exportOutput != "" {
		if err := export.WriteFile(exportOutput, list, format); err != nil {
			return errors.Wrapf(err, "writing %s", exportOutput)
		}
		fmt.Fprintf(w, "%s Exported %d entries to %s (%s)\n", styleOK.Sprint("✓"), len(list), exportOutput, format)
		return nil
	}

	data, err := export.Encode(list, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}
