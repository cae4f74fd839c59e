package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/rkm/cmd"
	"github.com/thoreinstein/rkm/internal/errors"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown or man page documentation for the CLI",
	Hidden: true,
	RunE: func(c *cobra.Command, _ []string) error {
		return runGenDoc(c.OutOrStdout(), genDocDir, genDocFormat)
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "Output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "markdown or man")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(w io.Writer, outputDir, format string) error {
	if outputDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	switch format {
	case "markdown", "md":
		if err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler); err != nil {
			return errors.Wrap(err, "generating markdown")
		}
	case "man":
		header := &doc.GenManHeader{Title: "RKM", Section: "1", Source: "rkm " + cmd.Version}
		if err := doc.GenManTree(rootCmd, header, outputDir); err != nil {
			return errors.Wrap(err, "generating man pages")
		}
	default:
		return errors.NewUserError(errors.Newf("unknown doc format %q", format), "Use --format markdown or --format man")
	}

	fmt.Fprintf(w, "Documentation generated in %s\n", outputDir)
	return nil
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// rkm_backup_restore.md -> rkm backup restore
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s command"
draft: false
toc: true
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
