package commands

import (
	"context"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/thoreinstein/rkm/internal/backup"
	"github.com/thoreinstein/rkm/internal/cli/prompt"
	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/logging"
	"github.com/thoreinstein/rkm/internal/paths"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

// Output styles. fatih/color disables them when stdout is not a terminal.
var (
	styleHeader  = color.New(color.Bold)
	styleSection = color.New(color.FgCyan, color.Bold)
	styleID      = color.New(color.FgGreen)
	styleMuted   = color.New(color.FgHiBlack)
	styleOK      = color.New(color.FgGreen)
	styleWarn    = color.New(color.FgYellow)
)

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// selectKeymap chooses between several keymaps in the resource directory.
// Tests replace it.
var selectKeymap = func(dir string, candidates []string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.NewUserError(
			errors.Newf("%d keymaps in %s and none configured", len(candidates), dir),
			"Pass a FILE argument or set `keymap` in config.yaml",
		)
	}
	return prompt.NewSelector().SelectKeymap(dir, candidates)
}

// keymapPath resolves the keymap a command operates on: args[i] when given,
// then the configured keymap, then the default file in REAPER's resource
// directory. When the default file is missing but the KeyMaps directory holds
// other keymaps, the user picks one.
func keymapPath(args []string, i int) (string, error) {
	if len(args) > i && args[i] != "" {
		return paths.ExpandHome(args[i])
	}

	cfg := currentConfig()
	if cfg.Keymap != "" {
		return cfg.ResolveKeymap()
	}

	res, err := cfg.ResolveResourceDir()
	if err != nil {
		return "", err
	}
	def := paths.DefaultKeymapPath(res)
	if _, err := os.Stat(def); err == nil {
		return def, nil
	}

	dir := paths.KeyMapsDir(res)
	candidates, err := paths.ListKeymaps(dir)
	if err != nil || len(candidates) == 0 {
		return def, nil
	}
	return selectKeymap(dir, candidates)
}

// loadKeymap reads path, mapping a missing file to a user error.
func loadKeymap(ctx context.Context, path string) (keymap.List, *keymap.Report, error) {
	logger := logging.FromContext(ctx)

	list, report, err := keymap.LoadFile(path, keymap.WithLogger(logger))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, errors.NewKeymapNotFoundError(path)
		}
		return nil, nil, err
	}

	logger.Debug("loaded keymap",
		"path", path,
		"lines", report.Lines,
		"entries", len(list),
		"skipped", len(report.Skipped))
	return list, report, nil
}

// parseSection resolves a --section flag value; empty means all sections.
func parseSection(name string) (*keymap.Section, error) {
	if name == "" {
		return nil, nil
	}
	s, ok := keymap.SectionFromName(name)
	if !ok {
		names := make([]string, 0, len(keymap.Sections()))
		for _, sec := range keymap.Sections() {
			names = append(names, sec.String())
		}
		return nil, errors.NewUserError(
			errors.Newf("unknown section %q", name),
			"Valid sections: "+strings.Join(names, ", ")+" (or run 'rkm sections')",
		)
	}
	return &s, nil
}

// backupRoot overrides the snapshot directory; empty uses paths.BackupDir.
var backupRoot string

// backupManager returns a backup manager honoring backup_retention.
func backupManager() *backup.Manager {
	opts := []backup.Option{backup.WithRetentionCount(currentConfig().BackupRetention)}
	if backupRoot != "" {
		opts = append(opts, backup.WithBackupDir(backupRoot))
	}
	return backup.NewManager(opts...)
}

// saveKeymap snapshots an existing file at path once per run, then writes
// list to it atomically. backup_retention 0 turns snapshots off.
func saveKeymap(ctx context.Context, path string, list keymap.List, reason string) error {
	if currentConfig().BackupRetention > 0 {
		if err := backup.EnsureBackedUp(backupManager(), path, reason); err != nil {
			return errors.Wrap(err, "backing up keymap before write")
		}
	}
	if err := keymap.SaveFile(path, list); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("wrote keymap", "path", path, "entries", len(list))
	return nil
}

func isNotExist(err error) bool {
	return err != nil && errors.Is(err, os.ErrNotExist)
}
