// Package commands implements the CLI commands for rkm.
package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rkm/cmd"
	"github.com/thoreinstein/rkm/internal/config"
	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/logging"
)

// configFile holds the value of the --config flag.
var configFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// closeLog releases the --log-file handle opened by setupLogging.
var closeLog = func() error { return nil }

// loadedConfig is the configuration read by initConfig.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/rkm/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("rkm version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFile)
}

// currentConfig returns the loaded configuration, or defaults when none was
// loaded (tests, help).
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

var rootCmd = &cobra.Command{
	Use:   "rkm",
	Short: "Inspect and rewrite REAPER keymap files",
	Long: `rkm reads, checks and rewrites REAPER keymap files (.ReaperKeyMap and
reaper-kb.ini).

It lists key bindings, ReaScript registrations and custom actions, looks up
what a key combination does, reports lines REAPER would ignore, and converts
keymaps to and from JSON, YAML and TOML.

Commands that take a FILE argument fall back to the "keymap" setting in
config.yaml, then to the keymap in REAPER's resource directory.`,
	Example: `  # List key bindings in the MIDI editor
  rkm list --kind key --section "MIDI Editor"

  # What does Cmd+Shift+M do?
  rkm lookup Cmd+Shift+M

  # Report unparseable lines and conflicts
  rkm check ~/Downloads/shared.ReaperKeyMap

  # Convert to YAML and back
  rkm export --format yaml -o keys.yaml
  rkm import keys.yaml -o edited.ReaperKeyMap

  See Also: rkm check, rkm backup`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		// CLI flags take precedence over RKM_DEBUG
		if v == 0 {
			v = logging.VerbosityFromEnv()
		}
		level = logging.LevelFromVerbosity(v)
	}

	logger, closeFn, err := logging.Setup(logging.Options{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
		File:   logFile,
	})
	if err != nil {
		return errors.NewUserError(err, "Check that --log-file points to a writable location")
	}
	_ = closeLog()
	closeLog = closeFn
	logging.ApplyColor(cmd.OutOrStdout())

	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces a config load failure for every command except help
// and version.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = closeLog() }()
	return rootCmd.Execute()
}
