// Package config provides configuration management for rkm using Viper.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/internal/export"
	"github.com/thoreinstein/rkm/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix prefixes environment overrides, e.g. RKM_KEYMAP.
const EnvPrefix = "RKM"

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// DefaultBackupRetention is the number of snapshots kept per keymap.
const DefaultBackupRetention = 10

// Config represents the top-level configuration structure.
type Config struct {
	Version         int    `mapstructure:"version" yaml:"version"`
	Keymap          string `mapstructure:"keymap" yaml:"keymap,omitempty"`
	ResourceDir     string `mapstructure:"resource_dir" yaml:"resource_dir,omitempty"`
	ExportFormat    string `mapstructure:"export_format" yaml:"export_format"`
	Strict          bool   `mapstructure:"strict" yaml:"strict"`
	BackupRetention int    `mapstructure:"backup_retention" yaml:"backup_retention"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:         1,
		ExportFormat:    string(export.FormatJSON),
		BackupRetention: DefaultBackupRetention,
	}
}

// Dir returns the directory searched for config.yaml after the working
// directory: $RKM_CONFIG_DIR when set, otherwise <ConfigHome>/rkm.
func Dir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return paths.ConfigDir()
}

// Init initializes Viper with default configuration.
// It resets any previous Viper state, so calling it again starts clean.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(Dir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("keymap", "")
	viper.SetDefault("resource_dir", "")
	viper.SetDefault("export_format", d.ExportFormat)
	viper.SetDefault("strict", d.Strict)
	viper.SetDefault("backup_retention", d.BackupRetention)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists. The result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load with no file: defaults apply
		case errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(joinErrors(errs), errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// ResolveResourceDir returns the configured resource directory with "~"
// expanded, or the detected one when unset.
func (c *Config) ResolveResourceDir() (string, error) {
	if c == nil || c.ResourceDir == "" {
		return paths.ResourceDir(), nil
	}
	return paths.ExpandHome(c.ResourceDir)
}

// ResolveKeymap returns the keymap file commands operate on by default.
func (c *Config) ResolveKeymap() (string, error) {
	if c != nil && c.Keymap != "" {
		return paths.ExpandHome(c.Keymap)
	}
	res, err := c.ResolveResourceDir()
	if err != nil {
		return "", err
	}
	return paths.DefaultKeymapPath(res), nil
}
