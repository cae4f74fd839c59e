// Package config provides configuration management for the rkm CLI.
//
// # Configuration File
//
// config.yaml is searched in the working directory, then in
// $RKM_CONFIG_DIR or <ConfigHome>/rkm. Every key can be overridden by an
// RKM_-prefixed environment variable (RKM_KEYMAP, RKM_STRICT, ...):
//
//	version: 1
//	keymap: ~/keys/main.ReaperKeyMap  # optional, defaults to the resource dir
//	resource_dir: ~/REAPER            # optional, detected per OS
//	export_format: yaml               # json, yaml or toml
//	strict: true                      # rkm check fails on skipped lines
//	backup_retention: 10              # snapshots kept per keymap
//
// # Loading Configuration
//
// Call [Init] once, then [Load] with an empty path to search the default
// locations, or with an explicit file:
//
//	config.Init()
//	cfg, err := config.Load("")
//
// All loaded configurations are validated; failures match
// errors.ErrInvalidConfig.
package config
