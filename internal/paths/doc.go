// Package paths resolves the directories rkm reads and writes.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for rkm's own files:
//
//	paths.ConfigDir() // <ConfigHome>/rkm/         config.yaml
//	paths.BackupDir() // <DataHome>/rkm/backups/   keymap snapshots
//
// # Host Resource Directory
//
// Keymaps live in the host application's resource folder, which differs
// per operating system:
//
//	| OS      | Resource directory                     |
//	|---------|----------------------------------------|
//	| macOS   | ~/Library/Application Support/REAPER   |
//	| Windows | %APPDATA%\REAPER                       |
//	| other   | ~/.config/REAPER                       |
//
// [DefaultKeymapPath] joins KeyMaps/rkm.ReaperKeyMap onto it. The
// resource_dir config key overrides the detected directory.
package paths
