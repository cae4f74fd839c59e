package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "rkm"

// HostName is the directory name of the host application's resource folder.
const HostName = "REAPER"

// KeyMapsDirName is the resource subdirectory holding exported keymaps.
const KeyMapsDirName = "KeyMaps"

// KeymapExt is the file extension of keymap files.
const KeymapExt = ".ReaperKeyMap"

// DefaultKeymapName is the file name used when no keymap is configured.
const DefaultKeymapName = AppName + KeymapExt

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns the directory searched for rkm's config.yaml.
// Returns: <ConfigHome>/rkm/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns the directory holding keymap snapshots.
// Returns: <DataHome>/rkm/backups/
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// ResourceDir returns the host's resource directory for the running OS.
func ResourceDir() string {
	return resourceDir(runtime.GOOS, Home(), os.Getenv("APPDATA"))
}

// resourceDir resolves the resource directory for goos.
//
//	darwin:  ~/Library/Application Support/REAPER
//	windows: %APPDATA%\REAPER (falls back to ~/AppData/Roaming)
//	other:   ~/.config/REAPER
func resourceDir(goos, home, appData string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", HostName)
	case "windows":
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, HostName)
	default:
		return filepath.Join(home, ".config", HostName)
	}
}

// KeyMapsDir returns the KeyMaps folder under resource. An empty resource
// selects ResourceDir.
func KeyMapsDir(resource string) string {
	if resource == "" {
		resource = ResourceDir()
	}
	return filepath.Join(resource, KeyMapsDirName)
}

// DefaultKeymapPath returns the keymap used when none is configured.
// Returns: <resource>/KeyMaps/rkm.ReaperKeyMap
func DefaultKeymapPath(resource string) string {
	return filepath.Join(KeyMapsDir(resource), DefaultKeymapName)
}

// ExpandHome replaces a leading "~" in path with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", ErrInvalidPath
	}
	if path != "~" && !hasHomePrefix(path) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}

// ListKeymaps returns the keymap files in dir, sorted by name.
func ListKeymaps(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+KeymapExt))
	if err != nil {
		return nil, errors.Wrapf(err, "listing keymaps in %s", dir)
	}
	return matches, nil
}
