package backup

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
)

// backupOnce tracks per-keymap snapshot state within a session so several
// rewrites of one file produce a single snapshot of the original.
var (
	backupOnce  = make(map[string]*sync.Once)
	backupMutex sync.Mutex
)

// EnsureBackedUp snapshots source once per session before it is modified.
//
// Returns nil if:
//   - A snapshot was just created successfully
//   - A snapshot was already created in this session (no-op)
//   - source does not exist yet (nothing to back up)
//
// A failed snapshot is not remembered, so the next call retries.
func EnsureBackedUp(m *Manager, source, reason string) error {
	abs, err := absSource(source)
	if err != nil {
		return err
	}

	backupMutex.Lock()
	once, exists := backupOnce[abs]
	if !exists {
		once = &sync.Once{}
		backupOnce[abs] = once
	}
	backupMutex.Unlock()

	var backupErr error
	once.Do(func() {
		_, backupErr = m.Backup(abs, reason)
		if backupErr != nil {
			backupMutex.Lock()
			delete(backupOnce, abs)
			backupMutex.Unlock()
		}
	})

	if isNotExist(backupErr) {
		return nil
	}
	return errors.Wrapf(backupErr, "creating backup for %s", filepath.Base(abs))
}

// ResetBackupState clears the session state for all keymaps.
func ResetBackupState() {
	backupMutex.Lock()
	defer backupMutex.Unlock()
	backupOnce = make(map[string]*sync.Once)
}

func isNotExist(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}
