package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/rkm/internal/paths"
	"github.com/thoreinstein/rkm/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// idLayout formats snapshot IDs. It contains no colons so IDs are valid
// directory names everywhere.
const idLayout = "20060102T150405"

// Manager handles snapshot creation, restoration, and pruning.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of snapshots to retain per keymap.
// Zero or negative values keep the default.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// withClock overrides time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup snapshots the keymap at source and prunes snapshots beyond the
// retention count. A missing source returns an error wrapping
// fs.ErrNotExist.
func (m *Manager) Backup(source, reason string) (*Manifest, error) {
	abs, err := absSource(source)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", source)
	}
	if info.IsDir() {
		return nil, errors.Newf("%s is a directory", source)
	}

	created := m.now().UTC()
	id, dir, err := m.reserveID(abs, created)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(abs)
	hash, size, mode, err := copyFile(abs, filepath.Join(dir, name))
	if err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrapf(err, "copying %s", source)
	}

	manifest := &Manifest{
		Version:    ManifestVersion,
		CreatedAt:  created,
		Source:     abs,
		File:       File{Name: name, SHA256Hash: hash, Size: size, Mode: mode},
		Reason:     reason,
		RKMVersion: Version,
		ID:         id,
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(abs, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}

	return manifest, nil
}

// reserveID creates a fresh snapshot directory. Snapshots taken within the
// same second get a numeric suffix.
func (m *Manager) reserveID(source string, at time.Time) (id, dir string, err error) {
	parent := m.sourceDir(source)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}

	base := at.Format(idLayout)
	for n := 1; ; n++ {
		id = base
		if n > 1 {
			id = base + "-" + strconv.Itoa(n)
		}
		dir = filepath.Join(parent, id)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating snapshot directory")
		}
	}
}

// Restore writes snapshot id back over source. The current file, when one
// exists, is snapshotted first so the restore can itself be undone.
func (m *Manager) Restore(source, id string) (*Manifest, error) {
	manifest, err := m.Get(source, id)
	if err != nil {
		return nil, err
	}

	stored := filepath.Join(m.sourceDir(manifest.Source), manifest.ID, manifest.File.Name)
	data, err := os.ReadFile(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", id)
	}
	if hashBytes(data) != manifest.File.SHA256Hash {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s hash mismatch", id)
	}

	if _, err := os.Stat(manifest.Source); err == nil {
		if _, err := m.Backup(manifest.Source, "restore "+id); err != nil {
			return nil, errors.Wrap(err, "backing up current keymap")
		}
	}

	if err := os.MkdirAll(filepath.Dir(manifest.Source), 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating directory for %s", manifest.Source)
	}
	if err := fileutil.AtomicWriteFile(manifest.Source, data, manifest.File.Mode.Perm()); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", manifest.Source)
	}

	return manifest, nil
}

// List returns the snapshots of source, newest first.
func (m *Manager) List(source string) ([]Manifest, error) {
	abs, err := absSource(source)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.sourceDir(abs))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(abs, entry.Name())
		if err != nil {
			// Skip directories without a readable manifest
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(b.ID, a.ID)
	})

	return manifests, nil
}

// Prune removes snapshots of source beyond the newest keep.
func (m *Manager) Prune(source string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(source)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		dir := filepath.Join(m.sourceDir(manifests[i].Source), manifests[i].ID)
		if err := os.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}

	return nil
}

// Get returns the manifest for a specific snapshot.
func (m *Manager) Get(source, id string) (*Manifest, error) {
	if id == "" {
		return nil, errors.New("backup ID is required")
	}
	abs, err := absSource(source)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(m.sourceDir(abs), id, manifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = id
	return &manifest, nil
}

// sourceDir returns the directory holding every snapshot of source.
func (m *Manager) sourceDir(source string) string {
	return filepath.Join(m.rootDir, sourceKey(source))
}

func absSource(source string) (string, error) {
	if source == "" {
		return "", ErrSourceRequired
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", source)
	}
	return abs, nil
}

// compareIDs orders IDs by timestamp and then by numeric suffix.
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// copyFile copies src to dst, returning the SHA256 hash, size and mode.
func copyFile(src, dst string) (hash string, size int64, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode().Perm()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	size, err = io.Copy(io.MultiWriter(dstFile, h), srcFile)
	if err != nil {
		dstFile.Close()
		return "", 0, 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, 0, errors.Wrap(err, "closing destination file")
	}

	return hex.EncodeToString(h.Sum(nil)), size, mode, nil
}
