package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// manifestName is the metadata file stored beside each snapshot.
const manifestName = "manifest.json"

// DefaultRetentionCount is the default number of snapshots kept per keymap.
const DefaultRetentionCount = 10

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no snapshots exist for the keymap.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates the stored snapshot no longer matches the
	// SHA256 hash recorded in its manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrSourceRequired indicates an empty keymap path was given.
	ErrSourceRequired = errors.New("keymap path is required")
)

// Manifest describes one snapshot of a keymap file. It is stored as
// manifest.json in the snapshot directory.
type Manifest struct {
	// Version is the manifest format version.
	Version int `json:"version"`

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`

	// Source is the absolute path of the keymap that was copied.
	Source string `json:"source"`

	// File records the stored copy.
	File File `json:"file"`

	// Reason says which operation triggered the snapshot, e.g. "fmt".
	Reason string `json:"reason,omitempty"`

	// RKMVersion is the version of rkm that created the snapshot.
	RKMVersion string `json:"rkm_version"`

	// ID is the snapshot identifier (timestamp format: 20260123T100712).
	// It is the directory name and is not stored in JSON.
	ID string `json:"-"`
}

// File contains metadata for the stored copy of the keymap.
type File struct {
	// Name is the file name inside the snapshot directory.
	Name string `json:"name"`

	// SHA256Hash is the hex-encoded SHA256 hash of the file contents.
	SHA256Hash string `json:"sha256_hash"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Mode is the file's permission bits.
	Mode fs.FileMode `json:"mode"`
}
