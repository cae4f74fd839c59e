// Package backup keeps snapshots of keymap files so rewrites done by
// `rkm fmt --write` and `rkm import` can be undone.
//
// Snapshots live under the XDG data directory:
//
//	<DataHome>/rkm/backups/
//	└── {file name}-{path hash}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {file name}
//
// Every snapshot records the SHA256 of the stored copy; [Manager.Restore]
// refuses a copy whose hash no longer matches ([ErrBackupCorrupted]) and
// snapshots the current file before overwriting it.
//
//	mgr := backup.NewManager(backup.WithRetentionCount(cfg.BackupRetention))
//	manifest, err := mgr.Backup(path, "fmt")
//	...
//	_, err = mgr.Restore(path, manifest.ID)
//
// [Manager.Backup] prunes snapshots beyond the retention count (default 10).
// [EnsureBackedUp] takes at most one snapshot per file per process.
package backup
