package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupSidecar keeps the previous version next to the file.
	BackupSidecar BackupMode = "sidecar"

	// BackupNone disables backups.
	BackupNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".mdedit.bak"

// BackupPolicy controls backups taken before a save.
type BackupPolicy struct {
	Enabled bool
	Mode    BackupMode
}

func (p BackupPolicy) active() bool {
	return p.Enabled && p.Mode != BackupNone
}

// BackupPath returns the sidecar path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies the current on-disk version of path to its sidecar, replacing
// any older backup, so the backup always holds the version before the latest
// save. It reports whether a backup was written; a missing original is not an
// error.
func Backup(ctx context.Context, path string, policy BackupPolicy) (bool, error) {
	if !policy.active() {
		return false, nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s for backup: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s for backup: %w", path, err)
	}

	if err := WriteAtomic(ctx, BackupPath(path), content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// Restore puts the sidecar backup of path back in place. It reports false when
// there is no backup.
func Restore(ctx context.Context, path string) (bool, error) {
	content, err := os.ReadFile(BackupPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, 0); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return true, nil
}

// RemoveBackup deletes the sidecar backup of path, if any.
func RemoveBackup(path string) (bool, error) {
	err := os.Remove(BackupPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
