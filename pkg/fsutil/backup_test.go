package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdedit/pkg/fsutil"
)

func TestBackupRestore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	policy := fsutil.BackupPolicy{Enabled: true, Mode: fsutil.BackupSidecar}
	path := filepath.Join(t.TempDir(), "notes.md")

	created, err := fsutil.Backup(ctx, path, policy)
	if err != nil || created {
		t.Fatalf("Backup() of missing file = %v, %v; want false, nil", created, err)
	}

	writeFile(t, path, "v1")
	created, err = fsutil.Backup(ctx, path, policy)
	if err != nil || !created {
		t.Fatalf("Backup() = %v, %v; want true, nil", created, err)
	}

	writeFile(t, path, "v2")
	if _, err := fsutil.Backup(ctx, path, policy); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	got, _ := os.ReadFile(fsutil.BackupPath(path))
	if string(got) != "v2" {
		t.Errorf("backup = %q, want the version before the latest save", got)
	}

	writeFile(t, path, "broken")
	restored, err := fsutil.Restore(ctx, path)
	if err != nil || !restored {
		t.Fatalf("Restore() = %v, %v", restored, err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != "v2" {
		t.Errorf("restored = %q, want v2", got)
	}

	removed, err := fsutil.RemoveBackup(path)
	if err != nil || !removed {
		t.Errorf("RemoveBackup() = %v, %v", removed, err)
	}
	if fsutil.Exists(fsutil.BackupPath(path)) {
		t.Error("backup still exists")
	}
}

func TestBackupDisabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.md")
	writeFile(t, path, "v1")

	for _, policy := range []fsutil.BackupPolicy{
		{Enabled: false, Mode: fsutil.BackupSidecar},
		{Enabled: true, Mode: fsutil.BackupNone},
	} {
		created, err := fsutil.Backup(ctx, path, policy)
		if err != nil || created {
			t.Errorf("Backup(%+v) = %v, %v; want false, nil", policy, created, err)
		}
	}

	restored, err := fsutil.Restore(ctx, path)
	if err != nil || restored {
		t.Errorf("Restore() without backup = %v, %v", restored, err)
	}
}
