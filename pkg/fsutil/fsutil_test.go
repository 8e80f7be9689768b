package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/mdedit/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "# Title\n")

	t.Run("reads content and snapshot", func(t *testing.T) {
		t.Parallel()

		content, snap, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(content) != "# Title\n" {
			t.Errorf("content = %q", content)
		}
		if snap.Size != int64(len(content)) || snap.Path != path {
			t.Errorf("snapshot = %+v", snap)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, filepath.Join(dir, "nope.md"), 0)
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("ReadFile() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, dir, 0)
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("ReadFile() error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("over the size limit", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, path, 4)
		if !errors.Is(err, fsutil.ErrTooLarge) {
			t.Errorf("ReadFile() error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.ReadFile(cancelled, path, 0)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("ReadFile() error = %v, want context.Canceled", err)
		}
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "same")
		_, snap, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		changed, err := fsutil.Changed(ctx, snap)
		if err != nil || changed {
			t.Errorf("Changed() = %v, %v; want false, nil", changed, err)
		}
	})

	t.Run("rewritten", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "before")
		_, snap, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		writeFile(t, path, "after!!")
		changed, err := fsutil.Changed(ctx, snap)
		if err != nil || !changed {
			t.Errorf("Changed() = %v, %v; want true, nil", changed, err)
		}
	})

	t.Run("same size and time but new content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "aaaa")
		_, snap, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		writeFile(t, path, "bbbb")
		if err := os.Chtimes(path, time.Now(), snap.ModTime); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}

		changed, err := fsutil.Changed(ctx, snap)
		if err != nil || !changed {
			t.Errorf("Changed() = %v, %v; want true, nil", changed, err)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "x")
		_, snap, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("Remove: %v", err)
		}

		changed, err := fsutil.Changed(ctx, snap)
		if err != nil || !changed {
			t.Errorf("Changed() = %v, %v; want true, nil", changed, err)
		}
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.Changed(ctx, nil); !errors.Is(err, fsutil.ErrNilSnapshot) {
			t.Errorf("Changed(nil) error = %v", err)
		}
	})
}
