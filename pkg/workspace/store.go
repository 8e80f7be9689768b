package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yaklabco/mdedit/pkg/fsutil"
)

// ErrModifiedExternally is returned when saving over a file that changed on
// disk after it was read.
var ErrModifiedExternally = errors.New("file changed on disk since it was opened")

// StoreOptions controls a Store.
type StoreOptions struct {
	// Backups is applied before every save.
	Backups fsutil.BackupPolicy

	// MaxFileSize rejects larger files on read. Zero or negative disables the
	// limit.
	MaxFileSize int64

	// Force overwrites files even when they changed on disk.
	Force bool
}

// Store reads and writes documents on the local file system. It remembers
// what each file looked like when read so a save never silently discards
// someone else's change. A Store is safe for concurrent use.
type Store struct {
	opts StoreOptions

	mu        sync.Mutex
	snapshots map[string]*fsutil.Snapshot
}

// NewStore returns a Store with the given options.
func NewStore(opts StoreOptions) *Store {
	return &Store{
		opts:      opts,
		snapshots: make(map[string]*fsutil.Snapshot),
	}
}

// ReadFile reads path and remembers its state.
func (s *Store) ReadFile(ctx context.Context, path string) (string, error) {
	content, snap, err := fsutil.ReadFile(ctx, path, s.opts.MaxFileSize)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.snapshots[path] = snap
	s.mu.Unlock()

	return string(content), nil
}

// WriteFile saves content to path atomically. If path was read through the
// Store and has changed on disk since, it fails with ErrModifiedExternally
// unless the Store forces writes. A backup of the previous version is taken
// first when backups are enabled.
func (s *Store) WriteFile(ctx context.Context, path, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.snapshots[path]; ok && !s.opts.Force {
		changed, err := fsutil.Changed(ctx, snap)
		if err != nil {
			return err
		}
		if changed {
			return fmt.Errorf("%w: %s", ErrModifiedExternally, path)
		}
	}

	if _, err := fsutil.Backup(ctx, path, s.opts.Backups); err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, path, []byte(content), 0); err != nil {
		return err
	}

	_, snap, err := fsutil.ReadFile(ctx, path, 0)
	if err != nil {
		return err
	}
	s.snapshots[path] = snap
	return nil
}

// Changed reports whether path changed on disk since the Store last read or
// wrote it. Files the Store has not seen are reported unchanged.
func (s *Store) Changed(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	snap, ok := s.snapshots[path]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	return fsutil.Changed(ctx, snap)
}

// Forget drops what the Store knows about path.
func (s *Store) Forget(path string) {
	s.mu.Lock()
	delete(s.snapshots, path)
	s.mu.Unlock()
}
