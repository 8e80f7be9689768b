package workspace

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to individual files. It watches the parent
// directory so replacements by rename, as done by atomic saves, are seen.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	errors chan error

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]int
	done  chan struct{}
}

// NewWatcher starts a watcher.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}

	w := &Watcher{
		fs:     fsw,
		events: make(chan string, 16),
		errors: make(chan error, 1),
		files:  make(map[string]struct{}),
		dirs:   make(map[string]int),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add starts reporting changes to path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; ok {
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}
	return nil
}

// Remove stops reporting changes to path.
func (w *Watcher) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; !ok {
		return
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fs.Remove(dir)
	}
}

// Events delivers the absolute paths of changed files.
func (w *Watcher) Events() <-chan string { return w.events }

// Errors delivers watcher failures.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.events)

	const interesting = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&interesting == 0 {
				continue
			}
			name := filepath.Clean(ev.Name)
			w.mu.Lock()
			_, watched := w.files[name]
			w.mu.Unlock()
			if !watched {
				continue
			}
			// Drop the event when the buffer is full.
			select {
			case w.events <- name:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}
