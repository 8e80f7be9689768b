package workspace

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultAutoSaveDelay is how long the content must stay unchanged before an
// automatic save.
const DefaultAutoSaveDelay = time.Second

// SaveFunc persists content.
type SaveFunc func(ctx context.Context, content string) error

// AutoSaver saves content once it has stopped changing for a while. Blank
// content is never saved automatically, so an accidental select-all-delete
// does not wipe the file.
type AutoSaver struct {
	delay   time.Duration
	save    SaveFunc
	onError func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending *string
	stopped bool
}

// NewAutoSaver returns an AutoSaver calling save after delay. onError, if not
// nil, receives failures from background saves.
//
// save runs on a timer goroutine. Callers whose state belongs to another
// goroutine should only signal from it.
func NewAutoSaver(delay time.Duration, save SaveFunc, onError func(error)) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	return &AutoSaver{delay: delay, save: save, onError: onError}
}

// Changed records new content and restarts the delay.
func (a *AutoSaver) Changed(content string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if strings.TrimSpace(content) == "" {
		a.pending = nil
		return
	}

	a.pending = &content
	a.timer = time.AfterFunc(a.delay, a.fire)
}

func (a *AutoSaver) fire() {
	if err := a.Flush(context.Background()); err != nil && a.onError != nil {
		a.onError(err)
	}
}

// Flush saves pending content immediately.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	content := a.pending
	a.pending = nil
	a.mu.Unlock()

	if content == nil {
		return nil
	}
	return a.save(ctx, *content)
}

// Pending reports whether content is waiting to be saved.
func (a *AutoSaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Stop cancels any pending save. Later changes are ignored.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
