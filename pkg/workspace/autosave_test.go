package workspace_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdedit/pkg/workspace"
)

type recorder struct {
	mu    sync.Mutex
	saved []string
	err   error
}

func (r *recorder) save(_ context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, content)
	return r.err
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.saved...)
}

func TestAutoSaverDebounces(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	saver := workspace.NewAutoSaver(20*time.Millisecond, rec.save, nil)
	defer saver.Stop()

	saver.Changed("a")
	saver.Changed("ab")
	saver.Changed("abc")

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"abc"}, rec.snapshot())
	assert.False(t, saver.Pending())
}

func TestAutoSaverSkipsBlank(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	saver := workspace.NewAutoSaver(time.Hour, rec.save, nil)

	saver.Changed("text")
	saver.Changed("  \n")
	assert.False(t, saver.Pending())

	require.NoError(t, saver.Flush(context.Background()))
	assert.Empty(t, rec.snapshot())
}

func TestAutoSaverFlushAndStop(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	saver := workspace.NewAutoSaver(time.Hour, rec.save, nil)

	saver.Changed("draft")
	require.True(t, saver.Pending())
	require.NoError(t, saver.Flush(context.Background()))
	assert.Equal(t, []string{"draft"}, rec.snapshot())

	saver.Stop()
	saver.Changed("ignored")
	assert.False(t, saver.Pending())
}

func TestAutoSaverReportsErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	rec := &recorder{err: boom}
	errs := make(chan error, 1)
	saver := workspace.NewAutoSaver(time.Millisecond, rec.save, func(err error) { errs <- err })
	defer saver.Stop()

	saver.Changed("x")

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("no error reported")
	}
}
