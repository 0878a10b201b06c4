package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	bl := filepath.Join(dir, "blacklist.txt")

	w, err := New([]string{bl}, func(context.Context) error { return nil }, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, w.relevant(fsnotify.Event{Name: bl, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: bl, Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: bl, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.txt"), Op: fsnotify.Write}))
}

func TestRunCallsOnChange(t *testing.T) {
	dir := t.TempDir()
	bl := filepath.Join(dir, "blacklist.txt")
	require.NoError(t, os.WriteFile(bl, []byte("A\n"), 0644))

	var calls atomic.Int32
	w, err := New([]string{bl}, func(context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(bl, []byte("A\nB\n"), 0644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
