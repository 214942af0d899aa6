package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/adapters/watcher"
	"go.trai.ch/cagesync/internal/core/ports"
)

func TestWatcher_ReportsOnlyTargets(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "retopo.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o600))

	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, []string{target}))

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(target, []byte("v2"), 0o600))

	got := make(chan ports.WatchEvent, 1)
	go func() {
		for ev := range w.Events() {
			got <- ev
			return
		}
	}()

	select {
	case ev := <-got:
		resolved, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		assert.Contains(t, []string{target, filepath.Join(resolved, "retopo.yaml")}, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the watched file")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	err = w.Start(context.Background(), []string{filepath.Join(t.TempDir(), "missing", "retopo.yaml")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to watch directory")
}
