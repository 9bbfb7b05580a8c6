package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return Event{}
	}
}

// waitFor drains events until one satisfies ok. Writes can surface a
// truncated file first, so intermediate events are skipped.
func waitFor(t *testing.T, w *Watcher, ok func(Event) bool) Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ok(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for watcher event")
			return Event{}
		}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlItems), 0o644))

	w, err := NewWatcher(path,
		WithDebounceDuration(20*time.Millisecond),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	ev := nextEvent(t, w)
	require.NoError(t, ev.State.Err)
	require.Len(t, ev.Tree, 1)
	assert.Equal(t, w.Path(), ev.Path)

	require.NoError(t, os.WriteFile(path, []byte(yamlList), 0o644))
	ev = waitFor(t, w, func(ev Event) bool { return len(ev.Tree) == 2 })
	assert.NoError(t, ev.State.Err)
	assert.Equal(t, "help", ev.Tree[1].Code)
}

func TestWatcherKeepsTreeOnParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonItems), 0o644))

	w, err := NewWatcher(path, WithDebounceDuration(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	first := nextEvent(t, w)
	require.NoError(t, first.State.Err)

	// Replace atomically so no truncated, still valid, file is ever seen.
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(`{"items": [`), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	ev := waitFor(t, w, func(ev Event) bool { return ev.State.Err != nil })
	assert.Len(t, ev.Tree, 1)
	assert.Equal(t, "settings", ev.Tree[0].Code)
}

func TestWatcherStartTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlItems), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.ErrorIs(t, w.Start(), ErrAlreadyStarted)

	w.Stop()
	w.Stop()
}

func TestWatcherReloadMissingFile(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "menu.yaml"))
	require.NoError(t, err)

	require.Error(t, w.Reload())
	ev := nextEvent(t, w)
	assert.Error(t, ev.State.Err)
	assert.Empty(t, ev.Tree)
}
