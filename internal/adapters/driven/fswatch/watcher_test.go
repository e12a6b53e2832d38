package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSignal(t *testing.T, ch <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcher_CreateTriggersChange(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 10)

	stop, err := NewWatcher(20*time.Millisecond, nil).WatchDir(context.Background(), dir, func() {
		changed <- struct{}{}
	})
	require.NoError(t, err)
	defer func() { _ = stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "01.svg"), []byte("<svg/>"), 0o644))

	assert.True(t, waitSignal(t, changed, 3*time.Second), "expected change after creating a slide")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 10)

	stop, err := NewWatcher(20*time.Millisecond, nil).WatchDir(context.Background(), dir, func() {
		changed <- struct{}{}
	})
	require.NoError(t, err)
	defer func() { _ = stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	assert.False(t, waitSignal(t, changed, 300*time.Millisecond))
}

func TestWatcher_NoCallbackAfterStop(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 10)

	stop, err := NewWatcher(50*time.Millisecond, nil).WatchDir(context.Background(), dir, func() {
		changed <- struct{}{}
	})
	require.NoError(t, err)
	require.NoError(t, stop())
	require.NoError(t, stop())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "01.svg"), []byte("<svg/>"), 0o644))

	assert.False(t, waitSignal(t, changed, 300*time.Millisecond))
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(0, nil).WatchDir(context.Background(), filepath.Join(t.TempDir(), "nope"), func() {})

	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "create svg", event: fsnotify.Event{Name: "a.svg", Op: fsnotify.Create}, want: true},
		{name: "remove svg", event: fsnotify.Event{Name: "a.SVG", Op: fsnotify.Remove}, want: true},
		{name: "rename svg", event: fsnotify.Event{Name: "a.svg", Op: fsnotify.Rename}, want: true},
		{name: "write svg", event: fsnotify.Event{Name: "a.svg", Op: fsnotify.Write}, want: false},
		{name: "create txt", event: fsnotify.Event{Name: "a.txt", Op: fsnotify.Create}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event))
		})
	}
}
