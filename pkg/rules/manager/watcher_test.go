package manager

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls, last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestFileWatcherRelevant(t *testing.T) {
	fw, err := NewFileWatcher(FileWatcherConfig{Path: t.TempDir()}, nil)
	require.NoError(t, err)
	defer fw.Stop()

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/r/a.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/r/a.YML", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/r/a.yaml", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/r/a.yaml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/r/a.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/r/.a.yaml.swp", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/r/.a.yaml", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fw.relevant(tt.event), "%s %s", tt.event.Op, tt.event.Name)
	}
}

func TestNewFileWatcherRequiresPath(t *testing.T) {
	_, err := NewFileWatcher(FileWatcherConfig{}, nil)
	assert.Error(t, err)
}
