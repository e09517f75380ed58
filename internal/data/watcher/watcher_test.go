package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileWatcherMissingFile(t *testing.T) {
	_, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "day.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(watched, []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(other, []byte(`{}`), 0644))

	fw, err := NewFileWatcher([]string{watched})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(other, []byte(`{"date":"x"}`), 0644))
	require.NoError(t, os.WriteFile(watched, []byte(`{"date":"2024-03-01"}`), 0644))

	select {
	case event := <-fw.Events():
		abs, _ := filepath.Abs(watched)
		assert.Equal(t, abs, event.Path)
		assert.NotEmpty(t, event.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}

func TestFileWatcherCloseClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	fw, err := NewFileWatcher([]string{path})
	require.NoError(t, err)
	require.NoError(t, fw.Close())
	require.NoError(t, fw.Close())

	select {
	case _, ok := <-fw.Events():
		for ok {
			_, ok = <-fw.Events()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}
