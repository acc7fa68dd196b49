package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string) <-chan struct{} {
	t.Helper()
	w, err := New(Config{Dir: dir, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changes, err := w.Start()
	require.NoError(t, err)
	return changes
}

func expectSignal(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change signal")
	}
}

func expectNoSignal(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
		t.Fatal("expected no change signal")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_SignalsOnDataFileWrite(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir)

	err := os.WriteFile(filepath.Join(dir, "courses.csv"), []byte("course_id,name\n"), 0o600)
	require.NoError(t, err)

	expectSignal(t, changes)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir)

	err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o600)
	require.NoError(t, err)

	expectNoSignal(t, changes)
}

func TestWatcher_DebouncesBurstsIntoOneSignal(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir)

	// A save rewrites several files in quick succession.
	for _, name := range []string{"courses.csv", "students.csv", "enrollments.csv"} {
		err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600)
		require.NoError(t, err)
	}

	expectSignal(t, changes)
	expectNoSignal(t, changes)
}

func TestWatcher_StopClosesCleanly(t *testing.T) {
	w, err := New(DefaultConfig(t.TempDir()))
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}
