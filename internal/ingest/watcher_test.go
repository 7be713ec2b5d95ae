package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherEmitsCreatedFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, errs, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: time.Millisecond,
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	select {
	case got := <-events:
		assert.Equal(t, path, got)
	case err := <-errs:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event within deadline")
	}
}

func TestWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre.bin"), []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
	})
	require.NoError(t, err)

	select {
	case got := <-events:
		assert.Equal(t, filepath.Join(dir, "pre.txt"), got)
	case <-time.After(5 * time.Second):
		t.Fatal("initial scan emitted nothing")
	}
}

func TestWatcherRejectsEmptyRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	require.Error(t, err)
}

// A burst of writes under a short debounce, cancelled mid-flight, must
// shut down cleanly: every event is delivered at most once and both
// channels close without panicking.
func TestWatcherBurstThenCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	events, errs, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: 100 * time.Microsecond,
	})
	require.NoError(t, err)

	const n = 100
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("doc%03d.txt", i))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	seen := map[string]struct{}{}
	deadline := time.After(10 * time.Second)
collect:
	for len(seen) < n {
		select {
		case p, ok := <-events:
			if !ok {
				break collect
			}
			seen[p] = struct{}{}
		case <-errs:
		case <-deadline:
			break collect
		}
	}
	require.NotEmpty(t, seen)

	cancel()
	for range events {
	}
	_, open := <-errs
	assert.False(t, open)
}
