package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectHandler struct {
	mu    sync.Mutex
	lines []string
}

func (c *collectHandler) ProcessLine(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *collectHandler) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func TestWatchPicksUpAppendedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nwclientlog.txt")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0644))

	h := &collectHandler{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, h) }()

	// Give the watcher a moment to seek to the end, then append.
	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("first\nsecond\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Eventually(t, func() bool {
		lines := h.snapshot()
		return len(lines) == 2 && lines[0] == "first" && lines[1] == "second"
	}, 3*time.Second, 50*time.Millisecond)

	// The pre-existing content belongs to a past session.
	assert.NotContains(t, h.snapshot(), "old line")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatchRecoversAfterRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nwclientlog.txt")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0644))

	h := &collectHandler{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, h) }()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.Remove(path))

	// The replacement appears well after the removal, so the watcher
	// must keep trying rather than give up on the first failed reopen.
	time.Sleep(600 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("after rotation\n"), 0644))

	assert.Eventually(t, func() bool {
		lines := h.snapshot()
		return len(lines) == 1 && lines[0] == "after rotation"
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatchMissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), &collectHandler{})
	assert.Error(t, err)
}
