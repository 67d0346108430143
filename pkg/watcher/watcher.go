// Package watcher finds and tails the client combat log, feeding new
// lines to a handler as they are appended.
package watcher

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// LineHandler consumes raw log lines in file order.
type LineHandler interface {
	ProcessLine(line string)
}

const pollInterval = 500 * time.Millisecond

// Watch tails the log file at path until ctx is cancelled. Tracking
// starts at the current end of file; earlier content belongs to past
// sessions. New data is picked up from fsnotify events with a polling
// fallback, truncation resets the read offset to the start, and a
// removed or rotated file is reopened as soon as it reappears. Each
// complete new line goes to h in order.
func Watch(ctx context.Context, path string, h LineHandler) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	file, err := os.Open(absPath)
	if err != nil {
		return err
	}
	defer func() {
		if file != nil {
			file.Close()
		}
	}()

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	// reopen replaces a lost handle with the file now at absPath. The
	// replacement is a fresh log, so reading restarts at offset 0.
	reopen := func() bool {
		if file != nil {
			file.Close()
			file = nil
		}
		f, err := os.Open(absPath)
		if err != nil {
			return false
		}
		file = f
		offset = 0
		return true
	}

	buf := make([]byte, 0, 64*1024)
	readNew := func() {
		if file == nil && !reopen() {
			return
		}
		info, err := file.Stat()
		if err != nil {
			// Stale handle: recover on the spot.
			if !reopen() {
				return
			}
			if info, err = file.Stat(); err != nil {
				return
			}
		}
		if info.Size() < offset {
			// Truncated: start over.
			offset = 0
		}
		if info.Size() == offset {
			return
		}
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			return
		}
		scanner := bufio.NewScanner(file)
		scanner.Buffer(buf, 10*1024*1024)
		for scanner.Scan() {
			h.ProcessLine(scanner.Text())
		}
		offset, _ = file.Seek(0, io.SeekCurrent)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			readNew()

		case ev := <-w.Events:
			if !strings.EqualFold(filepath.Clean(ev.Name), absPath) {
				continue
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// Rotated away. Drop the handle; the Create event or
				// the next poll tick reopens the replacement.
				if file != nil {
					file.Close()
					file = nil
				}
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				readNew()
			}

		case <-w.Errors:
			// Polling still covers us.
		}
	}
}
