package ui

import (
	"context"
	"sync"

	"nwn-tracker/pkg/stats"
)

// session holds the active tracking run. The render ticker runs on its
// own goroutine while start/stop happen on the fyne event loop, so all
// access goes through the mutex.
type session struct {
	mu      sync.Mutex
	tracker *stats.Tracker
	cancel  context.CancelFunc
	running bool
}

// start installs a new tracker and its watch context. Any previous run
// is stopped first.
func (s *session) start(tr *stats.Tracker, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.tracker = tr
	s.cancel = cancel
	s.running = true
}

// stop cancels the watch and marks the session idle. The tracker stays
// around so the final encounter can still be saved.
func (s *session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.running = false
}

// active returns the tracker only while the session is running.
func (s *session) active() *stats.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	return s.tracker
}

// current returns the tracker regardless of run state, nil before the
// first start.
func (s *session) current() *stats.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker
}

func (s *session) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
