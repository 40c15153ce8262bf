package roster

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler runs callbacks only when its clock is advanced, on the
// goroutine calling Advance. It drives the roster in tests and in one-shot
// command modes where timers never fire.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s   *ManualScheduler
	seq int
	at  time.Time
	f   func()
}

// NewManualScheduler starts the clock at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's clock
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc implements Scheduler
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, seq: s.seq, at: s.now.Add(d), f: f}
	s.pending = append(s.pending, t)
	return t
}

// Pending returns the number of armed timers
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Advance moves the clock forward by d and runs every timer that came due,
// in deadline order. Timers armed by a callback run in the same call if they
// fall due before the new time.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		sort.SliceStable(s.pending, func(i, j int) bool {
			if s.pending[i].at.Equal(s.pending[j].at) {
				return s.pending[i].seq < s.pending[j].seq
			}
			return s.pending[i].at.Before(s.pending[j].at)
		})
		if len(s.pending) == 0 || s.pending[0].at.After(target) {
			s.now = target
			s.mu.Unlock()
			return
		}
		t := s.pending[0]
		s.pending = s.pending[1:]
		s.now = t.at
		s.mu.Unlock()

		t.f()
	}
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, p := range t.s.pending {
		if p == t {
			t.s.pending = append(t.s.pending[:i], t.s.pending[i+1:]...)
			return true
		}
	}
	return false
}
