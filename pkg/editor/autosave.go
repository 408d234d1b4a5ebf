package editor

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiescence period before a scheduled save
// fires.
const DefaultAutosaveDelay = 450 * time.Millisecond

// Scheduler coalesces rapid edit events into one delayed save per group.
// It is a debounce, not a throttle: every schedule for a group cancels
// that group's pending timer, so an unbroken stream of edits defers the
// save until input pauses. Groups are independent and never cancel each
// other.
type Scheduler struct {
	// mu guards timers.
	mu sync.Mutex

	// delay is the quiescence period.
	delay time.Duration

	// timers holds the pending timer per group.
	timers map[string]*time.Timer
}

// NewScheduler creates a new Scheduler. A zero delay uses
// DefaultAutosaveDelay.
func NewScheduler(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Scheduler{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arranges for fn to run once the group has been quiet for the
// quiescence period. Any pending timer for the same group is cancelled
// first, so only the most recent schedule wins.
//
// A timer can fire concurrently with a reschedule or cancel for its
// group: the callback then holds a stale claim on the group, so it first
// checks under the lock that it is still the group's current timer.
// Anything else owns the entry now and the fired callback must neither
// remove it nor run.
func (s *Scheduler) Schedule(group string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[group]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		current := s.timers[group] == t
		if current {
			delete(s.timers, group)
		}
		s.mu.Unlock()

		if !current {
			return
		}
		fn()
	})
	s.timers[group] = t
}

// Cancel drops the pending timer for a group, if any.
func (s *Scheduler) Cancel(group string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[group]; ok {
		t.Stop()
		delete(s.timers, group)
	}
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for group, t := range s.timers {
		t.Stop()
		delete(s.timers, group)
	}
}
