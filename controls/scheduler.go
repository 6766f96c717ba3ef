package controls

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler runs named single-shot tasks on a clock. Scheduling a name that
// is already pending replaces it, so at most one task per name exists.
type Scheduler struct {
	clock  clock.Clock
	mu     sync.Mutex
	tasks  map[string]*task
	closed bool
}

type task struct {
	timer *clock.Timer
}

func NewScheduler(c clock.Clock) *Scheduler {
	if c == nil {
		c = clock.New()
	}
	return &Scheduler{clock: c, tasks: make(map[string]*task)}
}

// Schedule arms fn to run once after d under name.
func (s *Scheduler) Schedule(name string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if prev, ok := s.tasks[name]; ok {
		prev.timer.Stop()
	}

	t := &task{}
	s.tasks[name] = t
	t.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		current, ok := s.tasks[name]
		if s.closed || !ok || current != t {
			s.mu.Unlock()
			return
		}
		delete(s.tasks, name)
		s.mu.Unlock()

		fn()
	})
}

// Cancel stops the task registered under name, if any.
func (s *Scheduler) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tasks[name]; ok {
		t.timer.Stop()
		delete(s.tasks, name)
	}
}

// Pending reports whether a task is armed under name.
func (s *Scheduler) Pending(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[name]
	return ok
}

// Len is the number of armed tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Close cancels every task; later Schedule calls are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, name)
	}
	s.closed = true
}
