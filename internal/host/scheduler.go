package host

import (
	"sync"
	"time"
)

// Dispatch hands a fired task to the goroutine that owns window state.
type Dispatch func(fn func())

// inline runs tasks on the timer goroutine.
func inline(fn func()) { fn() }

type task struct {
	token uint64
	timer *time.Timer
}

// Scheduler runs at most one delayed task per window id. A task that is
// cancelled before its dispatched function runs never takes effect, even if
// its timer already fired.
type Scheduler struct {
	mu       sync.Mutex
	tasks    map[string]*task
	next     uint64
	dispatch Dispatch
}

// NewScheduler creates a scheduler. A nil dispatch runs tasks inline on the
// timer goroutine.
func NewScheduler(dispatch Dispatch) *Scheduler {
	if dispatch == nil {
		dispatch = inline
	}
	return &Scheduler{
		tasks:    make(map[string]*task),
		dispatch: dispatch,
	}
}

// Schedule arranges for fn to run after delay, replacing any task already
// pending for id.
func (s *Scheduler) Schedule(id string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tasks[id]; ok {
		prev.timer.Stop()
	}
	s.next++
	token := s.next
	s.tasks[id] = &task{
		token: token,
		timer: time.AfterFunc(delay, func() { s.fire(id, token, fn) }),
	}
}

func (s *Scheduler) fire(id string, token uint64, fn func()) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	current := ok && t.token == token
	s.mu.Unlock()
	if !current {
		return
	}
	s.dispatch(func() {
		if s.complete(id, token) {
			fn()
		}
	})
}

// complete removes the task if it is still the current one for id.
func (s *Scheduler) complete(id string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.token != token {
		return false
	}
	delete(s.tasks, id)
	return true
}

// Cancel drops the pending task for id and reports whether there was one.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, id)
	return true
}

// Pending reports whether id has a task that has not taken effect yet.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels every pending task.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, id)
	}
}
