package taskset

import "sync"

// Semaphore is a counting semaphore used to signal task completions. Tasks
// call Post once when they finish; the orchestrating goroutine calls Wait
// with the number of completions it expects. A bounded wait consumes exactly
// its target count, so the semaphore returns to zero between invocations and
// one instance can serve a task set for its entire life.
type Semaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

// NewSemaphore creates a semaphore with a count of zero.
func NewSemaphore() *Semaphore {
	s := &Semaphore{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Post increments the count and wakes all waiters.
func (s *Semaphore) Post() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	s.cond.Broadcast()
}

// Wait blocks until the count reaches at least n, then consumes n from it.
// There is no timeout; a wait for completions that never arrive blocks
// forever. Calls with n <= 0 return immediately without touching the count.
func (s *Semaphore) Wait(n int) {
	if n <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for s.count < n {
		s.cond.Wait()
	}
	s.count -= n
}

// Count returns the instantaneous count. It is only a snapshot; by the time
// the caller looks at it, posts may have arrived or a wait consumed them.
func (s *Semaphore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.count
}
