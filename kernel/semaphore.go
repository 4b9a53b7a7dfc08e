package kernel

import (
	"sync"

	"github.com/labasse/SyncX/status"
)

// semWaiter is one goroutine suspended in Semaphore.Get, waiting to be
// handed a permit, a deletion notice, or an abort.
type semWaiter struct {
	ch chan status.Status
}

// Semaphore is a counting semaphore: Get acquires one unit (blocking per
// its timeout if none are available), Put releases one unit to the
// longest-waiting blocked goroutine if any, otherwise to the count.
type Semaphore struct {
	mu      sync.Mutex
	count   int
	waiters []*semWaiter
	deleted bool
	clock   Clock
}

// NewSemaphore creates a counting semaphore with the given initial
// value, using clock as its tick source (DefaultClock if nil).
func NewSemaphore(initial int, clock Clock) *Semaphore {
	if clock == nil {
		clock = DefaultClock
	}
	return &Semaphore{count: initial, clock: clock}
}

// Get acquires one unit, waiting up to timeout ticks if none is
// immediately available.
func (s *Semaphore) Get(timeout Ticks) status.Status {
	s.mu.Lock()
	if s.deleted {
		s.mu.Unlock()
		return status.Deleted
	}
	if s.count > 0 {
		s.count--
		s.mu.Unlock()
		return status.Success
	}
	if timeout == NoWait {
		s.mu.Unlock()
		return status.NoInstance
	}

	w := &semWaiter{ch: make(chan status.Status, 1)}
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	select {
	case result := <-w.ch:
		return result
	case <-s.clock.After(timeout):
		s.mu.Lock()
		if idx := indexOfWaiter(s.waiters, w); idx >= 0 {
			s.waiters = append(s.waiters[:idx], s.waiters[idx+1:]...)
			s.mu.Unlock()
			return status.NoInstance
		}
		s.mu.Unlock()
		// A release or abort raced the timer; the result is already
		// buffered, take it rather than report a spurious timeout.
		return <-w.ch
	}
}

// TryGet attempts to acquire one unit without blocking.
func (s *Semaphore) TryGet() bool {
	return s.Get(NoWait) == status.Success
}

// Put releases one unit, handing it directly to the longest-waiting
// blocked goroutine if any.
func (s *Semaphore) Put() status.Status {
	s.mu.Lock()
	if s.deleted {
		s.mu.Unlock()
		return status.Deleted
	}
	if len(s.waiters) > 0 {
		w := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.mu.Unlock()
		w.ch <- status.Success
		return status.Success
	}
	s.count++
	s.mu.Unlock()
	return status.Success
}

// Info returns the current permit count and the number of goroutines
// currently suspended in Get.
func (s *Semaphore) Info() (count, waiting int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, len(s.waiters)
}

// Prioritize reorders the suspension list so the next Put is handed to
// whichever waiter the semaphore considers highest priority rather than
// strict FIFO order. This semaphore has no per-waiter priority of its
// own (Get carries no priority argument), so with a plain FIFO queue
// there is nothing to reorder; it exists as a stable hook for a host
// that layers priority-aware waiting on top, and always succeeds.
func (s *Semaphore) Prioritize() status.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted {
		return status.Deleted
	}
	return status.Success
}

// AbortSuspended aborts exactly one blocked waiter (returning
// WaitAborted from its Get call) or, if none are blocked, consumes one
// pending unit. It reports whether it took either action, so a caller
// can loop it down to a quiescent semaphore the way Barrier.Reset does.
func (s *Semaphore) AbortSuspended() bool {
	s.mu.Lock()
	if len(s.waiters) > 0 {
		w := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.mu.Unlock()
		w.ch <- status.WaitAborted
		return true
	}
	if s.count > 0 {
		s.count--
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()
	return false
}

// setCount forcibly assigns the permit count. Queue.Flush does not use
// it; it rebalances its semaphores with Get and Put instead.
func (s *Semaphore) setCount(n int) {
	s.mu.Lock()
	s.count = n
	s.mu.Unlock()
}

// Delete tears the semaphore down: every currently blocked Get returns
// Deleted, and every subsequent call does too.
func (s *Semaphore) Delete() status.Status {
	s.mu.Lock()
	s.deleted = true
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, w := range waiters {
		w.ch <- status.Deleted
	}
	return status.Success
}

func indexOfWaiter(waiters []*semWaiter, target *semWaiter) int {
	for i, w := range waiters {
		if w == target {
			return i
		}
	}
	return -1
}
