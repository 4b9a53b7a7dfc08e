package kernel

import (
	"sync"

	"github.com/labasse/SyncX/status"
)

// Inherit selects whether a Mutex raises a blocked owner's priority to
// match the highest-priority waiter currently suspended on it.
type Inherit bool

const (
	NoInherit Inherit = false
	DoInherit Inherit = true
)

type mutexWaiter struct {
	ch       chan status.Status
	owner    *ThreadHandle
	priority int
}

// Mutex is a binary, recursively-unaware mutual exclusion lock with
// optional priority inheritance: while some thread owns it, the owner's
// ThreadHandle priority is temporarily raised to the priority of the
// highest-priority thread currently blocked in Get, and restored on Put.
type Mutex struct {
	mu      sync.Mutex
	held    bool
	owner   *ThreadHandle
	saved   int
	raised  bool
	inherit Inherit
	waiters []*mutexWaiter
	deleted bool
	clock   Clock
}

// NewMutex creates an unowned mutex. inherit selects whether ownership
// raises the owner's priority on contention.
func NewMutex(inherit Inherit, clock Clock) *Mutex {
	if clock == nil {
		clock = DefaultClock
	}
	return &Mutex{inherit: inherit, clock: clock}
}

// Get acquires the mutex on behalf of owner, waiting up to timeout ticks
// if it is currently held. A nil owner is accepted for callers that do
// not track a ThreadHandle; priority inheritance is then a no-op.
func (m *Mutex) Get(owner *ThreadHandle, timeout Ticks) status.Status {
	m.mu.Lock()
	if m.deleted {
		m.mu.Unlock()
		return status.Deleted
	}
	if !m.held {
		m.held = true
		m.owner = owner
		m.mu.Unlock()
		return status.Success
	}
	if timeout == NoWait {
		m.mu.Unlock()
		return status.NotAvailable
	}

	w := &mutexWaiter{ch: make(chan status.Status, 1), owner: owner, priority: threadPriority(owner)}
	m.waiters = append(m.waiters, w)
	m.applyInheritanceLocked()
	m.mu.Unlock()

	select {
	case result := <-w.ch:
		return result
	case <-m.clock.After(timeout):
		m.mu.Lock()
		if idx := indexOfMutexWaiter(m.waiters, w); idx >= 0 {
			m.waiters = append(m.waiters[:idx], m.waiters[idx+1:]...)
			m.applyInheritanceLocked()
			m.mu.Unlock()
			return status.NotAvailable
		}
		m.mu.Unlock()
		return <-w.ch
	}
}

// Put releases the mutex, handing ownership directly to the
// highest-priority waiter if any are blocked.
func (m *Mutex) Put() status.Status {
	m.mu.Lock()
	if m.deleted {
		m.mu.Unlock()
		return status.Deleted
	}
	m.restoreOwnerPriorityLocked()
	if len(m.waiters) == 0 {
		m.owner = nil
		m.held = false
		m.mu.Unlock()
		return status.Success
	}

	idx := highestPriorityWaiter(m.waiters)
	w := m.waiters[idx]
	m.waiters = append(m.waiters[:idx], m.waiters[idx+1:]...)
	m.owner = w.owner
	m.applyInheritanceLocked()
	m.mu.Unlock()
	w.ch <- status.Success
	return status.Success
}

// applyInheritanceLocked raises the current owner's priority to match
// the highest-priority waiter, if inheritance is enabled and the owner
// is known. Callers must hold m.mu.
func (m *Mutex) applyInheritanceLocked() {
	if m.inherit != DoInherit || m.owner == nil || len(m.waiters) == 0 {
		return
	}
	want := m.waiters[highestPriorityWaiter(m.waiters)].priority
	if !m.raised {
		m.saved = m.owner.Priority()
		m.raised = true
	}
	if want < m.owner.Priority() {
		m.owner.setPriority(want)
	}
}

// restoreOwnerPriorityLocked undoes a prior inheritance boost when the
// owner releases the mutex. Callers must hold m.mu.
func (m *Mutex) restoreOwnerPriorityLocked() {
	if m.raised && m.owner != nil {
		m.owner.setPriority(m.saved)
	}
	m.raised = false
}

// Delete tears the mutex down: every blocked Get returns Deleted.
func (m *Mutex) Delete() status.Status {
	m.mu.Lock()
	m.deleted = true
	waiters := m.waiters
	m.waiters = nil
	m.mu.Unlock()

	for _, w := range waiters {
		w.ch <- status.Deleted
	}
	return status.Success
}

// Owned reports whether the mutex is currently held by anyone.
func (m *Mutex) Owned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

func threadPriority(t *ThreadHandle) int {
	if t == nil {
		return IdlePriority
	}
	return t.Priority()
}

func highestPriorityWaiter(waiters []*mutexWaiter) int {
	best := 0
	for i, w := range waiters {
		if w.priority < waiters[best].priority {
			best = i
		}
	}
	return best
}

func indexOfMutexWaiter(waiters []*mutexWaiter, target *mutexWaiter) int {
	for i, w := range waiters {
		if w == target {
			return i
		}
	}
	return -1
}
