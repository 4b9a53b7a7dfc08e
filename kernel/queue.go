package kernel

import (
	"sync"

	"github.com/labasse/SyncX/status"
)

// Queue is a bounded FIFO of entries of any type, built on two counting
// semaphores (free slots, pending items) guarding a mutex-protected
// slice. It is the building block taskqueue.TaskQueue layers its
// priority/preemption bookkeeping on top of.
type Queue struct {
	mu      sync.Mutex
	buf     []any
	space   *Semaphore
	items   *Semaphore
	deleted bool
}

// NewQueue creates a queue with the given capacity (must be positive).
func NewQueue(capacity int, clock Clock) *Queue {
	if clock == nil {
		clock = DefaultClock
	}
	return &Queue{
		buf:   make([]any, 0, capacity),
		space: NewSemaphore(capacity, clock),
		items: NewSemaphore(0, clock),
	}
}

// Send appends entry at the tail, blocking up to timeout ticks if the
// queue is full.
func (q *Queue) Send(entry any, timeout Ticks) status.Status {
	if st := q.space.Get(timeout); st != status.Success {
		if st == status.NoInstance {
			return status.QueueFull
		}
		return st
	}
	q.mu.Lock()
	if q.deleted {
		q.mu.Unlock()
		q.space.Put()
		return status.Deleted
	}
	q.buf = append(q.buf, entry)
	q.mu.Unlock()
	q.items.Put()
	return status.Success
}

// FrontSend inserts entry at the head, bypassing FIFO order for this
// one item, blocking up to timeout ticks if the queue is full.
func (q *Queue) FrontSend(entry any, timeout Ticks) status.Status {
	if st := q.space.Get(timeout); st != status.Success {
		if st == status.NoInstance {
			return status.QueueFull
		}
		return st
	}
	q.mu.Lock()
	if q.deleted {
		q.mu.Unlock()
		q.space.Put()
		return status.Deleted
	}
	q.buf = append([]any{entry}, q.buf...)
	q.mu.Unlock()
	q.items.Put()
	return status.Success
}

// Receive removes and returns the head entry, blocking up to timeout
// ticks if the queue is empty.
func (q *Queue) Receive(timeout Ticks) (any, status.Status) {
	if st := q.items.Get(timeout); st != status.Success {
		return nil, st
	}
	q.mu.Lock()
	if q.deleted || len(q.buf) == 0 {
		q.mu.Unlock()
		return nil, status.Deleted
	}
	entry := q.buf[0]
	q.buf = q.buf[1:]
	q.mu.Unlock()
	q.space.Put()
	return entry, status.Success
}

// Flush discards all pending entries. Items already dequeued by a
// receiver are unaffected.
func (q *Queue) Flush() status.Status {
	q.mu.Lock()
	if q.deleted {
		q.mu.Unlock()
		return status.Deleted
	}
	n := len(q.buf)
	q.buf = q.buf[:0]
	q.mu.Unlock()

	for i := 0; i < n; i++ {
		q.items.Get(NoWait)
		q.space.Put()
	}
	return status.Success
}

// Len reports the number of entries currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Delete tears the queue down: every blocked Send/Receive returns
// Deleted.
func (q *Queue) Delete() status.Status {
	q.mu.Lock()
	q.deleted = true
	q.buf = nil
	q.mu.Unlock()

	q.space.Delete()
	q.items.Delete()
	return status.Success
}
