// Package rwlock provides a readers/writer lock: any number of readers
// may hold it concurrently, exclusive of a single writer.
package rwlock

import (
	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/status"
)

// RWLock is a readers/writer lock built from a reader-count mutex and a
// binary write semaphore. While readerCount > 0 the write semaphore is
// held on readers' behalf; a writer holds it directly.
type RWLock struct {
	name        string
	readerCount uint32
	mtx         *kernel.Mutex
	writeSem    *kernel.Semaphore
	clock       kernel.Clock
}

// New creates an unlocked r/w lock. inherit selects whether the
// internal reader-count mutex uses priority inheritance.
func New(name string, inherit kernel.Inherit) (*RWLock, status.Status) {
	rw := &RWLock{
		name:     name,
		mtx:      kernel.NewMutex(inherit, nil),
		writeSem: kernel.NewSemaphore(1, nil),
		clock:    kernel.DefaultClock,
	}
	return rw, status.Success
}

// Delete tears the lock down; any waiting reader or writer is released
// as Deleted.
func (rw *RWLock) Delete() status.Status {
	rw.mtx.Delete()
	return rw.writeSem.Delete()
}

// RGet acquires the lock for reading, waiting up to timeout ticks. The
// first reader to arrive also acquires the write semaphore on behalf of
// every subsequent reader, so a writer cannot interleave; the budget
// spent waiting for the reader-count mutex is subtracted from timeout
// before the write semaphore wait, never reused verbatim.
func (rw *RWLock) RGet(timeout kernel.Ticks) status.Status {
	start := rw.clock.Now()
	st := rw.mtx.Get(nil, timeout)
	if !st.Ok() {
		return st
	}

	if rw.readerCount == 0 {
		remaining := kernel.Remaining(timeout, rw.clock.Now()-start)
		st = rw.writeSem.Get(remaining)
	}
	if st.Ok() {
		rw.readerCount++
	}

	// The mutex put result only matters when nothing has failed yet; a
	// write-semaphore failure must not be masked by it.
	if putSt := rw.mtx.Put(); st.Ok() {
		st = putSt
	}
	return st
}

// RPut releases one reader. The last reader to leave releases the write
// semaphore, re-admitting a blocked writer.
func (rw *RWLock) RPut() status.Status {
	if st := rw.mtx.Get(nil, kernel.Forever); !st.Ok() {
		return st
	}
	rw.readerCount--
	if rw.readerCount == 0 {
		rw.writeSem.Put()
	}
	return rw.mtx.Put()
}
