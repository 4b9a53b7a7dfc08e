//go:build !inline_write

package rwlock

import (
	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/status"
)

// WGet acquires the lock for writing, waiting up to timeout ticks for
// exclusive ownership of the write semaphore. Unlike the inline_write
// build, this checked variant rejects a malformed wait option before
// touching the semaphore.
func (rw *RWLock) WGet(timeout kernel.Ticks) status.Status {
	if timeout < kernel.Forever {
		return status.WaitError
	}
	return rw.writeSem.Get(timeout)
}

// WPut releases the write lock.
func (rw *RWLock) WPut() status.Status {
	return rw.writeSem.Put()
}

// PrioritizeWrite calls the write semaphore's Prioritize hook. The
// kernel semaphore keeps a plain FIFO suspension list, so the order of
// waiting readers and writers is left unchanged.
func (rw *RWLock) PrioritizeWrite() status.Status {
	return rw.writeSem.Prioritize()
}
