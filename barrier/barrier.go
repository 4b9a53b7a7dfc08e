// Package barrier provides a reusable N-party rendezvous built on the
// kernel façade's mutex and counting semaphore.
package barrier

import (
	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/status"
)

// Barrier is an N-party rendezvous: Wait blocks every caller until
// raiseCount callers have arrived, then releases them all, one by one:
// the last arrival returns first, and each released party wakes the
// next suspended one in the semaphore's FIFO suspension order.
type Barrier struct {
	name       string
	raiseCount uint32
	arrived    uint32
	mtx        *kernel.Mutex
	sem        *kernel.Semaphore
}

// New creates a barrier that releases once raiseCount parties have
// called Wait. inherit selects whether the internal mutex uses priority
// inheritance.
func New(name string, raiseCount uint32, inherit kernel.Inherit) (*Barrier, status.Status) {
	if raiseCount == 0 {
		return nil, status.SizeError
	}

	b := &Barrier{
		name:       name,
		raiseCount: raiseCount,
		mtx:        kernel.NewMutex(inherit, nil),
		sem:        kernel.NewSemaphore(0, nil),
	}
	return b, status.Success
}

// Delete tears the barrier down. Any currently waiting party is
// released with Deleted.
func (b *Barrier) Delete() status.Status {
	b.mtx.Delete()
	return b.sem.Delete()
}

// Wait arrives at the barrier and blocks, up to timeout ticks, until the
// remaining raiseCount-1 parties also arrive. The last arrival returns
// immediately and propagates the release to every previously blocked
// party via a daisy-chained semaphore post.
func (b *Barrier) Wait(timeout kernel.Ticks) status.Status {
	if st := b.mtx.Get(nil, kernel.Forever); !st.Ok() {
		return st
	}
	b.arrived++
	count := b.arrived
	wait := count != b.raiseCount
	b.mtx.Put()

	var st status.Status
	if wait {
		st = b.sem.Get(timeout)
	} else {
		st = status.Success
	}

	if st.Ok() {
		b.sem.Put()
	}
	return st
}

// Reset sets the arrival counter back to 0 and aborts every currently
// suspended waiter, which observe WaitAborted from their Wait call. A
// caller must not retry a timed-out Wait without first calling Reset.
func (b *Barrier) Reset() status.Status {
	if st := b.mtx.Get(nil, kernel.Forever); !st.Ok() {
		return st
	}
	b.arrived = 0
	for b.sem.AbortSuspended() {
	}
	b.mtx.Put()
	return status.Success
}
