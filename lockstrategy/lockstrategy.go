// Package lockstrategy provides a single capability-set interface over
// the two ways this repository protects shared data (an exclusive mutex
// or a readers/writer lock), replacing the original's pair of raw
// function pointers that were swapped to switch protection strategy.
package lockstrategy

import (
	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/rwlock"
	"github.com/labasse/SyncX/status"
)

// Lock is the capability set a protected dataset needs: acquire/release
// for reading and for writing, under a caller-supplied timeout.
type Lock interface {
	AcquireRead(timeout kernel.Ticks) status.Status
	AcquireWrite(timeout kernel.Ticks) status.Status
	ReleaseRead() status.Status
	ReleaseWrite() status.Status
}

// MutexLock adapts a kernel.Mutex to Lock: reading and writing both map
// to the same exclusive acquisition, exactly as the original's
// safe_data_use_mutex wires tx_mutex_get/put to both the r and w sides.
type MutexLock struct {
	mtx *kernel.Mutex
}

// NewMutexLock creates a Lock backed by a single exclusive mutex.
func NewMutexLock(inherit kernel.Inherit) *MutexLock {
	return &MutexLock{mtx: kernel.NewMutex(inherit, nil)}
}

func (l *MutexLock) AcquireRead(timeout kernel.Ticks) status.Status  { return l.mtx.Get(nil, timeout) }
func (l *MutexLock) AcquireWrite(timeout kernel.Ticks) status.Status { return l.mtx.Get(nil, timeout) }
func (l *MutexLock) ReleaseRead() status.Status                      { return l.mtx.Put() }
func (l *MutexLock) ReleaseWrite() status.Status                     { return l.mtx.Put() }

// Delete tears down the underlying mutex.
func (l *MutexLock) Delete() status.Status { return l.mtx.Delete() }

// RWLockLock adapts an rwlock.RWLock to Lock: reading and writing map
// to their respective shared/exclusive sides.
type RWLockLock struct {
	rw *rwlock.RWLock
}

// NewRWLockLock creates a Lock backed by a readers/writer lock.
func NewRWLockLock(inherit kernel.Inherit) (*RWLockLock, status.Status) {
	rw, st := rwlock.New("", inherit)
	if !st.Ok() {
		return nil, st
	}
	return &RWLockLock{rw: rw}, status.Success
}

func (l *RWLockLock) AcquireRead(timeout kernel.Ticks) status.Status  { return l.rw.RGet(timeout) }
func (l *RWLockLock) AcquireWrite(timeout kernel.Ticks) status.Status { return l.rw.WGet(timeout) }
func (l *RWLockLock) ReleaseRead() status.Status                      { return l.rw.RPut() }
func (l *RWLockLock) ReleaseWrite() status.Status                     { return l.rw.WPut() }

// Delete tears down the underlying r/w lock.
func (l *RWLockLock) Delete() status.Status { return l.rw.Delete() }
