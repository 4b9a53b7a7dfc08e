// Package safedata holds the demo driver's protected dataset: a growable
// array of random values and a derived index of which values are unique
// so far, both guarded by a caller-supplied lockstrategy.Lock so the
// driver can compare mutex vs. rwlock throughput on the same workload.
package safedata

import (
	"math/rand"

	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/lockstrategy"
)

// Dataset is the demo's shared, lock-protected data. values and unique
// each have their own Lock, mirroring the original's separate r/w locks
// for the value array and its uniqueness index.
type Dataset struct {
	capacity int

	values     []uint32
	valuesLock lockstrategy.Lock

	unique     []int
	uniqueLast int
	uniqueLock lockstrategy.Lock

	rng *rand.Rand
}

// New creates an empty dataset of the given capacity, protected by
// valuesLock and uniqueLock.
func New(capacity int, valuesLock, uniqueLock lockstrategy.Lock) *Dataset {
	return &Dataset{
		capacity:   capacity,
		values:     make([]uint32, 0, capacity),
		valuesLock: valuesLock,
		unique:     make([]int, 0, capacity),
		uniqueLock: uniqueLock,
		rng:        rand.New(rand.NewSource(0)),
	}
}

// Clear empties both the value array and the uniqueness index.
func (d *Dataset) Clear() {
	d.valuesLock.AcquireWrite(kernel.Forever)
	d.values = d.values[:0]
	d.valuesLock.ReleaseWrite()

	d.uniqueLock.AcquireWrite(kernel.Forever)
	d.unique = d.unique[:0]
	d.uniqueLast = 0
	d.uniqueLock.ReleaseWrite()
}

// FillRandom appends up to length random values, capped at capacity.
func (d *Dataset) FillRandom(length int) {
	d.valuesLock.AcquireWrite(kernel.Forever)
	defer d.valuesLock.ReleaseWrite()

	if len(d.values)+length > d.capacity {
		length = d.capacity - len(d.values)
	}
	for i := 0; i < length; i++ {
		d.values = append(d.values, d.rng.Uint32())
	}
}

// browseLocked calls process for every value at index >= *start,
// advancing *start to len(values). Callers must hold the values lock.
func (d *Dataset) browseLocked(start *int, process func(index int, value uint32)) int {
	delta := len(d.values) - *start
	for ; *start < len(d.values); *start++ {
		process(*start, d.values[*start])
	}
	return delta
}

// Browse calls process for every value added since *start, advancing
// *start, and returns how many values it visited.
func (d *Dataset) Browse(start *int, process func(index int, value uint32)) int {
	d.valuesLock.AcquireRead(kernel.Forever)
	delta := d.browseLocked(start, process)
	d.valuesLock.ReleaseRead()
	return delta
}

// UniqueUpdate scans values added since the last call and records the
// index of each one that is unique among all values seen so far. It
// returns how many values it checked.
func (d *Dataset) UniqueUpdate() int {
	d.valuesLock.AcquireRead(kernel.Forever)
	d.uniqueLock.AcquireWrite(kernel.Forever)

	checked := d.browseLocked(&d.uniqueLast, func(index int, value uint32) {
		for i := 0; i < index; i++ {
			if d.values[i] == value {
				return
			}
		}
		d.unique = append(d.unique, index)
	})

	d.uniqueLock.ReleaseWrite()
	d.valuesLock.ReleaseRead()
	return checked
}

// UniqueCheck reports whether the value at index is unique: 1 if
// unique, 0 if not, -1 if uniqueness for this index is not yet known
// (UniqueUpdate has not reached it).
func (d *Dataset) UniqueCheck(index int) int {
	d.uniqueLock.AcquireRead(kernel.Forever)
	defer d.uniqueLock.ReleaseRead()

	if index >= d.uniqueLast {
		return -1
	}
	for _, u := range d.unique {
		if u == index {
			return 1
		}
	}
	return 0
}

// Len returns the number of values currently stored.
func (d *Dataset) Len() int {
	d.valuesLock.AcquireRead(kernel.Forever)
	defer d.valuesLock.ReleaseRead()
	return len(d.values)
}

// Capacity returns the dataset's fixed maximum size.
func (d *Dataset) Capacity() int {
	return d.capacity
}
