// Package taskqueue provides a bounded queue of prioritized work items
// and a pool of worker goroutines that execute them, each item's
// declared priority and preemption threshold applied to the worker for
// the duration of that one item.
package taskqueue

import (
	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/status"
)

// IdlePriority is the priority (and preemption threshold) a worker
// assumes while blocked on its queue between items. Set it, if at all,
// before the first CreateRunner call.
var IdlePriority = kernel.IdlePriority

// WorkItem is one unit of work submitted through a TaskQueue: a
// function to call, the word-sized argument to pass it, and the
// scheduling parameters to apply to the worker while it runs.
type WorkItem struct {
	Entry               func(arg uint64)
	Arg                 uint64
	Priority            int
	PreemptionThreshold int
}

// TaskQueue is a bounded FIFO of WorkItems.
type TaskQueue struct {
	name string
	q    *kernel.Queue
}

// NewQueue creates a task queue with the given capacity.
func NewQueue(name string, capacity int) (*TaskQueue, status.Status) {
	if capacity <= 0 {
		return nil, status.SizeError
	}
	return &TaskQueue{name: name, q: kernel.NewQueue(capacity, nil)}, status.Success
}

// Delete tears the queue down; workers currently blocked receiving from
// it observe Deleted and exit.
func (tq *TaskQueue) Delete() status.Status {
	return tq.q.Delete()
}

// Send enqueues a work item at the tail, blocking up to timeout ticks
// if the queue is full.
func (tq *TaskQueue) Send(entry func(arg uint64), arg uint64, priority, preemptionThreshold int, timeout kernel.Ticks) status.Status {
	if entry == nil {
		return status.PtrError
	}
	item := &WorkItem{Entry: entry, Arg: arg, Priority: priority, PreemptionThreshold: preemptionThreshold}
	return tq.q.Send(item, timeout)
}

// FrontSend enqueues a work item at the head, bypassing FIFO order for
// this one item.
func (tq *TaskQueue) FrontSend(entry func(arg uint64), arg uint64, priority, preemptionThreshold int, timeout kernel.Ticks) status.Status {
	if entry == nil {
		return status.PtrError
	}
	item := &WorkItem{Entry: entry, Arg: arg, Priority: priority, PreemptionThreshold: preemptionThreshold}
	return tq.q.FrontSend(item, timeout)
}

// Flush discards all pending items. Items already dequeued by a worker
// continue to completion.
func (tq *TaskQueue) Flush() status.Status {
	return tq.q.Flush()
}

// receive dequeues one work item, blocking up to timeout ticks.
func (tq *TaskQueue) receive(timeout kernel.Ticks) (*WorkItem, status.Status) {
	v, st := tq.q.Receive(timeout)
	if !st.Ok() {
		return nil, st
	}
	return v.(*WorkItem), status.Success
}
