package taskqueue

import (
	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/status"
)

// Worker is a runner goroutine bound to one TaskQueue. It loops
// dequeuing work items and executing them under their own declared
// priority until the queue is deleted.
type Worker struct {
	name   string
	queue  *TaskQueue
	thread *kernel.ThreadHandle
	done   chan struct{}
}

// RunnerOption configures a Worker at creation.
type RunnerOption func(*Worker)

// WithThreadHandle binds the worker to an existing ThreadHandle instead
// of one created fresh at idle priority. Useful when a host wants to
// observe or share the handle (e.g. for priority-inheriting mutexes the
// worker also contends on).
func WithThreadHandle(th *kernel.ThreadHandle) RunnerOption {
	return func(w *Worker) {
		w.thread = th
	}
}

// CreateRunner creates a worker goroutine bound to queue, with idle
// priority/preemption-threshold IdlePriority, auto-starting immediately.
func CreateRunner(name string, queue *TaskQueue, opts ...RunnerOption) (*Worker, status.Status) {
	if queue == nil {
		return nil, status.PtrError
	}
	w := &Worker{name: name, queue: queue, done: make(chan struct{})}
	for _, opt := range opts {
		opt(w)
	}
	if w.thread == nil {
		w.thread = kernel.NewThreadHandle(IdlePriority)
	}
	w.thread.ChangePriority(IdlePriority, IdlePriority)

	go w.run()
	return w, status.Success
}

// Thread returns the worker's scheduling handle.
func (w *Worker) Thread() *kernel.ThreadHandle {
	return w.thread
}

// Done returns a channel closed once the worker has exited its loop.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		item, st := w.queue.receive(kernel.Forever)
		if !st.Ok() {
			if st != status.Deleted {
				notifyEnterExit(&WorkItem{}, false)
			}
			return
		}

		w.thread.ChangePriority(item.Priority, item.PreemptionThreshold)
		notifyEnterExit(item, true)
		item.Entry(item.Arg)
		notifyEnterExit(item, false)
		w.thread.ChangePriority(IdlePriority, IdlePriority)
	}
}
