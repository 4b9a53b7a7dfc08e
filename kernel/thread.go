package kernel

import "sync"

// IdlePriority is the highest scheduling urgency: lower numerical
// priority values mean higher urgency, and 0 is the ceiling a worker
// idles at while blocked on its queue.
const IdlePriority = 0

// ThreadHandle stands in for the host kernel's notion of a schedulable
// thread. Go has no public API to identify or reprioritize the calling
// goroutine, so callers that want priority-inheritance or per-item
// priority application must carry one of these explicitly and pass it
// to the primitives that need it.
type ThreadHandle struct {
	mu                  sync.Mutex
	priority            int
	preemptionThreshold int
}

// NewThreadHandle creates a handle at the given priority, with
// preemption threshold equal to priority (no preemption relief).
func NewThreadHandle(priority int) *ThreadHandle {
	return &ThreadHandle{priority: priority, preemptionThreshold: priority}
}

// Priority returns the handle's current scheduling priority.
func (t *ThreadHandle) Priority() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.priority
}

// PreemptionThreshold returns the handle's current preemption threshold.
func (t *ThreadHandle) PreemptionThreshold() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.preemptionThreshold
}

// ChangePriority atomically swaps priority and preemption threshold,
// returning the previous values so a caller can restore them later. This
// mirrors the host kernel's combined priority/threshold change used by
// the task queue worker around each item's execution.
func (t *ThreadHandle) ChangePriority(priority, preemptionThreshold int) (prevPriority, prevThreshold int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prevPriority, prevThreshold = t.priority, t.preemptionThreshold
	t.priority = priority
	t.preemptionThreshold = preemptionThreshold
	return
}

// setPriority is the narrower adjustment Mutex uses for priority
// inheritance: it leaves the preemption threshold untouched.
func (t *ThreadHandle) setPriority(priority int) {
	t.mu.Lock()
	t.priority = priority
	t.mu.Unlock()
}
