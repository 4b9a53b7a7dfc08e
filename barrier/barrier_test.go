package barrier

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/status"
)

func TestNewRejectsZeroRaiseCount(t *testing.T) {
	if _, st := New("b", 0, kernel.NoInherit); st != status.SizeError {
		t.Fatalf("New(raiseCount=0) = %s, want SIZE_ERROR", st)
	}
}

func TestWaitReleasesAllPartiesOnLastArrival(t *testing.T) {
	b, st := New("b", 3, kernel.NoInherit)
	if !st.Ok() {
		t.Fatalf("New = %s", st)
	}

	var released int32
	done := make(chan status.Status, 3)
	for i := 0; i < 3; i++ {
		go func() {
			got := b.Wait(kernel.Forever)
			if got.Ok() {
				atomic.AddInt32(&released, 1)
			}
			done <- got
		}()
	}

	for i := 0; i < 3; i++ {
		select {
		case got := <-done:
			if got != status.Success {
				t.Errorf("Wait = %s, want SUCCESS", got)
			}
		case <-time.After(time.Second):
			t.Fatal("not all parties released")
		}
	}
	if atomic.LoadInt32(&released) != 3 {
		t.Fatalf("released = %d, want 3", released)
	}
}

func TestWaitTimesOutWithoutAllParties(t *testing.T) {
	b, _ := New("b", 2, kernel.NoInherit)

	if got := b.Wait(kernel.Ticks(20)); got != status.NoInstance {
		t.Fatalf("Wait = %s, want NO_INSTANCE", got)
	}
}

func TestResetAbortsSuspendedWaiters(t *testing.T) {
	b, _ := New("b", 2, kernel.NoInherit)
	result := make(chan status.Status, 1)

	go func() {
		result <- b.Wait(kernel.Forever)
	}()

	time.Sleep(20 * time.Millisecond)
	if st := b.Reset(); !st.Ok() {
		t.Fatalf("Reset = %s", st)
	}

	select {
	case got := <-result:
		if got != status.WaitAborted {
			t.Errorf("Wait = %s, want WAIT_ABORTED", got)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never released after Reset")
	}
}

func TestBarrierIsReusableAfterReset(t *testing.T) {
	b, _ := New("b", 2, kernel.NoInherit)
	b.Wait(kernel.Ticks(10))
	b.Reset()

	done := make(chan status.Status, 2)
	go func() { done <- b.Wait(kernel.Forever) }()
	go func() { done <- b.Wait(kernel.Forever) }()

	for i := 0; i < 2; i++ {
		select {
		case got := <-done:
			if got != status.Success {
				t.Errorf("Wait after reset = %s, want SUCCESS", got)
			}
		case <-time.After(time.Second):
			t.Fatal("barrier did not release after reuse")
		}
	}
}

func TestDeleteReleasesWaiterAsDeleted(t *testing.T) {
	b, _ := New("b", 2, kernel.NoInherit)
	result := make(chan status.Status, 1)

	go func() {
		result <- b.Wait(kernel.Forever)
	}()

	time.Sleep(20 * time.Millisecond)
	b.Delete()

	select {
	case got := <-result:
		if got != status.Deleted {
			t.Errorf("Wait = %s, want DELETED", got)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never released after Delete")
	}
}
