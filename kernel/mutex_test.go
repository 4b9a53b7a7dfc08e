package kernel

import (
	"testing"
	"time"

	"github.com/labasse/SyncX/status"
)

func TestMutexGetPutRoundTrip(t *testing.T) {
	m := NewMutex(NoInherit, fastClock())
	owner := NewThreadHandle(10)

	if got := m.Get(owner, NoWait); got != status.Success {
		t.Fatalf("Get = %s, want SUCCESS", got)
	}
	if !m.Owned() {
		t.Fatal("Owned() = false after Get, want true")
	}
	if got := m.Put(); got != status.Success {
		t.Fatalf("Put = %s, want SUCCESS", got)
	}
	if m.Owned() {
		t.Fatal("Owned() = true after Put, want false")
	}
}

func TestMutexGetNoWaitFailsWhenHeld(t *testing.T) {
	m := NewMutex(NoInherit, fastClock())
	m.Get(NewThreadHandle(10), NoWait)

	if got := m.Get(NewThreadHandle(10), NoWait); got != status.NotAvailable {
		t.Fatalf("Get = %s, want NOT_AVAILABLE", got)
	}
}

func TestMutexGetTimesOut(t *testing.T) {
	m := NewMutex(NoInherit, fastClock())
	m.Get(NewThreadHandle(10), NoWait)

	if got := m.Get(NewThreadHandle(10), Ticks(20)); got != status.NotAvailable {
		t.Fatalf("Get = %s, want NOT_AVAILABLE", got)
	}
}

func TestMutexPutWakesHighestPriorityWaiter(t *testing.T) {
	m := NewMutex(NoInherit, fastClock())
	owner := NewThreadHandle(10)
	m.Get(owner, NoWait)

	low := make(chan status.Status, 1)
	high := make(chan status.Status, 1)

	go func() { low <- m.Get(NewThreadHandle(20), Forever) }()
	time.Sleep(10 * time.Millisecond)
	go func() { high <- m.Get(NewThreadHandle(5), Forever) }()
	time.Sleep(10 * time.Millisecond)

	m.Put()

	select {
	case got := <-high:
		if got != status.Success {
			t.Errorf("high-priority Get = %s, want SUCCESS", got)
		}
	case <-time.After(time.Second):
		t.Fatal("high-priority waiter never woke")
	}

	select {
	case <-low:
		t.Fatal("low-priority waiter woke before high-priority waiter")
	default:
	}
}

func TestMutexInheritanceRaisesOwnerPriority(t *testing.T) {
	m := NewMutex(DoInherit, fastClock())
	owner := NewThreadHandle(20)
	m.Get(owner, NoWait)

	done := make(chan status.Status, 1)
	go func() { done <- m.Get(NewThreadHandle(5), Forever) }()

	time.Sleep(20 * time.Millisecond)
	if got := owner.Priority(); got != 5 {
		t.Errorf("owner priority = %d, want 5 (inherited)", got)
	}

	m.Put()

	select {
	case got := <-done:
		if got != status.Success {
			t.Errorf("Get = %s, want SUCCESS", got)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never woke")
	}

	if got := owner.Priority(); got != 20 {
		t.Errorf("owner priority after Put = %d, want 20 (restored)", got)
	}
}

func TestMutexPutHandsOwnershipToWaiter(t *testing.T) {
	m := NewMutex(NoInherit, fastClock())
	first := NewThreadHandle(10)
	m.Get(first, NoWait)

	second := NewThreadHandle(10)
	done := make(chan status.Status, 1)
	go func() { done <- m.Get(second, Forever) }()
	time.Sleep(20 * time.Millisecond)

	m.Put()

	select {
	case got := <-done:
		if got != status.Success {
			t.Fatalf("Get = %s, want SUCCESS", got)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never woke after Put")
	}

	if !m.Owned() {
		t.Fatal("Owned() = false after handoff, want true (second holds it)")
	}
	if got := m.Get(NewThreadHandle(10), NoWait); got != status.NotAvailable {
		t.Fatalf("Get by a third party = %s, want NOT_AVAILABLE (second still owns it)", got)
	}
}

func TestMutexDeleteReleasesWaiters(t *testing.T) {
	m := NewMutex(NoInherit, fastClock())
	m.Get(NewThreadHandle(10), NoWait)

	done := make(chan status.Status, 1)
	go func() { done <- m.Get(NewThreadHandle(10), Forever) }()

	time.Sleep(20 * time.Millisecond)
	m.Delete()

	select {
	case got := <-done:
		if got != status.Deleted {
			t.Errorf("Get = %s, want DELETED", got)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never woke after Delete")
	}
}
