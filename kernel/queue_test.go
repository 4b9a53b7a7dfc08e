package kernel

import (
	"testing"
	"time"

	"github.com/labasse/SyncX/status"
)

func TestQueueSendReceiveFIFO(t *testing.T) {
	q := NewQueue(4, fastClock())

	q.Send(1, NoWait)
	q.Send(2, NoWait)

	v, st := q.Receive(NoWait)
	if st != status.Success || v != 1 {
		t.Fatalf("Receive = (%v, %s), want (1, SUCCESS)", v, st)
	}
	v, st = q.Receive(NoWait)
	if st != status.Success || v != 2 {
		t.Fatalf("Receive = (%v, %s), want (2, SUCCESS)", v, st)
	}
}

func TestQueueFrontSendBypassesFIFO(t *testing.T) {
	q := NewQueue(4, fastClock())

	q.Send("A", NoWait)
	q.FrontSend("B", NoWait)

	v, _ := q.Receive(NoWait)
	if v != "B" {
		t.Fatalf("Receive = %v, want B", v)
	}
	v, _ = q.Receive(NoWait)
	if v != "A" {
		t.Fatalf("Receive = %v, want A", v)
	}
}

func TestQueueSendFullReturnsQueueFull(t *testing.T) {
	q := NewQueue(1, fastClock())
	q.Send(1, NoWait)

	if got := q.Send(2, NoWait); got != status.QueueFull {
		t.Fatalf("Send on full queue = %s, want QUEUE_FULL", got)
	}
}

func TestQueueReceiveEmptyTimesOut(t *testing.T) {
	q := NewQueue(1, fastClock())

	if _, got := q.Receive(Ticks(20)); got != status.NoInstance {
		t.Fatalf("Receive on empty queue = %s, want NO_INSTANCE", got)
	}
}

func TestQueueFlushDiscardsPending(t *testing.T) {
	q := NewQueue(4, fastClock())
	q.Send(1, NoWait)
	q.Send(2, NoWait)

	if got := q.Flush(); got != status.Success {
		t.Fatalf("Flush = %s, want SUCCESS", got)
	}
	if q.Len() != 0 {
		t.Fatalf("Len after Flush = %d, want 0", q.Len())
	}
	if got := q.Send(3, NoWait); got != status.Success {
		t.Fatalf("Send after Flush = %s, want SUCCESS (capacity should be reclaimed)", got)
	}
}

func TestQueueDeleteUnblocksWaiters(t *testing.T) {
	q := NewQueue(1, fastClock())
	result := make(chan status.Status, 1)

	go func() {
		_, st := q.Receive(Forever)
		result <- st
	}()

	time.Sleep(20 * time.Millisecond)
	q.Delete()

	select {
	case got := <-result:
		if got != status.Deleted {
			t.Errorf("Receive = %s, want DELETED", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive never returned after Delete")
	}
}
