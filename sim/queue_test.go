package sim

import "testing"

func TestArrivalQueue_FIFOOrder(t *testing.T) {
	// GIVEN a queue with entries enqueued in order 0..9
	q := &ArrivalQueue{}
	for i := int64(0); i < 10; i++ {
		q.Enqueue(i)
	}

	// WHEN dequeuing everything
	// THEN entries come back oldest first
	for i := int64(0); i < 10; i++ {
		v, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue %d: queue unexpectedly empty", i)
		}
		if v != i {
			t.Fatalf("Dequeue %d: got %d, want %d", i, v, i)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len after draining: got %d, want 0", q.Len())
	}
}

func TestArrivalQueue_Empty(t *testing.T) {
	q := &ArrivalQueue{}
	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue on empty queue: got ok=true, want false")
	}
	if _, ok := q.Peek(); ok {
		t.Error("Peek on empty queue: got ok=true, want false")
	}
}

func TestArrivalQueue_FIFOAcrossRingWrap(t *testing.T) {
	// GIVEN a queue whose head has advanced into the ring
	q := &ArrivalQueue{}
	for i := int64(0); i < 12; i++ {
		q.Enqueue(i)
	}
	for i := int64(0); i < 8; i++ {
		q.Dequeue()
	}

	// WHEN enqueuing enough to wrap around the buffer end and force growth
	for i := int64(12); i < 40; i++ {
		q.Enqueue(i)
	}

	// THEN FIFO order survives the wrap and the resize
	for want := int64(8); want < 40; want++ {
		v, ok := q.Dequeue()
		if !ok || v != want {
			t.Fatalf("Dequeue: got %d (ok=%v), want %d", v, ok, want)
		}
	}
}

func TestArrivalQueue_PeekDoesNotRemove(t *testing.T) {
	q := &ArrivalQueue{}
	q.Enqueue(5)
	q.Enqueue(6)

	if v, ok := q.Peek(); !ok || v != 5 {
		t.Fatalf("Peek: got %d (ok=%v), want 5", v, ok)
	}
	if q.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", q.Len())
	}
}

func TestOrderQueue_FIFOAndEmpty(t *testing.T) {
	// GIVEN a queue with orders [A, B]
	q := &OrderQueue{}
	a := &Order{ID: 0}
	b := &Order{ID: 1}
	q.Enqueue(a)
	q.Enqueue(b)

	// WHEN dequeuing
	// THEN the oldest order comes out first, and empty dequeues return nil
	if got := q.Dequeue(); got != a {
		t.Errorf("first Dequeue: got %v, want order 0", got)
	}
	if got := q.Dequeue(); got != b {
		t.Errorf("second Dequeue: got %v, want order 1", got)
	}
	if got := q.Dequeue(); got != nil {
		t.Errorf("Dequeue on empty queue: got %v, want nil", got)
	}
	if got := q.Peek(); got != nil {
		t.Errorf("Peek on empty queue: got %v, want nil", got)
	}
}
