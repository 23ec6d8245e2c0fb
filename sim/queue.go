// Implements the FIFO queues used by both engines. Insertion order is
// arrival order; removal always takes the oldest element.

package sim

// ArrivalQueue is a FIFO queue of order creation ticks, used by the
// throughput model where an order is nothing more than its arrival
// timestamp. Internally it is an index-based ring buffer: backlogs grow
// without bound when capacity trails arrivals, and popping the head of a
// slice that large would go quadratic.
type ArrivalQueue struct {
	buf  []int64
	head int
	size int
}

// Enqueue appends a creation tick to the back of the queue.
func (q *ArrivalQueue) Enqueue(createdMin int64) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = createdMin
	q.size++
}

// Dequeue removes and returns the oldest creation tick.
// The second return is false when the queue is empty.
func (q *ArrivalQueue) Dequeue() (int64, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// Peek returns the oldest creation tick without removing it.
func (q *ArrivalQueue) Peek() (int64, bool) {
	if q.size == 0 {
		return 0, false
	}
	return q.buf[q.head], true
}

// Len returns the number of queued entries.
func (q *ArrivalQueue) Len() int {
	return q.size
}

func (q *ArrivalQueue) grow() {
	next := make([]int64, max(2*len(q.buf), 16))
	for i := 0; i < q.size; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}

// OrderQueue is the FIFO queue of newly arrived, not-yet-assigned orders in
// the lifecycle model. At most one order arrives per tick, so a plain slice
// is plenty here.
type OrderQueue struct {
	queue []*Order
}

// Enqueue adds an order to the back of the queue.
func (q *OrderQueue) Enqueue(o *Order) {
	q.queue = append(q.queue, o)
}

// Dequeue removes the order at the front of the queue.
// Returns nil if the queue is empty.
func (q *OrderQueue) Dequeue() *Order {
	if len(q.queue) == 0 {
		return nil
	}
	o := q.queue[0]
	q.queue = q.queue[1:]
	return o
}

// Peek returns the order at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *OrderQueue) Peek() *Order {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Len returns the number of orders in the queue.
func (q *OrderQueue) Len() int {
	return len(q.queue)
}

// Items returns the queue contents for iteration. The returned slice is the
// queue's internal storage -- callers may iterate over it but MUST NOT
// append to or reslice it.
func (q *OrderQueue) Items() []*Order {
	return q.queue
}
