package asyncrt

// readyQueue is a fixed-capacity circular FIFO of future references,
// grounded directly on FutQue in the original C executor.c: a front/back
// pair of indices into a preallocated backing array, sized once at
// executor creation and never resized.
//
// readyQueue is not safe for concurrent use; the executor is the only
// caller, and the executor itself is only ever driven from one goroutine.
type readyQueue struct {
	futs     []*Future
	capacity int
	size     int
	front    int
	back     int // index of the most recently pushed element, or -1 before the first push
}

func newReadyQueue(capacity int) *readyQueue {
	return &readyQueue{
		futs:     make([]*Future, capacity),
		capacity: capacity,
		back:     -1,
	}
}

func (q *readyQueue) empty() bool {
	return q.size == 0
}

func (q *readyQueue) full() bool {
	return q.size == q.capacity
}

// push appends a future to the tail. On a full queue, per spec.md §4.1 and
// §9, this is a silent no-op: the reference implementation drops the
// future rather than growing or erroring. Callers that want visibility
// into drops should check push's bool return, which the executor uses to
// drive the drop counter and, when Config.StrictQueue is set, to fail
// Executor.Spawn instead of silently discarding. Waker.Wake only counts the
// drop, since it has no error return.
func (q *readyQueue) push(fut *Future) bool {
	if q.full() {
		return false
	}
	q.back = (q.back + 1) % q.capacity
	q.futs[q.back] = fut
	q.size++
	return true
}

// pop removes and returns the head of the queue, or nil, false if empty.
func (q *readyQueue) pop() (*Future, bool) {
	if q.empty() {
		return nil, false
	}
	fut := q.futs[q.front]
	q.futs[q.front] = nil
	q.front = (q.front + 1) % q.capacity
	q.size--
	return fut, true
}

func (q *readyQueue) len() int {
	return q.size
}
