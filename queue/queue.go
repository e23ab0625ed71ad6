package queue

import (
	"code.hybscloud.com/lfq"

	"github.com/emberlog/ember/record"
)

// Queue is the bounded MPSC hand-off between producers and the worker
// (spec §4: "a single bounded MPSC queue... producers never block the
// worker and never block each other beyond the queue's own lock-free
// contention").
type Queue struct {
	q *lfq.MPSC[*record.Buffer]
}

// New creates a Queue with the given capacity (rounded up to a power of two
// by lfq.NewMPSC).
func New(capacity int) *Queue {
	return &Queue{q: lfq.NewMPSC[*record.Buffer](capacity)}
}

// Cap returns the queue's usable capacity.
func (q *Queue) Cap() int {
	return q.q.Cap()
}

// Enqueue offers buf to the queue. It returns lfq.ErrWouldBlock immediately
// if the queue is full; callers decide how to react (spec leaves queue
// back-pressure to the pool's exhaustion strategy, since a full queue means
// buffers are being acquired faster than the worker can drain them).
func (q *Queue) Enqueue(buf *record.Buffer) error {
	return q.q.Enqueue(&buf)
}

// Dequeue removes the oldest buffer. Must only be called from the single
// worker goroutine. Returns lfq.ErrWouldBlock if the queue is empty.
func (q *Queue) Dequeue() (*record.Buffer, error) {
	return q.q.Dequeue()
}

// Drain marks the queue as no longer accepting enqueues, for use during
// shutdown once producers are known to have stopped.
func (q *Queue) Drain() {
	q.q.Drain()
}

// IsWouldBlock reports whether err is the queue's full/empty control-flow
// signal rather than a real failure.
func IsWouldBlock(err error) bool {
	return lfq.IsWouldBlock(err)
}
