package worker

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/formatter"
	"github.com/emberlog/ember/pool"
	"github.com/emberlog/ember/queue"
	"github.com/emberlog/ember/record"
	"github.com/emberlog/ember/resolver"
)

// State is the worker's lifecycle phase (spec §4.4).
type State int32

const (
	// Starting is set by New, before the goroutine in Run has taken over.
	Starting State = iota
	// Running is the steady-state drain-and-dispatch loop.
	Running
	// Draining means Stop has been called; the worker keeps dequeuing until
	// the queue is empty or drainTimeout elapses, then flushes and closes.
	Draining
	// Stopped means Run has returned; no further records will be processed.
	Stopped
)

const (
	minIdleBackoff = time.Millisecond
	maxIdleBackoff = 15 * time.Millisecond
	idleFlushAfter = time.Second
	batchFlushSize = 256
)

// Worker is the single background goroutine that drains Queue, resolves
// each record against Resolver, formats it, and writes it to every
// appender the resolution names (spec §4.4). There is exactly one Worker
// per logging pipeline; grounded on the teacher's AsyncConsoleHandler.process
// goroutine (handler/consolehandler/console_async.go), generalized from one
// fixed handler to a per-record resolved appender set.
type Worker struct {
	queue     *queue.Queue
	pool      *pool.Pool
	resolver  *resolver.Resolver
	formatter formatter.Formatter

	drainTimeout time.Duration

	state atomic.Int32
	done  chan struct{}
	stop  chan struct{}

	wg sync.WaitGroup
}

// New builds a Worker in the Starting state. Call Run in its own goroutine
// to begin processing; call Stop to drain and shut it down.
func New(q *queue.Queue, p *pool.Pool, r *resolver.Resolver, f formatter.Formatter, drainTimeout time.Duration) *Worker {
	w := &Worker{
		queue:        q,
		pool:         p,
		resolver:     r,
		formatter:    f,
		drainTimeout: drainTimeout,
		done:         make(chan struct{}),
		stop:         make(chan struct{}),
	}
	w.state.Store(int32(Starting))
	return w
}

// State returns the worker's current lifecycle phase.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Run is the worker loop. It blocks until Stop is called and the drain
// completes. Run must be called from exactly one goroutine.
func (w *Worker) Run() {
	w.state.Store(int32(Running))
	defer close(w.done)

	scratch := new(bytes.Buffer)
	scratch.Grow(256)

	var bo time.Duration
	sinceFlush := 0
	lastFlush := time.Now()

	for {
		select {
		case <-w.stop:
			w.state.Store(int32(Draining))
			w.drain(scratch)
			_ = w.resolver.FlushAll()
			w.state.Store(int32(Stopped))
			return
		default:
		}

		buf, err := w.queue.Dequeue()
		if err != nil {
			if !queue.IsWouldBlock(err) {
				core.FailureHandler(err)
			}
			if sinceFlush > 0 && time.Since(lastFlush) >= idleFlushAfter {
				_ = w.resolver.FlushAll()
				sinceFlush = 0
				lastFlush = time.Now()
			}
			bo = nextBackoff(bo)
			time.Sleep(bo)
			continue
		}

		bo = 0
		w.process(buf, scratch)
		sinceFlush++
		if sinceFlush >= batchFlushSize {
			_ = w.resolver.FlushAll()
			sinceFlush = 0
			lastFlush = time.Now()
		}
	}
}

// drain dequeues and processes whatever remains in the queue, up to
// drainTimeout, then returns regardless of whether the queue is fully
// empty (spec §4.4: "drain has a bounded timeout; it does not wait
// forever for a stalled producer").
func (w *Worker) drain(scratch *bytes.Buffer) {
	w.queue.Drain()
	deadline := time.Now().Add(w.drainTimeout)
	for time.Now().Before(deadline) {
		buf, err := w.queue.Dequeue()
		if err != nil {
			if queue.IsWouldBlock(err) {
				return
			}
			core.FailureHandler(err)
			return
		}
		w.process(buf, scratch)
	}
}

// process resolves buf's logger name, formats the record once, writes it
// to the resolved appender set, and releases buf back to the pool.
// Exactly one release happens per dequeued buffer, preserving the
// single-owner invariant (spec §3) across the queue/worker boundary.
func (w *Worker) process(buf *record.Buffer, scratch *bytes.Buffer) {
	defer func() {
		if buf.Pooled() {
			w.pool.Release(buf)
		}
	}()

	res := w.resolver.Resolve(buf.Logger)

	scratch.Reset()
	var formatted []byte
	if bf, ok := w.formatter.(formatter.BufferFormatter); ok {
		bf.FormatBuffer(buf, scratch)
		formatted = scratch.Bytes()
	} else {
		out, err := w.formatter.Format(buf)
		if err != nil {
			// spec §7 FormatterFailure: the record is not dropped; it is
			// rendered as a literal diagnostic line plus a best-effort
			// unformatted dump, produced from a path that cannot itself
			// fail the way a user-supplied Formatter can.
			core.FailureHandler(err)
			formatted = []byte(formatter.FailureMessage(buf, err))
		} else {
			formatted = out
		}
	}

	if err := res.Appenders.Write(buf, formatted); err != nil {
		core.FailureHandler(err)
	}
}

// Stop signals the worker to drain and exit, then blocks until Run has
// returned. Safe to call more than once; subsequent calls return
// immediately once the worker has stopped.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	<-w.done
	_ = w.resolver.CloseAll()
}

func nextBackoff(cur time.Duration) time.Duration {
	if cur == 0 {
		return minIdleBackoff
	}
	next := cur * 2
	if next > maxIdleBackoff {
		return maxIdleBackoff
	}
	return next
}
