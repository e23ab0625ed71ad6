package pool

import (
	"sync"
	"time"

	"code.hybscloud.com/iobuf"
	"code.hybscloud.com/iox"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/record"
)

// Pool is a bounded, lock-free source of record.Buffer instances, sized once
// at construction (spec §2: "the pool never grows, shrinks, or reallocates
// after start-up"). iobuf.BoundedPool never moves the underlying
// *record.Buffer once Fill has run; Get/Put only shuffle which indirect
// index is "available", so each Buffer carries its own slot index
// (record.Buffer.PoolIndex) and Release needs nothing beyond the Buffer
// itself to return it to the free-list.
type Pool struct {
	bp       *iobuf.BoundedPool[*record.Buffer]
	strategy ExhaustionStrategy
	stats    Stats

	shutdownOnce sync.Once
	shutdown     chan struct{}

	onExhausted func(error)
}

// New builds and fills a Pool of the given capacity. Each buffer gets
// payloadSize argument bytes and refCapacity reference-table slots (spec
// §6's LogMessageBufferSize / LogMessageStringCapacity).
func New(capacity, payloadSize, refCapacity int, strategy ExhaustionStrategy, onExhausted func(error)) *Pool {
	bp := iobuf.NewBoundedPool[*record.Buffer](capacity)
	bp.Fill(func() *record.Buffer {
		return record.NewBuffer(payloadSize, refCapacity)
	})
	for i := 0; i < bp.Cap(); i++ {
		bp.Value(i).SetPoolIndex(i)
	}
	// Pool-level blocking/backoff is reimplemented here rather than left to
	// BoundedPool's own blocking Get, because that loop cannot observe our
	// shutdown channel.
	bp.SetNonblock(true)

	if onExhausted == nil {
		onExhausted = func(error) {}
	}

	return &Pool{
		bp:          bp,
		strategy:    strategy,
		shutdown:    make(chan struct{}),
		onExhausted: onExhausted,
	}
}

// Cap returns the pool's fixed capacity.
func (p *Pool) Cap() int {
	return p.bp.Cap()
}

// Stats returns the pool's counters.
func (p *Pool) Stats() Stats {
	return p.stats
}

// Acquire borrows a buffer according to the pool's ExhaustionStrategy. On
// success the returned Buffer has whatever state Reset left it in; callers
// must set every field they need before use (spec §2 step 1 runs through
// Release, not here). For WaitUntilAvailable, Acquire blocks until a buffer
// frees up or the pool is shut down; it never times out on its own — use
// AcquireTimeout for a bounded wait.
func (p *Pool) Acquire() (*record.Buffer, error) {
	return p.acquire(p.strategy, nil)
}

// AcquireTimeout behaves like Acquire but, for WaitUntilAvailable pools,
// gives up with core.ErrPoolExhausted once d has elapsed.
func (p *Pool) AcquireTimeout(d time.Duration) (*record.Buffer, error) {
	deadline := time.Now().Add(d)
	return p.acquire(p.strategy, &deadline)
}

// AcquireForStrategy behaves like Acquire but applies strategy instead of
// the pool's own default. The pool itself is process-wide (spec §4.1: one
// pool, sized once at startup), but spec §6 lets each logger configure its
// own LogMessagePoolExhaustionStrategy — so the strategy is supplied by the
// caller (logger.Logger, from its resolved configuration) rather than fixed
// on the Pool.
func (p *Pool) AcquireForStrategy(strategy ExhaustionStrategy) (*record.Buffer, error) {
	return p.acquire(strategy, nil)
}

func (p *Pool) acquire(strategy ExhaustionStrategy, deadline *time.Time) (*record.Buffer, error) {
	var bo iox.Backoff
	notified := false
	for {
		indirect, err := p.bp.Get()
		if err == nil {
			p.stats.incAcquired()
			return p.bp.Value(indirect), nil
		}
		if !iox.IsWouldBlock(err) {
			return nil, err
		}

		switch strategy {
		case Drop:
			p.stats.incDropped()
			return nil, core.ErrPoolExhausted
		case DropAndNotify:
			p.stats.incDropped()
			if !notified {
				notified = true
				p.onExhausted(core.ErrPoolExhausted)
			}
			return nil, core.ErrPoolExhausted
		case WaitUntilAvailable:
			p.stats.incBlocked()
			select {
			case <-p.shutdown:
				return nil, core.ErrShuttingDown
			default:
			}
			if deadline != nil && time.Now().After(*deadline) {
				return nil, core.ErrPoolExhausted
			}
			bo.Wait()
			continue
		}
		return nil, core.ErrPoolExhausted
	}
}

// Release returns a buffer to the pool after resetting it, so the next
// Acquire always sees a clean Buffer (spec §2 step 5).
func (p *Pool) Release(buf *record.Buffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	_ = p.bp.Put(buf.PoolIndex())
	p.stats.incReleased()
}

// Shutdown unblocks any producer parked in WaitUntilAvailable. Safe to call
// more than once.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		close(p.shutdown)
	})
}
