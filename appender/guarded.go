package appender

import (
	"sync/atomic"
	"time"

	"github.com/emberlog/ember/record"
)

// Guarded wraps an Appender so that a failing Write quarantines it for a
// configurable delay instead of being retried on every subsequent record
// (spec §5: "a failing appender is given a cooldown before it is tried
// again, so one broken sink cannot turn every record into a failed write").
//
// The quarantine deadline is cached the same way core.CoarseClock caches
// time.Now (core/coarse_clock.go): an atomic pointer swapped by whichever
// goroutine notices the failure, read without locking by the worker
// checking whether the appender is still down.
type Guarded struct {
	next       Appender
	name       string
	quarantine time.Duration

	nextActivation atomic.Pointer[time.Time]
	onQuarantine   func(name string, err error)

	stats Stats
}

// NewGuarded wraps next with a quarantine cooldown. onQuarantine, if
// non-nil, is called the moment a write failure opens a new quarantine
// window (not on every write that is skipped while already quarantined).
func NewGuarded(name string, next Appender, quarantine time.Duration, onQuarantine func(name string, err error)) *Guarded {
	if onQuarantine == nil {
		onQuarantine = func(string, error) {}
	}
	return &Guarded{next: next, name: name, quarantine: quarantine, onQuarantine: onQuarantine}
}

// Name implements Named.
func (g *Guarded) Name() string { return g.name }

// Quarantined reports whether the appender is currently skipping writes.
func (g *Guarded) Quarantined() bool {
	deadline := g.nextActivation.Load()
	return deadline != nil && time.Now().Before(*deadline)
}

// Write skips the underlying appender while quarantined, otherwise
// forwards the write and opens a new quarantine window on failure.
func (g *Guarded) Write(buf *record.Buffer, formatted []byte) error {
	if g.Quarantined() {
		g.stats.incSkipped()
		return nil
	}
	err := g.next.Write(buf, formatted)
	if err != nil {
		g.quarantineNow(err)
		return err
	}
	g.stats.incWritten()
	return nil
}

func (g *Guarded) quarantineNow(err error) {
	deadline := time.Now().Add(g.quarantine)
	g.nextActivation.Store(&deadline)
	g.stats.incFailures()
	g.onQuarantine(g.name, err)
}

// Flush forwards to the underlying appender unless quarantined.
func (g *Guarded) Flush() error {
	if g.Quarantined() {
		return nil
	}
	if err := g.next.Flush(); err != nil {
		g.quarantineNow(err)
		return err
	}
	return nil
}

// Close forwards to the underlying appender unless quarantined, the same
// guard policy as Flush and SetEncoding.
func (g *Guarded) Close() error {
	if g.Quarantined() {
		return nil
	}
	return g.next.Close()
}

// SetEncoding forwards to the underlying appender unless quarantined,
// matching the guard policy documented on Write/Flush above (spec §4.5:
// "flush, close, set_encoding are forwarded with the same guard policy").
func (g *Guarded) SetEncoding(enc string) error {
	if g.Quarantined() {
		return nil
	}
	if err := g.next.SetEncoding(enc); err != nil {
		g.quarantineNow(err)
		return err
	}
	return nil
}

// Stats returns a snapshot of this appender's write/skip/failure counters.
func (g *Guarded) Stats() StatsSnapshot {
	return g.stats.snapshot()
}

// Stats tracks per-appender counters behind Guarded, mirroring the
// teacher's handler.Stats shape.
type Stats struct {
	written  uint64
	skipped  uint64
	failures uint64
}

func (s *Stats) incWritten()  { atomic.AddUint64(&s.written, 1) }
func (s *Stats) incSkipped()  { atomic.AddUint64(&s.skipped, 1) }
func (s *Stats) incFailures() { atomic.AddUint64(&s.failures, 1) }

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Written  uint64
	Skipped  uint64
	Failures uint64
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Written:  atomic.LoadUint64(&s.written),
		Skipped:  atomic.LoadUint64(&s.skipped),
		Failures: atomic.LoadUint64(&s.failures),
	}
}
