package pool

import "sync/atomic"

// Stats tracks pool-level counters, mirroring the teacher's handler.Stats
// shape but scoped to acquire/release traffic rather than per-level drops
// (level policy lives one layer up, in the resolver).
type Stats struct {
	Acquired uint64
	Released uint64
	Dropped  uint64
	Blocked  uint64
}

func (s *Stats) incAcquired() { atomic.AddUint64(&s.Acquired, 1) }
func (s *Stats) incReleased() { atomic.AddUint64(&s.Released, 1) }
func (s *Stats) incDropped()  { atomic.AddUint64(&s.Dropped, 1) }
func (s *Stats) incBlocked()  { atomic.AddUint64(&s.Blocked, 1) }

// Snapshot is a point-in-time copy of Stats, safe to read without races.
type Snapshot struct {
	Acquired uint64
	Released uint64
	Dropped  uint64
	Blocked  uint64
}

// GetSnapshot returns a consistent-enough snapshot of the counters.
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Acquired: atomic.LoadUint64(&s.Acquired),
		Released: atomic.LoadUint64(&s.Released),
		Dropped:  atomic.LoadUint64(&s.Dropped),
		Blocked:  atomic.LoadUint64(&s.Blocked),
	}
}
