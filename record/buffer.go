package record

import (
	"time"

	"github.com/emberlog/ember/core"
)

// DefaultBufferSize is LogMessageBufferSize's default: 128 argument bytes.
// pool.Pool gives each Buffer a plain byte slice of the configured size
// (NewBuffer); it does not use iobuf's tiered buffer types.
const DefaultBufferSize = 128

// DefaultStringCapacity is LogMessageStringCapacity's default: 32 reference
// table slots per buffer.
const DefaultStringCapacity = 32

// Buffer is one pooled log record: metadata plus a self-describing argument
// stream. It is owned by exactly one of {free-list, producer, queue,
// worker} at any instant (spec §3); nothing in this package enforces that
// beyond documentation, same as the teacher's pooled *core.Entry.
type Buffer struct {
	pooled bool

	// poolIndex is the slot this Buffer occupies in its owning pool's
	// backing array. It is set once, at pool-fill time, and never
	// changes — iobuf.BoundedPool never relocates a filled slot. Reading
	// it is safe without synchronization because of the single-owner
	// invariant (spec §3): whoever currently owns the Buffer is the only
	// goroutine that will ever call PoolIndex.
	poolIndex int

	payload []byte // argument tag stream; fixed length, never reallocated
	n       int    // bytes used in payload

	refs    []string // interned strings: format specs, KeyString keys, String args
	refCap  int
	refUsed int // count of refs slots filled so far this encoding pass

	truncated bool

	Level      core.Level
	Timestamp  time.Time
	Logger     string
	ThreadID   uint64
	ThreadName string
	Message    string
	Exception  error
}

// NewBuffer allocates one Buffer with the given argument-byte and
// reference-table capacities. Called only at pool-fill time (pool.New),
// never on the hot path.
func NewBuffer(payloadSize, refCapacity int) *Buffer {
	return &Buffer{
		pooled:  true,
		payload: make([]byte, payloadSize),
		refs:    make([]string, refCapacity),
		refCap:  refCapacity,
	}
}

// emptyBuffer is the spec's "empty sentinel": a non-pooled Buffer with no
// content, returned wherever a caller needs a valid-but-inert Buffer
// without touching the pool.
var emptyBuffer = &Buffer{}

// Empty returns the shared empty sentinel buffer. It must never be mutated
// or released to a pool.
func Empty() *Buffer {
	return emptyBuffer
}

// NewConstantMessage returns a non-pooled Buffer carrying only a
// pre-formatted message, for internal library notices (e.g. "queue was
// full") that must never contend for a pool slot. Each call allocates a
// new Buffer; no notice buffer is pre-allocated or reused.
func NewConstantMessage(level core.Level, logger, msg string) *Buffer {
	return &Buffer{
		Level:     level,
		Logger:    logger,
		Message:   msg,
		Timestamp: time.Now(),
	}
}

// Pooled reports whether this Buffer came from a pool.Pool (as opposed to
// being the empty sentinel or a constant-message buffer).
func (b *Buffer) Pooled() bool {
	return b.pooled
}

// SetPoolIndex records which slot of its owning pool's backing array this
// Buffer occupies. Called exactly once, by the pool package, immediately
// after allocating the Buffer at pool-fill time.
func (b *Buffer) SetPoolIndex(i int) {
	b.poolIndex = i
}

// PoolIndex returns the slot set by SetPoolIndex. Used by the pool package
// to return this exact Buffer to its free-list without a separate handle
// type threaded alongside it through the queue.
func (b *Buffer) PoolIndex() int {
	return b.poolIndex
}

// Truncated reports whether the argument stream overflowed its capacity or
// the reference table ran out of slots for a String/KeyString/format-spec
// argument.
func (b *Buffer) Truncated() bool {
	return b.truncated
}

// Len returns the number of bytes currently used in the argument stream.
func (b *Buffer) Len() int {
	return b.n
}

// Payload returns the argument stream written so far. The slice aliases
// Buffer-owned storage; callers must not retain it past release.
func (b *Buffer) Payload() []byte {
	return b.payload[:b.n]
}

// Ref returns the interned string at idx, or "" if idx is out of range.
func (b *Buffer) Ref(idx int) string {
	if idx < 0 || idx >= len(b.refs) {
		return ""
	}
	return b.refs[idx]
}

// Reset clears a pooled Buffer for reuse. Called by pool.Release just
// before returning it to the free-list, so the next Acquire sees a clean
// slate without the pool itself needing to know about record internals.
func (b *Buffer) Reset() {
	b.n = 0
	b.truncated = false
	b.refUsed = 0
	for i := range b.refs {
		b.refs[i] = ""
	}
	b.Level = core.Trace
	b.Timestamp = time.Time{}
	b.Logger = ""
	b.ThreadID = 0
	b.ThreadName = ""
	b.Message = ""
	b.Exception = nil
}

// intern stores s in the next free reference slot and returns its index.
// Returns (0, false) if the table is full — per spec §3, overflow drops
// further string arguments rather than growing. Tracked via refUsed rather
// than scanning for an empty slot, since an interned string may itself be
// "" (an empty-string argument or key) and must not be mistaken for unused.
func (b *Buffer) intern(s string) (int, bool) {
	if b.refUsed >= b.refCap {
		return 0, false
	}
	idx := b.refUsed
	b.refs[idx] = s
	b.refUsed++
	return idx, true
}

// reserve checks whether n more bytes fit in the payload. On failure it
// marks the buffer truncated and, if at least one byte remains, writes the
// EndOfTruncatedMessage sentinel (spec §4.2 step 4).
func (b *Buffer) reserve(n int) bool {
	if b.n+n <= len(b.payload) {
		return true
	}
	if !b.truncated && len(b.payload)-b.n >= 1 {
		b.payload[b.n] = byte(TagEndOfTruncatedMessage)
		b.n++
	}
	b.truncated = true
	return false
}
