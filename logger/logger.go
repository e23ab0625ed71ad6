package logger

import (
	"sync/atomic"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/resolver"
)

// Logger is a cached handle to one dotted logger name. It caches the
// resolver's effective level behind an atomic.Int32, refreshed by the
// manager's resolver.Subscribe callback on every config rebuild, so the
// hot-path IsEnabled/BeginRecord check never touches the resolver's trie
// or allocates (spec §9: "logger handles subscribing to the resolver's
// update event").
type Logger struct {
	name string
	m    *manager
	level atomic.Int32
}

// Name returns the dotted name this handle was obtained for.
func (l *Logger) Name() string { return l.name }

func (l *Logger) refreshLevel() {
	if l.m == nil {
		return
	}
	res := l.m.resolver.Resolve(l.name)
	l.level.Store(int32(res.Level))
}

// IsEnabled reports whether a record at level would be emitted, without
// touching the pool or the resolver's trie.
func (l *Logger) IsEnabled(level core.Level) bool {
	return level.Enabled(core.Level(l.level.Load()))
}

// BeginRecord starts building a record at level. If the level is disabled
// or no pipeline has been Initialized, it returns a RecordBuilder with no
// buffer: every Append call becomes a no-op and Log
// discards it, so call sites never need their own enabled check before
// chaining arguments (spec §4.2 step 1: "check level before any
// allocation").
func (l *Logger) BeginRecord(level core.Level) *RecordBuilder {
	if l.m == nil || !l.IsEnabled(level) {
		return &RecordBuilder{}
	}

	res := l.m.resolver.Resolve(l.name)
	buf, err := l.m.pool.AcquireForStrategy(res.Strategy)
	if err != nil {
		return &RecordBuilder{}
	}

	buf.Level = level
	buf.Logger = l.name
	return &RecordBuilder{buf: buf, l: l}
}

// Trace begins a Trace-level record.
func (l *Logger) Trace() *RecordBuilder { return l.BeginRecord(core.Trace) }

// Debug begins a Debug-level record.
func (l *Logger) Debug() *RecordBuilder { return l.BeginRecord(core.Debug) }

// Info begins an Info-level record.
func (l *Logger) Info() *RecordBuilder { return l.BeginRecord(core.Info) }

// Warn begins a Warn-level record.
func (l *Logger) Warn() *RecordBuilder { return l.BeginRecord(core.Warn) }

// Error begins an Error-level record.
func (l *Logger) Error() *RecordBuilder { return l.BeginRecord(core.Error) }

// Fatal begins a Fatal-level record. Emitting it does not itself terminate
// the process (spec §3: "Emitting a Fatal record does not itself terminate
// the process"); callers wanting that call os.Exit after Log returns.
func (l *Logger) Fatal() *RecordBuilder { return l.BeginRecord(core.Fatal) }

// Flush flushes every appender reachable from the resolver backing l. Safe
// to call before a pipeline has been Initialized; it is then a no-op.
func (l *Logger) Flush() error {
	if l.m == nil {
		return nil
	}
	return l.m.resolver.FlushAll()
}

// resolution returns the logger's current resolver.Resolution, or a
// None-level Resolution when no pipeline has been Initialized.
func (l *Logger) resolution() resolver.Resolution {
	if l.m == nil {
		return resolver.Resolution{Level: core.None}
	}
	return l.m.resolver.Resolve(l.name)
}
