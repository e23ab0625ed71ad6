package logger

import (
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/record"
)

// RecordBuilder accumulates a record's typed arguments before handing it to
// the worker queue. The zero value (buf == nil) is the disabled/exhausted
// no-op builder BeginRecord returns when nothing should be recorded;
// every method on it is a cheap nil check, never a pool or queue touch.
//
// Grounded on the teacher's fluent Logger chain (logger/logger.go's
// With/Log style) but restructured around record.Buffer's Append* methods
// instead of core.Field, since boxing an argument into core.Field's
// interface{} slot is exactly the heap escape spec §3 rules out.
type RecordBuilder struct {
	buf *record.Buffer
	l   *Logger
}

func fmtOf(format []string) string {
	if len(format) == 0 {
		return ""
	}
	return format[0]
}

// Bool appends a bool argument.
func (r *RecordBuilder) Bool(v bool, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendBool(v, fmtOf(format))
	}
	return r
}

// U8 appends a uint8 argument.
func (r *RecordBuilder) U8(v uint8, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendU8(v, fmtOf(format))
	}
	return r
}

// I8 appends an int8 argument.
func (r *RecordBuilder) I8(v int8, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendI8(v, fmtOf(format))
	}
	return r
}

// Char appends a rune argument.
func (r *RecordBuilder) Char(v rune, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendChar(v, fmtOf(format))
	}
	return r
}

// I16 appends an int16 argument.
func (r *RecordBuilder) I16(v int16, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendI16(v, fmtOf(format))
	}
	return r
}

// U16 appends a uint16 argument.
func (r *RecordBuilder) U16(v uint16, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendU16(v, fmtOf(format))
	}
	return r
}

// I32 appends an int32 argument.
func (r *RecordBuilder) I32(v int32, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendI32(v, fmtOf(format))
	}
	return r
}

// U32 appends a uint32 argument.
func (r *RecordBuilder) U32(v uint32, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendU32(v, fmtOf(format))
	}
	return r
}

// I64 appends an int64 argument.
func (r *RecordBuilder) I64(v int64, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendI64(v, fmtOf(format))
	}
	return r
}

// U64 appends a uint64 argument.
func (r *RecordBuilder) U64(v uint64, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendU64(v, fmtOf(format))
	}
	return r
}

// F32 appends a float32 argument.
func (r *RecordBuilder) F32(v float32, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendF32(v, fmtOf(format))
	}
	return r
}

// F64 appends a float64 argument.
func (r *RecordBuilder) F64(v float64, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendF64(v, fmtOf(format))
	}
	return r
}

// IntPtr appends a pointer-sized signed integer argument.
func (r *RecordBuilder) IntPtr(v int, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendIntPtr(v, fmtOf(format))
	}
	return r
}

// UintPtr appends a pointer-sized unsigned integer argument.
func (r *RecordBuilder) UintPtr(v uint, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendUintPtr(v, fmtOf(format))
	}
	return r
}

// DateTime appends a time.Time argument.
func (r *RecordBuilder) DateTime(v time.Time, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendDateTime(v, fmtOf(format))
	}
	return r
}

// TimeSpan appends a time.Duration argument.
func (r *RecordBuilder) TimeSpan(v time.Duration, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendTimeSpan(v, fmtOf(format))
	}
	return r
}

// DateOnly appends a calendar date argument.
func (r *RecordBuilder) DateOnly(year, month, day int, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendDateOnly(year, month, day, fmtOf(format))
	}
	return r
}

// TimeOnly appends a time-of-day argument.
func (r *RecordBuilder) TimeOnly(hour, minute, second, nanos int, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendTimeOnly(hour, minute, second, nanos, fmtOf(format))
	}
	return r
}

// GUID appends a raw GUID argument.
func (r *RecordBuilder) GUID(v record.GUID, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendGUID(v, fmtOf(format))
	}
	return r
}

// Decimal128 appends a raw 16-byte decimal argument.
func (r *RecordBuilder) Decimal128(v record.Decimal128, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendDecimal128(v, fmtOf(format))
	}
	return r
}

// String appends a string argument by reference-table index.
func (r *RecordBuilder) String(v string, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendString(v, fmtOf(format))
	}
	return r
}

// StringSpan copies v directly into the argument stream as UTF-16.
func (r *RecordBuilder) StringSpan(v string, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendStringSpan(v, fmtOf(format))
	}
	return r
}

// Utf8Span copies p directly into the argument stream as UTF-8.
func (r *RecordBuilder) Utf8Span(p []byte, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendUtf8Span(p, fmtOf(format))
	}
	return r
}

// Enum appends a registered enum value. Use record.RegisterEnum or
// record.AutoRegisterEnum to obtain handle ahead of time; this method does
// not itself register anything (spec §9: registration is a startup-time
// concern, not a hot-path one).
func (r *RecordBuilder) Enum(handle record.EnumHandle, value uint64, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendEnum(handle, value, fmtOf(format))
	}
	return r
}

// Unmanaged appends an opaque fixed-layout value blob.
func (r *RecordBuilder) Unmanaged(handle uint32, blob []byte, format ...string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendUnmanaged(handle, blob, fmtOf(format))
	}
	return r
}

// Key marks the next appended argument as a structured key/value pair's
// key (spec §3, KeyString). Chain it directly before the value:
// r.Key("count").I32(n).
func (r *RecordBuilder) Key(key string) *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendKeyString(key)
	}
	return r
}

// Null appends an explicit null argument.
func (r *RecordBuilder) Null() *RecordBuilder {
	if r.buf != nil {
		r.buf.AppendNull()
	}
	return r
}

// Err attaches an error to the record, rendered by formatters as a
// trailing "error=..." segment.
func (r *RecordBuilder) Err(err error) *RecordBuilder {
	if r.buf != nil {
		r.buf.Exception = err
	}
	return r
}

// Log finalizes the record with msg as its message template and hands it
// to the worker queue. After Log returns, the builder must not be reused.
// A disabled or pool-exhausted record has no buffer and Log does nothing;
// if the queue is full, the acquired buffer is released back to the pool
// instead of leaked.
func (r *RecordBuilder) Log(msg string) {
	if r.buf == nil {
		return
	}
	r.buf.Message = msg
	r.buf.Timestamp = core.CoarseNow()

	err := r.l.m.queue.Enqueue(r.buf)
	if err != nil {
		r.l.m.pool.Release(r.buf)
	}
}
