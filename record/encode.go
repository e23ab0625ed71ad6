package record

import (
	"encoding/binary"
	"math"
	"time"
	"unicode/utf16"
)

// writeTag appends a tag byte, optionally preceded-in-spirit by a format
// spec: when format != "", the FormatFlag bit is set and the byte
// immediately following the tag is the format spec's reference-table
// index (spec §3, §4.7). Returns false (and marks the buffer truncated) if
// there is no room, or if the format string itself could not be interned.
func (b *Buffer) writeTag(tag Tag, format string) bool {
	if format != "" {
		idx, ok := b.intern(format)
		if !ok {
			b.truncated = true
			return false
		}
		if !b.reserve(2) {
			return false
		}
		b.payload[b.n] = byte(tag | formatFlagBit)
		b.payload[b.n+1] = byte(idx)
		b.n += 2
		return true
	}
	if !b.reserve(1) {
		return false
	}
	b.payload[b.n] = byte(tag)
	b.n++
	return true
}

func (b *Buffer) writeBytes(p []byte) bool {
	if !b.reserve(len(p)) {
		return false
	}
	b.n += copy(b.payload[b.n:], p)
	return true
}

// AppendBool appends a bool argument, optionally with a format specifier.
func (b *Buffer) AppendBool(v bool, format string) bool {
	if !b.writeTag(TagBool, format) {
		return false
	}
	var x byte
	if v {
		x = 1
	}
	return b.writeBytes([]byte{x})
}

// AppendU8 appends a uint8 argument.
func (b *Buffer) AppendU8(v uint8, format string) bool {
	if !b.writeTag(TagU8, format) {
		return false
	}
	return b.writeBytes([]byte{v})
}

// AppendI8 appends an int8 argument.
func (b *Buffer) AppendI8(v int8, format string) bool {
	if !b.writeTag(TagI8, format) {
		return false
	}
	return b.writeBytes([]byte{byte(v)})
}

// AppendChar appends a rune, encoded as 4 little-endian bytes.
func (b *Buffer) AppendChar(v rune, format string) bool {
	if !b.writeTag(TagChar, format) {
		return false
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return b.writeBytes(buf[:])
}

// AppendI16 appends an int16 argument.
func (b *Buffer) AppendI16(v int16, format string) bool {
	if !b.writeTag(TagI16, format) {
		return false
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	return b.writeBytes(buf[:])
}

// AppendU16 appends a uint16 argument.
func (b *Buffer) AppendU16(v uint16, format string) bool {
	if !b.writeTag(TagU16, format) {
		return false
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return b.writeBytes(buf[:])
}

// AppendI32 appends an int32 argument.
func (b *Buffer) AppendI32(v int32, format string) bool {
	if !b.writeTag(TagI32, format) {
		return false
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return b.writeBytes(buf[:])
}

// AppendU32 appends a uint32 argument.
func (b *Buffer) AppendU32(v uint32, format string) bool {
	if !b.writeTag(TagU32, format) {
		return false
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return b.writeBytes(buf[:])
}

// AppendI64 appends an int64 argument.
func (b *Buffer) AppendI64(v int64, format string) bool {
	if !b.writeTag(TagI64, format) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return b.writeBytes(buf[:])
}

// AppendU64 appends a uint64 argument.
func (b *Buffer) AppendU64(v uint64, format string) bool {
	if !b.writeTag(TagU64, format) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return b.writeBytes(buf[:])
}

// AppendF32 appends a float32 argument.
func (b *Buffer) AppendF32(v float32, format string) bool {
	if !b.writeTag(TagF32, format) {
		return false
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return b.writeBytes(buf[:])
}

// AppendF64 appends a float64 argument.
func (b *Buffer) AppendF64(v float64, format string) bool {
	if !b.writeTag(TagF64, format) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return b.writeBytes(buf[:])
}

// AppendDecimal128 appends a raw 16-byte decimal value.
func (b *Buffer) AppendDecimal128(v Decimal128, format string) bool {
	if !b.writeTag(TagDecimal128, format) {
		return false
	}
	return b.writeBytes(v[:])
}

// AppendIntPtr appends a pointer-sized signed integer (stored as int64;
// this package targets 64-bit architectures only, consistent with the
// iobuf/lfq dependencies it is built on).
func (b *Buffer) AppendIntPtr(v int, format string) bool {
	if !b.writeTag(TagIntPtr, format) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
	return b.writeBytes(buf[:])
}

// AppendUintPtr appends a pointer-sized unsigned integer.
func (b *Buffer) AppendUintPtr(v uint, format string) bool {
	if !b.writeTag(TagUintPtr, format) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return b.writeBytes(buf[:])
}

// AppendDateTime appends a time.Time as Unix nanoseconds.
func (b *Buffer) AppendDateTime(v time.Time, format string) bool {
	if !b.writeTag(TagDateTime, format) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v.UnixNano()))
	return b.writeBytes(buf[:])
}

// AppendTimeSpan appends a time.Duration as nanoseconds.
func (b *Buffer) AppendTimeSpan(v time.Duration, format string) bool {
	if !b.writeTag(TagTimeSpan, format) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
	return b.writeBytes(buf[:])
}

// AppendDateOnly appends a calendar date as (year uint16, month, day bytes).
func (b *Buffer) AppendDateOnly(year int, month, day int, format string) bool {
	if !b.writeTag(TagDateOnly, format) {
		return false
	}
	var buf [4]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(year))
	buf[2] = byte(month)
	buf[3] = byte(day)
	return b.writeBytes(buf[:])
}

// AppendTimeOnly appends a time-of-day as nanoseconds since midnight.
func (b *Buffer) AppendTimeOnly(hour, minute, second, nanos int, format string) bool {
	if !b.writeTag(TagTimeOnly, format) {
		return false
	}
	total := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second + time.Duration(nanos)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(total)))
	return b.writeBytes(buf[:])
}

// AppendGUID appends a raw 16-byte GUID.
func (b *Buffer) AppendGUID(v GUID, format string) bool {
	if !b.writeTag(TagGUID, format) {
		return false
	}
	return b.writeBytes(v[:])
}

// AppendString interns s into the reference table and appends a 1-byte
// index referencing it (spec §3, "String: one byte = index into the side
// reference table"). Returns false, leaving the buffer truncated, if the
// table is full.
func (b *Buffer) AppendString(s string, format string) bool {
	idx, ok := b.intern(s)
	if !ok {
		b.truncated = true
		return false
	}
	if !b.writeTag(TagString, format) {
		return false
	}
	return b.writeBytes([]byte{byte(idx)})
}

// AppendStringSpan copies s (as UTF-16 code units) directly into the
// argument stream: a 4-byte length followed by that many code units.
func (b *Buffer) AppendStringSpan(s string, format string) bool {
	units := utf16.Encode([]rune(s))
	if !b.writeTag(TagStringSpan, format) {
		return false
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(units)))
	if !b.writeBytes(lenBuf[:]) {
		return false
	}
	for _, u := range units {
		var ub [2]byte
		binary.LittleEndian.PutUint16(ub[:], u)
		if !b.writeBytes(ub[:]) {
			return false
		}
	}
	return true
}

// AppendUtf8Span copies p directly into the argument stream: a 4-byte
// length followed by that many UTF-8 bytes.
func (b *Buffer) AppendUtf8Span(p []byte, format string) bool {
	if !b.writeTag(TagUtf8StringSpan, format) {
		return false
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(p)))
	if !b.writeBytes(lenBuf[:]) {
		return false
	}
	return b.writeBytes(p)
}

// AppendEnum appends an enum type handle plus its unsigned numeric value.
func (b *Buffer) AppendEnum(handle EnumHandle, value uint64, format string) bool {
	if !b.writeTag(TagEnum, format) {
		return false
	}
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(handle))
	binary.LittleEndian.PutUint64(buf[4:12], value)
	return b.writeBytes(buf[:])
}

// AppendUnmanaged appends an opaque fixed-layout value blob, self-describing
// via a 2-byte length so the decoder never needs the type registry just to
// walk past it.
func (b *Buffer) AppendUnmanaged(handle uint32, blob []byte, format string) bool {
	if !b.writeTag(TagUnmanaged, format) {
		return false
	}
	var hdr [6]byte
	binary.LittleEndian.PutUint32(hdr[0:4], handle)
	binary.LittleEndian.PutUint16(hdr[4:6], uint16(len(blob)))
	if !b.writeBytes(hdr[:]) {
		return false
	}
	return b.writeBytes(blob)
}

// AppendKeyString marks the next appended argument as the value of a
// structured-data key/value pair (spec §3, "KeyString"). Only honored by
// the KeyValue decode mode; Formatted/Unformatted modes render it as an
// ordinary positional argument preceded by its key.
func (b *Buffer) AppendKeyString(key string) bool {
	idx, ok := b.intern(key)
	if !ok {
		b.truncated = true
		return false
	}
	if !b.writeTag(TagKeyString, "") {
		return false
	}
	return b.writeBytes([]byte{byte(idx)})
}

// AppendNull appends an explicit null argument.
func (b *Buffer) AppendNull() bool {
	return b.writeTag(TagNull, "")
}
