package record

// Tag identifies the type of one encoded argument in a Buffer's byte
// region. The low 7 bits name the type; the high bit (FormatFlagBit) marks
// that the byte immediately following the tag is a reference-table index
// naming a format specifier for this argument.
type Tag uint8

// formatFlagBit is the high bit of a tag byte (spec §3, "FormatFlag").
const formatFlagBit Tag = 0x80

// tagMask strips the FormatFlag bit to recover the base type.
const tagMask Tag = 0x7F

const (
	TagBool Tag = iota
	TagU8
	TagI8
	TagChar
	TagI16
	TagU16
	TagI32
	TagU32
	TagI64
	TagU64
	TagF32
	TagF64
	TagDecimal128
	TagIntPtr
	TagUintPtr
	TagDateTime
	TagTimeSpan
	TagDateOnly
	TagTimeOnly
	TagGUID
	TagString
	TagStringSpan
	TagUtf8StringSpan
	TagEnum
	TagUnmanaged
	TagKeyString
	TagNull
	TagEndOfTruncatedMessage
)

var tagNames = [...]string{
	TagBool:                  "Bool",
	TagU8:                    "U8",
	TagI8:                    "I8",
	TagChar:                  "Char",
	TagI16:                   "I16",
	TagU16:                   "U16",
	TagI32:                   "I32",
	TagU32:                   "U32",
	TagI64:                   "I64",
	TagU64:                   "U64",
	TagF32:                   "F32",
	TagF64:                   "F64",
	TagDecimal128:            "Decimal128",
	TagIntPtr:                "IntPtr",
	TagUintPtr:               "UintPtr",
	TagDateTime:              "DateTime",
	TagTimeSpan:              "TimeSpan",
	TagDateOnly:              "DateOnly",
	TagTimeOnly:              "TimeOnly",
	TagGUID:                  "GUID",
	TagString:                "String",
	TagStringSpan:            "StringSpan",
	TagUtf8StringSpan:        "Utf8StringSpan",
	TagEnum:                  "Enum",
	TagUnmanaged:             "Unmanaged",
	TagKeyString:             "KeyString",
	TagNull:                  "Null",
	TagEndOfTruncatedMessage: "EndOfTruncatedMessage",
}

// String returns the tag's base-type name, ignoring the FormatFlag bit.
func (t Tag) String() string {
	base := t & tagMask
	if int(base) < len(tagNames) {
		return tagNames[base]
	}
	return "Unknown"
}

// HasFormat reports whether the FormatFlag bit is set on an encoded tag
// byte read from the stream.
func (t Tag) HasFormat() bool {
	return t&formatFlagBit != 0
}

// Base strips the FormatFlag bit, returning the underlying type tag.
func (t Tag) Base() Tag {
	return t & tagMask
}

// GUID is a raw 16-byte globally unique identifier. Formatting follows the
// conventional 8-4-4-4-12 hex grouping; byte order is caller-defined (this
// package treats it as an opaque blob, like the spec's "pointer-sized" and
// "unmanaged" tags).
type GUID [16]byte

// Decimal128 is a raw 16-byte decimal value. Go has no built-in 128-bit
// decimal type; this package stores the caller's 16 bytes verbatim and
// decodes them as a little-endian unscaled 64-bit significand (bytes 0-7)
// plus a single scale byte (byte 8, bytes 9-15 reserved) rather than
// attempting full IEEE 754-2008 decimal128 semantics, which no consumer of
// this package's text output needs.
type Decimal128 [16]byte

// EnumHandle identifies a registered enum type without runtime reflection
// (spec §9, "a compact type-handle registry so the worker can look up names
// without reflection at runtime").
type EnumHandle uint32
