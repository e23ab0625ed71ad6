package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/emberlog/ember/record"
)

// Formatter renders a decoded record.Buffer to bytes (spec §6: "Formatter
// interface: format(LoggedMessage) -> char_span").
type Formatter interface {
	Format(buf *record.Buffer) ([]byte, error)
}

// WriterFormatter is an optional interface letting a Formatter write
// directly to an io.Writer, skipping an intermediate byte-slice copy — the
// same split the teacher's formatter package makes between Format and
// FormatTo.
type WriterFormatter interface {
	FormatTo(buf *record.Buffer, w io.Writer) error
}

// BufferFormatter is an optional interface letting a Formatter render into
// a caller-owned bytes.Buffer, avoiding this package's own buffer pool.
// The worker prefers this path and falls back to Format only for
// formatters that lack it: it owns one scratch bytes.Buffer, reused for
// every record, and never touches getBuffer/putBuffer itself.
type BufferFormatter interface {
	FormatBuffer(buf *record.Buffer, out *bytes.Buffer)
}

// Config holds the options shared by every Formatter implementation in
// this package.
type Config struct {
	// Pattern is the prefix pattern, evaluated once per message ahead of
	// the argument stream (spec §4.7). Empty means no prefix at all.
	Pattern string
	// Mode selects how the argument stream itself is rendered.
	Mode record.Mode
	// NullDisplayString and TruncatedMessageSuffix mirror the identically
	// named config options in spec §6.
	NullDisplayString     string
	TruncatedMessageSuffix string
	// MaxOutputBytes bounds the rendered argument text, 0 = unbounded.
	MaxOutputBytes int
}

func (c Config) decodeOptions() record.DecodeOptions {
	return record.DecodeOptions{
		NullDisplay:     c.NullDisplayString,
		TruncatedSuffix: c.TruncatedMessageSuffix,
		MaxOutputBytes:  c.MaxOutputBytes,
	}
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}
