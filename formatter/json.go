package formatter

import (
	"bytes"
	"io"
	"time"

	"github.com/emberlog/ember/record"
)

// JSONFormatter renders a record.Buffer as a single JSON object, grounded
// on the teacher's JSONFormatter (formatter/json.go): hand-rolled escaping
// instead of encoding/json, since encoding/json's reflection-based
// marshaling would reintroduce the allocation the rest of this library
// spends its hot path avoiding.
//
// buf.Message, unmodified, becomes the "msg" field. The argument stream is
// always decoded in KeyValue mode regardless of Config.Mode: only arguments
// preceded by a Key become sibling top-level fields, grounded on the
// teacher's json.go appending one `,"key":value` per core.Field. Unkeyed
// (positional) arguments are not rendered by this formatter; use
// TextFormatter, which honors Config.Mode, when positional argument text
// must appear in the output.
type JSONFormatter struct {
	Config
	TimestampFormat string // default time.RFC3339Nano
}

// NewJSONFormatter builds a JSONFormatter from cfg.
func NewJSONFormatter(cfg Config) *JSONFormatter {
	return &JSONFormatter{Config: cfg, TimestampFormat: time.RFC3339Nano}
}

func (f *JSONFormatter) Format(buf *record.Buffer) ([]byte, error) {
	out := getBuffer()
	defer putBuffer(out)
	f.formatJSON(buf, out)
	result := make([]byte, out.Len())
	copy(result, out.Bytes())
	return result, nil
}

func (f *JSONFormatter) FormatTo(buf *record.Buffer, w io.Writer) error {
	out := getBuffer()
	f.formatJSON(buf, out)
	_, err := w.Write(out.Bytes())
	putBuffer(out)
	return err
}

func (f *JSONFormatter) FormatBuffer(buf *record.Buffer, out *bytes.Buffer) {
	f.formatJSON(buf, out)
}

func (f *JSONFormatter) formatJSON(buf *record.Buffer, out *bytes.Buffer) {
	out.WriteByte('{')

	out.WriteString(`"time":"`)
	out.Write(buf.Timestamp.AppendFormat(out.AvailableBuffer(), f.TimestampFormat))
	out.WriteByte('"')

	out.WriteString(`,"level":"`)
	out.WriteString(buf.Level.String())
	out.WriteByte('"')

	out.WriteString(`,"logger":"`)
	appendJSONString(out, buf.Logger)
	out.WriteByte('"')

	msg := getBuffer()
	var kv []record.KV
	record.Decode(buf, record.KeyValue, msg, &kv, f.decodeOptions())

	out.WriteString(`,"msg":"`)
	appendJSONString(out, buf.Message)
	out.WriteByte('"')

	if buf.Truncated() {
		out.WriteString(`,"truncated":true`)
	}

	if buf.Exception != nil {
		out.WriteString(`,"error":"`)
		appendJSONString(out, buf.Exception.Error())
		out.WriteByte('"')
	}

	for _, pair := range kv {
		out.WriteString(`,"`)
		appendJSONString(out, pair.Key)
		out.WriteString(`":"`)
		appendJSONString(out, pair.Value)
		out.WriteByte('"')
	}
	putBuffer(msg)

	out.WriteString("}\n")
}

// appendJSONString writes a JSON-escaped string (no surrounding quotes).
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
