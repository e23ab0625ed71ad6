package formatter

import (
	"bytes"
	"io"

	"github.com/emberlog/ember/record"
)

// DefaultPattern is the prefix pattern used when Config.Pattern is empty.
const DefaultPattern = "%date %time %level %logger"

// TextFormatter renders a record.Buffer as a prefix line followed by its
// decoded argument stream, grounded on the teacher's TextFormatter
// (formatter/text.go): pre-parse once, render with AppendFormat-style
// helpers rather than fmt.Sprintf.
type TextFormatter struct {
	Config
	pattern *PrefixPattern
}

// NewTextFormatter builds a TextFormatter from cfg, parsing cfg.Pattern
// once (DefaultPattern if empty).
func NewTextFormatter(cfg Config) *TextFormatter {
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &TextFormatter{Config: cfg, pattern: ParsePrefixPattern(pattern)}
}

// Format renders buf and returns a freshly allocated copy of the result,
// implementing Formatter.
func (f *TextFormatter) Format(buf *record.Buffer) ([]byte, error) {
	out := getBuffer()
	defer putBuffer(out)

	f.formatToBuffer(buf, out)

	result := make([]byte, out.Len())
	copy(result, out.Bytes())
	return result, nil
}

// FormatTo implements WriterFormatter, writing directly to w.
func (f *TextFormatter) FormatTo(buf *record.Buffer, w io.Writer) error {
	out := getBuffer()
	f.formatToBuffer(buf, out)
	_, err := w.Write(out.Bytes())
	putBuffer(out)
	return err
}

// FormatBuffer implements BufferFormatter, the path the worker actually
// uses: render into a scratch buffer it owns across iterations.
func (f *TextFormatter) FormatBuffer(buf *record.Buffer, out *bytes.Buffer) {
	f.formatToBuffer(buf, out)
}

func (f *TextFormatter) formatToBuffer(buf *record.Buffer, out *bytes.Buffer) {
	if len(f.pattern.segments) > 0 {
		out.WriteString(f.pattern.WriteString(buf))
	}
	if buf.Message != "" {
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(buf.Message)
	}

	mode := f.Mode
	var kv []record.KV
	record.Decode(buf, mode, out, &kv, f.decodeOptions())

	if mode == record.KeyValue {
		for _, pair := range kv {
			out.WriteByte(' ')
			out.WriteString(pair.Key)
			out.WriteByte('=')
			out.WriteString(pair.Value)
		}
	}

	if buf.Exception != nil {
		out.WriteString(" error=")
		out.WriteString(buf.Exception.Error())
	}

	out.WriteByte('\n')
}
