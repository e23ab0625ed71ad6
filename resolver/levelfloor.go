package resolver

import (
	"github.com/emberlog/ember/appender"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/record"
)

// levelFloor wraps an appender.Appender with a per-appender minimum level
// (spec §6: "Per-appender: optional Level floor"). Records below the
// floor are silently skipped for this appender only; the appender is
// never quarantined for it, since skipping isn't a failure.
type levelFloor struct {
	floor core.Level
	next  appender.Appender
}

func (f *levelFloor) Write(buf *record.Buffer, formatted []byte) error {
	if buf.Level < f.floor {
		return nil
	}
	return f.next.Write(buf, formatted)
}

func (f *levelFloor) Flush() error              { return f.next.Flush() }
func (f *levelFloor) Close() error               { return f.next.Close() }
func (f *levelFloor) SetEncoding(enc string) error { return f.next.SetEncoding(enc) }

// Name implements appender.Named by delegating, so diagnostics still see
// the underlying appender's configured name.
func (f *levelFloor) Name() string {
	if n, ok := f.next.(appender.Named); ok {
		return n.Name()
	}
	return ""
}
