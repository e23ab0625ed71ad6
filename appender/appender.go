package appender

import "github.com/emberlog/ember/record"

// Appender is the interface every log destination implements. Write
// receives a fully decoded, formatted record and must not retain buf's
// slice past the call (spec §5: "the formatted bytes belong to the caller
// for the duration of Write only"). SetEncoding matches spec §6's
// appender capability set exactly; appenders that only ever write UTF-8
// (console, file) can treat it as a no-op.
type Appender interface {
	Write(buf *record.Buffer, formatted []byte) error
	Flush() error
	Close() error
	SetEncoding(enc string) error
}

// Named is implemented by appenders that want to report a stable name in
// logs and diagnostics (e.g. quarantine notices).
type Named interface {
	Name() string
}
