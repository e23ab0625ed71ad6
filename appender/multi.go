package appender

import (
	"go.uber.org/multierr"

	"github.com/emberlog/ember/record"
)

// Multi fans a record out to every wrapped Appender, generalizing the
// teacher's handler.MultiHandler from "last error wins" to multierr
// aggregation so a caller can inspect every sink that failed, not just the
// last one in the list.
type Multi struct {
	appenders []Appender
}

// NewMulti returns a Multi wrapping the given appenders in order.
func NewMulti(appenders ...Appender) *Multi {
	return &Multi{appenders: appenders}
}

// Write forwards to every wrapped appender, continuing past failures so one
// bad sink never prevents the others from receiving the record.
func (m *Multi) Write(buf *record.Buffer, formatted []byte) error {
	var err error
	for _, a := range m.appenders {
		err = multierr.Append(err, a.Write(buf, formatted))
	}
	return err
}

// Flush flushes every wrapped appender.
func (m *Multi) Flush() error {
	var err error
	for _, a := range m.appenders {
		err = multierr.Append(err, a.Flush())
	}
	return err
}

// Close closes every wrapped appender.
func (m *Multi) Close() error {
	var err error
	for _, a := range m.appenders {
		err = multierr.Append(err, a.Close())
	}
	return err
}

// SetEncoding forwards to every wrapped appender.
func (m *Multi) SetEncoding(enc string) error {
	var err error
	for _, a := range m.appenders {
		err = multierr.Append(err, a.SetEncoding(enc))
	}
	return err
}

// Appenders returns the wrapped appenders in order, for callers (e.g. the
// resolver) that need to inspect or re-guard them individually.
func (m *Multi) Appenders() []Appender {
	return m.appenders
}
