// Package console writes formatted records to an io.Writer, defaulting to
// os.Stdout. It is deliberately simple next to the teacher's
// consolehandler package: that package manages its own async queue and
// writer-contention fast paths because every Handler ran its own goroutine,
// but here the worker is already the single writer for every appender, so
// there is no contention to optimize away.
package console

import (
	"io"
	"os"
	"sync"

	"github.com/emberlog/ember/record"
)

// Appender writes formatted bytes to an underlying io.Writer.
type Appender struct {
	name     string
	mu       sync.Mutex
	w        io.Writer
	encoding string
}

// Config configures a console Appender.
type Config struct {
	Name   string    // defaults to "console"
	Writer io.Writer // defaults to os.Stdout
}

// New creates a console Appender from cfg.
func New(cfg Config) *Appender {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Name == "" {
		cfg.Name = "console"
	}
	return &Appender{name: cfg.Name, w: cfg.Writer}
}

// Name implements appender.Named.
func (a *Appender) Name() string { return a.name }

// Write writes formatted directly to the underlying writer. The mutex only
// guards against Close/Flush racing a Write from shutdown code; the worker
// itself never calls Write concurrently with itself.
func (a *Appender) Write(buf *record.Buffer, formatted []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.w.Write(formatted)
	return err
}

// Flush flushes the underlying writer if it supports flushing.
func (a *Appender) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if f, ok := a.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// SetEncoding records the output encoding name. The console appender
// always writes the UTF-8 bytes it is handed; this only affects what it
// reports back to callers that ask (e.g. diagnostics), matching the
// teacher's handlers, none of which re-encode console output.
func (a *Appender) SetEncoding(enc string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.encoding = enc
	return nil
}

// Close closes the underlying writer if it is closable and is not one of
// the process-owned standard streams.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.w == os.Stdout || a.w == os.Stderr {
		return nil
	}
	if c, ok := a.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
