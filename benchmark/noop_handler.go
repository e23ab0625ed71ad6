package benchmark

import "github.com/emberlog/ember/record"

// noopAppender discards every record, isolating the pool/queue/worker
// pipeline's own overhead from any downstream I/O cost.
type noopAppender struct{}

func newNoopAppender() *noopAppender {
	return &noopAppender{}
}

func (a *noopAppender) Write(buf *record.Buffer, formatted []byte) error {
	_ = len(formatted)
	return nil
}

func (a *noopAppender) Flush() error { return nil }
func (a *noopAppender) Close() error { return nil }
func (a *noopAppender) SetEncoding(enc string) error { return nil }
