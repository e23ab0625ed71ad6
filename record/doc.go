// Package record implements the encoded log record: a pooled, fixed-size
// Buffer carrying a logger's level, timestamp, thread identity, message,
// and a compact TLV-like stream of typed arguments.
//
// A Buffer is owned by exactly one thing at a time — the producer between
// Reset and handoff, the queue in transit, or the worker between dequeue and
// release — mirroring core/entry.go's pooled-entry discipline in the teacher
// repo, generalized from a slice-of-Field list to a self-describing byte
// stream so the producer never boxes an argument.
//
// Strings cannot be embedded byte-for-byte into the argument stream without
// unsafe aliasing across goroutine boundaries, so they are interned into a
// bounded side table (Buffer.refs) instead; the stream carries only a 1-byte
// index into that table.
package record
