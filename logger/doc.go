// Package logger is the producer-facing façade: Initialize wires a pool,
// queue, resolver, and worker together from a config.Config; GetLogger
// returns a cached handle whose BeginRecord implements spec.md §4.2's
// five-step producer path (check level, acquire buffer, encode, enqueue,
// and on failure fall back to the configured exhaustion behavior) without
// allocating on the hot path.
//
// Grounded on the teacher's logger package (logger/logger.go,
// logger/default.go): the level-check-before-work discipline and the
// package-level Default() convenience surface carry over (this package has
// no SetDefault); BeginRecord/RecordBuilder replace the teacher's Field-slice API
// because this library's zero-allocation requirement rules out boxing
// arguments into interface{}-backed core.Field values.
package logger
