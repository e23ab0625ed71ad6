// Package worker implements the single background goroutine that drains
// the producer->worker queue, resolves each record's appender set, formats
// it, and hands it to every appender (spec §4.4).
//
// Grounded on the teacher's AsyncConsoleHandler.process goroutine
// (handler/consolehandler/console_async.go): a batch-drain-then-block loop,
// generalized from a single chan *core.Entry to queue.Queue, and from "one
// handler" to "resolve per-record appender set, iterate it". Idle backoff
// and periodic flush are new relative to the teacher (which has no idle
// flush) and follow the same time.Timer-reuse style as the teacher's
// blockTimer.
package worker
