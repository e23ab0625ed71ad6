// Package appender defines the sink side of a log record's journey: the
// Appender interface every destination implements, a Guarded wrapper that
// quarantines a misbehaving appender instead of retrying it every record
// (spec §5), and a Multi fan-out that aggregates close/flush errors with
// go.uber.org/multierr instead of the teacher's "last error wins".
package appender
