package logger

import "sync/atomic"

// defaultName is the logger name package-level convenience functions use.
const defaultName = ""

var defaultLogger atomic.Pointer[Logger]

// Default returns the root (name "") logger, creating it on first use.
// Grounded on the teacher's logger.Default()/SetDefault() pair
// (logger/default.go), generalized from a single process-wide *Logger to a
// cached handle drawn from the resolver-backed manager.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := GetLogger(defaultName)
	defaultLogger.Store(l)
	return l
}

// Trace begins a Trace-level record on the default logger.
func Trace() *RecordBuilder { return Default().Trace() }

// Debug begins a Debug-level record on the default logger.
func Debug() *RecordBuilder { return Default().Debug() }

// Info begins an Info-level record on the default logger.
func Info() *RecordBuilder { return Default().Info() }

// Warn begins a Warn-level record on the default logger.
func Warn() *RecordBuilder { return Default().Warn() }

// Error begins an Error-level record on the default logger.
func Error() *RecordBuilder { return Default().Error() }

// Fatal begins a Fatal-level record on the default logger.
func Fatal() *RecordBuilder { return Default().Fatal() }
