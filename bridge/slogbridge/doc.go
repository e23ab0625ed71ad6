// Package slogbridge adapts a *logger.Logger to log/slog.Handler, so
// existing code written against slog can be redirected through this
// library's pool/queue/worker pipeline without a rewrite.
//
// Directly adapted from the teacher's handler/slog_handler.go, updated to
// wrap a resolver-backed logger.Logger instead of the teacher's Handler
// interface, and to build records with logger.RecordBuilder's typed
// Append* chain instead of boxing attrs into core.Field.
package slogbridge
