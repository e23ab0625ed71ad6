// Package zapbridge adapts a *logger.Logger to zapcore.Core, the same
// backbone bridge/slogbridge uses for log/slog, so code written against
// zap.Logger can be redirected through this library's pipeline.
//
// Modeled on bridge/slogbridge but targeting zap's Entry/Field/CheckedEntry
// vocabulary instead of slog's Record/Attr. This is the call site that
// actually exercises go.uber.org/zap outside the benchmark submodule.
package zapbridge
