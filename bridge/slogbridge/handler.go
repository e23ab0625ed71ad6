package slogbridge

import (
	"context"
	"log/slog"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/logger"
)

// Handler implements slog.Handler over a *logger.Logger. Enabled defers to
// the wrapped logger's own resolved level, so dynamic reconfiguration
// (resolver.Build swapping in a new tree) is visible through slog without
// the handler needing to be rebuilt.
type Handler struct {
	l     *logger.Logger
	attrs []slog.Attr
	group string
}

// New wraps l in a slog.Handler.
func New(l *logger.Logger) *Handler {
	return &Handler{l: l}
}

// Enabled reports whether l handles records at the given slog level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.IsEnabled(slogLevelToCore(level))
}

// Handle converts rec into a record.Buffer via BeginRecord and logs it.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	rb := h.l.BeginRecord(slogLevelToCore(rec.Level))

	for _, a := range h.attrs {
		rb = appendAttr(rb, h.group, a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		rb = appendAttr(rb, h.group, a)
		return true
	})

	rb.Log(rec.Message)
	return nil
}

// WithAttrs returns a new Handler carrying the combined attribute set.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	merged = append(merged, attrs...)
	return &Handler{l: h.l, attrs: merged, group: h.group}
}

// WithGroup returns a new Handler whose attribute keys are prefixed with
// name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	attrs := make([]slog.Attr, len(h.attrs))
	copy(attrs, h.attrs)
	return &Handler{l: h.l, attrs: attrs, group: group}
}

func appendAttr(rb *logger.RecordBuilder, group string, a slog.Attr) *logger.RecordBuilder {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		prefix := a.Key
		if group != "" {
			prefix = group + "." + a.Key
		}
		for _, ga := range a.Value.Group() {
			rb = appendAttr(rb, prefix, ga)
		}
		return rb
	}

	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}
	rb = rb.Key(key)

	switch a.Value.Kind() {
	case slog.KindString:
		return rb.String(a.Value.String())
	case slog.KindInt64:
		return rb.I64(a.Value.Int64())
	case slog.KindUint64:
		return rb.U64(a.Value.Uint64())
	case slog.KindFloat64:
		return rb.F64(a.Value.Float64())
	case slog.KindBool:
		return rb.Bool(a.Value.Bool())
	case slog.KindTime:
		return rb.DateTime(a.Value.Time())
	case slog.KindDuration:
		return rb.TimeSpan(a.Value.Duration())
	default:
		if err, ok := a.Value.Any().(error); ok {
			return rb.String(err.Error())
		}
		return rb.String(a.Value.String())
	}
}

func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.Error
	case level >= slog.LevelWarn:
		return core.Warn
	case level >= slog.LevelInfo:
		return core.Info
	default:
		return core.Debug
	}
}
