package zapbridge

import (
	"math"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/logger"
)

// Core implements zapcore.Core over a *logger.Logger. Unlike zap's own
// cores it carries no encoder: formatting happens downstream, once, in the
// worker goroutine, not once per zap.Field on the caller's goroutine.
type Core struct {
	l      *logger.Logger
	fields []zapcore.Field
}

// New wraps l in a zapcore.Core.
func New(l *logger.Logger) *Core {
	return &Core{l: l}
}

// Enabled reports whether l handles records at the given zap level.
func (c *Core) Enabled(level zapcore.Level) bool {
	return c.l.IsEnabled(zapLevelToCore(level))
}

// With returns a new Core carrying the combined field set.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, len(c.fields), len(c.fields)+len(fields))
	copy(merged, c.fields)
	merged = append(merged, fields...)
	return &Core{l: c.l, fields: merged}
}

// Check adds c to ce if ent's level is enabled, the way every zapcore.Core
// implementation participates in zap's level-gated fast path.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts ent and fields into a record.Buffer and logs it.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	rb := c.l.BeginRecord(zapLevelToCore(ent.Level))

	for _, f := range c.fields {
		rb = appendField(rb, f)
	}
	for _, f := range fields {
		rb = appendField(rb, f)
	}

	rb.Log(ent.Message)
	return nil
}

// Sync flushes every appender reachable from the resolver, matching zap's
// expectation that Sync drains any buffering before returning.
func (c *Core) Sync() error {
	return c.l.Flush()
}

func appendField(rb *logger.RecordBuilder, f zapcore.Field) *logger.RecordBuilder {
	rb = rb.Key(f.Key)
	switch f.Type {
	case zapcore.StringType:
		return rb.String(f.String)
	case zapcore.BoolType:
		return rb.Bool(f.Integer != 0)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return rb.I64(f.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return rb.U64(uint64(f.Integer))
	case zapcore.Float64Type:
		return rb.F64(math.Float64frombits(uint64(f.Integer)))
	case zapcore.Float32Type:
		return rb.F32(math.Float32frombits(uint32(f.Integer)))
	case zapcore.DurationType:
		return rb.TimeSpan(time.Duration(f.Integer))
	case zapcore.TimeType, zapcore.TimeFullType:
		return rb.DateTime(timeFromField(f))
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return rb.String(err.Error())
		}
		return rb.String("")
	default:
		if s, ok := f.Interface.(fmtStringer); ok {
			return rb.String(s.String())
		}
		return rb.String(f.String)
	}
}

type fmtStringer interface {
	String() string
}

// timeFromField reconstructs the time.Time a zapcore.Field encoded. zap
// stores TimeFullType values directly in Interface, and TimeType values as
// UnixNano in Integer with an optional non-UTC *time.Location in Interface.
func timeFromField(f zapcore.Field) time.Time {
	if f.Type == zapcore.TimeFullType {
		if t, ok := f.Interface.(time.Time); ok {
			return t
		}
		return time.Time{}
	}
	if loc, ok := f.Interface.(*time.Location); ok {
		return time.Unix(0, f.Integer).In(loc)
	}
	return time.Unix(0, f.Integer).UTC()
}

func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.ErrorLevel:
		return core.Error
	case level >= zapcore.WarnLevel:
		return core.Warn
	case level >= zapcore.InfoLevel:
		return core.Info
	default:
		return core.Debug
	}
}
