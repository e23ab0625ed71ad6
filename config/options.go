// Package config holds the typed configuration surface spec §6 enumerates:
// pool sizing, per-logger level/appender/exhaustion-strategy definitions,
// and the per-appender level floor. File and CLI loading are out of scope
// (spec §1 non-goals); this package is the typed struct and its
// validation, the way the teacher's handler/consolehandler package types
// ConsoleConfig and applies ConsoleDefaults.
package config

import (
	"time"

	"github.com/emberlog/ember/appender"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/formatter"
	"github.com/emberlog/ember/pool"
	"github.com/emberlog/ember/record"
)

// Defaults named in spec §6.
const (
	DefaultLogMessagePoolSize        = 1024
	DefaultLogMessageBufferSize      = 128
	DefaultLogMessageStringCapacity  = 32
	DefaultNullDisplayString         = "null"
	DefaultTruncatedMessageSuffix    = " [TRUNCATED]"
	DefaultAppenderQuarantineDelay   = 15 * time.Second
	DefaultAutoRegisterEnums         = false
	DefaultIncludeParentAppendersNon = true // every non-root logger
)

// AppenderRef names a registered appender and an optional level floor for
// it (spec §6, "Per-appender: optional Level floor").
//
// Open question (spec.md §9, carried verbatim): the same Appender value
// may be referenced by more than one AppenderRef across different loggers.
// The resolver wraps each concrete appender exactly once in a
// appender.Guarded, so every logger referencing it by name shares that one
// instance's quarantine timer. This is intentional, not a bug: document it
// to operators configuring overlapping logger trees.
type AppenderRef struct {
	Name  string
	Level core.Level // floor; records below this level are not sent to this appender
}

// LoggerConfig is one entry in Config.Loggers (spec §6, "Per-logger:
// Level, Appenders, IncludeParentAppenders, LogMessagePoolExhaustionStrategy").
type LoggerConfig struct {
	Name                  string
	Level                 core.Level
	Appenders             []AppenderRef
	IncludeParentAppenders *bool // nil means "true", the default for non-root loggers
	ExhaustionStrategy    pool.ExhaustionStrategy
}

// includeParents resolves the IncludeParentAppenders default.
func (c LoggerConfig) includeParents() bool {
	if c.IncludeParentAppenders == nil {
		return true
	}
	return *c.IncludeParentAppenders
}

// Config is the full set of options spec §6 enumerates.
type Config struct {
	LogMessagePoolSize       int
	LogMessageBufferSize     int
	LogMessageStringCapacity int
	NullDisplayString        string
	TruncatedMessageSuffix   string
	AppenderQuarantineDelay  time.Duration
	AutoRegisterEnums        bool

	// Formatter renders every record once, upstream of every appender the
	// resolver fans it out to (spec §2 data flow: "worker -> resolver
	// lookup -> formatter -> appender(s)"). Defaults to a TextFormatter;
	// set formatter.NewJSONFormatter for structured output instead.
	Formatter formatter.Formatter

	// Appenders is the set of concrete appenders referenced by name from
	// Root and Loggers. Each entry is wrapped once in appender.Guarded by
	// resolver.Build.
	Appenders map[string]appender.Appender

	// Root is the implicit "" logger at the top of the resolver trie. Its
	// IncludeParentAppenders default is false (there is no parent to
	// include), unlike every other logger.
	Root LoggerConfig

	// Loggers are additional, more specific logger definitions. Order does
	// not matter to callers; resolver.Build sorts by name before building
	// the trie (spec §4.6).
	Loggers []LoggerConfig
}

// DefaultConfig returns a Config with every default named in spec §6. The
// root logger defaults to Info with no appenders; callers add Appenders
// and Root.Appenders (or override Root.Level) before building a resolver.
func DefaultConfig() Config {
	return Config{
		LogMessagePoolSize:       DefaultLogMessagePoolSize,
		LogMessageBufferSize:     DefaultLogMessageBufferSize,
		LogMessageStringCapacity: DefaultLogMessageStringCapacity,
		NullDisplayString:        DefaultNullDisplayString,
		TruncatedMessageSuffix:   DefaultTruncatedMessageSuffix,
		AppenderQuarantineDelay:  DefaultAppenderQuarantineDelay,
		AutoRegisterEnums:        DefaultAutoRegisterEnums,
		Formatter: formatter.NewTextFormatter(formatter.Config{
			Mode:                   record.Formatted,
			NullDisplayString:      DefaultNullDisplayString,
			TruncatedMessageSuffix: DefaultTruncatedMessageSuffix,
		}),
		Appenders: map[string]appender.Appender{},
		Root: LoggerConfig{
			Name:                   "",
			Level:                  core.Info,
			ExhaustionStrategy:     pool.DropAndNotify,
			IncludeParentAppenders: boolPtr(false),
		},
	}
}

func boolPtr(b bool) *bool { return &b }
