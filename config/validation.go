package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// ValidationError reports every problem found while validating a Config,
// not just the first (spec §7, ConfigurationError: "surfaces synchronously
// from initialize" and, per the multierr-everywhere expansion, lists every
// unknown appender reference found).
type ValidationError struct {
	err error
}

func (v *ValidationError) Error() string {
	if v.err == nil {
		return "ember: invalid configuration"
	}
	return "ember: invalid configuration: " + v.err.Error()
}

// Unwrap exposes the underlying multierr chain for errors.Is/errors.As.
func (v *ValidationError) Unwrap() error { return v.err }

// Validate checks that every AppenderRef in Root and Loggers names an
// appender present in c.Appenders, that no two LoggerConfig entries share
// a name, and that the pool-sizing fields are large enough for pool.New to
// hand off to iobuf.NewBoundedPool without panicking. It does not mutate c.
func (c Config) Validate() error {
	var errs error
	seen := map[string]bool{}

	check := func(lc LoggerConfig) {
		if lc.Name != "" {
			if seen[lc.Name] {
				errs = multierr.Append(errs, fmt.Errorf("duplicate logger definition %q", lc.Name))
			}
			seen[lc.Name] = true
		}
		for _, ref := range lc.Appenders {
			if _, ok := c.Appenders[ref.Name]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("logger %q references unknown appender %q", loggerLabel(lc.Name), ref.Name))
			}
		}
	}

	check(c.Root)
	for _, lc := range c.Loggers {
		check(lc)
	}

	if c.LogMessagePoolSize < 1 {
		errs = multierr.Append(errs, fmt.Errorf("LogMessagePoolSize must be >= 1, got %d", c.LogMessagePoolSize))
	}
	if c.LogMessageBufferSize < 1 {
		errs = multierr.Append(errs, fmt.Errorf("LogMessageBufferSize must be >= 1, got %d", c.LogMessageBufferSize))
	}
	if c.LogMessageStringCapacity < 1 {
		errs = multierr.Append(errs, fmt.Errorf("LogMessageStringCapacity must be >= 1, got %d", c.LogMessageStringCapacity))
	}

	if errs == nil {
		return nil
	}
	return &ValidationError{err: errs}
}

func loggerLabel(name string) string {
	if name == "" {
		return "<root>"
	}
	return name
}
