package core

import "errors"

// ErrPoolExhausted is returned (or silently swallowed, depending on the
// configured pool.ExhaustionStrategy) when no buffer is free.
var ErrPoolExhausted = errors.New("ember: message buffer pool exhausted")

// ErrLoggerDisabled names the case where the logger's effective level
// filters out the requested level. It is not a failure. BeginRecord does
// not return it: a disabled level yields a no-op RecordBuilder instead.
var ErrLoggerDisabled = errors.New("ember: logger disabled for level")

// ErrShuttingDown is returned by a WaitUntilAvailable pool acquire once the
// pool has been shut down (pool.Pool.Shutdown).
var ErrShuttingDown = errors.New("ember: worker is shutting down")

// FailureHandler receives errors the worker cannot attribute to a single
// appender (WorkerFailure, per spec §7). The default writes to os.Stderr.
// Tests may replace it to capture output instead.
var FailureHandler = defaultFailureHandler
