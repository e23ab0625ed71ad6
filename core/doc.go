// Package core defines the small set of types shared across every package
// in ember: the Level enum and the errors produced on the hot path.
//
// Nothing in this package allocates. It exists so that pool, record, queue,
// resolver, and logger can all refer to the same Level and error values
// without importing each other.
package core
