// Package queue carries record.Buffer pointers from producer goroutines to
// the single worker goroutine that formats and appends them. It wraps
// code.hybscloud.com/lfq's FAA-based MPSC queue, which is built for exactly
// this multi-producer/single-consumer shape and needs no locks on either
// side.
package queue
