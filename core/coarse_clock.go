package core

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

var (
	coarseClockOnce sync.Once
	coarseNow       unsafe.Pointer // *time.Time
)

// StartCoarseClock starts the background goroutine that caches time.Now()
// every 500µs. It is safe to call multiple times; the goroutine is started
// exactly once. The goroutine runs for the lifetime of the process; this is
// intentional because logging typically spans the entire application
// lifetime. Stamping records from this cache instead of calling time.Now()
// directly on every Log is exactly the producer-path cost spec §4.2 step 3
// is concerned with: a monotonic syscall-free read instead of one VDSO call
// per record.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
			}
		}()
	})
}

// CoarseNow returns the most recently cached time.Time value. If
// StartCoarseClock has not been called, it starts the clock first and
// returns the freshly taken sample, so callers never observe a zero time.
func CoarseNow() time.Time {
	p := atomic.LoadPointer(&coarseNow)
	if p == nil {
		StartCoarseClock()
		p = atomic.LoadPointer(&coarseNow)
	}
	return *(*time.Time)(p)
}
