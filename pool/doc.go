// Package pool manages the fixed-size set of record.Buffer instances a
// logger draws from on its hot path. It wraps code.hybscloud.com/iobuf's
// lock-free BoundedPool, which hands out a stable integer "indirect" for
// each slot rather than moving buffer values around, and layers the three
// exhaustion strategies of spec §2 on top of the pool's own non-blocking
// mode: DropAndNotify, Drop, and WaitUntilAvailable.
package pool
