package record

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// enumRegistry maps EnumHandle -> per-value names, avoiding any reflection
// on the hot path (spec §9: "a compact type-handle registry so the worker
// can look up names without reflection at runtime"). Registration itself
// uses reflection once, at startup.
var (
	enumMu      sync.RWMutex
	enumNames   = map[EnumHandle]map[uint64]string{}
	enumNextID  uint32
	enumByType  sync.Map // reflect.Type -> EnumHandle
)

// RegisterEnum assigns a handle to the given enum type and records the
// string form of every value passed in values, keyed by its underlying
// numeric value. It is idempotent: calling it again for a type already
// registered returns the existing handle.
func RegisterEnum(sample any, names map[uint64]string) EnumHandle {
	t := reflect.TypeOf(sample)
	if h, ok := enumByType.Load(t); ok {
		return h.(EnumHandle)
	}

	enumMu.Lock()
	defer enumMu.Unlock()

	handle := EnumHandle(atomic.AddUint32(&enumNextID, 1))
	cp := make(map[uint64]string, len(names))
	for k, v := range names {
		cp[k] = v
	}
	enumNames[handle] = cp
	enumByType.Store(t, handle)
	return handle
}

// HandleForType returns the handle previously assigned to t by RegisterEnum,
// or (0, false) if t was never registered.
func HandleForType(t reflect.Type) (EnumHandle, bool) {
	h, ok := enumByType.Load(t)
	if !ok {
		return 0, false
	}
	return h.(EnumHandle), true
}

// LookupEnumValue returns the registered name for value under handle. If
// handle is unknown or value was never named, ok is false and the caller
// falls back to printing the raw numeric value.
func LookupEnumValue(handle EnumHandle, value uint64) (string, bool) {
	enumMu.RLock()
	defer enumMu.RUnlock()
	names, ok := enumNames[handle]
	if !ok {
		return "", false
	}
	name, ok := names[value]
	return name, ok
}

// AutoRegisterEnum reflects over a Go enum type (an integer-kinded named
// type with String() string, the standard Go "stringer enum" idiom) and
// registers every value from 0 up to the first value whose String() output
// looks synthesized (contains no letters, meaning stringer had no case for
// it). It is intentionally conservative: callers with sparse or
// non-contiguous enum values should use RegisterEnum directly instead.
func AutoRegisterEnum(sample fmt.Stringer, maxProbe uint64) EnumHandle {
	t := reflect.TypeOf(sample)
	if h, ok := enumByType.Load(t); ok {
		return h.(EnumHandle)
	}
	names := make(map[uint64]string)
	v := reflect.New(t).Elem()
	signed := v.Kind() == reflect.Int || v.Kind() == reflect.Int8 ||
		v.Kind() == reflect.Int16 || v.Kind() == reflect.Int32 || v.Kind() == reflect.Int64
	for i := uint64(0); i < maxProbe; i++ {
		if signed {
			v.SetInt(int64(i))
		} else {
			v.SetUint(i)
		}
		s, ok := v.Addr().Interface().(fmt.Stringer)
		if !ok {
			s, ok = v.Interface().(fmt.Stringer)
		}
		if !ok {
			break
		}
		text := s.String()
		if !looksNamed(text) {
			break
		}
		names[i] = text
	}
	return RegisterEnum(sample, names)
}

func looksNamed(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
