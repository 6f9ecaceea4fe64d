package arena

import "unsafe"

// Arena is a fixed-capacity bump allocator. Regions are handed out aligned and
// zeroed, and reclaimed only in bulk via Reset. There is no per-allocation free:
// the cost model is "allocate for one checking session, reset between sessions",
// which removes use-after-free and fragmentation concerns entirely.
type Arena struct {
	buf []byte
	off int
}

// New creates an arena with a fixed backing buffer of capacity bytes.
func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{buf: make([]byte, capacity)}
}

// AllocBytes returns a zeroed region of size bytes aligned to align, or false
// when the request would exceed the remaining capacity. align must be a power
// of two; size zero yields an empty, valid slice.
func (a *Arena) AllocBytes(size, align int) ([]byte, bool) {
	if size < 0 || align <= 0 || align&(align-1) != 0 {
		return nil, false
	}
	base := uintptr(0)
	if len(a.buf) > 0 {
		base = uintptr(unsafe.Pointer(&a.buf[0]))
	}
	// Align the absolute address of the cursor, not the offset: the backing
	// buffer itself is only guaranteed to be aligned for the allocator that
	// produced it.
	addr := base + uintptr(a.off)
	pad := int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
	if a.off+pad+size > len(a.buf) {
		return nil, false
	}
	start := a.off + pad
	a.off = start + size
	region := a.buf[start : start+size : start+size]
	for i := range region {
		region[i] = 0
	}
	return region, true
}

// Used reports how many bytes the cursor has consumed, padding included.
func (a *Arena) Used() int { return a.off }

// Remaining reports how many bytes are left before the cursor hits capacity.
func (a *Arena) Remaining() int { return len(a.buf) - a.off }

// Reset rewinds the cursor and re-zeroes the whole buffer so stale data cannot
// leak into regions handed out by a later session.
func (a *Arena) Reset() {
	for i := range a.buf {
		a.buf[i] = 0
	}
	a.off = 0
}

// Alloc carves out one zeroed T.
func Alloc[T any](a *Arena) (*T, bool) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	region, ok := a.AllocBytes(size, align)
	if !ok {
		return nil, false
	}
	if size == 0 {
		return &zero, true
	}
	return (*T)(unsafe.Pointer(&region[0])), true
}

// AllocSlice carves out a zeroed []T of length n.
func AllocSlice[T any](a *Arena, n int) ([]T, bool) {
	if n < 0 {
		return nil, false
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	if n == 0 || size == 0 {
		return make([]T, 0), true
	}
	region, ok := a.AllocBytes(size*n, align)
	if !ok {
		return nil, false
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&region[0])), n), true
}
