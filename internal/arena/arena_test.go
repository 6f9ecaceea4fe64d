package arena

import (
	"testing"
	"unsafe"
)

func sliceAddr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

func TestAllocBounds(t *testing.T) {
	a := New(8)

	region, ok := a.AllocBytes(8, 1)
	if !ok {
		t.Fatalf("allocating 8 bytes from an 8-byte arena should succeed")
	}
	if len(region) != 8 {
		t.Errorf("region length = %d, want 8", len(region))
	}
	if a.Used() != 8 {
		t.Errorf("Used() = %d, want 8", a.Used())
	}
	if a.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", a.Remaining())
	}

	if _, ok := a.AllocBytes(1, 1); ok {
		t.Errorf("allocation past capacity should fail, not succeed")
	}
}

func TestAllocZeroed(t *testing.T) {
	a := New(64)
	region, ok := a.AllocBytes(16, 1)
	if !ok {
		t.Fatal("alloc failed")
	}
	for i := range region {
		region[i] = 0xff
	}
	a.Reset()
	region2, ok := a.AllocBytes(16, 1)
	if !ok {
		t.Fatal("alloc after reset failed")
	}
	for i, b := range region2 {
		if b != 0 {
			t.Fatalf("byte %d not zeroed after reset: %#x", i, b)
		}
	}
	if a.Used() != 16 {
		t.Errorf("Used() after reset+alloc = %d, want 16", a.Used())
	}
}

func TestAllocAlignment(t *testing.T) {
	a := New(128)
	if _, ok := a.AllocBytes(1, 1); !ok {
		t.Fatal("alloc failed")
	}
	region, ok := a.AllocBytes(8, 8)
	if !ok {
		t.Fatal("aligned alloc failed")
	}
	// The region must start on an 8-byte boundary even though the cursor was
	// at offset 1.
	if addr := sliceAddr(region); addr%8 != 0 {
		t.Errorf("region address %#x not 8-aligned", addr)
	}
}

func TestAllocBadArgs(t *testing.T) {
	a := New(64)
	if _, ok := a.AllocBytes(-1, 1); ok {
		t.Error("negative size should fail")
	}
	if _, ok := a.AllocBytes(8, 0); ok {
		t.Error("zero alignment should fail")
	}
	if _, ok := a.AllocBytes(8, 3); ok {
		t.Error("non-power-of-two alignment should fail")
	}
}

func TestTypedAlloc(t *testing.T) {
	type node struct {
		a uint64
		b uint32
	}
	a := New(256)
	n, ok := Alloc[node](a)
	if !ok {
		t.Fatal("Alloc failed")
	}
	if n.a != 0 || n.b != 0 {
		t.Error("allocated node not zeroed")
	}
	n.a = 42

	s, ok := AllocSlice[node](a, 4)
	if !ok {
		t.Fatal("AllocSlice failed")
	}
	if len(s) != 4 {
		t.Fatalf("slice length = %d, want 4", len(s))
	}
	s[3].b = 7
	if n.a != 42 {
		t.Error("earlier allocation clobbered by later one")
	}
}

func TestAllocSliceExhaustion(t *testing.T) {
	a := New(32)
	if _, ok := AllocSlice[uint64](a, 100); ok {
		t.Error("oversized slice allocation should fail")
	}
	// The failed allocation must not have moved the cursor past capacity.
	if _, ok := AllocSlice[uint64](a, 4); !ok {
		t.Error("fitting allocation should still succeed after a failed one")
	}
}
