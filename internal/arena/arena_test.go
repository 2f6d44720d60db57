package arena

import "testing"

func TestReserveRespectsCapacity(t *testing.T) {
	a := New(128)
	if _, ok := a.Reserve(64, 16); !ok {
		t.Fatal("expected first 64-byte reservation to fit in 128-byte arena")
	}
	if _, ok := a.Reserve(128, 16); ok {
		t.Fatal("expected over-budget reservation to fail")
	}
}

func TestReserveAlignment(t *testing.T) {
	a := New(256)
	a.Reserve(1, 1) // misalign the cursor
	off, ok := a.Reserve(8, 64)
	if !ok {
		t.Fatal("expected reservation to fit")
	}
	if off%64 != 0 {
		t.Errorf("offset %d is not 64-byte aligned", off)
	}
}

// TestTemporaryBalance exercises the invariant from the testable
// properties: after any balanced BeginTemporary/EndTemporary pair, the
// arena's allocated counter equals its value at Begin.
func TestTemporaryBalance(t *testing.T) {
	a := New(1024)
	a.Reserve(100, 1)
	before := a.Allocated

	tmp := a.BeginTemporary()
	a.Reserve(500, 1)
	a.EndTemporary(tmp)

	if a.Allocated != before {
		t.Errorf("allocated=%d want %d after balanced temporary", a.Allocated, before)
	}
}

func TestNestedTemporaries(t *testing.T) {
	a := New(1024)
	outer := a.BeginTemporary()
	a.Reserve(50, 1)
	inner := a.BeginTemporary()
	a.Reserve(50, 1)
	a.EndTemporary(inner)
	afterInner := a.Allocated
	a.EndTemporary(outer)

	if afterInner != 50 {
		t.Errorf("allocated after closing inner=%d want 50", afterInner)
	}
	if a.Allocated != 0 {
		t.Errorf("allocated after closing outer=%d want 0", a.Allocated)
	}
}

func TestKeepTemporaryCommits(t *testing.T) {
	a := New(1024)
	tmp := a.BeginTemporary()
	a.Reserve(200, 1)
	a.KeepTemporary(tmp)

	if a.Allocated != 200 {
		t.Errorf("allocated=%d want 200 after KeepTemporary", a.Allocated)
	}
}

func TestRingWrapsWhenLevelFits(t *testing.T) {
	r := NewRing(1024)
	if !r.TryLevel(512) {
		t.Fatal("expected level within budget to fit")
	}
	if !r.TryLevel(900) {
		t.Fatal("expected second level within budget to fit (previous level reclaimed)")
	}
}

func TestRingFailsWhenLevelTooLarge(t *testing.T) {
	r := NewRing(256)
	if r.TryLevel(512) {
		t.Fatal("expected over-budget level to fail")
	}
}
