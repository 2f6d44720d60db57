// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package arena provides the two explicitly owned memory regions the
// renderer uses: a "main" arena (scene, partition, output, textures;
// lifetime = program) and a "scratch" arena (temporary build structures;
// freed in LIFO stack order). It is the Go-native shape of the teacher
// source's memory_arena / temporary_memory pair - slice-backed instead of
// a raw byte buffer, since Go gives no portable way to carve typed structs
// out of an untyped byte slice without unsafe, and the renderer's build
// phase allocates whole slices (primitive indices, node batches) rather
// than individual structs.
package arena

import "fmt"

// Arena is a bump allocator over a byte budget. Allocated tracks how many
// bytes have been handed out so far; Capacity is the budget. Arena itself
// does not hold the bytes - callers ask it "can I afford N bytes of
// alignment A" and it bookkeeps the answer, while the actual storage is a
// plain Go slice the caller grows. This mirrors the source's alignment
// and capacity accounting without reimplementing Go's allocator underneath.
type Arena struct {
	Capacity  int64
	Allocated int64
	tempCount int
}

// New returns an Arena with the given byte capacity.
func New(capacity int64) *Arena {
	if capacity <= 0 {
		panic("arena: capacity must be positive")
	}
	return &Arena{Capacity: capacity}
}

// alignUp rounds n up to the next multiple of align (align must be a power
// of two).
func alignUp(n, align int64) int64 {
	return (n + align - 1) &^ (align - 1)
}

// Reserve accounts for size bytes at the given alignment (cache-line 64 for
// per-thread stats, 16 for primitive arrays, 1 for byte buffers, per the
// resource model). It reports whether the reservation fits; on success the
// arena's Allocated counter advances and the starting offset is returned.
func (a *Arena) Reserve(size, align int64) (offset int64, ok bool) {
	if align <= 0 || align&(align-1) != 0 {
		panic("arena: alignment must be a positive power of two")
	}
	start := alignUp(a.Allocated, align)
	end := start + size
	if end > a.Capacity {
		return 0, false
	}
	a.Allocated = end
	return start, true
}

// Temporary is a checkpoint returned by BeginTemporary. Passing it to
// EndTemporary rewinds the arena to the state it had at Begin time.
type Temporary struct {
	arena            *Arena
	initialAllocated int64
	tempCount        int
}

// BeginTemporary opens a nested temporary allocation region. Temporaries
// must be closed in LIFO order with EndTemporary or KeepTemporary.
func (a *Arena) BeginTemporary() Temporary {
	t := Temporary{arena: a, initialAllocated: a.Allocated, tempCount: a.tempCount}
	a.tempCount++
	return t
}

// EndTemporary releases everything allocated since the matching
// BeginTemporary, restoring Allocated to its value at Begin time.
func (a *Arena) EndTemporary(t Temporary) {
	if t.arena != a {
		panic("arena: EndTemporary called on the wrong arena")
	}
	a.Allocated = t.initialAllocated
	a.tempCount--
	if t.tempCount != a.tempCount {
		panic(fmt.Sprintf("arena: unbalanced temporary regions (got depth %d, want %d)", a.tempCount, t.tempCount))
	}
}

// KeepTemporary closes the temporary region without rewinding Allocated,
// committing whatever was allocated inside it to the enclosing scope.
func (a *Arena) KeepTemporary(t Temporary) {
	if t.arena != a {
		panic("arena: KeepTemporary called on the wrong arena")
	}
	a.tempCount--
	if t.tempCount != a.tempCount {
		panic(fmt.Sprintf("arena: unbalanced temporary regions (got depth %d, want %d)", a.tempCount, t.tempCount))
	}
}

// Reset rewinds the arena to empty and clears the open temporary-region
// count. Nothing in the renderer calls it.
func (a *Arena) Reset() {
	a.Allocated = 0
	a.tempCount = 0
}
