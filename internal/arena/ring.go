// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package arena

// Ring is the scratch allocator used during spatial partition build. Each
// BFS level needs a fresh buffer while the previous level's buffer is
// still being read; once a level finishes, its buffer can be reclaimed
// by the next one, safe because a level only ever reads the previous
// level's layout once, never anything before that.
//
// This is the Go-native shape of the source's ring-arena scratch
// allocator, generalized per the design notes (§9 Scratch-arena double
// buffering): rather than replaying the exact ring-with-wraparound byte
// arithmetic, Ring wraps a single scratch Arena and keeps exactly one
// level's reservation open as a Temporary at a time - retiring the
// previous level's Temporary (EndTemporary) before opening the next
// (BeginTemporary) is the same LIFO discipline §8 requires of the arena
// directly, just driven one level at a time instead of by nested caller
// scopes.
type Ring struct {
	main   *Arena
	cur    Temporary
	active bool
}

// NewRing returns a Ring with the given scratch byte budget.
func NewRing(budget int64) *Ring {
	return &Ring{main: New(budget)}
}

// TryLevel reports whether a level requiring size bytes fits in the
// scratch budget, retiring the previous level's reservation first (since
// only the newest level plus the one being built need to coexist). When
// it does not fit, the caller must treat the remaining unfinished nodes
// as leaves rather than continuing the build - the wrap could not happen
// safely.
func (r *Ring) TryLevel(size int64) bool {
	if r.active {
		r.main.EndTemporary(r.cur)
		r.active = false
	}
	t := r.main.BeginTemporary()
	if _, ok := r.main.Reserve(size, 8); !ok {
		r.main.EndTemporary(t)
		return false
	}
	r.cur = t
	r.active = true
	return true
}

// Used reports the bytes currently reserved: the most recently accepted
// level's, or 0 once a TryLevel has failed (it retires the previous level
// before trying).
func (r *Ring) Used() int64 { return r.main.Allocated }
