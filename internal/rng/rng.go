// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rng provides the per-row deterministic random sequence used by
// the path tracer. It is the Go-native replacement for the inline rnd()
// helper in the teacher's ray trace example, generalized from a single
// unilateral sample to the full set of samples the shading loop needs:
// unilateral, bilateral, unit-ball, and unit-sphere.
package rng

import "github.com/gazed/pathtrace/internal/geom"

// Sequence is a 64-bit xorshift* generator. Each image row owns its own
// Sequence, seeded from the row's Y coordinate, so that rendering is
// reproducible regardless of worker count or scheduling order.
type Sequence struct {
	state uint64
}

// Seed returns a Sequence seeded deterministically from row y, matching
// the driver's per-row seeding contract: seed(y) = 4815162342*(y+1) + 1123581321.
func Seed(y int) *Sequence {
	s := uint64(4815162342)*uint64(y+1) + 1123581321
	if s == 0 {
		s = 1 // xorshift* never recovers from a zero state.
	}
	return &Sequence{state: s}
}

// next advances the generator and returns the raw 64-bit xorshift* output.
func (s *Sequence) next() uint64 {
	x := s.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	s.state = x
	return x * 0x2545F4914F6CDD1D
}

// Unilateral returns a uniform sample in [0,1).
func (s *Sequence) Unilateral() float32 {
	r := s.next() >> 40 // upper 24 bits, exactly representable in a float32.
	return float32(r) / (1 << 24)
}

// Bilateral returns a uniform sample in (-1,1).
func (s *Sequence) Bilateral() float32 {
	r := s.next() >> 41 // upper 23 bits; the half-step offset keeps both ends open.
	return (float32(r)+0.5)/(1<<22) - 1
}

// UnitBall returns a uniform sample from inside the unit ball by rejection
// sampling three bilateral components.
func (s *Sequence) UnitBall() geom.Vec3 {
	for {
		v := geom.Vec3{X: s.Bilateral(), Y: s.Bilateral(), Z: s.Bilateral()}
		if v.LenSqr() <= 1 {
			return v
		}
	}
}

// UnitSphere returns a uniform sample on the surface of the unit sphere.
// Falls back to +Z when the ball sample is degenerately close to the
// origin, matching the source's NormOrDefault fallback.
func (s *Sequence) UnitSphere() geom.Vec3 {
	v, ok := s.UnitBall().Normalize()
	if !ok {
		return geom.Vec3{X: 0, Y: 0, Z: 1}
	}
	return v
}
