// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package isect implements the closest-hit intersection kernel: given a
// ray and a primitive, either return "miss" or the closest hit with
// t > Epsilon. This is the innermost hot loop of the renderer - all
// arithmetic here is float32.
package isect

import (
	"math"

	"github.com/gazed/pathtrace/internal/geom"
)

// Epsilon is the minimum accepted hit distance, used to reject
// self-intersection and near-parallel degeneracies.
const Epsilon float32 = 1e-5

// Ray is an origin/direction pair. Direction is expected to be unit length.
type Ray struct {
	Origin, Dir geom.Vec3
}

// At returns the point along the ray at distance t.
func (r Ray) At(t float32) geom.Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// Hit describes the closest intersection of a ray with a primitive.
// Dist == 0 is the "no hit" sentinel, matching RayHit's contract.
type Hit struct {
	Dist   float32
	Index  int // index into the primitive slice the kernel was run against.
	Normal geom.Vec3
	U, V   float32
}

// None is the zero-value "no hit" result.
var None = Hit{}

func sqrtf(x float32) float32 { return float32(math.Sqrt(float64(x))) }
