// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package pathtrace implements the shading and path-bounce loop and the
// parallel per-row rendering driver built on top of it.
package pathtrace

import (
	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/isect"
	"github.com/gazed/pathtrace/internal/partition"
	"github.com/gazed/pathtrace/internal/rng"
	"github.com/gazed/pathtrace/internal/scene"
)

// Stats is an alias for partition.Stats: pathtrace folds every query's
// opaque counters into the same shape callers already use for partition
// traversal, whether or not a partition is actually in play.
type Stats = partition.Stats

const epsilon = isect.Epsilon

// Intersector finds the closest hit along a ray against the scene's
// primitives. The partition-backed and flat-list drivers both implement
// it, so the path loop never needs to know which is in effect.
type Intersector interface {
	Intersect(r isect.Ray) (isect.Hit, Stats)
}

// PartitionIntersector queries a built spatial partition.
type PartitionIntersector struct {
	Partition *partition.Partition
	Prims     []scene.Primitive
}

// Intersect implements Intersector.
func (pi PartitionIntersector) Intersect(r isect.Ray) (isect.Hit, Stats) {
	return partition.Query(pi.Partition, r, pi.Prims)
}

// FlatIntersector scans every primitive directly, used for -ns/--no-spatial-partition.
type FlatIntersector struct {
	Prims []scene.Primitive
}

// Intersect implements Intersector.
func (fi FlatIntersector) Intersect(r isect.Ray) (isect.Hit, Stats) {
	h := isect.ClosestInList(r, fi.Prims, nil)
	return h, Stats{Rays: 1, Primitives: int64(len(fi.Prims))}
}

// Sample traces one primary ray through maxBounces bounces and returns
// its contribution to the pixel accumulator, following the scattering
// rule: with probability primitive.Translucency the ray refracts through
// the surface; otherwise it lerps between a random diffuse direction and
// a mirror reflection by primitive.Glossy. Texture lookup and the
// diffuse/glossy blend reproduce the source's exact formulas, including
// the non-standard UV composition (see (*scene.Scene).Texture and the
// uvSample computation below).
func Sample(sc *scene.Scene, in Intersector, ray isect.Ray, maxBounces int, seq *rng.Sequence) (geom.Color, Stats) {
	var stats Stats
	throughput := geom.Color{X: 1, Y: 1, Z: 1}
	origin, dir := ray.Origin, ray.Dir

	for bounce := 0; bounce < maxBounces; bounce++ {
		h, s := in.Intersect(isect.Ray{Origin: origin, Dir: dir})
		stats.Add(s)
		if h.Dist == 0 {
			throughput = throughput.Mul(sc.SkyColor)
			break
		}

		prim := &sc.Primitives[h.Index]
		hitPoint := origin.Add(dir.Scale(h.Dist))
		n := h.Normal
		cos := dir.Dot(n)

		var newDir geom.Vec3
		var falloff float32
		if seq.Unilateral() < prim.Translucency {
			newDir, falloff = refract(dir, n, cos, prim.Refraction)
		} else {
			newDir, falloff = bounceDirection(dir, n, cos, prim.Glossy, seq)
		}

		surface := surfaceColor(sc, prim, h)
		throughput = throughput.Mul(surface.Scale(falloff))

		origin = hitPoint.Add(newDir.Scale(epsilon))
		dir = newDir
	}
	return throughput, stats
}

// refract implements the refraction-like pass-through branch.
func refract(dir, n geom.Vec3, cos, refraction float32) (geom.Vec3, float32) {
	coeff := 1 + refraction
	if cos < 0 {
		coeff = 1 / coeff
	}
	perp := dir.Sub(n.Scale(cos))
	nd := dir.Sub(perp.Scale(1 - coeff))
	if v, ok := nd.Normalize(); ok {
		return v, 1
	}
	return n, 1
}

// bounceDirection implements the mirror/diffuse blend branch.
func bounceDirection(dir, n geom.Vec3, cos, glossy float32, seq *rng.Sequence) (geom.Vec3, float32) {
	reflect := dir.Sub(n.Scale(2 * cos))

	m := n.Add(seq.UnitBall())
	diffuse, ok := m.Normalize()
	if !ok {
		diffuse = n
	}
	if cos > 0 {
		diffuse = diffuse.Neg()
	}

	blended := geom.Lerp(diffuse, glossy, reflect)
	v, ok := blended.Normalize()
	if !ok {
		v = n
	}
	return v, absf(v.Dot(n))
}

// surfaceColor resolves a hit's color: the primitive's base color, or a
// texture lookup composed exactly as the source composes it.
func surfaceColor(sc *scene.Scene, prim *scene.Primitive, h isect.Hit) geom.Color {
	if prim.TextureIndex <= 0 {
		return prim.BaseColor
	}
	tex := sc.Texture(prim.TextureIndex)
	if tex == nil {
		return prim.BaseColor
	}
	uv := geom.Lerp2(prim.UVMap.UV0, h.U, prim.UVMap.UV1).Add(geom.Lerp2(prim.UVMap.UV0, h.V, prim.UVMap.UV2))
	return tex.Sample(uv)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
