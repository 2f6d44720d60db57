// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package partition

import (
	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/scene"
)

// worldBounds returns the world-space AABB for a primitive. Axis-aligned
// planes (normal parallel to a canonical axis) get a slab: infinite on
// the two free axes, exact on the constrained one. Every other plane is
// treated as unbounded, since an arbitrarily oriented infinite plane has
// no finite extent to report.
func worldBounds(p *scene.Primitive) geom.Box3 {
	switch p.Kind {
	case scene.KindPlane:
		return planeBounds(p)
	case scene.KindSphere:
		r := geom.Vec3{X: p.Radius, Y: p.Radius, Z: p.Radius}
		return geom.Box3{Min: p.Center.Sub(r), Max: p.Center.Add(r)}
	case scene.KindTriangle:
		return geom.FromPoints(p.V0, p.V1, p.V2)
	case scene.KindParallelogram:
		// V0 is the origin; the fourth vertex completes the quad.
		fourth := p.V1.Add(p.V2.Sub(p.V0))
		return geom.FromPoints(p.V0, p.V1, p.V2, fourth)
	default:
		return geom.EmptyBox()
	}
}

// canonicalAxis reports whether n is parallel to one of the world axes
// and, if so, which axis and in which direction.
func canonicalAxis(n geom.Vec3) (axis int, ok bool) {
	nz := func(v float32) bool { return v > -geom.Epsilon && v < geom.Epsilon }
	switch {
	case !nz(n.X) && nz(n.Y) && nz(n.Z):
		return 0, true
	case nz(n.X) && !nz(n.Y) && nz(n.Z):
		return 1, true
	case nz(n.X) && nz(n.Y) && !nz(n.Z):
		return 2, true
	default:
		return 0, false
	}
}

func planeBounds(p *scene.Primitive) geom.Box3 {
	axis, ok := canonicalAxis(p.Normal)
	if !ok {
		return geom.UnboundedBox()
	}
	b := geom.UnboundedBox()
	coord := p.Displacement / p.Normal.Get(axis)
	b.Min = b.Min.With(axis, coord)
	b.Max = b.Max.With(axis, coord)
	return b
}

// clip returns the intersection of b with bound, which is always a valid
// (possibly empty) box - used when recursing into a child to shrink a
// straddling primitive's AABB to the child's extent before the next
// split decision, so duplication does not compound deeper in the tree.
func clip(b, bound geom.Box3) geom.Box3 {
	return b.Intersect(bound)
}
