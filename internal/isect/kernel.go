// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package isect

import (
	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/scene"
)

// Primitive runs the closest-hit test for a ray against a single
// primitive, dispatching on its Kind. The returned Hit.Dist is 0 on miss.
func Primitive(r Ray, p *scene.Primitive) Hit {
	switch p.Kind {
	case scene.KindPlane:
		return plane(r, p)
	case scene.KindSphere:
		return sphere(r, p)
	case scene.KindTriangle:
		return triangle(r, p, false)
	case scene.KindParallelogram:
		return triangle(r, p, true)
	default:
		return None
	}
}

// plane intersects a ray with an infinite plane P·N = d. Normal need not
// be unit - the scale cancels between numerator and denominator.
func plane(r Ray, p *scene.Primitive) Hit {
	denom := r.Dir.Dot(p.Normal)
	if denom > -Epsilon && denom < Epsilon {
		return None
	}
	t := (p.Displacement - r.Origin.Dot(p.Normal)) / denom
	if t <= Epsilon {
		return None
	}
	n := p.Normal
	if denom > 0 {
		n = n.Neg()
	}
	normal, ok := n.Normalize()
	if !ok {
		return None
	}
	return Hit{Dist: t, Normal: normal}
}

// sphere intersects a ray with a sphere. Uses the near root unless it is
// behind the ray origin, in which case the far root is tried (ray starts
// inside the sphere).
func sphere(r Ray, p *scene.Primitive) Hit {
	f := r.Origin.Sub(p.Center)
	b := r.Dir.Dot(f)
	disc := b*b - (f.LenSqr() - p.Radius*p.Radius)
	if disc <= Epsilon {
		return None
	}
	s := sqrtf(disc)
	t := -b - s
	if t <= 0 {
		t = -b + s
	}
	if t <= Epsilon {
		return None
	}
	hitPoint := r.At(t)
	normal, ok := hitPoint.Sub(p.Center).Normalize()
	if !ok {
		return None
	}
	return Hit{Dist: t, Normal: normal}
}

// triangle intersects a ray with a Triangle or, when parallelogram is
// true, a Parallelogram (same vertex/edge layout, different acceptance
// test on the barycentric parameters).
func triangle(r Ray, p *scene.Primitive, parallelogram bool) Hit {
	ab, ac := p.V1.Sub(p.V0), p.V2.Sub(p.V0)
	cross := ab.Cross(ac)
	if cross.LenSqr() <= Epsilon*Epsilon {
		return None // zero-area triangle: degenerate, treat as miss.
	}
	n, ok := cross.Normalize()
	if !ok {
		return None
	}
	denom := r.Dir.Dot(n)
	if denom > -Epsilon && denom < Epsilon {
		return None
	}
	t := p.V0.Sub(r.Origin).Dot(n) / denom
	if t <= Epsilon {
		return None
	}

	h := r.At(t).Sub(p.V0)
	u, v, ok := barycentric(h, ab, ac)
	if !ok {
		return None
	}
	if parallelogram {
		if !(u > 0 && u < 1 && v > 0 && v < 1) {
			return None
		}
	} else {
		if !(v > 0 && u > 0 && u+v < 1) {
			return None
		}
	}

	if denom > 0 {
		n = n.Neg()
	}
	return Hit{Dist: t, Normal: n, U: u, V: v}
}

// barycentric projects h = H-V0 onto the (possibly non-orthogonal) edge
// basis ab, ac and solves for u, v such that h = u*ab + v*ac, using the
// standard 2x2 linear solve via dot products.
func barycentric(h, ab, ac geom.Vec3) (u, v float32, ok bool) {
	d00 := ab.Dot(ab)
	d01 := ab.Dot(ac)
	d11 := ac.Dot(ac)
	d20 := h.Dot(ab)
	d21 := h.Dot(ac)
	denom := d00*d11 - d01*d01
	if denom > -Epsilon && denom < Epsilon {
		return 0, 0, false
	}
	u = (d11*d20 - d01*d21) / denom
	v = (d00*d21 - d01*d20) / denom
	return u, v, true
}
