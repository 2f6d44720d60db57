// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scene holds the renderer's immutable world: the primitive list,
// camera, textures and sky color produced once by the scene loader and
// never mutated while rendering runs.
package scene

import "github.com/gazed/pathtrace/internal/geom"

// Kind tags which variant of Primitive a value holds. Dispatch on Kind
// inside the intersection kernel is deliberately a switch, not an
// interface method - interfaces would put a vtable indirection in the
// hottest loop of the program, and the tree refers to primitives by
// integer index rather than by pointer, so there is never a need for
// polymorphic dispatch outside that one switch.
type Kind int

const (
	KindPlane Kind = iota
	KindSphere
	KindTriangle
	KindParallelogram
)

// UVMap holds the three canonical vertex UVs used by triangles and
// parallelograms for texture sampling. Planes and spheres ignore it.
type UVMap struct {
	UV0, UV1, UV2 geom.Vec2
}

// Primitive is a tagged-variant shape plus its shading attributes. Only
// the fields relevant to Kind are meaningful; the rest are zero.
type Primitive struct {
	Kind Kind

	// Plane
	Normal       geom.Vec3
	Displacement float32

	// Sphere
	Center geom.Vec3
	Radius float32

	// Triangle / Parallelogram
	V0, V1, V2 geom.Vec3 // Triangle: three vertices. Parallelogram: V0=origin, V1-V0=XAxis, V2-V0=YAxis.

	// Shading, common to all kinds.
	BaseColor    geom.Color
	Glossy       float32 // 0 = pure diffuse random, 1 = pure mirror reflect.
	Translucency float32 // probability per hit of refractive pass-through.
	Refraction   float32 // offset from 1 used as an index-of-refraction term.
	TextureIndex int     // 0 = none; 1-based into Scene.Textures.
	UVMap        UVMap
}

// NewPlane returns a Plane primitive with the given normal (need not be
// unit - intersection is scale-invariant) and displacement d such that
// points P on the plane satisfy P·Normal = d.
func NewPlane(normal geom.Vec3, d float32) Primitive {
	return Primitive{Kind: KindPlane, Normal: normal, Displacement: d}
}

// NewSphere returns a Sphere primitive.
func NewSphere(center geom.Vec3, radius float32) Primitive {
	return Primitive{Kind: KindSphere, Center: center, Radius: radius}
}

// NewTriangle returns a Triangle primitive from its three vertices.
func NewTriangle(v0, v1, v2 geom.Vec3) Primitive {
	return Primitive{Kind: KindTriangle, V0: v0, V1: v1, V2: v2}
}

// NewParallelogram returns a Parallelogram primitive: P = origin +
// u*xEdge + v*yEdge for u,v in [0,1], stored the same way a Triangle stores its
// vertices so both kinds share one AABB/vertex code path.
func NewParallelogram(origin, xEdge, yEdge geom.Vec3) Primitive {
	return Primitive{Kind: KindParallelogram, V0: origin, V1: origin.Add(xEdge), V2: origin.Add(yEdge)}
}

// edges returns AB, AC for the Triangle/Parallelogram vertex layout.
func (p *Primitive) edges() (ab, ac geom.Vec3) {
	return p.V1.Sub(p.V0), p.V2.Sub(p.V0)
}
