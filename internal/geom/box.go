// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import "math"

// Box3 is an axis-aligned bounding box. Min and Max hold the smallest and
// largest corner. An empty box is represented by the sentinel values
// produced by EmptyBox - one where Min exceeds Max on every axis - and is
// recognized by Empty().
type Box3 struct {
	Min, Max Vec3
}

// infinityF mirrors the source's F32Max/F32Min sentinel pair used for
// unbounded box extents.
const infinityF float32 = math.MaxFloat32

// EmptyBox returns a box with Min/Max swapped so that Empty() is true
// and Union with any real box yields that box unchanged.
func EmptyBox() Box3 {
	return Box3{
		Min: Vec3{infinityF, infinityF, infinityF},
		Max: Vec3{-infinityF, -infinityF, -infinityF},
	}
}

// UnboundedBox returns a box covering all of world space on every axis,
// used for planes whose normal is not axis-aligned.
func UnboundedBox() Box3 {
	return Box3{
		Min: Vec3{-infinityF, -infinityF, -infinityF},
		Max: Vec3{infinityF, infinityF, infinityF},
	}
}

// Empty reports whether b is the empty-box sentinel: Min exceeds Max on
// at least one axis.
func (b Box3) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Union returns the smallest box containing both b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Intersect returns the overlap of b and o. The result may be Empty.
func (b Box3) Intersect(o Box3) Box3 {
	return Box3{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Extent returns the half-extent (radius) of the box along each axis.
func (b Box3) Extent() Vec3 { return b.Max.Sub(b.Min).Scale(0.5) }

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) along which b is widest.
func (b Box3) LongestAxis() int {
	size := b.Max.Sub(b.Min)
	axis := 0
	widest := size.X
	if size.Y > widest {
		axis, widest = 1, size.Y
	}
	if size.Z > widest {
		axis = 2
	}
	return axis
}

// Cube returns the box of half-extent h centered at c.
func Cube(c Vec3, h float32) Box3 {
	r := Vec3{h, h, h}
	return Box3{Min: c.Sub(r), Max: c.Add(r)}
}

// FromPoints returns the bounding box of the given points. Panics-free for
// zero points by returning EmptyBox.
func FromPoints(pts ...Vec3) Box3 {
	if len(pts) == 0 {
		return EmptyBox()
	}
	b := Box3{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
