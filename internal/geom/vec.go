// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package geom provides the 2- and 3-element vector, color, and axis-aligned
// box math used throughout the renderer. All arithmetic is float32: the
// intersection kernel is the hottest loop in the program and 32-bit floats
// keep it cache friendly and match the numeric behavior the renderer was
// specified against.
package geom

import "math"

// Epsilon is used to distinguish when a float is close enough to a number.
const Epsilon float32 = 1e-5

// Vec2 is a 2 element vector, also used to hold texture UV coordinates.
type Vec2 struct {
	X, Y float32
}

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Vec3 is a 3 element vector. It doubles as a point and, via Color, a
// linear RGB triple.
type Vec3 struct {
	X, Y, Z float32
}

// Color is a linear RGB triple. It is not constrained to [0,1] while
// accumulating light - only Clamp01 forces it back into range for encoding.
type Color = Vec3

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Mul returns the component-wise product of a and b.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

// Scale returns a scaled by s.
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Neg returns -a.
func (a Vec3) Neg() Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }

// Dot returns the dot product a·b.
func (a Vec3) Dot(b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a×b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// LenSqr returns the squared length of a.
func (a Vec3) LenSqr() float32 { return a.Dot(a) }

// Len returns the length of a.
func (a Vec3) Len() float32 { return float32(math.Sqrt(float64(a.Dot(a)))) }

// Normalize returns a scaled to unit length and true, or the zero vector
// and false if a is too short to normalize reliably.
func (a Vec3) Normalize() (Vec3, bool) {
	l := a.Len()
	if l < Epsilon {
		return Vec3{}, false
	}
	return a.Scale(1 / l), true
}

// Min returns the component-wise minimum of a and b.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{min32(a.X, b.X), min32(a.Y, b.Y), min32(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{max32(a.X, b.X), max32(a.Y, b.Y), max32(a.Z, b.Z)}
}

// Get returns the index'th component (0=X, 1=Y, 2=Z).
func (a Vec3) Get(axis int) float32 {
	switch axis {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// With returns a copy of a with the index'th component set to v.
func (a Vec3) With(axis int, v float32) Vec3 {
	switch axis {
	case 0:
		a.X = v
	case 1:
		a.Y = v
	default:
		a.Z = v
	}
	return a
}

// Clamp01 clamps each component of a color to [0,1], used only at encode
// time - accumulation is left unclamped.
func (a Vec3) Clamp01() Vec3 {
	return Vec3{clamp01(a.X), clamp01(a.Y), clamp01(a.Z)}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Lerp returns the linear interpolation of a to b by ratio t: a*(1-t) + b*t.
// This mirrors the source's scalar Lerp(A, T, B) exactly, including argument
// order, since callers in the shading loop rely on that ordering.
func Lerp(a Vec3, t float32, b Vec3) Vec3 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// LerpF is the scalar form of Lerp.
func LerpF(a, t, b float32) float32 { return a*(1-t) + b*t }

// Lerp2 is the Vec2 form of Lerp.
func Lerp2(a Vec2, t float32, b Vec2) Vec2 {
	return Vec2{LerpF(a.X, t, b.X), LerpF(a.Y, t, b.Y)}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
