// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "github.com/gazed/pathtrace/internal/geom"

// Camera describes the sensor plane primary rays are shot through.
// XAxis/YAxis/ZAxis form an orthonormal basis where ZAxis points from the
// look-at target back toward the camera (right-handed view space). The
// sensor plane sits DistToSurface in front of the camera, along -ZAxis,
// with the given width and height.
type Camera struct {
	Origin                  geom.Vec3
	XAxis, YAxis, ZAxis     geom.Vec3
	DistToSurface           float32
	SurfaceWidth            float32
	SurfaceHeight           float32
}

// worldUp is the default up vector used to derive the camera basis.
var worldUp = geom.Vec3{X: 0, Y: 0, Z: 1}

// LookAt builds a Camera at origin looking toward destination, using
// worldUp to disambiguate roll. Falls back to a canonical basis if origin
// and destination coincide or the implied axis is parallel to worldUp -
// matching the source's NormOrDefault fallbacks.
func LookAt(origin, destination geom.Vec3) Camera {
	zAxis, ok := origin.Sub(destination).Normalize()
	if !ok {
		zAxis = geom.Vec3{X: 0, Y: -1, Z: 0}
	}
	xAxis, ok := worldUp.Cross(zAxis).Normalize()
	if !ok {
		xAxis = geom.Vec3{X: 1, Y: 0, Z: 0}
	}
	yAxis, ok := zAxis.Cross(xAxis).Normalize()
	if !ok {
		yAxis = geom.Vec3{X: 0, Y: 0, Z: 1}
	}
	return Camera{
		Origin:        origin,
		XAxis:         xAxis,
		YAxis:         yAxis,
		ZAxis:         zAxis,
		DistToSurface: 1,
		SurfaceWidth:  1,
		SurfaceHeight: 1,
	}
}

// DefaultCamera matches the scene format's default: origin at the world
// origin, sensor 1x1 at distance 1, looking toward +Y.
func DefaultCamera() Camera {
	return LookAt(geom.Vec3{}, geom.Vec3{X: 0, Y: 1, Z: 0})
}
