// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "github.com/gazed/pathtrace/internal/geom"

// Scene is the fully populated, immutable world the renderer traces rays
// against: the ordered primitive list, the 1-based texture table (index 0
// means "none"), the camera, and the sky color returned for rays that
// exit the world without a hit.
type Scene struct {
	Primitives []Primitive
	Textures   []*Texture // Textures[0] corresponds to 1-based index 1, etc.
	Camera     Camera
	SkyColor   geom.Color
}

// Texture returns the texture bound to a primitive's 1-based TextureIndex.
// This intentionally reproduces the source's off-by-one: index is used
// directly against the 0-based Textures slice rather than decremented
// first, so index 1 (the first declared texture) resolves to Textures[1]
// and Textures[0] is never reachable. index 0 still means "none" - it is
// the only value the scene format reserves for that purpose, so it short
// circuits before the direct lookup. An index that runs past the end of
// Textures (possible for the highest valid 1-based index, where the
// source would read one element past its array) degrades to "no texture"
// rather than panicking, since Go has no safe equivalent of reading
// adjacent memory - see DESIGN.md.
func (s *Scene) Texture(index int) *Texture {
	if index <= 0 || index >= len(s.Textures) {
		return nil
	}
	return s.Textures[index]
}
