// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "github.com/gazed/pathtrace/internal/geom"

// Texture is a row-major raster of linear RGB pixels, sampled with
// wrap-around (modulo) on both axes.
type Texture struct {
	Width, Height int
	Pixels        []geom.Color
}

// NewTexture returns a Texture of the given size with zeroed pixels.
func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Pixels: make([]geom.Color, width*height)}
}

// Set stores the color at (x,y) in row-major order.
func (t *Texture) Set(x, y int, c geom.Color) {
	t.Pixels[y*t.Width+x] = c
}

// At returns the color at (x,y), wrapping both axes so sampling never
// goes out of bounds.
func (t *Texture) At(x, y int) geom.Color {
	x = wrap(x, t.Width)
	y = wrap(y, t.Height)
	return t.Pixels[y*t.Width+x]
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Sample looks up the texel nearest to the given UV coordinate, wrapping
// both axes as At does.
func (t *Texture) Sample(uv geom.Vec2) geom.Color {
	sx := int(floor32(uv.X * float32(t.Width)))
	sy := int(floor32(uv.Y * float32(t.Height)))
	return t.At(sx, sy)
}

func floor32(v float32) float32 {
	i := float32(int64(v))
	if v < 0 && i != v {
		i--
	}
	return i
}
