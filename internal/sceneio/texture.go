// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sceneio

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/raster"
	"github.com/gazed/pathtrace/internal/scene"
)

// LoadTexture loads a texture file referenced from a scene's Textures
// block. The renderer's own .tga variant (raster.Decode) is read
// directly; every other supported format is decoded through the
// standard image package (registering BMP via golang.org/x/image/bmp)
// and normalized to the renderer's bottom-up row order with
// disintegration/imaging before its pixels are copied into a Texture -
// image.Decode's formats are top-down, the opposite of the native codec.
func LoadTexture(path string) (*scene.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "sceneio: open texture %q", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := raster.Decode(f, true)
		if err != nil {
			return nil, errors.Wrapf(err, "sceneio: decode TGA texture %q", path)
		}
		tex := scene.NewTexture(img.Width, img.Height)
		copy(tex.Pixels, img.Pixels)
		return tex, nil
	}

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "sceneio: decode texture %q", path)
	}
	flipped := imaging.FlipV(src)
	return textureFromImage(flipped), nil
}

func textureFromImage(img image.Image) *scene.Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := scene.NewTexture(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.Set(x, y, geom.Color{
				X: float32(r) / 65535,
				Y: float32(g) / 65535,
				Z: float32(b) / 65535,
			})
		}
	}
	return tex
}

// init registers the auxiliary decoders image.Decode can dispatch to
// beyond the standard library's built-ins.
func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}
