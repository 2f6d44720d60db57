// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package raster encodes and decodes the renderer's output image: an
// 18-byte-header, uncompressed true-color TARGA variant, stored
// bottom-up in BGR byte order, with an optional square-law gamma curve
// applied at the float-to-byte boundary.
package raster

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/gazed/pathtrace/internal/geom"
)

const headerSize = 18

const (
	colorMapTypeNone    = 0
	imageTypeTrueColor  = 2
	pixelDepth24        = 24
)

// ErrUnsupportedFormat is returned by Decode when the file's header does
// not describe an uncompressed, true-color, non-color-mapped image.
var ErrUnsupportedFormat = errors.New("raster: unsupported TARGA format")

// Image is a rectangular grid of linear-space colors, bottom-up to match
// the on-disk TARGA row order: Pixels[0] is the lower-left pixel.
type Image struct {
	Width, Height int
	Pixels        []geom.Color
}

// New allocates a black image of the given dimensions.
func New(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]geom.Color, width*height)}
}

// At returns the color at column x, row y, measured from the bottom-left.
func (img *Image) At(x, y int) geom.Color {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color at column x, row y, measured from the bottom-left.
func (img *Image) Set(x, y int, c geom.Color) {
	img.Pixels[y*img.Width+x] = c
}

// Encode writes img to w as an uncompressed true-color TARGA file. When
// gamma is true, each channel is gamma-encoded with u8 = sqrt(clamp01(c))*255;
// otherwise it is written linearly as u8 = clamp01(c)*255.
func Encode(w io.Writer, img *Image, gamma bool) error {
	bw := bufio.NewWriter(w)
	header := [headerSize]byte{}
	header[1] = colorMapTypeNone
	header[2] = imageTypeTrueColor
	binary.LittleEndian.PutUint16(header[12:14], uint16(img.Width))
	binary.LittleEndian.PutUint16(header[14:16], uint16(img.Height))
	header[16] = pixelDepth24
	header[17] = 0 // bottom-up, left-to-right.
	if _, err := bw.Write(header[:]); err != nil {
		return errors.Wrap(err, "raster: write header")
	}

	row := make([]byte, img.Width*3)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			row[x*3+0] = toByte(c.Z, gamma) // B
			row[x*3+1] = toByte(c.Y, gamma) // G
			row[x*3+2] = toByte(c.X, gamma) // R
		}
		if _, err := bw.Write(row); err != nil {
			return errors.Wrap(err, "raster: write scanline")
		}
	}
	return errors.Wrap(bw.Flush(), "raster: flush")
}

// Decode reads an uncompressed true-color TARGA file from r.
func Decode(r io.Reader, gamma bool) (*Image, error) {
	header := [headerSize]byte{}
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Wrap(err, "raster: read header")
	}
	idLength := header[0]
	colorMapType := header[1]
	imageType := header[2]
	if idLength != 0 || colorMapType != colorMapTypeNone || imageType != imageTypeTrueColor {
		return nil, ErrUnsupportedFormat
	}
	width := int(binary.LittleEndian.Uint16(header[12:14]))
	height := int(binary.LittleEndian.Uint16(header[14:16]))
	if header[16] != pixelDepth24 {
		return nil, ErrUnsupportedFormat
	}

	img := New(width, height)
	row := make([]byte, width*3)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, errors.Wrap(err, "raster: read scanline")
		}
		for x := 0; x < width; x++ {
			b := fromByte(row[x*3+0], gamma)
			g := fromByte(row[x*3+1], gamma)
			red := fromByte(row[x*3+2], gamma)
			img.Set(x, y, geom.Color{X: red, Y: g, Z: b})
		}
	}
	return img, nil
}

func toByte(c float32, gamma bool) byte {
	c = clamp01(c)
	if gamma {
		c = sqrtf(c)
	}
	return byte(c*255.0 + 0.5)
}

func fromByte(u byte, gamma bool) float32 {
	c := float32(u) / 255.0
	if gamma {
		c = c * c
	}
	return c
}

func clamp01(c float32) float32 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
