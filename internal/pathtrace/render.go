// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

import (
	"runtime"
	"sync"

	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/isect"
	"github.com/gazed/pathtrace/internal/raster"
	"github.com/gazed/pathtrace/internal/rng"
	"github.com/gazed/pathtrace/internal/scene"
)

// Options controls one render invocation.
type Options struct {
	VerticalResolution int // -r/--resolution: Height. Width is derived from the camera's aspect ratio.
	Samples            int // -p/--samples: super-samples per axis per pixel.
	MaxBounces         int // -b/--bounces
}

// Resolution returns the output image's (width, height) in pixels, the
// width derived from the camera's surface aspect ratio as the source
// does: HorizontalResolution = int(AspectRatio * VerticalResolution).
func Resolution(cam scene.Camera, opts Options) (width, height int) {
	aspect := cam.SurfaceWidth / cam.SurfaceHeight
	return int(aspect * float32(opts.VerticalResolution)), opts.VerticalResolution
}

// paddedStat is one worker's running totals, padded to a cache line so
// concurrent workers never false-share a line while accumulating.
type paddedStat struct {
	Stats
	_ [64 - 3*8%64]byte
}

// Render runs the full parallel path trace and returns the output image
// plus the summed statistics across every worker. Rows are split across
// runtime.NumCPU() workers reading from a shared channel (each row is one
// unit of work, claimed by whichever worker is free); each row seeds its own RNG sequence
// from its Y coordinate so the image is identical regardless of worker
// count or scheduling order.
func Render(sc *scene.Scene, in Intersector, opts Options) (*raster.Image, Stats) {
	width, height := Resolution(sc.Camera, opts)
	img := raster.New(width, height)

	procs := runtime.NumCPU()
	threadStats := make([]paddedStat, procs)

	rows := make(chan int, height)
	var wg sync.WaitGroup
	wg.Add(procs)
	for worker := 0; worker < procs; worker++ {
		go func(id int) {
			defer wg.Done()
			for y := range rows {
				renderRow(sc, in, img, y, width, height, opts, &threadStats[id].Stats)
			}
		}(worker)
	}
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	var total Stats
	for i := range threadStats {
		total.Add(threadStats[i].Stats)
	}
	return img, total
}

// renderRow fills one scanline of img, per the sensor-plane sampling
// formula: for each of Samples x Samples super-samples, the world point
// on the sensor plane is
//
//	P = O + X*((x+i/S)*W/Width - W/2 + 0.5*W/(Width*S))
//	      + Y*((y+j/S)*H/Height - H/2 + 0.5*H/(Height*S)) - d*Z
func renderRow(sc *scene.Scene, in Intersector, img *raster.Image, y, width, height int, opts Options, stats *Stats) {
	cam := sc.Camera
	seq := rng.Seed(y)
	s := float32(opts.Samples)

	for x := 0; x < width; x++ {
		sum := geom.Color{}
		for i := 0; i < opts.Samples; i++ {
			for j := 0; j < opts.Samples; j++ {
				px := (float32(x)+float32(i)/s)*cam.SurfaceWidth/float32(width) - cam.SurfaceWidth/2 + 0.5*cam.SurfaceWidth/(float32(width)*s)
				py := (float32(y)+float32(j)/s)*cam.SurfaceHeight/float32(height) - cam.SurfaceHeight/2 + 0.5*cam.SurfaceHeight/(float32(height)*s)

				p := cam.Origin.Add(cam.XAxis.Scale(px)).Add(cam.YAxis.Scale(py)).Sub(cam.ZAxis.Scale(cam.DistToSurface))
				dir, ok := p.Sub(cam.Origin).Normalize()
				if !ok {
					continue
				}

				sample, sampleStats := Sample(sc, in, isect.Ray{Origin: cam.Origin, Dir: dir}, opts.MaxBounces, seq)
				stats.Add(sampleStats)
				sum = sum.Add(sample)
			}
		}
		img.Set(x, y, sum.Scale(1/(s*s)))
	}
}
