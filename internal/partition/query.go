// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package partition

import (
	"math"

	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/isect"
	"github.com/gazed/pathtrace/internal/scene"
)

// Stats accumulates opaque-to-correctness query counters: rays cast,
// leaves visited, primitives tested. Callers typically keep one Stats
// per worker and add query results into it as rendering proceeds.
type Stats struct {
	Rays       int64
	Leaves     int64
	Primitives int64
}

// Add folds o into s in place.
func (s *Stats) Add(o Stats) {
	s.Rays += o.Rays
	s.Leaves += o.Leaves
	s.Primitives += o.Primitives
}

const epsilon = isect.Epsilon

// Query walks the leaves a ray passes through in increasing-t order,
// running the intersection kernel against each visited leaf's
// primitives, and returns the closest hit found. It stops as soon as the
// best hit's distance is less than the distance to the next leaf
// boundary, so later leaves along the ray are never visited needlessly.
func Query(p *Partition, r isect.Ray, prims []scene.Primitive) (isect.Hit, Stats) {
	var stats Stats
	stats.Rays = 1

	root := p.Root().Bounds
	origin := r.Origin.Add(r.Dir.Scale(epsilon))
	best := isect.None

	leaf := descend(p, origin)
	prevLeaf := -1
	for {
		if leaf == prevLeaf {
			break // numerical stall: redescent landed on the same leaf.
		}
		prevLeaf = leaf
		node := &p.Nodes[leaf]
		stats.Leaves++
		stats.Primitives += int64(node.Count)

		h := isect.ClosestInList(r, prims, p.Leaf(node))
		if h.Dist > 0 && (best.Dist == 0 || h.Dist < best.Dist) {
			best = h
		}

		tExit, ok := leafExit(r, node.Bounds, root)
		if !ok || (best.Dist > 0 && tExit >= best.Dist) {
			break
		}
		// The nudge past the boundary grows with tExit: at large distances a
		// fixed epsilon is below float32 resolution and would land the point
		// back on the shared face.
		step := tExit * epsilon
		if step < epsilon {
			step = epsilon
		}
		origin = r.Origin.Add(r.Dir.Scale(tExit + step))
		leaf = descend(p, origin)
	}
	return best, stats
}

// descend walks from the root to the leaf containing point s, choosing
// child[0] whenever s's split-axis coordinate is below the split value.
func descend(p *Partition, s geom.Vec3) int {
	i := 0
	for {
		n := &p.Nodes[i]
		if n.IsLeaf {
			return i
		}
		if s.Get(n.SplitAxis) < n.SplitValue {
			i = n.Children[0]
		} else {
			i = n.Children[1]
		}
	}
}

// leafExit returns the ray distance to the nearest face of box that is
// not coincident with the corresponding face of root - root's own faces
// mean "the ray leaves the world here", which is reported as ok=false so
// the caller stops rather than falsely treating the boundary as another
// leaf to visit.
func leafExit(r isect.Ray, box, root geom.Box3) (float32, bool) {
	best := float32(math.Inf(1))
	found := false
	for axis := 0; axis < 3; axis++ {
		d := r.Dir.Get(axis)
		if d > epsilon {
			face := box.Max.Get(axis)
			if !aeqf(face, root.Max.Get(axis)) {
				t := (face - r.Origin.Get(axis)) / d
				if t < best {
					best, found = t, true
				}
			}
		} else if d < -epsilon {
			face := box.Min.Get(axis)
			if !aeqf(face, root.Min.Get(axis)) {
				t := (face - r.Origin.Get(axis)) / d
				if t < best {
					best, found = t, true
				}
			}
		}
	}
	return best, found
}

func aeqf(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-3
}
