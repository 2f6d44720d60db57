// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package partition

import (
	"log/slog"
	"math"

	"github.com/gazed/pathtrace/internal/arena"
	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/scene"
)

// Params controls partition construction.
type Params struct {
	MaxObjectsPerLeaf int     // e.g. 8
	MaxDepth          int     // e.g. 32
	MaxDistance       float32 // world half-extent clipped around the camera; +Inf for unbounded.
	ScratchBudget     int64   // scratch arena byte budget for the build's level buffers.
}

// DefaultParams returns the renderer's built-in partition defaults.
func DefaultParams() Params {
	return Params{
		MaxObjectsPerLeaf: 8,
		MaxDepth:          32,
		MaxDistance:       float32(math.Inf(1)),
		ScratchBudget:     64 << 20, // 64 MiB of scratch for index bookkeeping.
	}
}

// entry is a primitive index paired with its AABB relative to the node
// currently being built - recomputed (shrunk) each time it is handed down
// into a child, per the build's straddle-clipping rule.
type entry struct {
	index int
	box   geom.Box3
}

// task is one pending node in the BFS build queue.
type task struct {
	nodeIndex int // slot in the result's Nodes slice, reserved before recursing.
	bounds    geom.Box3
	depth     int
	entries   []entry
}

// Build constructs a Partition over prims using the given parameters. It
// is single-threaded and runs once before rendering begins, matching the
// lifecycle in the resource model (build is not safe to call concurrently
// with itself or with queries).
func Build(prims []scene.Primitive, cameraOrigin geom.Vec3, params Params, log *slog.Logger) *Partition {
	root := rootBounds(prims, cameraOrigin, params.MaxDistance)

	entries := make([]entry, 0, len(prims))
	for i := range prims {
		wb := worldBounds(&prims[i])
		entries = append(entries, entry{index: i, box: clip(wb, root)})
	}

	result := &Partition{Nodes: make([]Node, 1, 64), Indices: make([]int, 0, len(prims)*2)}
	result.Nodes[0] = Node{Bounds: root}

	ring := arena.NewRing(params.ScratchBudget)
	degraded := false

	queue := []task{{nodeIndex: 0, bounds: root, depth: 0, entries: entries}}
	for len(queue) > 0 {
		level := queue
		queue = nil

		// Budget the scratch this level needs: each entry may duplicate
		// into both children, so reserve worst-case 2x the incoming count
		// of int-sized slots for the level's output index buffers.
		levelSize := int64(0)
		for _, t := range level {
			levelSize += int64(len(t.entries)) * 2 * 8 // bytes per duplicated int index.
		}
		if levelSize > 0 && !ring.TryLevel(levelSize) && !degraded {
			degraded = true
			if log != nil {
				log.Warn("partition build: scratch arena cannot fit next level, degrading to leaves",
					slog.Int64("requested_bytes", levelSize), slog.Int64("budget_bytes", params.ScratchBudget))
			}
		}

		for _, t := range level {
			if degraded || shouldBeLeaf(t, params) {
				makeLeaf(result, t)
				continue
			}
			lowBounds, highBounds, axis, value, ok := chooseSplit(t)
			if !ok {
				makeLeaf(result, t)
				continue
			}
			lowEntries, highEntries := partitionEntries(t.entries, axis, value, lowBounds, highBounds)

			lowIdx := len(result.Nodes)
			result.Nodes = append(result.Nodes, Node{})
			highIdx := len(result.Nodes)
			result.Nodes = append(result.Nodes, Node{})

			result.Nodes[t.nodeIndex] = Node{
				Bounds:     t.bounds,
				IsLeaf:     false,
				SplitAxis:  axis,
				SplitValue: value,
				Children:   [2]int{lowIdx, highIdx},
			}
			result.Nodes[lowIdx] = Node{Bounds: lowBounds}
			result.Nodes[highIdx] = Node{Bounds: highBounds}

			queue = append(queue, task{nodeIndex: lowIdx, bounds: lowBounds, depth: t.depth + 1, entries: lowEntries})
			queue = append(queue, task{nodeIndex: highIdx, bounds: highBounds, depth: t.depth + 1, entries: highEntries})
		}
	}
	return result
}

func shouldBeLeaf(t task, params Params) bool {
	return len(t.entries) <= params.MaxObjectsPerLeaf || t.depth >= params.MaxDepth
}

func makeLeaf(p *Partition, t task) {
	first := len(p.Indices)
	for _, e := range t.entries {
		p.Indices = append(p.Indices, e.index)
	}
	p.Nodes[t.nodeIndex] = Node{
		Bounds:     t.bounds,
		IsLeaf:     true,
		FirstIndex: first,
		Count:      len(t.entries),
	}
}

// chooseSplit picks the axis minimizing the worst-side primitive count,
// falling back to the box's longest axis if no axis strictly reduces the
// count below the current total. Both cases split exactly at the node
// box's midpoint on the chosen axis.
func chooseSplit(t task) (lowBounds, highBounds geom.Box3, axis int, value float32, ok bool) {
	n := len(t.entries)
	bestAxis, bestWorst := -1, n
	for a := 0; a < 3; a++ {
		mid := t.bounds.Center().Get(a)
		lo, hi := 0, 0
		for _, e := range t.entries {
			if e.box.Min.Get(a) < mid {
				lo++
			}
			if e.box.Max.Get(a) >= mid {
				hi++
			}
		}
		worst := lo
		if hi > worst {
			worst = hi
		}
		if worst < n && worst < bestWorst {
			bestAxis, bestWorst = a, worst
		}
	}
	if bestAxis < 0 {
		bestAxis = t.bounds.LongestAxis()
	}
	mid := t.bounds.Center().Get(bestAxis)

	low := t.bounds
	low.Max = low.Max.With(bestAxis, mid)
	high := t.bounds
	high.Min = high.Min.With(bestAxis, mid)
	return low, high, bestAxis, mid, true
}

func partitionEntries(entries []entry, axis int, mid float32, lowBounds, highBounds geom.Box3) (low, high []entry) {
	for _, e := range entries {
		if e.box.Min.Get(axis) < mid {
			low = append(low, entry{index: e.index, box: clip(e.box, lowBounds)})
		}
		if e.box.Max.Get(axis) >= mid {
			high = append(high, entry{index: e.index, box: clip(e.box, highBounds)})
		}
	}
	return low, high
}

// rootBounds is the union of every primitive's world AABB, intersected
// with a cube of half-extent maxDistance centered at the camera origin.
// Primitives entirely outside that cube are not dropped: their clipped
// AABB is empty, but they can still be copied into leaf index slices,
// where the kernel simply tests them like any other primitive.
func rootBounds(prims []scene.Primitive, cameraOrigin geom.Vec3, maxDistance float32) geom.Box3 {
	b := geom.EmptyBox()
	for i := range prims {
		b = b.Union(worldBounds(&prims[i]))
	}
	if math.IsInf(float64(maxDistance), 1) {
		return b
	}
	return b.Intersect(geom.Cube(cameraOrigin, maxDistance))
}
