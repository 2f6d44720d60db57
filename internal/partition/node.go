// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package partition builds and queries the kd-style spatial acceleration
// structure: a binary axis-aligned partition of primitive references used
// to cull intersection tests. Build is single-threaded and runs once;
// query is read-only and safe to call concurrently from every row worker.
package partition

import "github.com/gazed/pathtrace/internal/geom"

// Node is one entry in the partition's node array. Children reference
// other Node indices rather than pointers so the whole tree lives in one
// contiguous, cache-friendly slice, per the design notes on arena-relative
// references (spec §9).
type Node struct {
	Bounds     geom.Box3
	IsLeaf     bool
	SplitAxis  int // 0=X, 1=Y, 2=Z; meaningful only when !IsLeaf.
	SplitValue float32

	Children [2]int // indices into Partition.Nodes; only when !IsLeaf.

	FirstIndex int // start of this leaf's slice in Partition.Indices.
	Count      int // length of this leaf's slice.
}

// Partition is the built acceleration structure: a node array rooted at
// index 0, plus the global primitive-index array its leaves slice into.
// The index array may contain duplicates - a primitive straddling a split
// appears in both children.
type Partition struct {
	Nodes   []Node
	Indices []int
}

// Root returns the root node.
func (p *Partition) Root() *Node { return &p.Nodes[0] }

// Leaf returns the slice of primitive indices owned by a leaf node.
func (p *Partition) Leaf(n *Node) []int {
	return p.Indices[n.FirstIndex : n.FirstIndex+n.Count]
}
