// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package isect

import "github.com/gazed/pathtrace/internal/scene"

// ClosestInList runs the per-primitive kernel against every primitive in
// prims, keeping the hit with the smallest positive t. Used both as the
// flat-list fallback (-ns/--no-spatial-partition) and inside each
// partition leaf during traversal. indices, when non-nil, restricts the
// scan to the given subset (a leaf's slice of the global index array);
// otherwise every primitive in prims is tested.
func ClosestInList(r Ray, prims []scene.Primitive, indices []int) Hit {
	best := None
	test := func(i int) {
		h := Primitive(r, &prims[i])
		if h.Dist > Epsilon && (best.Dist == 0 || h.Dist < best.Dist) {
			h.Index = i
			best = h
		}
	}
	if indices == nil {
		for i := range prims {
			test(i)
		}
	} else {
		for _, i := range indices {
			test(i)
		}
	}
	return best
}
