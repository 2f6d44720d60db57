package partition

import (
	"math/rand"
	"testing"

	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/isect"
	"github.com/gazed/pathtrace/internal/scene"
)

// TestSinglePrimitiveBuildsOneLeaf mirrors spec scenario 5: building over a
// single primitive yields a root that is itself a leaf holding one index.
func TestSinglePrimitiveBuildsOneLeaf(t *testing.T) {
	prims := []scene.Primitive{scene.NewSphere(geom.Vec3{}, 1)}
	p := Build(prims, geom.Vec3{}, DefaultParams(), nil)
	root := p.Root()
	if !root.IsLeaf {
		t.Fatal("root should be a leaf when there is only one primitive")
	}
	if root.Count != 1 || p.Indices[root.FirstIndex] != 0 {
		t.Fatalf("expected a single index 0, got %v", p.Leaf(root))
	}
}

// TestQueryMatchesFlatList checks the partition's query result against a
// flat-list scan of the same scene for a battery of random rays, per the
// "spatial partition query result equals flat-list intersection" property.
func TestQueryMatchesFlatList(t *testing.T) {
	prims := []scene.Primitive{
		scene.NewSphere(geom.Vec3{X: -3, Y: 0, Z: 0}, 1),
		scene.NewSphere(geom.Vec3{X: 3, Y: 0, Z: 0}, 1),
		scene.NewSphere(geom.Vec3{X: 0, Y: 3, Z: 0}, 1),
		scene.NewSphere(geom.Vec3{X: 0, Y: -3, Z: 0}, 1),
		scene.NewSphere(geom.Vec3{X: 0, Y: 0, Z: 5}, 1),
		scene.NewPlane(geom.Vec3{X: 0, Y: 0, Z: 1}, -10),
	}
	params := DefaultParams()
	params.MaxObjectsPerLeaf = 1
	p := Build(prims, geom.Vec3{}, params, nil)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		origin := geom.Vec3{
			X: float32(rng.Float64()*20 - 10),
			Y: float32(rng.Float64()*20 - 10),
			Z: float32(rng.Float64()*20 - 10),
		}
		dir, ok := geom.Vec3{
			X: float32(rng.Float64()*2 - 1),
			Y: float32(rng.Float64()*2 - 1),
			Z: float32(rng.Float64()*2 - 1),
		}.Normalize()
		if !ok {
			continue
		}
		r := isect.Ray{Origin: origin, Dir: dir}

		want := isect.ClosestInList(r, prims, nil)
		got, _ := Query(p, r, prims)

		if (want.Dist == 0) != (got.Dist == 0) {
			t.Fatalf("ray %d: hit mismatch, flat=%v partition=%v", i, want.Dist, got.Dist)
		}
		if want.Dist != 0 && !aeqf(want.Dist, got.Dist) {
			t.Errorf("ray %d: Dist flat=%v partition=%v", i, want.Dist, got.Dist)
		}
	}
}

func TestQueryStatsCountLeavesAndPrimitives(t *testing.T) {
	prims := []scene.Primitive{
		scene.NewSphere(geom.Vec3{X: -3, Y: 0, Z: 0}, 1),
		scene.NewSphere(geom.Vec3{X: 3, Y: 0, Z: 0}, 1),
	}
	params := DefaultParams()
	params.MaxObjectsPerLeaf = 1
	p := Build(prims, geom.Vec3{}, params, nil)

	r := isect.Ray{Origin: geom.Vec3{X: -3, Y: 0, Z: -5}, Dir: geom.Vec3{X: 0, Y: 0, Z: 1}}
	_, stats := Query(p, r, prims)
	if stats.Rays != 1 {
		t.Errorf("Rays=%d want 1", stats.Rays)
	}
	if stats.Leaves == 0 {
		t.Error("expected at least one leaf visited")
	}
}

func TestBuildDuplicatesStraddlingPrimitive(t *testing.T) {
	prims := []scene.Primitive{
		scene.NewSphere(geom.Vec3{X: 0, Y: 0, Z: 0}, 5), // straddles any midpoint split through the origin.
		scene.NewSphere(geom.Vec3{X: -3, Y: 0, Z: 0}, 0.1),
		scene.NewSphere(geom.Vec3{X: 3, Y: 0, Z: 0}, 0.1),
	}
	params := DefaultParams()
	params.MaxObjectsPerLeaf = 1
	p := Build(prims, geom.Vec3{}, params, nil)

	count := 0
	for _, idx := range p.Indices {
		if idx == 0 {
			count++
		}
	}
	if count < 2 {
		t.Errorf("expected the large straddling sphere to be duplicated into multiple leaves, appeared %d times", count)
	}
}
