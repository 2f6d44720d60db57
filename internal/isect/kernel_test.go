package isect

import (
	"testing"

	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/scene"
)

func aeq(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-3
}

func unit(x, y, z float32) geom.Vec3 {
	v, _ := geom.Vec3{X: x, Y: y, Z: z}.Normalize()
	return v
}

// TestSphereHit mirrors spec scenario 2: sphere at origin radius 1, ray
// origin (0,0,-5), direction (0,0,1): hit at t=4, normal ~= (0,0,-1).
func TestSphereHit(t *testing.T) {
	p := scene.NewSphere(geom.Vec3{}, 1)
	r := Ray{Origin: geom.Vec3{X: 0, Y: 0, Z: -5}, Dir: geom.Vec3{X: 0, Y: 0, Z: 1}}
	h := Primitive(r, &p)
	if !aeq(h.Dist, 4) {
		t.Fatalf("Dist=%v want 4", h.Dist)
	}
	want := geom.Vec3{X: 0, Y: 0, Z: -1}
	if !aeq(h.Normal.X, want.X) || !aeq(h.Normal.Y, want.Y) || !aeq(h.Normal.Z, want.Z) {
		t.Errorf("Normal=%v want %v", h.Normal, want)
	}
	if n := h.Normal.Dot(r.Dir); n > 0 {
		t.Errorf("normal %v should face the ray (dot with dir <= 0), got %v", h.Normal, n)
	}
}

// TestPlaneHit mirrors spec scenario 3: plane N=(0,0,1), d=0; ray origin
// (0,0,1), direction (0,0,-1): hit at t=1, normal (0,0,1).
func TestPlaneHit(t *testing.T) {
	p := scene.NewPlane(geom.Vec3{X: 0, Y: 0, Z: 1}, 0)
	r := Ray{Origin: geom.Vec3{X: 0, Y: 0, Z: 1}, Dir: geom.Vec3{X: 0, Y: 0, Z: -1}}
	h := Primitive(r, &p)
	if !aeq(h.Dist, 1) {
		t.Fatalf("Dist=%v want 1", h.Dist)
	}
	want := geom.Vec3{X: 0, Y: 0, Z: 1}
	if !aeq(h.Normal.X, want.X) || !aeq(h.Normal.Y, want.Y) || !aeq(h.Normal.Z, want.Z) {
		t.Errorf("Normal=%v want %v", h.Normal, want)
	}
}

// TestTriangleHit mirrors spec scenario 4: V0=(0,0,0), V1=(1,0,0),
// V2=(0,1,0); ray origin (0.25,0.25,1), direction (0,0,-1): hit t=1,
// u in (0,1), v in (0,1), u+v<1.
func TestTriangleHit(t *testing.T) {
	p := scene.NewTriangle(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0})
	r := Ray{Origin: geom.Vec3{X: 0.25, Y: 0.25, Z: 1}, Dir: geom.Vec3{X: 0, Y: 0, Z: -1}}
	h := Primitive(r, &p)
	if !aeq(h.Dist, 1) {
		t.Fatalf("Dist=%v want 1", h.Dist)
	}
	if !(h.U > 0 && h.U < 1) {
		t.Errorf("U=%v want in (0,1)", h.U)
	}
	if !(h.V > 0 && h.V < 1) {
		t.Errorf("V=%v want in (0,1)", h.V)
	}
	if h.U+h.V >= 1 {
		t.Errorf("U+V=%v want < 1", h.U+h.V)
	}
}

func TestTriangleMissOutsideEdges(t *testing.T) {
	p := scene.NewTriangle(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0})
	r := Ray{Origin: geom.Vec3{X: 2, Y: 2, Z: 1}, Dir: geom.Vec3{X: 0, Y: 0, Z: -1}}
	h := Primitive(r, &p)
	if h.Dist != 0 {
		t.Errorf("expected miss outside the triangle's edges, got Dist=%v", h.Dist)
	}
}

func TestParallelogramAcceptsFullUnitSquare(t *testing.T) {
	p := scene.NewParallelogram(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0})
	r := Ray{Origin: geom.Vec3{X: 0.9, Y: 0.9, Z: 1}, Dir: geom.Vec3{X: 0, Y: 0, Z: -1}}
	h := Primitive(r, &p)
	if h.Dist == 0 {
		t.Fatal("expected parallelogram hit near the far corner of the unit square")
	}
	pTri := scene.NewTriangle(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0})
	if hTri := Primitive(r, &pTri); hTri.Dist != 0 {
		t.Fatal("triangle should miss near the far corner, since u+v > 1 there")
	}
}

func TestDegenerateTriangleMisses(t *testing.T) {
	p := scene.NewTriangle(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 2, Y: 0, Z: 0})
	r := Ray{Origin: geom.Vec3{X: 0.5, Y: 1, Z: 1}, Dir: geom.Vec3{X: 0, Y: 0, Z: -1}}
	if h := Primitive(r, &p); h.Dist != 0 {
		t.Errorf("zero-area triangle should always miss, got %v", h)
	}
}

func TestClosestInListPicksNearest(t *testing.T) {
	prims := []scene.Primitive{
		scene.NewSphere(geom.Vec3{X: 0, Y: 0, Z: -10}, 1),
		scene.NewSphere(geom.Vec3{X: 0, Y: 0, Z: -5}, 1),
	}
	r := Ray{Origin: geom.Vec3{}, Dir: unit(0, 0, -1)}
	h := ClosestInList(r, prims, nil)
	if h.Index != 1 {
		t.Errorf("Index=%d want 1 (the nearer sphere)", h.Index)
	}
	if !aeq(h.Dist, 4) {
		t.Errorf("Dist=%v want 4", h.Dist)
	}
}

func TestSphereInsideUsesFarRoot(t *testing.T) {
	p := scene.NewSphere(geom.Vec3{}, 2)
	r := Ray{Origin: geom.Vec3{}, Dir: geom.Vec3{X: 0, Y: 0, Z: 1}}
	h := Primitive(r, &p)
	if !aeq(h.Dist, 2) {
		t.Errorf("Dist=%v want 2 (far root, ray starts inside)", h.Dist)
	}
}

func TestNoHitSentinelIsZero(t *testing.T) {
	if None.Dist != 0 {
		t.Fatal("None.Dist must be zero")
	}
}
