package sceneio

import (
	"testing"

	"github.com/gazed/pathtrace/internal/scene"
)

func noTextures(string) (*scene.Texture, error) { return nil, nil }

func aeq(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestParseSphereWithShading(t *testing.T) {
	src := `
Sphere (Center = (0, 0, 5), Radius = 1.5)
{
	Color = (0.8, 0.2, 0.1),
	Glossy = 0.5,
	Translucency = 0.1,
}
`
	sc, err := Parse([]byte(src), noTextures)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sc.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(sc.Primitives))
	}
	p := sc.Primitives[0]
	if p.Kind != scene.KindSphere {
		t.Fatalf("Kind=%v want KindSphere", p.Kind)
	}
	if !aeq(p.Radius, 1.5) || !aeq(p.Center.Z, 5) {
		t.Errorf("sphere params wrong: %+v", p)
	}
	if !aeq(p.Glossy, 0.5) || !aeq(p.Translucency, 0.1) {
		t.Errorf("shading params wrong: %+v", p)
	}
}

func TestParsePlaneAndTriangleAndParallelogram(t *testing.T) {
	src := `
Plane (Normal = (0, 0, 1), Displacement = 0)
{
	Color = (0.5, 0.5, 0.5),
}

Triangle (Vertices = ((0,0,0), (1,0,0), (0,1,0)))
{
	Color = (1, 0, 0),
}

Parallelogram (Origin = (0,0,0), Axes = ((1,0,0), (0,1,0)))
{
	Color = (0, 1, 0),
}
`
	sc, err := Parse([]byte(src), noTextures)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sc.Primitives) != 3 {
		t.Fatalf("got %d primitives, want 3", len(sc.Primitives))
	}
	if sc.Primitives[0].Kind != scene.KindPlane {
		t.Error("expected first primitive to be a plane")
	}
	if sc.Primitives[1].Kind != scene.KindTriangle {
		t.Error("expected second primitive to be a triangle")
	}
	if sc.Primitives[2].Kind != scene.KindParallelogram {
		t.Error("expected third primitive to be a parallelogram")
	}
}

func TestParseCameraOverridesDefault(t *testing.T) {
	src := `
Camera (Origin = (0, -10, 0), DistToSurface = 2, SurfaceWidth = 4, SurfaceHeight = 3)
{
	LookAt = (0, 0, 0),
	SkyColor = (0.1, 0.2, 0.3),
}
`
	sc, err := Parse([]byte(src), noTextures)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !aeq(sc.Camera.Origin.Y, -10) {
		t.Errorf("Origin=%v", sc.Camera.Origin)
	}
	if !aeq(sc.Camera.DistToSurface, 2) || !aeq(sc.Camera.SurfaceWidth, 4) || !aeq(sc.Camera.SurfaceHeight, 3) {
		t.Errorf("camera surface params wrong: %+v", sc.Camera)
	}
	if !aeq(sc.SkyColor.X, 0.1) || !aeq(sc.SkyColor.Y, 0.2) || !aeq(sc.SkyColor.Z, 0.3) {
		t.Errorf("SkyColor=%v", sc.SkyColor)
	}
}

func TestParseCommentsAreSkipped(t *testing.T) {
	src := `
# a line comment
#{ a block
   comment }#
Sphere (Center = (0,0,0), Radius = 1) # trailing comment
{
	Color = (1,1,1),
}
`
	sc, err := Parse([]byte(src), noTextures)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sc.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(sc.Primitives))
	}
}

func TestParseTexturesBlockAssignsByOneBasedIndex(t *testing.T) {
	src := `
Textures
{
	1 = "checker.tga",
	2 = "bricks.tga",
}

Sphere (Center = (0,0,0), Radius = 1)
{
	Texture = 2,
}
`
	paths := map[string]*scene.Texture{}
	load := func(path string) (*scene.Texture, error) {
		tex := scene.NewTexture(1, 1)
		paths[path] = tex
		return tex, nil
	}
	sc, err := Parse([]byte(src), load)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected both textures to be loaded, got %v", paths)
	}
	if len(sc.Textures) != 2 {
		t.Fatalf("len(Textures)=%d want 2 (one 0-based slot per declared texture)", len(sc.Textures))
	}
	if sc.Primitives[0].TextureIndex != 2 {
		t.Errorf("TextureIndex=%d want 2", sc.Primitives[0].TextureIndex)
	}
	// Reproduces the source's off-by-one: TextureIndex 2 used directly
	// against the 0-based Textures slice resolves one past the end.
	if got := sc.Texture(sc.Primitives[0].TextureIndex); got != nil {
		t.Errorf("Texture(2) = %v, want nil (one past the end, per the preserved off-by-one)", got)
	}
	// TextureIndex 1 instead resolves to Textures[1], the texture
	// declared under index 2 ("bricks.tga").
	if got := sc.Texture(1); got != paths["bricks.tga"] {
		t.Errorf("Texture(1) should resolve to the texture declared as index 2")
	}
}

func TestParseRejectsDuplicateProperty(t *testing.T) {
	src := `
Sphere (Center = (0,0,0), Radius = 1)
{
	Color = (1,1,1),
	Color = (0,0,0),
}
`
	_, err := Parse([]byte(src), noTextures)
	if err == nil {
		t.Fatal("expected a duplicate-property error")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Fatalf("err=%v (%T), want *SemanticError", err, err)
	}
}

func TestParseRejectsTextureIndexBelowOne(t *testing.T) {
	src := `
Sphere (Center = (0,0,0), Radius = 1)
{
	Texture = 0,
}
`
	_, err := Parse([]byte(src), noTextures)
	if err == nil {
		t.Fatal("expected a texture-index error")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Fatalf("err=%v (%T), want *SemanticError", err, err)
	}
}

func TestParseReportsSyntaxErrorWithPosition(t *testing.T) {
	src := "Sphere (Center = (0,0,0) Radius = 1)\n{\n}\n"
	_, err := Parse([]byte(src), noTextures)
	if err == nil {
		t.Fatal("expected a syntax error (missing comma)")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("err=%v (%T), want *SyntaxError", err, err)
	}
	if se.Line == 0 {
		t.Errorf("expected a non-zero line number, got %+v", se)
	}
}
