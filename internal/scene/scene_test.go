package scene

import (
	"testing"

	"github.com/gazed/pathtrace/internal/geom"
)

func TestTextureIndexSkipsSlotZero(t *testing.T) {
	black := NewTexture(1, 1)
	white := NewTexture(1, 1)
	white.Set(0, 0, geom.Color{X: 1, Y: 1, Z: 1})

	s := &Scene{Textures: []*Texture{black, white}}

	if tx := s.Texture(0); tx != nil {
		t.Errorf("index 0 should mean none, got %v", tx)
	}
	// index 1 resolves to Textures[1] (white), not Textures[0] (black).
	if tx := s.Texture(1); tx != white {
		t.Errorf("index 1 should resolve to Textures[1], got %v", tx)
	}
	// index 2 would be one past the end; must degrade, not panic.
	if tx := s.Texture(2); tx != nil {
		t.Errorf("out-of-range index should degrade to none, got %v", tx)
	}
}

func TestTextureSampleWraps(t *testing.T) {
	tex := NewTexture(2, 2)
	black := geom.Color{}
	white := geom.Color{X: 1, Y: 1, Z: 1}
	// Checkerboard: (x+y) even -> black, odd -> white.
	tex.Set(0, 0, black)
	tex.Set(1, 0, white)
	tex.Set(0, 1, white)
	tex.Set(1, 1, black)

	cases := []struct {
		uv   geom.Vec2
		want geom.Color
	}{
		{geom.Vec2{X: 0.25, Y: 0.25}, black},
		{geom.Vec2{X: 0.75, Y: 0.25}, white},
		{geom.Vec2{X: 0.25, Y: 0.75}, white},
		{geom.Vec2{X: 0.75, Y: 0.75}, black},
	}
	for _, c := range cases {
		got := tex.Sample(c.uv)
		if got != c.want {
			t.Errorf("Sample(%v)=%v want %v", c.uv, got, c.want)
		}
	}
}

func TestDefaultCameraLooksTowardPlusY(t *testing.T) {
	cam := DefaultCamera()
	if cam.Origin != (geom.Vec3{}) {
		t.Errorf("default camera origin=%v want zero", cam.Origin)
	}
	if cam.ZAxis.Y >= 0 {
		t.Errorf("default camera should look toward +Y, ZAxis=%v", cam.ZAxis)
	}
}
