package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func TestShapeRayTOI(t *testing.T) {
	tests := []struct {
		name   string
		shape  Shape
		origin mgl32.Vec3
		dir    mgl32.Vec3
		solid  bool
		hit    bool
		toi    float32
	}{
		{"cuboid front face", Cuboid{Half: mgl32.Vec3{0.5, 0.5, 0.5}}, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, true, true, 4.5},
		{"cuboid miss", Cuboid{Half: mgl32.Vec3{0.5, 0.5, 0.5}}, mgl32.Vec3{2, 0, 5}, mgl32.Vec3{0, 0, -1}, true, false, 0},
		{"cuboid behind", Cuboid{Half: mgl32.Vec3{0.5, 0.5, 0.5}}, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}, true, false, 0},
		{"cuboid inside solid", Cuboid{Half: mgl32.Vec3{0.5, 0.5, 0.5}}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, true, true, 0},
		{"cuboid inside hollow", Cuboid{Half: mgl32.Vec3{0.5, 0.5, 0.5}}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, false, true, 0.5},
		{"ball", Ball{Radius: 1}, mgl32.Vec3{-4, 0, 0}, mgl32.Vec3{1, 0, 0}, true, true, 3},
		{"ball miss", Ball{Radius: 1}, mgl32.Vec3{-4, 2, 0}, mgl32.Vec3{1, 0, 0}, true, false, 0},
		{"cylinder side", Cylinder{HalfHeight: 1, Radius: 0.5}, mgl32.Vec3{3, 0, 0}, mgl32.Vec3{-1, 0, 0}, true, true, 2.5},
		{"cylinder cap", Cylinder{HalfHeight: 1, Radius: 0.5}, mgl32.Vec3{0, 4, 0}, mgl32.Vec3{0, -1, 0}, true, true, 3},
		{"cylinder over cap edge", Cylinder{HalfHeight: 1, Radius: 0.5}, mgl32.Vec3{3, 1.5, 0}, mgl32.Vec3{-1, 0, 0}, true, false, 0},
		{"cylinder corner miss", Cylinder{HalfHeight: 1, Radius: 0.5}, mgl32.Vec3{0.45, 0, 3}, mgl32.Vec3{0.1, 0, -1}.Normalize(), true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toi, ok := tt.shape.RayTOI(tt.origin, tt.dir, 100, tt.solid)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%v, got %v (toi %f)", tt.hit, ok, toi)
			}
			if ok && !approx(toi, tt.toi, 1e-4) {
				t.Errorf("Expected toi %f, got %f", tt.toi, toi)
			}
		})
	}
}

func TestShapeRayTOIMaxDistance(t *testing.T) {
	box := Cuboid{Half: mgl32.Vec3{0.5, 0.5, 0.5}}
	if _, ok := box.RayTOI(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, 4, true); ok {
		t.Error("Hit beyond maxTOI should be discarded")
	}
}

func TestColliderRayTOIRespectsPoseAndMargin(t *testing.T) {
	w := NewWorld(1.0 / 60)
	body := w.AddBody(BodyDesc{
		Status:   Dynamic,
		Position: mgl32.Vec3{0, 0, -3},
		Rotation: mgl32.QuatRotate(math.Pi/4, mgl32.Vec3{0, 1, 0}),
	})
	h, ok := w.AddCollider(ColliderDesc{Shape: Cuboid{Half: mgl32.Vec3{0.49, 0.49, 0.49}}, Margin: 0.01, Body: body})
	if !ok {
		t.Fatal("AddCollider failed")
	}

	toi, ok := w.ColliderRayTOI(h, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 10, true)
	if !ok {
		t.Fatal("Expected hit")
	}
	// A box rotated 45 degrees presents its edge: half diagonal is 0.5*sqrt2.
	want := 3 - 0.5*float32(math.Sqrt2)
	if !approx(toi, want, 1e-3) {
		t.Errorf("Expected toi %f, got %f", want, toi)
	}
}

func TestCastRaySkipsSensors(t *testing.T) {
	w := NewWorld(1.0 / 60)
	solid := w.AddBody(BodyDesc{Status: Static, Position: mgl32.Vec3{0, 0, -5}})
	sensor := w.AddBody(BodyDesc{Status: Kinematic, Position: mgl32.Vec3{0, 0, -2}})
	solidCol, _ := w.AddCollider(ColliderDesc{Shape: Ball{Radius: 1}, Body: solid})
	w.AddCollider(ColliderDesc{Shape: Ball{Radius: 1}, Body: sensor, Sensor: true})

	count := 0
	for h, toi := range w.CastRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 100, true) {
		count++
		if h != solidCol {
			t.Errorf("Unexpected collider %d in ray results", h)
		}
		if !approx(toi, 4, 1e-4) {
			t.Errorf("Expected toi 4, got %f", toi)
		}
	}
	if count != 1 {
		t.Errorf("Expected 1 hit, got %d", count)
	}

	hit, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 100)
	if !ok || hit.Collider != solidCol {
		t.Errorf("Raycast should return the solid collider, got %+v", hit)
	}
}
