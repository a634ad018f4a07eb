package camera

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func view(rot rl.Quaternion) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: -1}, rot)
}

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestFacing(t *testing.T) {
	tests := []struct {
		name string
		dir  rl.Vector3
	}{
		{"PlusX", rl.Vector3{X: 1}},
		{"MinusZ", rl.Vector3{Z: -1}},
		{"PlusZ", rl.Vector3{Z: 1}},
		{"Diagonal", rl.Vector3Normalize(rl.Vector3{X: -1, Y: 3, Z: 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view(Facing(tt.dir))
			want := rl.Vector3Normalize(rl.Vector3{X: tt.dir.X, Z: tt.dir.Z})
			if !near(got.X, want.X, 1e-5) || !near(got.Z, want.Z, 1e-5) || !near(got.Y, 0, 1e-5) {
				t.Errorf("Expected view %v, got %v", want, got)
			}
		})
	}
}

func TestMouseLookYaw(t *testing.T) {
	m := NewMouseLook(0.2, 0.8)
	rot := rl.QuaternionIdentity()

	// 450 px right at 0.2 deg/px is a quarter turn to the right.
	rot = m.Rotate(rot, rl.Vector2{X: 450})
	v := view(rot)
	if !near(v.X, 1, 1e-4) || !near(v.Z, 0, 1e-4) {
		t.Errorf("Expected view +X, got %v", v)
	}
}

func TestMouseLookPitchClamp(t *testing.T) {
	m := NewMouseLook(0.2, 0.8)
	rot := rl.QuaternionIdentity()

	rot = m.Rotate(rot, rl.Vector2{Y: -300})
	if y := view(rot).Y; y > 0.8+1e-4 {
		t.Errorf("Looking up should clamp at 0.8, got %f", y)
	}
	if y := view(rot).Y; y < 0.75 {
		t.Errorf("Looking up should get close to the limit, got %f", y)
	}

	rot = m.Rotate(rot, rl.Vector2{Y: 700})
	if y := view(rot).Y; y < -0.8-1e-4 {
		t.Errorf("Looking down should clamp at -0.8, got %f", y)
	}

	up := rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rot)
	if up.Y <= 0 {
		t.Errorf("Camera should never roll upside down, up = %v", up)
	}
}

func TestMouseLookZeroDelta(t *testing.T) {
	m := NewMouseLook(0.2, 0.8)
	rot := Facing(rl.Vector3{X: 1})
	if got := m.Rotate(rot, rl.Vector2{}); got != rot {
		t.Errorf("Zero delta should not change rotation, got %v", got)
	}
}
