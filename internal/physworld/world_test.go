package physworld

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func newTestWorld() *World {
	return New(Options{
		Timestep: time.Second / 60,
		Gravity:  rl.Vector3{Y: -9.81},
	}, log.New(io.Discard))
}

func addCube(t *testing.T, w *World, pos rl.Vector3) (BodyHandle, ColliderHandle) {
	t.Helper()
	b := w.AddRigidBody(NewPose(pos, rl.QuaternionIdentity()), Inertia{}, rl.Vector3{})
	c, err := w.AddCollider(0.01, Cuboid(rl.Vector3{X: 0.49, Y: 0.49, Z: 0.49}), b, IdentityPose(), Material{Density: 1, Friction: 0.5})
	if err != nil {
		t.Fatalf("AddCollider failed: %v", err)
	}
	return b, c
}

func TestTimestep(t *testing.T) {
	w := newTestWorld()
	if w.Timestep() != time.Second/60 {
		t.Errorf("Expected timestep %v, got %v", time.Second/60, w.Timestep())
	}

	def := New(Options{}, nil)
	if def.Timestep() <= 0 {
		t.Error("Zero timestep should fall back to a default")
	}
}

func TestBodyPoseRoundTrip(t *testing.T) {
	w := newTestWorld()
	rot := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/3)
	b := w.AddRigidBody(NewPose(rl.Vector3{X: 1, Y: 2, Z: 3}, rot), Inertia{Mass: 1, Principal: rl.Vector3{X: 1, Y: 1, Z: 1}}, rl.Vector3{})

	pose, ok := w.BodyPose(b)
	if !ok {
		t.Fatal("BodyPose should resolve a live handle")
	}
	if pose.Position != (rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Expected position (1,2,3), got %v", pose.Position)
	}
	if math.Abs(float64(pose.Rotation.W-rot.W)) > 1e-6 || math.Abs(float64(pose.Rotation.Y-rot.Y)) > 1e-6 {
		t.Errorf("Expected rotation %v, got %v", rot, pose.Rotation)
	}
}

func TestStaleHandles(t *testing.T) {
	w := newTestWorld()
	b, c := addCube(t, w, rl.Vector3{Y: 5})

	if !w.RemoveCollider(c) {
		t.Fatal("RemoveCollider should succeed for a live handle")
	}
	if w.RemoveCollider(c) {
		t.Error("RemoveCollider should report a stale handle")
	}
	if _, ok := w.BodyPose(b); ok {
		t.Error("BodyPose should fail once the last collider is removed")
	}
	if err := w.SetLinearVelocity(b, rl.Vector3{X: 1}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Expected ErrStaleHandle, got %v", err)
	}
	if _, err := w.AddCollider(0, Ball(1), b, IdentityPose(), Material{}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Expected ErrStaleHandle, got %v", err)
	}
	if _, err := w.AddForceGenerator(ForceSpec{Linear: rl.Vector3{Y: 9.81}, Bodies: []BodyHandle{b}}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Expected ErrStaleHandle, got %v", err)
	}
	if w.ForceGeneratorCount() != 0 {
		t.Errorf("Failed AddForceGenerator should not register anything, got %d", w.ForceGeneratorCount())
	}
}

func TestForceGeneratorCancelsGravity(t *testing.T) {
	w := newTestWorld()
	b, _ := addCube(t, w, rl.Vector3{Y: 5})

	fh, err := w.AddForceGenerator(ForceSpec{Linear: rl.Vector3Negate(w.Gravity()), Bodies: []BodyHandle{b}})
	if err != nil {
		t.Fatalf("AddForceGenerator failed: %v", err)
	}
	if w.ForceGeneratorCount() != 1 {
		t.Errorf("Expected 1 force generator, got %d", w.ForceGeneratorCount())
	}

	for i := 0; i < 30; i++ {
		w.Step()
	}
	v, _ := w.LinearVelocity(b)
	if math.Abs(float64(v.Y)) > 1e-5 {
		t.Errorf("Expected no vertical velocity, got %f", v.Y)
	}

	if !w.RemoveForceGenerator(fh) {
		t.Error("RemoveForceGenerator should succeed")
	}
	if w.ForceGeneratorCount() != 0 {
		t.Errorf("Expected 0 force generators, got %d", w.ForceGeneratorCount())
	}
}

func TestCastRayAndColliderTOI(t *testing.T) {
	w := newTestWorld()
	_, near := addCube(t, w, rl.Vector3{Z: -3})
	_, far := addCube(t, w, rl.Vector3{Z: -6})

	hits := map[ColliderHandle]float32{}
	for h, toi := range w.CastRay(rl.Vector3{}, rl.Vector3{Z: -1}) {
		hits[h] = toi
	}
	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(hits))
	}
	if math.Abs(float64(hits[near]-2.5)) > 1e-4 {
		t.Errorf("Expected near toi 2.5, got %f", hits[near])
	}
	if math.Abs(float64(hits[far]-5.5)) > 1e-4 {
		t.Errorf("Expected far toi 5.5, got %f", hits[far])
	}

	if _, ok := w.ColliderTOI(far, rl.Vector3{}, rl.Vector3{Z: -1}, 4); ok {
		t.Error("ColliderTOI should respect maxTOI")
	}
	if toi, ok := w.ColliderTOI(near, rl.Vector3{}, rl.Vector3{Z: -1}, 4); !ok || math.Abs(float64(toi-2.5)) > 1e-4 {
		t.Errorf("Expected toi 2.5, got %f (ok=%v)", toi, ok)
	}
}

func TestSensorFollowsBody(t *testing.T) {
	w := newTestWorld()
	body, cube := addCube(t, w, rl.Vector3{X: 10, Y: 5})
	if _, err := w.AddForceGenerator(ForceSpec{Linear: rl.Vector3{Y: 9.81}, Bodies: []BodyHandle{body}}); err != nil {
		t.Fatalf("AddForceGenerator failed: %v", err)
	}

	holder := w.AddRigidBody(IdentityPose(), Inertia{}, rl.Vector3{}, Kinematic())
	sensor, err := w.AddSensor(Cylinder(5, 0.75), holder, IdentityPose())
	if err != nil {
		t.Fatalf("AddSensor failed: %v", err)
	}

	w.Step()
	for range w.Intersections(sensor) {
		t.Error("Sensor should not overlap anything yet")
	}

	cubePose, _ := w.ColliderPose(cube)
	if err := w.SetBodyPose(holder, NewPose(cubePose.Position, rl.QuaternionIdentity())); err != nil {
		t.Fatalf("SetBodyPose failed: %v", err)
	}
	w.Step()

	found := false
	for h := range w.Intersections(sensor) {
		if h == cube {
			found = true
		}
	}
	if !found {
		t.Error("Sensor should overlap the cube after moving onto it")
	}
}
