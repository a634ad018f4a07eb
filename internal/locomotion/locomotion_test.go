package locomotion

import (
	"io"
	"math"
	"testing"
	"time"

	"grabsim/internal/camera"
	"grabsim/internal/engine"
	"grabsim/internal/input"
	"grabsim/internal/physworld"
	"grabsim/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const dt = float32(1.0 / 60)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

type fixture struct {
	world  *world.World
	self   *engine.GameObject
	camera *engine.GameObject
	driver *Driver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	phys := physworld.New(physworld.Options{
		Timestep: time.Second / 60,
		Gravity:  rl.Vector3{Y: -9.81},
	}, log.New(io.Discard))
	w := world.New(phys, 0.01, log.New(io.Discard))
	if _, err := w.SpawnFloor(world.FloorSpec{HalfExtents: rl.Vector3{X: 30, Y: 0.5, Z: 30}}); err != nil {
		t.Fatal(err)
	}
	self, err := w.SpawnSelf(world.SelfSpec{
		Position:   rl.Vector3{X: 8, Y: 0.9, Z: 4},
		HalfHeight: 0.9,
		Radius:     0.75,
		EyeOffset:  0.9,
	})
	if err != nil {
		t.Fatal(err)
	}
	cam := w.SpawnCamera(rl.Vector3{X: 8, Y: 1.8, Z: 4}, camera.Facing(rl.Vector3{X: 1}))
	return &fixture{
		world:  w,
		self:   self,
		camera: cam,
		driver: New(DefaultConfig(), phys, log.New(io.Discard)),
	}
}

func moveInput(x, z float32, focused bool, down ...input.Button) input.Snapshot {
	var tr input.Tracker
	return tr.Next(map[string]float32{input.AxisMoveX: x, input.AxisMoveZ: z}, rl.Vector2{}, focused, down...)
}

func (f *fixture) frame(in input.Snapshot) {
	f.driver.Command(f.self, f.camera.Transform.Rotation, in)
	f.world.Physics.Step()
	f.world.SyncTransforms()
	f.driver.SyncCamera(f.self, f.camera)
}

func TestDirectionUsesYaw(t *testing.T) {
	facingX := camera.Facing(rl.Vector3{X: 1})

	// Facing +X the right-hand side is +Z.
	dir, ok := Direction(facingX, moveInput(1, 0, true))
	if !ok || !near(dir.Z, 1, 1e-5) || !near(dir.X, 0, 1e-5) {
		t.Errorf("Expected +Z, got %v", dir)
	}

	// Forward is -move_z.
	dir, _ = Direction(facingX, moveInput(0, -1, true))
	if !near(dir.X, 1, 1e-5) {
		t.Errorf("Expected +X, got %v", dir)
	}

	// Pitch does not tilt or shorten the walk direction.
	pitched := camera.PitchLocal(facingX, 40*rl.Deg2rad)
	dir, _ = Direction(pitched, moveInput(1, -1, true))
	if !near(dir.Y, 0, 1e-6) || !near(rl.Vector3Length(dir), 1, 1e-5) {
		t.Errorf("Expected a horizontal unit vector, got %v", dir)
	}
	want := rl.Vector3Normalize(rl.Vector3{X: 1, Z: 1})
	if !near(dir.X, want.X, 1e-5) || !near(dir.Z, want.Z, 1e-5) {
		t.Errorf("Expected %v, got %v", want, dir)
	}

	if _, ok := Direction(facingX, moveInput(0, 0, true)); ok {
		t.Error("Zero input has no direction")
	}
}

func TestWalkOneStep(t *testing.T) {
	f := newFixture(t)
	f.frame(moveInput(1, 0, true))

	pos := f.self.Transform.Position
	if !near(pos.X, 8, 1e-4) || !near(pos.Z, 4+3*dt, 1e-4) {
		t.Errorf("Expected (8, _, %f), got %v", 4+3*dt, pos)
	}
	if !near(pos.Y, 0.9, 1e-3) {
		t.Errorf("Vertical position should stay on the floor, got %f", pos.Y)
	}

	cam := f.camera.Transform.Position
	if cam.X != pos.X || cam.Z != pos.Z {
		t.Errorf("Camera should track the body horizontally, got %v vs %v", cam, pos)
	}
	if !near(cam.Y, pos.Y+0.9, 1e-5) {
		t.Errorf("Camera should sit at eye height, got %f", cam.Y)
	}
}

func TestRunOneStep(t *testing.T) {
	f := newFixture(t)
	f.frame(moveInput(1, 0, true, input.ButtonRun))

	if z := f.self.Transform.Position.Z; !near(z, 4+6*dt, 1e-4) {
		t.Errorf("Expected z %f when running, got %f", 4+6*dt, z)
	}
}

func TestVelocityResetsEachFrame(t *testing.T) {
	f := newFixture(t)
	f.frame(moveInput(1, 0, true))
	after := f.self.Transform.Position

	f.frame(moveInput(0, 0, true))
	if f.self.Transform.Position != after {
		t.Errorf("Body should stop without input, moved from %v to %v", after, f.self.Transform.Position)
	}

	v, _ := f.world.Physics.LinearVelocity(selfBody(f))
	if v != (rl.Vector3{}) {
		t.Errorf("Expected zero velocity, got %v", v)
	}
}

func TestUnfocusedIgnoresInput(t *testing.T) {
	f := newFixture(t)
	start := f.self.Transform.Position
	f.frame(moveInput(1, -1, false))
	if f.self.Transform.Position != start {
		t.Errorf("Unfocused input should not move the body, got %v", f.self.Transform.Position)
	}
}

func selfBody(f *fixture) physworld.BodyHandle {
	h, _ := f.world.Registry().BodyFor(f.self)
	b, _ := f.world.Physics.ColliderBody(h)
	return b
}

func TestNaNInputDoesNotMove(t *testing.T) {
	f := newFixture(t)
	nan := float32(math.NaN())

	if _, ok := Direction(camera.Facing(rl.Vector3{X: 1}), moveInput(nan, nan, true)); ok {
		t.Error("NaN axes should give no direction")
	}
	badRot := rl.Quaternion{X: nan, Y: nan, Z: nan, W: nan}
	if dir, ok := Direction(badRot, moveInput(1, 0, true)); ok {
		t.Errorf("NaN camera rotation should give no direction, got %v", dir)
	}

	f.frame(moveInput(nan, nan, true))
	pos := f.self.Transform.Position
	if !near(pos.X, 8, 1e-4) || !near(pos.Z, 4, 1e-4) {
		t.Errorf("Self should stay put on NaN input, got %v", pos)
	}
}
