package picking

import (
	"io"
	"math"
	"testing"
	"time"

	"grabsim/internal/components"
	"grabsim/internal/engine"
	"grabsim/internal/physworld"
	"grabsim/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func newScene(t *testing.T) *world.World {
	t.Helper()
	phys := physworld.New(physworld.Options{Timestep: time.Second / 60}, log.New(io.Discard))
	return world.New(phys, 0.01, log.New(io.Discard))
}

func spawn(t *testing.T, w *world.World, name string, pos rl.Vector3, grabbable bool) *engine.GameObject {
	t.Helper()
	g, err := w.SpawnBox(world.BoxSpec{
		Name:        name,
		Position:    pos,
		HalfExtents: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5},
		Grabbable:   grabbable,
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCameraRay(t *testing.T) {
	r := CameraRay(rl.Vector3{X: 1}, rl.QuaternionIdentity())
	if r.Origin != (rl.Vector3{X: 1}) {
		t.Errorf("Expected origin (1,0,0), got %v", r.Origin)
	}
	if math.Abs(float64(r.Direction.Z+1)) > 1e-6 {
		t.Errorf("Expected direction -Z, got %v", r.Direction)
	}

	turned := CameraRay(rl.Vector3{}, rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, -math.Pi/2))
	if math.Abs(float64(turned.Direction.X-1)) > 1e-5 {
		t.Errorf("Expected direction +X, got %v", turned.Direction)
	}
}

func TestPickNearest(t *testing.T) {
	w := newScene(t)
	far := spawn(t, w, "Far", rl.Vector3{Z: -6}, true)
	near := spawn(t, w, "Near", rl.Vector3{Z: -3}, true)
	_ = far

	hit, ok := Pick[*components.Grabbable](w.Scene, w.Registry(), w.Physics, CameraRay(rl.Vector3{}, rl.QuaternionIdentity()))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Entity != near {
		t.Errorf("Expected Near, got %s", hit.Entity.Name)
	}
	if math.Abs(float64(hit.TOI-2.5)) > 1e-4 {
		t.Errorf("Expected toi 2.5, got %f", hit.TOI)
	}
	if hit.Data == nil || hit.Data.GetGameObject() != near {
		t.Error("Hit should carry the entity's Grabbable")
	}
}

func TestPickSkipsIneligible(t *testing.T) {
	w := newScene(t)
	spawn(t, w, "Blocker", rl.Vector3{Z: -2}, false)
	target := spawn(t, w, "Target", rl.Vector3{Z: -5}, true)

	hit, ok := Pick[*components.Grabbable](w.Scene, w.Registry(), w.Physics, CameraRay(rl.Vector3{}, rl.QuaternionIdentity()))
	if !ok || hit.Entity != target {
		t.Errorf("Expected Target behind the ineligible blocker, got %v", hit.Entity)
	}
}

func TestPickMiss(t *testing.T) {
	w := newScene(t)
	spawn(t, w, "Behind", rl.Vector3{Z: 3}, true)
	spawn(t, w, "Aside", rl.Vector3{X: 3, Z: -3}, true)

	if _, ok := Pick[*components.Grabbable](w.Scene, w.Registry(), w.Physics, CameraRay(rl.Vector3{}, rl.QuaternionIdentity())); ok {
		t.Error("Nothing lies on the ray")
	}
}

func TestPickStaleCollider(t *testing.T) {
	w := newScene(t)
	g := spawn(t, w, "Ghost", rl.Vector3{Z: -3}, true)
	h, _ := w.Registry().BodyFor(g)
	w.Physics.RemoveCollider(h)

	if _, ok := Pick[*components.Grabbable](w.Scene, w.Registry(), w.Physics, CameraRay(rl.Vector3{}, rl.QuaternionIdentity())); ok {
		t.Error("An entity whose collider is gone cannot be picked")
	}
}

type fakeCaster map[physworld.ColliderHandle]float32

func (f fakeCaster) ColliderTOI(h physworld.ColliderHandle, _, _ rl.Vector3, _ float32) (float32, bool) {
	toi, ok := f[h]
	return toi, ok
}

type fakeRegistry map[*engine.GameObject]physworld.ColliderHandle

func (f fakeRegistry) BodyFor(g *engine.GameObject) (physworld.ColliderHandle, bool) {
	h, ok := f[g]
	return h, ok
}

func TestPickNaNSortsLast(t *testing.T) {
	scene := engine.NewScene("Test")
	reg := fakeRegistry{}
	caster := fakeCaster{}
	nan := float32(math.NaN())

	for i, toi := range []float32{nan, 7, nan, 2, 9} {
		g := engine.NewGameObject("obj")
		g.AddComponent(&components.Grabbable{})
		scene.AddGameObject(g)
		reg[g] = physworld.ColliderHandle(i + 1)
		caster[physworld.ColliderHandle(i+1)] = toi
	}

	hit, ok := Pick[*components.Grabbable](scene, reg, caster, Ray{Direction: rl.Vector3{Z: -1}})
	if !ok || hit.TOI != 2 {
		t.Errorf("Expected toi 2, got %f (ok=%v)", hit.TOI, ok)
	}
}

func TestLess(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		a, b float32
		want bool
	}{
		{1, 2, true},
		{2, 1, false},
		{1, 1, false},
		{1, nan, true},
		{nan, 1, false},
		{nan, nan, false},
		{float32(math.Inf(1)), nan, true},
	}
	for _, tt := range tests {
		if got := Less(tt.a, tt.b); got != tt.want {
			t.Errorf("Less(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
