package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type counter struct {
	BaseComponent
	starts  int
	updates int
	lastDT  float32
}

func (c *counter) Start() { c.starts++ }

func (c *counter) Update(dt float32) {
	c.updates++
	c.lastDT = dt
}

func TestNewGameObject(t *testing.T) {
	box := NewGameObject("box0")

	if box.Name != "box0" {
		t.Errorf("Expected name 'box0', got '%s'", box.Name)
	}
	if box.UID == 0 {
		t.Error("UID should not be 0")
	}
	if !box.Active {
		t.Error("New objects should be active")
	}
	if box.Transform.Rotation != rl.QuaternionIdentity() {
		t.Errorf("Expected identity rotation, got %v", box.Transform.Rotation)
	}

	other := NewGameObject("box1")
	if other.UID == box.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGetComponent(t *testing.T) {
	box := NewGameObject("box0")
	if GetComponent[*counter](box) != nil {
		t.Error("GetComponent should return nil before AddComponent")
	}
	if HasComponent[*counter](box) {
		t.Error("HasComponent should be false before AddComponent")
	}

	c := &counter{}
	box.AddComponent(c)

	if GetComponent[*counter](box) != c {
		t.Error("GetComponent failed to find component")
	}
	if !HasComponent[*counter](box) {
		t.Error("HasComponent should be true after AddComponent")
	}
	if c.GetGameObject() != box {
		t.Error("Component should point back at its object")
	}
	if len(box.Components()) != 1 {
		t.Errorf("Expected 1 component, got %d", len(box.Components()))
	}
}

func TestLifecycle(t *testing.T) {
	box := NewGameObject("box0")
	c := &counter{}
	box.AddComponent(c)

	box.Start()
	box.Start()
	if c.starts != 1 {
		t.Errorf("Start should run once, ran %d times", c.starts)
	}

	box.Update(0.5)
	if c.updates != 1 || c.lastDT != 0.5 {
		t.Errorf("Expected one update with dt 0.5, got %d with %f", c.updates, c.lastDT)
	}

	box.Active = false
	box.Update(0.5)
	if c.updates != 1 {
		t.Error("Inactive objects should not update")
	}
}

func TestChildren(t *testing.T) {
	self := NewGameObject("Self")
	eye := NewGameObject("Eye")
	marker := NewGameObject("Marker")

	self.AddChild(eye)
	self.AddChild(marker)
	if eye.Parent != self || len(self.Children) != 2 {
		t.Fatalf("Expected 2 children with parent set, got %d", len(self.Children))
	}

	self.RemoveChild(eye)
	if len(self.Children) != 1 || self.Children[0] != marker {
		t.Error("Wrong child removed")
	}
	if eye.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestWorldTransform(t *testing.T) {
	self := NewGameObject("Self")
	self.Transform.Position = rl.Vector3{X: 1}
	self.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2)
	self.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	eye := NewGameObject("Eye")
	eye.Transform.Position = rl.Vector3{Z: 1}
	self.AddChild(eye)

	// Scaled to 2, then +Z turned a quarter about Y lands on +X.
	pos := eye.WorldPosition()
	if math.Abs(float64(pos.X-3)) > 1e-5 || math.Abs(float64(pos.Z)) > 1e-5 {
		t.Errorf("Expected world position (3,0,0), got %v", pos)
	}

	back := rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, eye.WorldRotation())
	if math.Abs(float64(back.X-1)) > 1e-5 {
		t.Errorf("Expected local +Z on world +X, got %v", back)
	}
	if s := eye.WorldScale(); s.X != 2 {
		t.Errorf("Expected inherited scale 2, got %v", s)
	}
}
