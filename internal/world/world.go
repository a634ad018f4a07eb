// Package world owns the scene and its physics world and keeps the two in
// step: spawning, destruction, the entity/handle registry and pose read-back.
package world

import (
	"fmt"

	"grabsim/internal/components"
	"grabsim/internal/engine"
	"grabsim/internal/physworld"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Default collider material for spawned boxes.
var boxMaterial = physworld.Material{Friction: 0.5, Density: 1}

type World struct {
	Scene   *engine.Scene
	Physics *physworld.World
	margin  float32
	logger  *log.Logger
}

// New creates an empty scene bound to phys. margin is the collision margin
// applied to spawned colliders.
func New(phys *physworld.World, margin float32, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		Scene:   engine.NewScene("Main"),
		Physics: phys,
		margin:  margin,
		logger:  logger,
	}
}

// Registry returns the entity/handle lookup for this world's scene.
func (w *World) Registry() Registry {
	return Registry{scene: w.Scene}
}

// FloorSpec describes the static ground slab. Its top face sits at y = 0.
type FloorSpec struct {
	HalfExtents rl.Vector3
	Color       rl.Color
}

// SpawnFloor attaches a box collider to the world's ground body.
func (w *World) SpawnFloor(spec FloorSpec) (*engine.GameObject, error) {
	ground := w.Physics.Ground()
	local := physworld.NewPose(rl.Vector3{Y: -spec.HalfExtents.Y}, rl.QuaternionIdentity())
	collider, err := w.Physics.AddCollider(w.margin, physworld.Cuboid(w.shrink(spec.HalfExtents)), ground, local, boxMaterial)
	if err != nil {
		return nil, fmt.Errorf("spawn floor: %w", err)
	}

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = local.Position
	floor.AddComponent(components.NewPhysicsBody(ground, collider))
	floor.AddComponent(components.NewMeshRenderer(components.MeshCube,
		components.Material{Color: spec.Color}, rl.Vector3Scale(spec.HalfExtents, 2)))
	floor.Start()
	w.Scene.AddGameObject(floor)
	return floor, nil
}

// BoxSpec describes a dynamic box.
type BoxSpec struct {
	Name        string
	Position    rl.Vector3
	Rotation    rl.Quaternion
	HalfExtents rl.Vector3 // outer extents, margin included
	Color       rl.Color
	Grabbable   bool
	Mergeable   bool
}

// SpawnBox creates a dynamic box body with unit density.
func (w *World) SpawnBox(spec BoxSpec) (*engine.GameObject, error) {
	if spec.Rotation == (rl.Quaternion{}) {
		spec.Rotation = rl.QuaternionIdentity()
	}
	pose := physworld.NewPose(spec.Position, spec.Rotation)
	body := w.Physics.AddRigidBody(pose, physworld.Inertia{}, rl.Vector3{})
	collider, err := w.Physics.AddCollider(w.margin, physworld.Cuboid(w.shrink(spec.HalfExtents)), body, physworld.IdentityPose(), boxMaterial)
	if err != nil {
		return nil, fmt.Errorf("spawn box %q: %w", spec.Name, err)
	}

	box := engine.NewGameObject(spec.Name)
	box.Transform.Position = spec.Position
	box.Transform.Rotation = spec.Rotation
	box.AddComponent(components.NewPhysicsBody(body, collider))

	def := components.Material{Color: spec.Color}
	box.AddComponent(components.NewMeshRenderer(components.MeshCube, def, rl.Vector3Scale(spec.HalfExtents, 2)))
	if spec.Grabbable {
		box.AddComponent(components.NewGrabbable(def, components.Material{Color: spec.Color, Wireframe: true}))
	}
	if spec.Mergeable {
		box.AddComponent(&components.Mergeable{})
	}
	box.Start()
	w.Scene.AddGameObject(box)
	w.logger.Debug("spawned box", "name", spec.Name, "position", spec.Position)
	return box, nil
}

// SelfSpec describes the player's own body.
type SelfSpec struct {
	Position   rl.Vector3
	HalfHeight float32
	Radius     float32
	EyeOffset  float32
}

// SpawnSelf creates the kinematic cylinder the player walks with.
func (w *World) SpawnSelf(spec SelfSpec) (*engine.GameObject, error) {
	pose := physworld.NewPose(spec.Position, rl.QuaternionIdentity())
	body := w.Physics.AddRigidBody(pose, physworld.Inertia{}, rl.Vector3{},
		physworld.Kinematic(), physworld.LockRotations(), physworld.NoSleep())
	shape := physworld.Cylinder(spec.HalfHeight-w.margin, spec.Radius-w.margin)
	collider, err := w.Physics.AddCollider(w.margin, shape, body, physworld.IdentityPose(), boxMaterial)
	if err != nil {
		return nil, fmt.Errorf("spawn self: %w", err)
	}

	self := engine.NewGameObject("Self")
	self.Transform.Position = spec.Position
	self.AddComponent(components.NewPhysicsBody(body, collider))
	self.AddComponent(&components.SelfBody{EyeOffset: spec.EyeOffset})
	self.Start()
	w.Scene.AddGameObject(self)
	return self, nil
}

// SpawnCamera adds the viewpoint. It has no physics body.
func (w *World) SpawnCamera(position rl.Vector3, rotation rl.Quaternion) *engine.GameObject {
	cam := engine.NewGameObject("Camera")
	cam.Transform.Position = position
	cam.Transform.Rotation = rotation
	cam.AddComponent(components.NewCamera())
	cam.Start()
	w.Scene.AddGameObject(cam)
	return cam
}

// Destroy removes g from the scene and its collider from the physics world.
func (w *World) Destroy(g *engine.GameObject) {
	if pb := engine.GetComponent[*components.PhysicsBody](g); pb != nil {
		if !w.Physics.RemoveCollider(pb.Collider()) {
			w.logger.Warn("destroy: collider already gone", "entity", g.Name)
		}
	}
	for _, child := range g.Children {
		if pb := engine.GetComponent[*components.PhysicsBody](child); pb != nil {
			w.Physics.RemoveCollider(pb.Collider())
		}
	}
	w.Scene.RemoveGameObject(g)
}

// shrink removes the collision margin from outer half extents.
func (w *World) shrink(half rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: half.X - w.margin, Y: half.Y - w.margin, Z: half.Z - w.margin}
}
