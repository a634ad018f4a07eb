// Package physworld adapts the rigid-body engine to the scene's raylib types.
// Handles are opaque and carry no knowledge of entities.
package physworld

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"

	"grabsim/internal/physics"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrStaleHandle is returned when a handle no longer resolves to a live body
// or collider.
var ErrStaleHandle = errors.New("stale physics handle")

type (
	BodyHandle     = physics.BodyHandle
	ColliderHandle = physics.ColliderHandle
	ForceHandle    = physics.ForceHandle
	Shape          = physics.Shape
	Material       = physics.Material
	CollisionEvent = physics.CollisionEvent
)

// Cuboid returns a box shape with the given half extents.
func Cuboid(half rl.Vector3) Shape { return physics.Cuboid{Half: toVec(half)} }

// Ball returns a sphere shape.
func Ball(radius float32) Shape { return physics.Ball{Radius: radius} }

// Cylinder returns a Y-aligned cylinder shape.
func Cylinder(halfHeight, radius float32) Shape {
	return physics.Cylinder{HalfHeight: halfHeight, Radius: radius}
}

// Inertia holds explicit mass properties added on top of collider density.
type Inertia struct {
	Mass      float32
	Principal rl.Vector3
}

// BodyOption adjusts a body before it is added.
type BodyOption func(*physics.BodyDesc)

// Kinematic makes the body move only by its velocity.
func Kinematic() BodyOption {
	return func(d *physics.BodyDesc) { d.Status = physics.Kinematic }
}

// Static makes the body immovable.
func Static() BodyOption {
	return func(d *physics.BodyDesc) { d.Status = physics.Static }
}

// LockRotations prevents the body from rotating.
func LockRotations() BodyOption {
	return func(d *physics.BodyDesc) { d.LockRotations = true }
}

// Damping sets linear and angular velocity damping per second.
func Damping(linear, angular float32) BodyOption {
	return func(d *physics.BodyDesc) {
		d.LinearDamping = linear
		d.AngularDamping = angular
	}
}

// NoSleep keeps the body simulated even when at rest.
func NoSleep() BodyOption {
	return func(d *physics.BodyDesc) { d.CanSleep = false }
}

// ForceSpec describes a constant acceleration scoped to a set of bodies.
type ForceSpec struct {
	Linear  rl.Vector3
	Angular rl.Vector3
	Bodies  []BodyHandle
}

// Options configure a World.
type Options struct {
	Timestep time.Duration
	Gravity  rl.Vector3
}

// World wraps a physics.World.
type World struct {
	inner    *physics.World
	timestep time.Duration
	logger   *log.Logger
}

// New creates a world. Gravity is in place before any body is added.
func New(opts Options, logger *log.Logger) *World {
	if opts.Timestep <= 0 {
		opts.Timestep = time.Second / 60
	}
	if logger == nil {
		logger = log.Default()
	}
	inner := physics.NewWorld(float32(opts.Timestep.Seconds()))
	inner.Gravity = toVec(opts.Gravity)
	return &World{inner: inner, timestep: opts.Timestep, logger: logger}
}

// Engine exposes the wrapped engine for diagnostics.
func (w *World) Engine() *physics.World { return w.inner }

// Ground returns the built-in static body.
func (w *World) Ground() BodyHandle { return w.inner.Ground() }

// Timestep returns the fixed simulation increment.
func (w *World) Timestep() time.Duration { return w.timestep }

// Step advances the simulation by exactly one timestep.
func (w *World) Step() { w.inner.Step() }

// Steps returns how many steps have run.
func (w *World) Steps() uint64 { return w.inner.Steps() }

func (w *World) Gravity() rl.Vector3 { return fromVec(w.inner.Gravity) }

func (w *World) SetGravity(g rl.Vector3) { w.inner.Gravity = toVec(g) }

// AddRigidBody adds a dynamic body unless an option says otherwise.
func (w *World) AddRigidBody(pose Pose, inertia Inertia, centerOfMass rl.Vector3, opts ...BodyOption) BodyHandle {
	desc := physics.BodyDesc{
		Status:       physics.Dynamic,
		Position:     toVec(pose.Position),
		Rotation:     toQuat(pose.Rotation),
		Mass:         inertia.Mass,
		Inertia:      toVec(inertia.Principal),
		CenterOfMass: toVec(centerOfMass),
		CanSleep:     true,
	}
	for _, opt := range opts {
		opt(&desc)
	}
	h := w.inner.AddBody(desc)
	w.logger.Debug("body added", "handle", h, "status", desc.Status)
	return h
}

// AddCollider attaches a shape, inflated by margin, to a body.
func (w *World) AddCollider(margin float32, shape Shape, body BodyHandle, local Pose, material Material) (ColliderHandle, error) {
	return w.addCollider(physics.ColliderDesc{
		Shape:         shape,
		Margin:        margin,
		Body:          body,
		LocalPosition: toVec(local.Position),
		LocalRotation: toQuat(local.Rotation),
		Material:      material,
	})
}

// AddSensor attaches a shape that reports overlaps but never produces
// contact response.
func (w *World) AddSensor(shape Shape, body BodyHandle, local Pose) (ColliderHandle, error) {
	return w.addCollider(physics.ColliderDesc{
		Shape:         shape,
		Body:          body,
		LocalPosition: toVec(local.Position),
		LocalRotation: toQuat(local.Rotation),
		Sensor:        true,
	})
}

func (w *World) addCollider(desc physics.ColliderDesc) (ColliderHandle, error) {
	h, ok := w.inner.AddCollider(desc)
	if !ok {
		return 0, fmt.Errorf("add collider to body %d: %w", desc.Body, ErrStaleHandle)
	}
	return h, nil
}

// RemoveCollider drops a collider, and its body when no collider is left.
// It reports whether the handle was live.
func (w *World) RemoveCollider(h ColliderHandle) bool {
	ok := w.inner.RemoveCollider(h)
	if ok {
		w.logger.Debug("collider removed", "handle", h)
	}
	return ok
}

// CastRay yields every non-sensor collider hit by the ray with its time of
// impact, in no particular order.
func (w *World) CastRay(origin, dir rl.Vector3) iter.Seq2[ColliderHandle, float32] {
	return w.inner.CastRay(toVec(origin), toVec(dir), math.MaxFloat32, true)
}

// ColliderTOI intersects the ray with one collider's shape. A ray starting
// inside the shape hits at zero.
func (w *World) ColliderTOI(h ColliderHandle, origin, dir rl.Vector3, maxTOI float32) (float32, bool) {
	return w.inner.ColliderRayTOI(h, toVec(origin), toVec(dir), maxTOI, true)
}

// AddForceGenerator registers a constant acceleration on the given bodies.
// Every body must be live.
func (w *World) AddForceGenerator(spec ForceSpec) (ForceHandle, error) {
	gen := physics.NewConstantAcceleration(toVec(spec.Linear), toVec(spec.Angular))
	for _, b := range spec.Bodies {
		if _, ok := w.inner.Body(b); !ok {
			return 0, fmt.Errorf("add force generator for body %d: %w", b, ErrStaleHandle)
		}
		gen.AddBodyPart(b)
	}
	return w.inner.AddForceGenerator(gen), nil
}

// RemoveForceGenerator unregisters a generator and reports whether it was
// live.
func (w *World) RemoveForceGenerator(h ForceHandle) bool {
	return w.inner.RemoveForceGenerator(h)
}

// ForceGeneratorCount returns the number of live generators.
func (w *World) ForceGeneratorCount() int { return w.inner.ForceGeneratorCount() }

// BodyPose returns the body's world pose, or false if the handle is stale.
func (w *World) BodyPose(h BodyHandle) (Pose, bool) {
	rb, ok := w.inner.Body(h)
	if !ok {
		return Pose{}, false
	}
	return Pose{Position: fromVec(rb.Position), Rotation: fromQuat(rb.Rotation)}, true
}

// SetBodyPose teleports a body.
func (w *World) SetBodyPose(h BodyHandle, pose Pose) error {
	rb, ok := w.inner.Body(h)
	if !ok {
		return fmt.Errorf("set pose of body %d: %w", h, ErrStaleHandle)
	}
	rb.Position = toVec(pose.Position)
	rb.Rotation = toQuat(pose.Rotation).Normalize()
	rb.Wake()
	return nil
}

// ColliderBody returns the body a collider is attached to.
func (w *World) ColliderBody(h ColliderHandle) (BodyHandle, bool) {
	c, ok := w.inner.Collider(h)
	if !ok {
		return 0, false
	}
	return c.Body, true
}

// ColliderPose returns the collider's world pose.
func (w *World) ColliderPose(h ColliderHandle) (Pose, bool) {
	pos, rot, ok := w.inner.ColliderPose(h)
	if !ok {
		return Pose{}, false
	}
	return Pose{Position: fromVec(pos), Rotation: fromQuat(rot)}, true
}

func (w *World) LinearVelocity(h BodyHandle) (rl.Vector3, error) {
	rb, ok := w.inner.Body(h)
	if !ok {
		return rl.Vector3{}, fmt.Errorf("linear velocity of body %d: %w", h, ErrStaleHandle)
	}
	return fromVec(rb.LinearVelocity), nil
}

func (w *World) AngularVelocity(h BodyHandle) (rl.Vector3, error) {
	rb, ok := w.inner.Body(h)
	if !ok {
		return rl.Vector3{}, fmt.Errorf("angular velocity of body %d: %w", h, ErrStaleHandle)
	}
	return fromVec(rb.AngularVelocity), nil
}

func (w *World) SetLinearVelocity(h BodyHandle, v rl.Vector3) error {
	rb, ok := w.inner.Body(h)
	if !ok {
		return fmt.Errorf("set linear velocity of body %d: %w", h, ErrStaleHandle)
	}
	rb.SetLinearVelocity(toVec(v))
	return nil
}

func (w *World) SetAngularVelocity(h BodyHandle, v rl.Vector3) error {
	rb, ok := w.inner.Body(h)
	if !ok {
		return fmt.Errorf("set angular velocity of body %d: %w", h, ErrStaleHandle)
	}
	rb.SetAngularVelocity(toVec(v))
	return nil
}

// Intersections yields the colliders overlapping a sensor after the last
// step.
func (w *World) Intersections(sensor ColliderHandle) iter.Seq[ColliderHandle] {
	return w.inner.Intersections(sensor)
}

// DrainEvents returns contact and sensor events since the last call.
func (w *World) DrainEvents() []CollisionEvent {
	return w.inner.DrainEvents()
}
