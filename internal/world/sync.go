package world

import (
	"grabsim/internal/components"
	"grabsim/internal/engine"
)

// SyncTransforms overwrites the transform of every physics-backed entity
// with its collider's pose. Entities whose handle no longer resolves are
// left untouched.
func (w *World) SyncTransforms() {
	for g, pb := range engine.Query[*components.PhysicsBody](w.Scene) {
		pose, ok := w.Physics.ColliderPose(pb.Collider())
		if !ok {
			continue
		}
		g.Transform.Position = pose.Position
		g.Transform.Rotation = pose.Rotation
	}
}

// DispatchCollisions drains contact events and delivers them to
// CollisionHandler components on both entities. Sensor events are left to
// the sensor's owner.
func (w *World) DispatchCollisions() {
	reg := w.Registry()
	for _, ev := range w.Physics.DrainEvents() {
		if ev.Sensor {
			continue
		}
		a, okA := reg.EntityFor(ev.A)
		b, okB := reg.EntityFor(ev.B)
		if !okA || !okB {
			continue
		}
		if ev.Started {
			notifyCollisionEnter(a, b)
			notifyCollisionEnter(b, a)
		} else {
			notifyCollisionExit(a, b)
			notifyCollisionExit(b, a)
		}
	}
}

func notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionEnter(other)
		}
	}
}

func notifyCollisionExit(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionExit(other)
		}
	}
}
