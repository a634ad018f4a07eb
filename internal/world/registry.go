package world

import (
	"grabsim/internal/components"
	"grabsim/internal/engine"
	"grabsim/internal/physworld"
)

// Registry answers entity/collider lookups. The handle lives only on the
// entity's PhysicsBody; the reverse direction is a scan over the scene.
type Registry struct {
	scene *engine.Scene
}

func NewRegistry(scene *engine.Scene) Registry {
	return Registry{scene: scene}
}

// BodyFor returns the collider registered for g.
func (r Registry) BodyFor(g *engine.GameObject) (physworld.ColliderHandle, bool) {
	if g == nil {
		return 0, false
	}
	pb := engine.GetComponent[*components.PhysicsBody](g)
	if pb == nil {
		return 0, false
	}
	return pb.Collider(), true
}

// EntityFor returns the entity whose PhysicsBody holds h.
func (r Registry) EntityFor(h physworld.ColliderHandle) (*engine.GameObject, bool) {
	for g, pb := range engine.Query[*components.PhysicsBody](r.scene) {
		if pb.Collider() == h {
			return g, true
		}
	}
	return nil, false
}
