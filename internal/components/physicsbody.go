package components

import (
	"grabsim/internal/engine"
	"grabsim/internal/physworld"
)

// PhysicsBody links an object to its collider and rigid body. The handles
// are fixed at spawn time.
type PhysicsBody struct {
	engine.BaseComponent
	body     physworld.BodyHandle
	collider physworld.ColliderHandle
}

func NewPhysicsBody(body physworld.BodyHandle, collider physworld.ColliderHandle) *PhysicsBody {
	return &PhysicsBody{body: body, collider: collider}
}

func (p *PhysicsBody) Body() physworld.BodyHandle { return p.body }

func (p *PhysicsBody) Collider() physworld.ColliderHandle { return p.collider }
