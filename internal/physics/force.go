package physics

import "github.com/go-gl/mathgl/mgl32"

// ForceGenerator applies a continuous effect to bodies once per step, before
// integration.
type ForceGenerator interface {
	Apply(w *World, dt float32)
}

// ConstantAcceleration adds a fixed linear and angular acceleration to every
// body part it was given.
type ConstantAcceleration struct {
	Linear  mgl32.Vec3
	Angular mgl32.Vec3
	parts   []BodyHandle
}

func NewConstantAcceleration(linear, angular mgl32.Vec3) *ConstantAcceleration {
	return &ConstantAcceleration{Linear: linear, Angular: angular}
}

// AddBodyPart scopes the acceleration to one more body.
func (c *ConstantAcceleration) AddBodyPart(h BodyHandle) {
	c.parts = append(c.parts, h)
}

// Parts returns the bodies the acceleration applies to.
func (c *ConstantAcceleration) Parts() []BodyHandle {
	return c.parts
}

func (c *ConstantAcceleration) Apply(w *World, dt float32) {
	for _, h := range c.parts {
		rb, ok := w.Body(h)
		if !ok || !rb.movable() {
			continue
		}
		rb.addAcceleration(c.Linear, c.Angular)
	}
}
