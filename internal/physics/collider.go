package physics

import "github.com/go-gl/mathgl/mgl32"

// Material carries the surface and mass parameters of a collider.
type Material struct {
	Friction    float32 // 0 = ice, 1 = stops immediately
	Restitution float32 // 0 = no bounce, 1 = perfect bounce
	Density     float32
}

// DefaultMaterial is used when a collider is added with a zero Material.
var DefaultMaterial = Material{Friction: 0.5, Restitution: 0, Density: 1}

// ColliderDesc describes a collider to attach to a body.
type ColliderDesc struct {
	Shape  Shape
	Margin float32
	Body   BodyHandle
	// Pose relative to the body origin.
	LocalPosition mgl32.Vec3
	LocalRotation mgl32.Quat
	Material      Material
	Sensor        bool
}

// Collider is a shape attached to a body.
type Collider struct {
	Shape         Shape
	Margin        float32
	Body          BodyHandle
	LocalPosition mgl32.Vec3
	LocalRotation mgl32.Quat
	Material      Material
	Sensor        bool

	shape Shape // Shape inflated by Margin
}

func newCollider(desc ColliderDesc) *Collider {
	rot := desc.LocalRotation
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}
	mat := desc.Material
	if mat == (Material{}) {
		mat = DefaultMaterial
	}
	return &Collider{
		Shape:         desc.Shape,
		Margin:        desc.Margin,
		Body:          desc.Body,
		LocalPosition: desc.LocalPosition,
		LocalRotation: rot.Normalize(),
		Material:      mat,
		Sensor:        desc.Sensor,
		shape:         desc.Shape.inflate(desc.Margin),
	}
}

// massContribution returns the mass of the collider and its principal
// inertia about the body origin. Off-centre colliders add the diagonal of the
// parallel-axis term.
func (c *Collider) massContribution() (float32, mgl32.Vec3) {
	if c.Sensor || c.Material.Density <= 0 {
		return 0, mgl32.Vec3{}
	}
	mass := c.Material.Density * c.shape.Volume()
	inertia := c.shape.Inertia(mass)
	d := c.LocalPosition
	if d.LenSqr() > 0 {
		inertia = inertia.Add(mgl32.Vec3{
			d.Y()*d.Y() + d.Z()*d.Z(),
			d.X()*d.X() + d.Z()*d.Z(),
			d.X()*d.X() + d.Y()*d.Y(),
		}.Mul(mass))
	}
	return mass, inertia
}

// obb returns the collider's oriented bounds at the given world pose.
func (c *Collider) obb(pos mgl32.Vec3, rot mgl32.Quat) OBB {
	return NewOBB(pos, c.shape.HalfExtents(), rot)
}
