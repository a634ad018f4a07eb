package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape is a convex collision shape expressed in its own local frame.
type Shape interface {
	// HalfExtents bounds the shape with a local axis-aligned box.
	HalfExtents() mgl32.Vec3
	Volume() float32
	// Inertia returns the principal moments of a solid of the given mass
	// about the shape centre.
	Inertia(mass float32) mgl32.Vec3
	// RayTOI intersects a local-frame ray with the shape. With solid set, a
	// ray starting inside the shape hits at zero.
	RayTOI(origin, dir mgl32.Vec3, maxTOI float32, solid bool) (float32, bool)

	inflate(margin float32) Shape
}

// Cuboid is a box centred on the origin.
type Cuboid struct {
	Half mgl32.Vec3
}

// Ball is a sphere centred on the origin.
type Ball struct {
	Radius float32
}

// Cylinder is a capped cylinder aligned with the local Y axis.
type Cylinder struct {
	HalfHeight float32
	Radius     float32
}

func (c Cuboid) HalfExtents() mgl32.Vec3 { return c.Half }

func (c Cuboid) Volume() float32 { return 8 * c.Half.X() * c.Half.Y() * c.Half.Z() }

func (c Cuboid) Inertia(mass float32) mgl32.Vec3 {
	x2, y2, z2 := c.Half.X()*c.Half.X(), c.Half.Y()*c.Half.Y(), c.Half.Z()*c.Half.Z()
	return mgl32.Vec3{y2 + z2, x2 + z2, x2 + y2}.Mul(mass / 3)
}

func (c Cuboid) RayTOI(origin, dir mgl32.Vec3, maxTOI float32, solid bool) (float32, bool) {
	return raySlab(origin, dir, c.Half.Mul(-1), c.Half, maxTOI, solid)
}

func (c Cuboid) inflate(margin float32) Shape {
	return Cuboid{Half: c.Half.Add(mgl32.Vec3{margin, margin, margin})}
}

func (b Ball) HalfExtents() mgl32.Vec3 { return mgl32.Vec3{b.Radius, b.Radius, b.Radius} }

func (b Ball) Volume() float32 { return 4.0 / 3.0 * math.Pi * b.Radius * b.Radius * b.Radius }

func (b Ball) Inertia(mass float32) mgl32.Vec3 {
	i := 0.4 * mass * b.Radius * b.Radius
	return mgl32.Vec3{i, i, i}
}

func (b Ball) RayTOI(origin, dir mgl32.Vec3, maxTOI float32, solid bool) (float32, bool) {
	return raySphere(origin, dir, mgl32.Vec3{}, b.Radius, maxTOI, solid)
}

func (b Ball) inflate(margin float32) Shape { return Ball{Radius: b.Radius + margin} }

func (c Cylinder) HalfExtents() mgl32.Vec3 { return mgl32.Vec3{c.Radius, c.HalfHeight, c.Radius} }

func (c Cylinder) Volume() float32 { return math.Pi * c.Radius * c.Radius * 2 * c.HalfHeight }

func (c Cylinder) Inertia(mass float32) mgl32.Vec3 {
	r2 := c.Radius * c.Radius
	h := 2 * c.HalfHeight
	side := mass * (3*r2 + h*h) / 12
	return mgl32.Vec3{side, mass * r2 / 2, side}
}

func (c Cylinder) RayTOI(origin, dir mgl32.Vec3, maxTOI float32, solid bool) (float32, bool) {
	return rayCylinder(origin, dir, c.HalfHeight, c.Radius, maxTOI, solid)
}

func (c Cylinder) inflate(margin float32) Shape {
	return Cylinder{HalfHeight: c.HalfHeight + margin, Radius: c.Radius + margin}
}
