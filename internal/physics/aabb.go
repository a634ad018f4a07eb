package physics

import "github.com/go-gl/mathgl/mgl32"

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half mgl32.Vec3) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Bounds returns the world-space AABB enclosing the OBB.
func (o OBB) Bounds() AABB {
	var half mgl32.Vec3
	for i := 0; i < 3; i++ {
		half = half.Add(absVec(o.Axes[i]).Mul(o.HalfSize[i]))
	}
	return NewAABBFromCenter(o.Center, half)
}
