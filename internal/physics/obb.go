package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   mgl32.Vec3    // World-space center
	HalfSize mgl32.Vec3    // Half-extents along local axes
	Axes     [3]mgl32.Vec3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half extents and orientation.
func NewOBB(center, half mgl32.Vec3, rot mgl32.Quat) OBB {
	return OBB{
		Center:   center,
		HalfSize: half,
		Axes: [3]mgl32.Vec3{
			rot.Rotate(mgl32.Vec3{1, 0, 0}),
			rot.Rotate(mgl32.Vec3{0, 1, 0}),
			rot.Rotate(mgl32.Vec3{0, 0, 1}),
		},
	}
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	t := b.Center.Sub(a.Center)

	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}

	// Edge-edge axes
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := a.Axes[i].Cross(b.Axes[j])
			if axis.Len() > 0.0001 {
				if !overlapOnAxis(a, b, axis.Normalize(), t) {
					return false
				}
			}
		}
	}

	return true
}

// projectedRadius is the half-length of the box projected onto axis.
func (o OBB) projectedRadius(axis mgl32.Vec3) float32 {
	return o.HalfSize.X()*absf(o.Axes[0].Dot(axis)) +
		o.HalfSize.Y()*absf(o.Axes[1].Dot(axis)) +
		o.HalfSize.Z()*absf(o.Axes[2].Dot(axis))
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t mgl32.Vec3) bool {
	distance := absf(t.Dot(axis))
	return distance <= a.projectedRadius(axis)+b.projectedRadius(axis)
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b'
// Returns zero vector if no overlap
func (a OBB) ResolveOBB(b OBB) mgl32.Vec3 {
	if !a.IntersectsOBB(b) {
		return mgl32.Vec3{}
	}

	t := b.Center.Sub(a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv mgl32.Vec3

	testAxis := func(axis mgl32.Vec3) {
		if axis.Len() < 0.0001 {
			return
		}
		axis = axis.Normalize()

		dist := t.Dot(axis)
		penetration := a.projectedRadius(axis) + b.projectedRadius(axis) - absf(dist)

		if penetration < minPenetration {
			minPenetration = penetration
			// Push away from B
			if dist < 0 {
				mtv = axis.Mul(penetration)
			} else {
				mtv = axis.Mul(-penetration)
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i])
	}
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(a.Axes[i].Cross(b.Axes[j]))
		}
	}

	return mtv
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	closest := ClosestPointOnOBB(o, center)
	return closest.Sub(center).LenSqr() <= radius*radius
}

// ClosestPointOnOBB returns the closest point on or inside the OBB to the
// given point.
func ClosestPointOnOBB(o OBB, point mgl32.Vec3) mgl32.Vec3 {
	local := point.Sub(o.Center)
	result := o.Center
	for i := 0; i < 3; i++ {
		d := clampf(local.Dot(o.Axes[i]), -o.HalfSize[i], o.HalfSize[i])
		result = result.Add(o.Axes[i].Mul(d))
	}
	return result
}

// SupportFeature returns the centre of the face, edge or vertex of the box
// that lies furthest along dir.
func (o OBB) SupportFeature(dir mgl32.Vec3) mgl32.Vec3 {
	p := o.Center
	for i := 0; i < 3; i++ {
		d := o.Axes[i].Dot(dir)
		switch {
		case d > featureEpsilon:
			p = p.Add(o.Axes[i].Mul(o.HalfSize[i]))
		case d < -featureEpsilon:
			p = p.Sub(o.Axes[i].Mul(o.HalfSize[i]))
		}
	}
	return p
}

const featureEpsilon = 0.05
