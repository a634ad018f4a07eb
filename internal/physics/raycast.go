package physics

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RayHit is the nearest ray intersection found by World.Raycast.
type RayHit struct {
	Collider ColliderHandle
	Point    mgl32.Vec3
	TOI      float32
}

// CastRay yields every non-sensor collider hit by the ray together with its
// time of impact. No order is guaranteed.
func (w *World) CastRay(origin, dir mgl32.Vec3, maxTOI float32, solid bool) iter.Seq2[ColliderHandle, float32] {
	return func(yield func(ColliderHandle, float32) bool) {
		for id, c := range w.colliders.all() {
			if c.Sensor {
				continue
			}
			toi, ok := w.colliderRayTOI(c, origin, dir, maxTOI, solid)
			if !ok {
				continue
			}
			if !yield(ColliderHandle(id), toi) {
				return
			}
		}
	}
}

// Raycast returns the closest non-sensor hit along the ray.
func (w *World) Raycast(origin, dir mgl32.Vec3, maxTOI float32) (RayHit, bool) {
	closest := RayHit{TOI: maxTOI}
	hit := false
	for h, toi := range w.CastRay(origin, dir, maxTOI, true) {
		if toi < closest.TOI || !hit {
			closest.Collider = h
			closest.TOI = toi
			hit = true
		}
	}
	if hit {
		closest.Point = origin.Add(dir.Mul(closest.TOI))
	}
	return closest, hit
}

// ColliderRayTOI intersects the ray with a single collider's shape.
func (w *World) ColliderRayTOI(h ColliderHandle, origin, dir mgl32.Vec3, maxTOI float32, solid bool) (float32, bool) {
	c, ok := w.colliders.get(uint64(h))
	if !ok {
		return 0, false
	}
	return w.colliderRayTOI(c, origin, dir, maxTOI, solid)
}

func (w *World) colliderRayTOI(c *Collider, origin, dir mgl32.Vec3, maxTOI float32, solid bool) (float32, bool) {
	pos, rot, ok := w.colliderPose(c)
	if !ok {
		return 0, false
	}
	inv := rot.Inverse()
	localOrigin := inv.Rotate(origin.Sub(pos))
	localDir := inv.Rotate(dir)
	return c.shape.RayTOI(localOrigin, localDir, maxTOI, solid)
}

// raySlab intersects a ray with the box [min, max].
func raySlab(origin, dir, min, max mgl32.Vec3, maxTOI float32, solid bool) (float32, bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for i := 0; i < 3; i++ {
		if dir[i] != 0 {
			t1 := (min[i] - origin[i]) / dir[i]
			t2 := (max[i] - origin[i]) / dir[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[i] < min[i] || origin[i] > max[i] {
			return 0, false
		}
		if tmin > tmax {
			return 0, false
		}
	}

	return pickTOI(tmin, tmax, maxTOI, solid)
}

func raySphere(origin, dir, center mgl32.Vec3, radius, maxTOI float32, solid bool) (float32, bool) {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(discriminant)))
	return pickTOI((-b-sq)/(2*a), (-b+sq)/(2*a), maxTOI, solid)
}

// rayCylinder intersects a ray with a Y-aligned capped cylinder centred on
// the origin.
func rayCylinder(origin, dir mgl32.Vec3, halfHeight, radius, maxTOI float32, solid bool) (float32, bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	a := dir.X()*dir.X() + dir.Z()*dir.Z()
	c := origin.X()*origin.X() + origin.Z()*origin.Z() - radius*radius
	if a < 1e-12 {
		if c > 0 {
			return 0, false
		}
	} else {
		b := 2 * (origin.X()*dir.X() + origin.Z()*dir.Z())
		discriminant := b*b - 4*a*c
		if discriminant < 0 {
			return 0, false
		}
		sq := float32(math.Sqrt(float64(discriminant)))
		tmin = (-b - sq) / (2 * a)
		tmax = (-b + sq) / (2 * a)
	}

	if dir.Y() != 0 {
		t1 := (-halfHeight - origin.Y()) / dir.Y()
		t2 := (halfHeight - origin.Y()) / dir.Y()
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	} else if origin.Y() < -halfHeight || origin.Y() > halfHeight {
		return 0, false
	}

	if tmin > tmax {
		return 0, false
	}
	return pickTOI(tmin, tmax, maxTOI, solid)
}

// pickTOI selects the entry or exit parameter of an interval [tmin, tmax]
// along a ray.
func pickTOI(tmin, tmax, maxTOI float32, solid bool) (float32, bool) {
	if tmax < 0 {
		return 0, false
	}
	t := tmin
	if t < 0 {
		if solid {
			return 0, true
		}
		t = tmax
	}
	if t > maxTOI {
		return 0, false
	}
	return t, true
}
