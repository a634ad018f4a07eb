package physics

import "github.com/go-gl/mathgl/mgl32"

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func absVec(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{absf(v.X()), absf(v.Y()), absf(v.Z())}
}

// invInertiaWorld rotates a local diagonal inverse inertia into world space:
// R * I⁻¹ * Rᵀ.
func invInertiaWorld(invLocal mgl32.Vec3, rot mgl32.Quat) mgl32.Mat3 {
	r := rot.Mat4().Mat3()
	return r.Mul3(mgl32.Diag3(invLocal)).Mul3(r.Transpose())
}

// integrateRotation advances q by angular velocity w over dt.
func integrateRotation(q mgl32.Quat, w mgl32.Vec3, dt float32) mgl32.Quat {
	if w.LenSqr() == 0 {
		return q
	}
	spin := mgl32.Quat{V: w}.Mul(q).Scale(0.5 * dt)
	return q.Add(spin).Normalize()
}

func recip(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}
