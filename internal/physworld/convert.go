package physworld

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a rigid placement in world or body-local space.
type Pose struct {
	Position rl.Vector3
	Rotation rl.Quaternion
}

// IdentityPose is the pose with no translation and no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: rl.QuaternionIdentity()}
}

// NewPose builds a pose at position with the given rotation.
func NewPose(position rl.Vector3, rotation rl.Quaternion) Pose {
	return Pose{Position: position, Rotation: rotation}
}

// Rotate rotates a vector by the pose's rotation.
func (p Pose) Rotate(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, p.Rotation)
}

func toVec(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func toQuat(q rl.Quaternion) mgl32.Quat {
	if q == (rl.Quaternion{}) {
		return mgl32.QuatIdent()
	}
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func fromQuat(q mgl32.Quat) rl.Quaternion {
	return rl.Quaternion{X: q.V.X(), Y: q.V.Y(), Z: q.V.Z(), W: q.W}
}
