// Package camera turns pointer motion into first-person look rotation.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxCorrections bounds the pitch clamp loop.
const maxCorrections = 180

// MouseLook yaws about world up and pitches about the camera's local right.
// The camera looks along local -Z.
type MouseLook struct {
	Sensitivity float32 // degrees per pixel
	PitchLimit  float32 // bound on |back.y| where back is local +Z
}

func NewMouseLook(sensitivity, pitchLimit float32) *MouseLook {
	return &MouseLook{
		Sensitivity: sensitivity,
		PitchLimit:  pitchLimit,
	}
}

// Rotate applies a pointer delta in pixels to rot.
func (m *MouseLook) Rotate(rot rl.Quaternion, delta rl.Vector2) rl.Quaternion {
	if delta.X == 0 && delta.Y == 0 {
		return rot
	}
	rot = PitchLocal(rot, -delta.Y*m.Sensitivity*rl.Deg2rad)
	rot = YawGlobal(rot, -delta.X*m.Sensitivity*rl.Deg2rad)
	return m.clampPitch(rot)
}

// clampPitch nudges the rotation one degree at a time until the view is
// within the pitch limit.
func (m *MouseLook) clampPitch(rot rl.Quaternion) rl.Quaternion {
	step := float32(1) * rl.Deg2rad
	for i := 0; i < maxCorrections && back(rot).Y < -m.PitchLimit; i++ {
		rot = PitchLocal(rot, -step)
	}
	for i := 0; i < maxCorrections && back(rot).Y > m.PitchLimit; i++ {
		rot = PitchLocal(rot, step)
	}
	return rot
}

func back(rot rl.Quaternion) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rot)
}

// PitchLocal rotates about the rotation's own X axis.
func PitchLocal(rot rl.Quaternion, radians float32) rl.Quaternion {
	q := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, radians)
	return rl.QuaternionNormalize(rl.QuaternionMultiply(rot, q))
}

// YawGlobal rotates about world +Y.
func YawGlobal(rot rl.Quaternion, radians float32) rl.Quaternion {
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, radians)
	return rl.QuaternionNormalize(rl.QuaternionMultiply(q, rot))
}

// Facing returns the yaw-only rotation that points the view at dir's
// horizontal component.
func Facing(dir rl.Vector3) rl.Quaternion {
	if dir.X == 0 && dir.Z == 0 {
		return rl.QuaternionIdentity()
	}
	yaw := math.Atan2(float64(-dir.X), float64(-dir.Z))
	return rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, float32(yaw))
}
