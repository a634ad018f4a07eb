package components

import (
	"grabsim/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera views along its object's local -Z with +Y up.
type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        60.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
	}
}

// ViewDirection is the unit vector the camera looks along.
func (c *Camera) ViewDirection() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{Z: -1}
	}
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: -1}, g.WorldRotation())
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}
	eye := g.WorldPosition()
	rot := g.WorldRotation()
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, rl.Vector3RotateByQuaternion(rl.Vector3{Z: -1}, rot)),
		Up:         rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rot),
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
