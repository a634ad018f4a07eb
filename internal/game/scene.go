package game

import (
	"fmt"
	"math"

	"grabsim/internal/camera"
	"grabsim/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const demoBoxes = 5

var boxColors = [demoBoxes]rl.Color{rl.Green, rl.Yellow, rl.Red, rl.Magenta, rl.Blue}

var (
	floorHalfExtents = rl.Vector3{X: 100, Y: 0.5, Z: 100}
	boxHalfExtents   = rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
)

// demoBoxRotation is the scaled-axis rotation (0.9, 0.1, 0).
func demoBoxRotation() rl.Quaternion {
	axis := rl.Vector3{X: 0.9, Y: 0.1}
	return rl.QuaternionFromAxisAngle(rl.Vector3Normalize(axis), rl.Vector3Length(axis))
}

// demoBoxPosition staggers the boxes diagonally, alternating either side of
// z = 3.
func demoBoxPosition(i int) rl.Vector3 {
	f := float32(i)
	return rl.Vector3{
		X: f*3 - 7.5,
		Y: f*3 + 2.5,
		Z: 3 + float32(math.Pow(-1, float64(i)))*0.5,
	}
}

// populate spawns the floor, the boxes, the player's body and the camera.
func (g *Game) populate() error {
	w := g.World
	if _, err := w.SpawnFloor(world.FloorSpec{HalfExtents: floorHalfExtents, Color: rl.LightGray}); err != nil {
		return err
	}

	rot := demoBoxRotation()
	for i := range demoBoxes {
		_, err := w.SpawnBox(world.BoxSpec{
			Name:        fmt.Sprintf("box%d", i),
			Position:    demoBoxPosition(i),
			Rotation:    rot,
			HalfExtents: boxHalfExtents,
			Color:       boxColors[i],
			Grabbable:   true,
			Mergeable:   true,
		})
		if err != nil {
			return err
		}
	}

	p := g.Config.Player
	self, err := w.SpawnSelf(world.SelfSpec{
		Position:   p.SpawnPosition,
		HalfHeight: p.BodyHalfHeight,
		Radius:     p.BodyRadius,
		EyeOffset:  p.EyeOffset,
	})
	if err != nil {
		return err
	}
	g.Self = self

	eye := p.SpawnPosition
	eye.Y += p.EyeOffset
	g.Camera = w.SpawnCamera(eye, camera.Facing(rl.Vector3{X: 1}))
	return nil
}
