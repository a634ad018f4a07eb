package world

import (
	"grabsim/internal/components"
	"grabsim/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Renderer struct {
	Background rl.Color
	ShowGrid   bool
}

func NewRenderer() *Renderer {
	return &Renderer{Background: rl.RayWhite}
}

// Draw renders every MeshRenderer in the scene from camera.
func (r *Renderer) Draw(scene *engine.Scene, camera rl.Camera3D) {
	rl.ClearBackground(r.Background)
	rl.BeginMode3D(camera)
	if r.ShowGrid {
		rl.DrawGrid(40, 1)
	}
	for _, mr := range engine.Query[*components.MeshRenderer](scene) {
		mr.Draw()
	}
	rl.EndMode3D()
}
