package components

import (
	"grabsim/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
	MeshCylinder
)

// Material is the visual appearance of a mesh.
type Material struct {
	Color     rl.Color
	Wireframe bool
}

type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Material Material
	Size     rl.Vector3 // full extents; X is the radius for spheres and cylinders
}

func NewMeshRenderer(meshType MeshType, material Material, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Material: material,
		Size:     size,
	}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()
	var axis rl.Vector3
	var angle float32
	rl.QuaternionToAxisAngle(g.WorldRotation(), &axis, &angle)

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
	origin := rl.Vector3{}
	col := m.Material.Color

	switch m.MeshType {
	case MeshCube:
		if m.Material.Wireframe {
			rl.DrawCubeWiresV(origin, m.Size, col)
		} else {
			rl.DrawCubeV(origin, m.Size, col)
			rl.DrawCubeWiresV(origin, m.Size, rl.Fade(rl.Black, 0.4))
		}
	case MeshSphere:
		rl.DrawSphere(origin, m.Size.X, col)
	case MeshPlane:
		rl.DrawPlane(origin, rl.Vector2{X: m.Size.X, Y: m.Size.Z}, col)
	case MeshCylinder:
		base := rl.Vector3{Y: -m.Size.Y / 2}
		if m.Material.Wireframe {
			rl.DrawCylinderWires(base, m.Size.X, m.Size.X, m.Size.Y, 16, col)
		} else {
			rl.DrawCylinder(base, m.Size.X, m.Size.X, m.Size.Y, 16, col)
		}
	}
	rl.PopMatrix()
}
