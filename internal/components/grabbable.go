package components

import "grabsim/internal/engine"

// Grabbable marks an object as eligible for picking and holding.
type Grabbable struct {
	engine.BaseComponent
	DefaultMaterial Material
	HeldMaterial    Material
}

func NewGrabbable(def, held Material) *Grabbable {
	return &Grabbable{DefaultMaterial: def, HeldMaterial: held}
}

// SetHeld swaps the object's mesh material between the default and held
// variants.
func (g *Grabbable) SetHeld(held bool) {
	obj := g.GetGameObject()
	if obj == nil {
		return
	}
	mr := engine.GetComponent[*MeshRenderer](obj)
	if mr == nil {
		return
	}
	if held {
		mr.Material = g.HeldMaterial
	} else {
		mr.Material = g.DefaultMaterial
	}
}
