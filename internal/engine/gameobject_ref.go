package engine

// GameObjectRef is a weak reference to a GameObject by UID. It resolves to
// nil once the object has left the scene.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// RefTo returns a reference to g, or an empty one for nil.
func RefTo(g *GameObject) GameObjectRef {
	if g == nil {
		return GameObjectRef{}
	}
	return GameObjectRef{UID: g.UID}
}

// Get resolves the reference in scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference points to something. It does not
// check that the object still exists.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}
