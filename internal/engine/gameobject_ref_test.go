package engine

import "testing"

func TestGameObjectRef(t *testing.T) {
	scene, objs := newScene("box0", "box1")
	ref0, ref1 := RefTo(objs[0]), RefTo(objs[1])

	if !ref0.IsValid() {
		t.Error("Reference to a live object should be valid")
	}
	if ref0.Get(scene) != objs[0] || ref1.Get(scene) != objs[1] {
		t.Error("References should resolve to their own objects")
	}
	if ref0.Get(nil) != nil {
		t.Error("Get() with nil scene should return nil")
	}
}

func TestGameObjectRefEmpty(t *testing.T) {
	scene, _ := newScene("box0")

	empty := RefTo(nil)
	if empty.IsValid() {
		t.Error("Reference to nil should be invalid")
	}
	if empty.Get(scene) != nil {
		t.Error("Empty reference should resolve to nil")
	}
	if (GameObjectRef{UID: 99999}).Get(scene) != nil {
		t.Error("Unknown UID should resolve to nil")
	}
}

func TestGameObjectRefStaleAfterRemoval(t *testing.T) {
	scene, objs := newScene("held")
	ref := RefTo(objs[0])

	scene.RemoveGameObject(objs[0])
	if ref.Get(scene) != nil {
		t.Error("Reference should not resolve after removal")
	}
	if !ref.IsValid() {
		t.Error("IsValid does not track removal")
	}
}
