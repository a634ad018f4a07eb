// Package picking selects the nearest eligible entity along the view ray.
package picking

import (
	"math"

	"grabsim/internal/engine"
	"grabsim/internal/physworld"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ray is a half-line from Origin along the unit vector Direction.
type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// CameraRay casts along the camera's local -Z.
func CameraRay(position rl.Vector3, rotation rl.Quaternion) Ray {
	return Ray{
		Origin:    position,
		Direction: rl.Vector3RotateByQuaternion(rl.Vector3{Z: -1}, rotation),
	}
}

// Registry resolves an entity's collider.
type Registry interface {
	BodyFor(g *engine.GameObject) (physworld.ColliderHandle, bool)
}

// ShapeCaster intersects a ray with a single collider's shape.
type ShapeCaster interface {
	ColliderTOI(h physworld.ColliderHandle, origin, dir rl.Vector3, maxTOI float32) (float32, bool)
}

// Hit is the picked entity, its eligibility component and the distance
// along the ray.
type Hit[T engine.Component] struct {
	Entity *engine.GameObject
	Data   T
	TOI    float32
}

// Pick tests every active entity carrying a T component and a registered
// collider against ray and returns the one with the smallest time of impact.
// Entities without a resolvable collider are skipped.
func Pick[T engine.Component](scene *engine.Scene, reg Registry, caster ShapeCaster, ray Ray) (Hit[T], bool) {
	var best Hit[T]
	found := false
	for g, data := range engine.Query[T](scene) {
		h, ok := reg.BodyFor(g)
		if !ok {
			continue
		}
		toi, ok := caster.ColliderTOI(h, ray.Origin, ray.Direction, math.MaxFloat32)
		if !ok {
			continue
		}
		if !found || Less(toi, best.TOI) {
			best = Hit[T]{Entity: g, Data: data, TOI: toi}
			found = true
		}
	}
	return best, found
}

// Less orders distances ascending with NaN after every number. Two NaNs
// compare equal.
func Less(a, b float32) bool {
	aNaN, bNaN := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	switch {
	case aNaN:
		return false
	case bNaN:
		return true
	default:
		return a < b
	}
}
