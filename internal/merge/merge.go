// Package merge tracks which mergeable objects lie in front of the camera
// while the merge key is held.
package merge

import (
	"math"

	"grabsim/internal/components"
	"grabsim/internal/engine"
	"grabsim/internal/input"
	"grabsim/internal/physworld"
	"grabsim/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	beamHalfLength = 5
	beamRadius     = 0.75
)

// beamPose places a Y-aligned cylinder along the camera's view axis so that
// it starts at the eye and reaches 2*beamHalfLength ahead.
var beamPose = physworld.NewPose(
	rl.Vector3{Z: -beamHalfLength},
	rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, -math.Pi/2),
)

// Sensor owns a kinematic body carrying a sensor collider. The body only
// exists while the merge key is down.
type Sensor struct {
	world    *world.World
	body     physworld.BodyHandle
	collider physworld.ColliderHandle
	active   bool
	logger   *log.Logger
}

func NewSensor(w *world.World, logger *log.Logger) *Sensor {
	if logger == nil {
		logger = log.Default()
	}
	return &Sensor{world: w, logger: logger}
}

// Active reports whether the sensor is in the physics world.
func (s *Sensor) Active() bool { return s.active }

// Collider returns the sensor's collider while active.
func (s *Sensor) Collider() (physworld.ColliderHandle, bool) {
	return s.collider, s.active
}

// Update creates, moves or removes the sensor for this frame. A new sensor
// needs focus. Overlaps are refreshed by the next physics step.
func (s *Sensor) Update(camera physworld.Pose, in input.Snapshot) {
	if !in.Down(input.ButtonMerge) {
		s.remove()
		return
	}
	if !s.active {
		if in.Focused {
			s.create(camera)
		}
		return
	}
	if err := s.world.Physics.SetBodyPose(s.body, camera); err != nil {
		s.logger.Warn("merge sensor lost", "err", err)
		s.active = false
	}
}

func (s *Sensor) create(camera physworld.Pose) {
	body := s.world.Physics.AddRigidBody(camera, physworld.Inertia{}, rl.Vector3{},
		physworld.Kinematic(), physworld.NoSleep())
	collider, err := s.world.Physics.AddSensor(physworld.Cylinder(beamHalfLength, beamRadius), body, beamPose)
	if err != nil {
		s.logger.Warn("create merge sensor", "err", err)
		return
	}
	s.body, s.collider, s.active = body, collider, true
	s.logger.Debug("merge sensor on")
}

func (s *Sensor) remove() {
	if !s.active {
		return
	}
	s.world.Physics.RemoveCollider(s.collider)
	s.active = false
	s.logger.Debug("merge sensor off")
}

// Candidates returns the mergeable entities overlapping the sensor after the
// last physics step.
func (s *Sensor) Candidates() []*engine.GameObject {
	if !s.active {
		return nil
	}
	reg := s.world.Registry()
	seen := make(map[uint64]bool)
	var out []*engine.GameObject
	for h := range s.world.Physics.Intersections(s.collider) {
		g, ok := reg.EntityFor(h)
		if !ok || seen[g.UID] || !g.Active {
			continue
		}
		if !engine.HasComponent[*components.Mergeable](g) {
			continue
		}
		seen[g.UID] = true
		out = append(out, g)
	}
	return out
}
