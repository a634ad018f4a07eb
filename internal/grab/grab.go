// Package grab implements picking up, carrying, rotating and dropping a
// single object with velocity commands on its rigid body.
package grab

import (
	"grabsim/internal/components"
	"grabsim/internal/engine"
	"grabsim/internal/input"
	"grabsim/internal/physworld"
	"grabsim/internal/picking"
	"grabsim/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Config struct {
	MaxPickDistance   float32 // picks at or beyond this distance are ignored
	AngularGain       float32 // scales the orientation correction into rad/s
	RotateSensitivity float32 // degrees per pixel while re-orienting
}

func DefaultConfig() Config {
	return Config{
		MaxPickDistance:   4.0,
		AngularGain:       50.0,
		RotateSensitivity: 0.2,
	}
}

// selection is the held state. It exists exactly as long as its
// anti-gravity force generator.
type selection struct {
	entity     engine.GameObjectRef
	grabbable  *components.Grabbable
	body       physworld.BodyHandle
	force      physworld.ForceHandle
	prevCamera physworld.Pose
	distance   float32
	relForward rl.Vector3 // object-local direction kept on the camera's +Z
	relUp      rl.Vector3 // object-local direction kept on the camera's +Y
}

// Manipulator is the Idle/Holding state machine.
type Manipulator struct {
	cfg    Config
	world  *world.World
	held   *selection
	logger *log.Logger

	OnGrab engine.EventWithArg[*engine.GameObject]
	// OnRelease receives nil when the held object was destroyed.
	OnRelease engine.EventWithArg[*engine.GameObject]
}

func NewManipulator(cfg Config, w *world.World, logger *log.Logger) *Manipulator {
	if logger == nil {
		logger = log.Default()
	}
	return &Manipulator{cfg: cfg, world: w, logger: logger}
}

func (m *Manipulator) Config() Config { return m.cfg }

// SetAngularGain adjusts the orientation gain at runtime.
func (m *Manipulator) SetAngularGain(gain float32) { m.cfg.AngularGain = gain }

// Holding reports whether an object is held.
func (m *Manipulator) Holding() bool { return m.held != nil }

// Held returns the held entity, or nil.
func (m *Manipulator) Held() *engine.GameObject {
	if m.held == nil {
		return nil
	}
	return m.held.entity.Get(m.world.Scene)
}

// PickDistance is the time of impact recorded at grab time.
func (m *Manipulator) PickDistance() (float32, bool) {
	if m.held == nil {
		return 0, false
	}
	return m.held.distance, true
}

// RelativeAxes returns the held object's recorded forward and up axes in its
// own frame.
func (m *Manipulator) RelativeAxes() (forward, up rl.Vector3, ok bool) {
	if m.held == nil {
		return rl.Vector3{}, rl.Vector3{}, false
	}
	return m.held.relForward, m.held.relUp, true
}

// Force returns the anti-gravity generator of the held object.
func (m *Manipulator) Force() (physworld.ForceHandle, bool) {
	if m.held == nil {
		return 0, false
	}
	return m.held.force, true
}

// Update advances the state machine for one frame. camera is the current
// view pose and dt the simulated time the coming physics steps will cover,
// zero when no step runs this frame. A release is always handled before a
// new grab. Grabs need focus; releases do not.
func (m *Manipulator) Update(camera physworld.Pose, in input.Snapshot, dt float32) {
	if m.held != nil && (in.Released(input.ButtonPick) || !in.Down(input.ButtonPick)) {
		m.Release()
	}

	if in.Pressed(input.ButtonPick) && m.held == nil && in.Focused {
		m.tryGrab(camera)
		return
	}

	if m.held == nil {
		return
	}
	if in.Down(input.ButtonRotate) {
		m.Reorient(camera, in.Pointer)
	}
	m.hold(camera, dt)
}

// tryGrab picks along the view ray and, on a hit within range, enters
// Holding.
func (m *Manipulator) tryGrab(camera physworld.Pose) {
	ray := picking.CameraRay(camera.Position, camera.Rotation)
	hit, ok := picking.Pick[*components.Grabbable](m.world.Scene, m.world.Registry(), m.world.Physics, ray)
	if !ok || !(hit.TOI < m.cfg.MaxPickDistance) {
		return
	}
	m.grab(hit, camera)
}

func (m *Manipulator) grab(hit picking.Hit[*components.Grabbable], camera physworld.Pose) {
	phys := m.world.Physics
	collider, _ := m.world.Registry().BodyFor(hit.Entity)
	body, ok := phys.ColliderBody(collider)
	if !ok {
		return
	}
	pose, ok := phys.BodyPose(body)
	if !ok {
		return
	}
	force, err := phys.AddForceGenerator(physworld.ForceSpec{
		Linear: rl.Vector3Negate(phys.Gravity()),
		Bodies: []physworld.BodyHandle{body},
	})
	if err != nil {
		m.logger.Warn("grab: cannot compensate gravity", "entity", hit.Entity.Name, "err", err)
		return
	}

	inv := rl.QuaternionInvert(pose.Rotation)
	m.held = &selection{
		entity:     engine.RefTo(hit.Entity),
		grabbable:  hit.Data,
		body:       body,
		force:      force,
		prevCamera: camera,
		distance:   hit.TOI,
		relForward: rl.Vector3RotateByQuaternion(camera.Rotate(rl.Vector3{Z: 1}), inv),
		relUp:      rl.Vector3RotateByQuaternion(camera.Rotate(rl.Vector3{Y: 1}), inv),
	}
	hit.Data.SetHeld(true)
	m.logger.Debug("grabbed", "entity", hit.Entity.Name, "toi", hit.TOI)
	m.OnGrab.Invoke(hit.Entity)
}

// Release drops the held object. It is a no-op when idle.
func (m *Manipulator) Release() {
	if m.held == nil {
		return
	}
	sel := m.held
	m.held = nil
	m.world.Physics.RemoveForceGenerator(sel.force)
	sel.grabbable.SetHeld(false)

	entity := sel.entity.Get(m.world.Scene)
	if entity != nil {
		m.logger.Debug("released", "entity", entity.Name)
	}
	m.OnRelease.Invoke(entity)
}

// Reorient turns the recorded axes by a pointer delta: yaw about the
// camera's up and pitch about its right, both taken into the object's frame.
func (m *Manipulator) Reorient(camera physworld.Pose, pointer rl.Vector2) {
	if m.held == nil || (pointer.X == 0 && pointer.Y == 0) {
		return
	}
	pose, ok := m.world.Physics.BodyPose(m.held.body)
	if !ok {
		m.dropStale()
		return
	}
	inv := rl.QuaternionInvert(pose.Rotation)
	up := rl.Vector3RotateByQuaternion(camera.Rotate(rl.Vector3{Y: 1}), inv)
	right := rl.Vector3RotateByQuaternion(camera.Rotate(rl.Vector3{X: 1}), inv)

	sens := m.cfg.RotateSensitivity * rl.Deg2rad
	yaw := rl.QuaternionInvert(rl.QuaternionFromAxisAngle(up, -pointer.X*sens))
	pitch := rl.QuaternionInvert(rl.QuaternionFromAxisAngle(right, -pointer.Y*sens))
	q := rl.QuaternionMultiply(yaw, pitch)

	m.held.relForward = rl.Vector3RotateByQuaternion(m.held.relForward, q)
	m.held.relUp = rl.Vector3RotateByQuaternion(m.held.relUp, q)
}

// hold commands the body's velocities so it follows the camera at the
// recorded distance and keeps its relative orientation. Camera motion is
// only consumed when dt > 0; otherwise it carries over to the next frame
// that steps.
func (m *Manipulator) hold(camera physworld.Pose, dt float32) {
	sel := m.held
	if sel.entity.Get(m.world.Scene) == nil {
		m.dropStale()
		return
	}
	phys := m.world.Physics
	pose, ok := phys.BodyPose(sel.body)
	if !ok {
		m.dropStale()
		return
	}

	camBack := camera.Rotate(rl.Vector3{Z: 1})
	camUp := camera.Rotate(rl.Vector3{Y: 1})
	prevBack := sel.prevCamera.Rotate(rl.Vector3{Z: 1})

	angular := rl.Vector3Add(
		rl.Vector3CrossProduct(pose.Rotate(sel.relForward), camBack),
		rl.Vector3CrossProduct(pose.Rotate(sel.relUp), camUp),
	)
	if err := phys.SetAngularVelocity(sel.body, rl.Vector3Scale(angular, m.cfg.AngularGain)); err != nil {
		m.dropStale()
		return
	}

	if dt <= 0 {
		return
	}
	delta := rl.Vector3Add(
		rl.Vector3Subtract(camera.Position, sel.prevCamera.Position),
		rl.Vector3Scale(rl.Vector3Subtract(prevBack, camBack), sel.distance),
	)
	if err := phys.SetLinearVelocity(sel.body, rl.Vector3Scale(delta, 1/dt)); err != nil {
		m.dropStale()
		return
	}
	sel.prevCamera = camera
}

// dropStale leaves Holding after the held body disappeared.
func (m *Manipulator) dropStale() {
	m.logger.Warn("held object lost its body, releasing")
	m.Release()
}
