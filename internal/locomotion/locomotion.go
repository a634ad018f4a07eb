// Package locomotion walks the player's own body with velocity commands and
// keeps the camera on top of it.
package locomotion

import (
	"grabsim/internal/components"
	"grabsim/internal/engine"
	"grabsim/internal/input"
	"grabsim/internal/physworld"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// degenerate is the length below which a direction is not normalised.
const degenerate = 1e-6

type Config struct {
	WalkSpeed float32
	RunSpeed  float32
}

func DefaultConfig() Config {
	return Config{WalkSpeed: 3, RunSpeed: 6}
}

type Driver struct {
	cfg    Config
	phys   *physworld.World
	logger *log.Logger
}

func New(cfg Config, phys *physworld.World, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{cfg: cfg, phys: phys, logger: logger}
}

func (d *Driver) Config() Config { return d.cfg }

// SetWalkSpeed adjusts the walking speed at runtime.
func (d *Driver) SetWalkSpeed(speed float32) { d.cfg.WalkSpeed = speed }

// Direction maps the move_x/move_z axes into a horizontal world direction
// using the camera's yaw. ok is false when there is no usable direction.
func Direction(cameraRot rl.Quaternion, in input.Snapshot) (rl.Vector3, bool) {
	x := in.Axis(input.AxisMoveX)
	z := in.Axis(input.AxisMoveZ)
	if x == 0 && z == 0 {
		return rl.Vector3{}, false
	}
	right, okR := flatten(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, cameraRot))
	back, okB := flatten(rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, cameraRot))
	if !okR || !okB {
		return rl.Vector3{}, false
	}
	dir := rl.Vector3Add(rl.Vector3Scale(right, x), rl.Vector3Scale(back, z))
	return flatten(dir)
}

func flatten(v rl.Vector3) (rl.Vector3, bool) {
	v.Y = 0
	l := rl.Vector3Length(v)
	// Also catches NaN.
	if !(l >= degenerate) {
		return rl.Vector3{}, false
	}
	return rl.Vector3Scale(v, 1/l), true
}

// Command sets the self body's velocity for the coming steps. Velocities
// are cleared every frame so nothing carries over.
func (d *Driver) Command(self *engine.GameObject, cameraRot rl.Quaternion, in input.Snapshot) {
	pb := engine.GetComponent[*components.PhysicsBody](self)
	if pb == nil {
		return
	}
	body := pb.Body()
	if err := d.phys.SetLinearVelocity(body, rl.Vector3{}); err != nil {
		d.logger.Warn("self body is gone", "err", err)
		return
	}
	d.phys.SetAngularVelocity(body, rl.Vector3{})

	if !in.Focused {
		return
	}
	dir, ok := Direction(cameraRot, in)
	if !ok {
		return
	}
	speed := d.cfg.WalkSpeed
	if in.Down(input.ButtonRun) {
		speed = d.cfg.RunSpeed
	}
	d.phys.SetLinearVelocity(body, rl.Vector3Scale(dir, speed))
}

// SyncCamera places the camera over the self body: horizontal position from
// the body, height from the body plus the eye offset.
func (d *Driver) SyncCamera(self, camera *engine.GameObject) {
	pb := engine.GetComponent[*components.PhysicsBody](self)
	if pb == nil {
		return
	}
	pose, ok := d.phys.BodyPose(pb.Body())
	if !ok {
		return
	}
	var eye float32
	if sb := engine.GetComponent[*components.SelfBody](self); sb != nil {
		eye = sb.EyeOffset
	}
	camera.Transform.Position = rl.Vector3{
		X: pose.Position.X,
		Y: pose.Position.Y + eye,
		Z: pose.Position.Z,
	}
}
