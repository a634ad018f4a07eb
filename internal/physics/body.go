package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BodyStatus selects how the simulation treats a body.
type BodyStatus int

const (
	// Dynamic bodies are integrated under gravity and respond to contacts.
	Dynamic BodyStatus = iota
	// Kinematic bodies move only by their velocity and push dynamic bodies.
	Kinematic
	// Static bodies never move.
	Static
)

func (s BodyStatus) String() string {
	switch s {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return "unknown"
}

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3  // units/sec
	SleepAngularThreshold  = 0.05 // rad/sec
	SleepTimeThreshold     = 0.5  // seconds of low velocity before sleeping
)

// BodyDesc describes a rigid body to add to a World.
type BodyDesc struct {
	Status   BodyStatus
	Position mgl32.Vec3
	Rotation mgl32.Quat
	// Mass and Inertia are added to whatever the attached colliders
	// contribute through their density.
	Mass          float32
	Inertia       mgl32.Vec3
	CenterOfMass  mgl32.Vec3
	LockRotations bool
	CanSleep      bool

	LinearDamping  float32
	AngularDamping float32
}

// RigidBody is the simulated state of a body.
type RigidBody struct {
	Status          BodyStatus
	Position        mgl32.Vec3
	Rotation        mgl32.Quat
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3 // radians per second, world frame
	LinearDamping   float32
	AngularDamping  float32
	LockRotations   bool
	CanSleep        bool

	mass         float32
	inertia      mgl32.Vec3
	invMass      float32
	invInertia   mgl32.Vec3
	centerOfMass mgl32.Vec3

	colliders []ColliderHandle

	linearAccel  mgl32.Vec3
	angularAccel mgl32.Vec3

	sleeping   bool
	sleepTimer float32
}

func newRigidBody(desc BodyDesc) *RigidBody {
	rot := desc.Rotation
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}
	rb := &RigidBody{
		Status:         desc.Status,
		Position:       desc.Position,
		Rotation:       rot.Normalize(),
		LinearDamping:  desc.LinearDamping,
		AngularDamping: desc.AngularDamping,
		LockRotations:  desc.LockRotations,
		CanSleep:       desc.CanSleep,
		mass:           desc.Mass,
		inertia:        desc.Inertia,
		centerOfMass:   desc.CenterOfMass,
	}
	rb.updateMassProperties()
	return rb
}

// Mass returns the total mass, including collider contributions.
func (r *RigidBody) Mass() float32 { return r.mass }

// Sleeping reports whether the body is currently skipped by integration.
func (r *RigidBody) Sleeping() bool { return r.sleeping }

// Colliders returns the colliders attached to the body.
func (r *RigidBody) Colliders() []ColliderHandle { return r.colliders }

// WorldCenterOfMass returns the centre of mass in world space.
func (r *RigidBody) WorldCenterOfMass() mgl32.Vec3 {
	return r.Position.Add(r.Rotation.Rotate(r.centerOfMass))
}

// Wake forces the body out of sleep state
func (r *RigidBody) Wake() {
	r.sleeping = false
	r.sleepTimer = 0
}

// SetLinearVelocity replaces the linear velocity and wakes the body.
func (r *RigidBody) SetLinearVelocity(v mgl32.Vec3) {
	r.LinearVelocity = v
	if v.LenSqr() > 0 {
		r.Wake()
	}
}

// SetAngularVelocity replaces the angular velocity and wakes the body.
func (r *RigidBody) SetAngularVelocity(w mgl32.Vec3) {
	r.AngularVelocity = w
	if w.LenSqr() > 0 {
		r.Wake()
	}
}

func (r *RigidBody) movable() bool {
	return r.Status == Dynamic
}

func (r *RigidBody) addAcceleration(linear, angular mgl32.Vec3) {
	r.linearAccel = r.linearAccel.Add(linear)
	r.angularAccel = r.angularAccel.Add(angular)
}

func (r *RigidBody) addMass(mass float32, inertia mgl32.Vec3) {
	r.mass += mass
	r.inertia = r.inertia.Add(inertia)
	r.updateMassProperties()
}

func (r *RigidBody) updateMassProperties() {
	if r.Status != Dynamic {
		r.invMass = 0
		r.invInertia = mgl32.Vec3{}
		return
	}
	r.invMass = recip(r.mass)
	if r.LockRotations {
		r.invInertia = mgl32.Vec3{}
		return
	}
	r.invInertia = mgl32.Vec3{recip(r.inertia.X()), recip(r.inertia.Y()), recip(r.inertia.Z())}
}

func (r *RigidBody) invInertiaWorld() mgl32.Mat3 {
	return invInertiaWorld(r.invInertia, r.Rotation)
}

// integrate advances a dynamic or kinematic body by dt.
func (r *RigidBody) integrate(gravity mgl32.Vec3, dt float32) {
	defer func() {
		r.linearAccel = mgl32.Vec3{}
		r.angularAccel = mgl32.Vec3{}
	}()

	switch r.Status {
	case Static:
		return
	case Kinematic:
		r.Position = r.Position.Add(r.LinearVelocity.Mul(dt))
		r.Rotation = integrateRotation(r.Rotation, r.AngularVelocity, dt)
		return
	}

	if r.sleeping {
		return
	}

	r.LinearVelocity = r.LinearVelocity.Add(gravity.Add(r.linearAccel).Mul(dt))
	r.AngularVelocity = r.AngularVelocity.Add(r.angularAccel.Mul(dt))
	if r.LockRotations {
		r.AngularVelocity = mgl32.Vec3{}
	}

	if r.LinearDamping > 0 {
		r.LinearVelocity = r.LinearVelocity.Mul(float32(math.Exp(float64(-r.LinearDamping * dt))))
	}
	if r.AngularDamping > 0 {
		r.AngularVelocity = r.AngularVelocity.Mul(float32(math.Exp(float64(-r.AngularDamping * dt))))
	}

	// Rotate about the centre of mass, then recover the body origin.
	com := r.WorldCenterOfMass().Add(r.LinearVelocity.Mul(dt))
	r.Rotation = integrateRotation(r.Rotation, r.AngularVelocity, dt)
	r.Position = com.Sub(r.Rotation.Rotate(r.centerOfMass))

	r.trySleep(dt)
}

// trySleep puts the body to sleep after it stays slow for long enough.
func (r *RigidBody) trySleep(dt float32) {
	if !r.CanSleep || r.sleeping {
		return
	}

	speed := r.LinearVelocity.Len()
	angSpeed := r.AngularVelocity.Len()

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += dt
		if r.sleepTimer >= SleepTimeThreshold {
			r.sleeping = true
			r.LinearVelocity = mgl32.Vec3{}
			r.AngularVelocity = mgl32.Vec3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
