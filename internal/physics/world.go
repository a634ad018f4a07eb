package physics

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

// Spatial grid cell size - dynamic colliders within same or neighboring cells
// are checked against each other
const CellSize = 5.0

// CellKey is a spatial hash cell.
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos mgl32.Vec3) CellKey {
	return CellKey{
		X: int(pos.X() / CellSize),
		Y: int(pos.Y() / CellSize),
		Z: int(pos.Z() / CellSize),
	}
}

// CollisionPair is an unordered pair of colliders, smaller handle first.
type CollisionPair struct {
	A, B ColliderHandle
}

func makePair(a, b ColliderHandle) CollisionPair {
	if a > b {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// CollisionEvent reports a contact or sensor intersection that started or
// stopped during a step.
type CollisionEvent struct {
	A, B    ColliderHandle
	Started bool
	Sensor  bool
}

// World owns bodies, colliders and force generators and advances them by a
// fixed timestep.
type World struct {
	Gravity mgl32.Vec3

	timestep float32
	ground   BodyHandle

	bodies    arena[*RigidBody]
	colliders arena[*Collider]
	forces    arena[ForceGenerator]

	grid map[CellKey][]*proxy

	activeContacts       map[CollisionPair]bool
	currentContacts      map[CollisionPair]bool
	activeIntersections  map[CollisionPair]bool
	currentIntersections map[CollisionPair]bool

	events []CollisionEvent
	steps  uint64
}

// NewWorld creates an empty world stepping by timestep seconds. The world
// starts with a static ground body that static colliders can attach to.
func NewWorld(timestep float32) *World {
	w := &World{
		timestep:             timestep,
		grid:                 make(map[CellKey][]*proxy),
		activeContacts:       make(map[CollisionPair]bool),
		currentContacts:      make(map[CollisionPair]bool),
		activeIntersections:  make(map[CollisionPair]bool),
		currentIntersections: make(map[CollisionPair]bool),
	}
	w.ground = w.AddBody(BodyDesc{Status: Static})
	return w
}

func (w *World) Timestep() float32 { return w.timestep }

func (w *World) SetTimestep(dt float32) { w.timestep = dt }

// Ground returns the built-in static body.
func (w *World) Ground() BodyHandle { return w.ground }

// Steps returns the number of completed steps.
func (w *World) Steps() uint64 { return w.steps }

func (w *World) AddBody(desc BodyDesc) BodyHandle {
	return BodyHandle(w.bodies.insert(newRigidBody(desc)))
}

// Body resolves a handle. The returned body may be mutated directly.
func (w *World) Body(h BodyHandle) (*RigidBody, bool) {
	return w.bodies.get(uint64(h))
}

// RemoveBody removes a body and every collider attached to it. The ground
// body cannot be removed.
func (w *World) RemoveBody(h BodyHandle) bool {
	if h == w.ground {
		return false
	}
	rb, ok := w.Body(h)
	if !ok {
		return false
	}
	for _, ch := range append([]ColliderHandle(nil), rb.colliders...) {
		w.detachCollider(ch)
	}
	w.bodies.remove(uint64(h))
	return true
}

// AddCollider attaches a collider to a live body. It fails when the body
// handle is stale.
func (w *World) AddCollider(desc ColliderDesc) (ColliderHandle, bool) {
	rb, ok := w.Body(desc.Body)
	if !ok || desc.Shape == nil {
		return 0, false
	}
	c := newCollider(desc)
	h := ColliderHandle(w.colliders.insert(c))
	rb.colliders = append(rb.colliders, h)
	if mass, inertia := c.massContribution(); mass > 0 {
		rb.addMass(mass, inertia)
	}
	return h, true
}

func (w *World) Collider(h ColliderHandle) (*Collider, bool) {
	return w.colliders.get(uint64(h))
}

// RemoveCollider detaches and drops a collider. A non-ground body left
// without colliders is removed with it.
func (w *World) RemoveCollider(h ColliderHandle) bool {
	c, ok := w.Collider(h)
	if !ok {
		return false
	}
	w.detachCollider(h)
	if rb, ok := w.Body(c.Body); ok && len(rb.colliders) == 0 && c.Body != w.ground {
		w.bodies.remove(uint64(c.Body))
	}
	return true
}

func (w *World) detachCollider(h ColliderHandle) {
	c, ok := w.colliders.remove(uint64(h))
	if !ok {
		return
	}
	if rb, ok := w.Body(c.Body); ok {
		for i, other := range rb.colliders {
			if other == h {
				rb.colliders = append(rb.colliders[:i], rb.colliders[i+1:]...)
				break
			}
		}
		rb.Wake()
	}
	w.dropPairs(h, w.activeContacts, false)
	w.dropPairs(h, w.activeIntersections, true)
}

// dropPairs forgets every tracked pair involving h and reports it as stopped.
func (w *World) dropPairs(h ColliderHandle, pairs map[CollisionPair]bool, sensor bool) {
	for pair := range pairs {
		if pair.A == h || pair.B == h {
			delete(pairs, pair)
			w.events = append(w.events, CollisionEvent{A: pair.A, B: pair.B, Sensor: sensor})
		}
	}
}

// ColliderPose returns the world position and rotation of a collider.
func (w *World) ColliderPose(h ColliderHandle) (mgl32.Vec3, mgl32.Quat, bool) {
	c, ok := w.Collider(h)
	if !ok {
		return mgl32.Vec3{}, mgl32.Quat{}, false
	}
	return w.colliderPose(c)
}

func (w *World) colliderPose(c *Collider) (mgl32.Vec3, mgl32.Quat, bool) {
	rb, ok := w.Body(c.Body)
	if !ok {
		return mgl32.Vec3{}, mgl32.Quat{}, false
	}
	pos := rb.Position.Add(rb.Rotation.Rotate(c.LocalPosition))
	rot := rb.Rotation.Mul(c.LocalRotation)
	return pos, rot, true
}

func (w *World) AddForceGenerator(g ForceGenerator) ForceHandle {
	return ForceHandle(w.forces.insert(g))
}

// RemoveForceGenerator unregisters a generator. Bodies it was scoped to are
// woken so they respond to the change.
func (w *World) RemoveForceGenerator(h ForceHandle) bool {
	g, ok := w.forces.remove(uint64(h))
	if !ok {
		return false
	}
	if scoped, ok := g.(interface{ Parts() []BodyHandle }); ok {
		for _, bh := range scoped.Parts() {
			if rb, ok := w.Body(bh); ok {
				rb.Wake()
			}
		}
	}
	return true
}

func (w *World) ForceGenerator(h ForceHandle) (ForceGenerator, bool) {
	return w.forces.get(uint64(h))
}

func (w *World) BodyCount() int           { return w.bodies.len() }
func (w *World) ColliderCount() int       { return w.colliders.len() }
func (w *World) ForceGeneratorCount() int { return w.forces.len() }

// Intersections yields the colliders currently overlapping the given sensor
// (or the sensors overlapping the given collider).
func (w *World) Intersections(h ColliderHandle) iter.Seq[ColliderHandle] {
	return func(yield func(ColliderHandle) bool) {
		for pair := range w.activeIntersections {
			var other ColliderHandle
			switch h {
			case pair.A:
				other = pair.B
			case pair.B:
				other = pair.A
			default:
				continue
			}
			if !yield(other) {
				return
			}
		}
	}
}

// InContact reports whether two colliders touched during the last step.
func (w *World) InContact(a, b ColliderHandle) bool {
	return w.activeContacts[makePair(a, b)]
}

// DrainEvents returns and clears the events accumulated since the last call.
func (w *World) DrainEvents() []CollisionEvent {
	ev := w.events
	w.events = nil
	return ev
}

// Step advances the world by exactly one timestep.
func (w *World) Step() {
	dt := w.timestep

	// 1. Force generators accumulate accelerations for this step
	for _, g := range w.forces.all() {
		g.Apply(w, dt)
	}

	// 2. Integrate velocities and poses
	for _, rb := range w.bodies.all() {
		rb.integrate(w.Gravity, dt)
	}

	// 3. Contacts
	w.currentContacts = make(map[CollisionPair]bool)
	dynamics, kinematics, statics, sensors := w.buildProxies()
	w.rebuildGrid(dynamics)

	checked := make(map[CollisionPair]bool)
	for _, p := range dynamics {
		for _, other := range w.neighbors(p) {
			if p == other || p.bodyHandle == other.bodyHandle {
				continue
			}
			key := makePair(p.handle, other.handle)
			if checked[key] {
				continue
			}
			checked[key] = true
			w.resolvePair(p, other)
		}
	}

	// Kinematic pushes dynamic
	for _, k := range kinematics {
		for _, d := range dynamics {
			w.resolvePair(d, k)
		}
	}

	// Dynamic vs static
	for _, d := range dynamics {
		for _, s := range statics {
			w.resolvePair(d, s)
		}
	}

	// Kinematic vs static (player vs walls/floor)
	for _, k := range kinematics {
		for _, s := range statics {
			w.resolveKinematicStatic(k, s)
		}
	}

	// 4. Sensors
	w.currentIntersections = make(map[CollisionPair]bool)
	all := make([]*proxy, 0, len(dynamics)+len(kinematics)+len(statics))
	all = append(all, dynamics...)
	all = append(all, kinematics...)
	all = append(all, statics...)
	for _, p := range all {
		p.refresh()
	}
	for _, s := range sensors {
		for _, other := range all {
			if s.bodyHandle == other.bodyHandle {
				continue
			}
			if overlaps(s, other) {
				w.currentIntersections[makePair(s.handle, other.handle)] = true
			}
		}
	}

	// 5. Events
	w.diffPairs(w.activeContacts, w.currentContacts, false)
	w.activeContacts = w.currentContacts
	w.diffPairs(w.activeIntersections, w.currentIntersections, true)
	w.activeIntersections = w.currentIntersections

	w.steps++
}

func (w *World) diffPairs(previous, current map[CollisionPair]bool, sensor bool) {
	for pair := range current {
		if !previous[pair] {
			w.events = append(w.events, CollisionEvent{A: pair.A, B: pair.B, Started: true, Sensor: sensor})
		}
	}
	for pair := range previous {
		if !current[pair] {
			w.events = append(w.events, CollisionEvent{A: pair.A, B: pair.B, Sensor: sensor})
		}
	}
}

// rebuildGrid clears and repopulates the spatial hash grid
func (w *World) rebuildGrid(dynamics []*proxy) {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for _, p := range dynamics {
		cell := posToCell(p.pos)
		w.grid[cell] = append(w.grid[cell], p)
	}
}

// neighbors returns all proxies in same cell and 26 neighboring cells
func (w *World) neighbors(p *proxy) []*proxy {
	cell := posToCell(p.pos)
	var out []*proxy
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				out = append(out, w.grid[key]...)
			}
		}
	}
	return out
}
