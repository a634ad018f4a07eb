package physics

import "github.com/go-gl/mathgl/mgl32"

// Penetrations shallower than this are treated as touching.
const minPenetration = 1e-5

// Resting contacts slower than this do not bounce.
const restitutionThreshold = 0.5

// proxy caches a collider's world placement for one step.
type proxy struct {
	handle     ColliderHandle
	col        *Collider
	bodyHandle BodyHandle
	body       *RigidBody
	pos        mgl32.Vec3
	rot        mgl32.Quat
	box        OBB
}

func (p *proxy) refresh() {
	rb := p.body
	p.pos = rb.Position.Add(rb.Rotation.Rotate(p.col.LocalPosition))
	p.rot = rb.Rotation.Mul(p.col.LocalRotation)
	p.box = p.col.obb(p.pos, p.rot)
}

func (w *World) buildProxies() (dynamics, kinematics, statics, sensors []*proxy) {
	for id, c := range w.colliders.all() {
		rb, ok := w.Body(c.Body)
		if !ok {
			continue
		}
		p := &proxy{handle: ColliderHandle(id), col: c, bodyHandle: c.Body, body: rb}
		p.refresh()
		switch {
		case c.Sensor:
			sensors = append(sensors, p)
		case rb.Status == Dynamic:
			dynamics = append(dynamics, p)
		case rb.Status == Kinematic:
			kinematics = append(kinematics, p)
		default:
			statics = append(statics, p)
		}
	}
	return dynamics, kinematics, statics, sensors
}

// contact describes the penetration of a into b.
type contact struct {
	normal mgl32.Vec3 // unit, points from b towards a
	depth  float32
	point  mgl32.Vec3
}

func collide(a, b *proxy) (contact, bool) {
	if !a.box.Bounds().Intersects(b.box.Bounds()) {
		return contact{}, false
	}
	ballA, aIsBall := a.col.shape.(Ball)
	ballB, bIsBall := b.col.shape.(Ball)
	switch {
	case aIsBall && bIsBall:
		return sphereSphere(a.pos, ballA.Radius, b.pos, ballB.Radius)
	case aIsBall:
		return sphereBox(a.pos, ballA.Radius, b.box)
	case bIsBall:
		c, ok := sphereBox(b.pos, ballB.Radius, a.box)
		c.normal = c.normal.Mul(-1)
		return c, ok
	}
	return boxBox(a.box, b.box)
}

func sphereSphere(ca mgl32.Vec3, ra float32, cb mgl32.Vec3, rb float32) (contact, bool) {
	diff := ca.Sub(cb)
	dist := diff.Len()
	if dist >= ra+rb || dist < 0.0001 {
		return contact{}, false
	}
	normal := diff.Mul(1 / dist)
	return contact{
		normal: normal,
		depth:  ra + rb - dist,
		point:  cb.Add(normal.Mul(rb)),
	}, true
}

// sphereBox collides a sphere with an OBB. A sphere whose centre is inside
// the box falls back to box-box separation.
func sphereBox(center mgl32.Vec3, radius float32, box OBB) (contact, bool) {
	closest := ClosestPointOnOBB(box, center)
	diff := center.Sub(closest)
	dist := diff.Len()
	if dist >= radius {
		return contact{}, false
	}
	if dist < 0.0001 {
		return boxBox(NewOBB(center, mgl32.Vec3{radius, radius, radius}, mgl32.QuatIdent()), box)
	}
	return contact{
		normal: diff.Mul(1 / dist),
		depth:  radius - dist,
		point:  closest,
	}, true
}

func boxBox(a, b OBB) (contact, bool) {
	mtv := a.ResolveOBB(b)
	depth := mtv.Len()
	if depth < minPenetration {
		return contact{}, false
	}
	normal := mtv.Mul(1 / depth)

	// Use whichever box's leading feature actually sits inside the other.
	pa := a.SupportFeature(normal.Mul(-1))
	pb := b.SupportFeature(normal)
	ca := ClosestPointOnOBB(b, pa)
	cb := ClosestPointOnOBB(a, pb)
	point := pa
	if pb.Sub(cb).LenSqr() < pa.Sub(ca).LenSqr() {
		point = pb
	}
	return contact{normal: normal, depth: depth, point: point}, true
}

// overlaps is the boolean test used for sensors.
func overlaps(a, b *proxy) bool {
	if !a.box.Bounds().Intersects(b.box.Bounds()) {
		return false
	}
	ballA, aIsBall := a.col.shape.(Ball)
	ballB, bIsBall := b.col.shape.(Ball)
	switch {
	case aIsBall && bIsBall:
		r := ballA.Radius + ballB.Radius
		return a.pos.Sub(b.pos).LenSqr() <= r*r
	case aIsBall:
		return b.box.IntersectsSphere(a.pos, ballA.Radius)
	case bIsBall:
		return a.box.IntersectsSphere(b.pos, ballB.Radius)
	}
	return a.box.IntersectsOBB(b.box)
}

// recordContact marks a pair as touching this step and wakes sleeping bodies
// hit hard enough.
func (w *World) recordContact(a, b *proxy) {
	w.currentContacts[makePair(a.handle, b.handle)] = true

	relSpeed := a.body.LinearVelocity.Sub(b.body.LinearVelocity).Len()
	if relSpeed > SleepVelocityThreshold*2 {
		a.body.Wake()
		b.body.Wake()
	}
}

// resolvePair separates a dynamic collider a from b, which may be dynamic,
// kinematic or static.
func (w *World) resolvePair(a, b *proxy) {
	if a.body.sleeping && (b.body.sleeping || b.body.Status == Static) {
		// resting contacts persist while asleep
		if key := makePair(a.handle, b.handle); w.activeContacts[key] {
			w.currentContacts[key] = true
		}
		return
	}
	a.refresh()
	b.refresh()
	c, ok := collide(a, b)
	if !ok {
		return
	}
	w.recordContact(a, b)

	wa, wb := a.body.invMass, b.body.invMass
	total := wa + wb
	if total == 0 {
		return
	}
	a.body.Position = a.body.Position.Add(c.normal.Mul(c.depth * wa / total))
	b.body.Position = b.body.Position.Sub(c.normal.Mul(c.depth * wb / total))

	solveVelocity(a.body, b.body, c, a.col.Material, b.col.Material)
}

// resolveKinematicStatic pushes a kinematic collider out of a static one.
func (w *World) resolveKinematicStatic(k, s *proxy) {
	k.refresh()
	c, ok := collide(k, s)
	if !ok {
		return
	}
	w.recordContact(k, s)
	k.body.Position = k.body.Position.Add(c.normal.Mul(c.depth))
}

// solveVelocity applies a normal impulse with restitution followed by a
// Coulomb friction impulse at the contact point.
func solveVelocity(a, b *RigidBody, c contact, ma, mb Material) {
	n := c.normal
	ra := c.point.Sub(a.WorldCenterOfMass())
	rb := c.point.Sub(b.WorldCenterOfMass())
	ia := a.invInertiaWorld()
	ib := b.invInertiaWorld()

	relVel := func() mgl32.Vec3 {
		va := a.LinearVelocity.Add(a.AngularVelocity.Cross(ra))
		vb := b.LinearVelocity.Add(b.AngularVelocity.Cross(rb))
		return va.Sub(vb)
	}
	effectiveMass := func(dir mgl32.Vec3) float32 {
		k := a.invMass + b.invMass
		k += dir.Dot(ia.Mul3x1(ra.Cross(dir)).Cross(ra))
		k += dir.Dot(ib.Mul3x1(rb.Cross(dir)).Cross(rb))
		return k
	}
	apply := func(impulse mgl32.Vec3) {
		if a.movable() {
			a.LinearVelocity = a.LinearVelocity.Add(impulse.Mul(a.invMass))
			a.AngularVelocity = a.AngularVelocity.Add(ia.Mul3x1(ra.Cross(impulse)))
		}
		if b.movable() {
			b.LinearVelocity = b.LinearVelocity.Sub(impulse.Mul(b.invMass))
			b.AngularVelocity = b.AngularVelocity.Sub(ib.Mul3x1(rb.Cross(impulse)))
		}
	}

	vn := relVel().Dot(n)
	if vn >= 0 {
		return
	}
	kn := effectiveMass(n)
	if kn <= 0 {
		return
	}
	e := (ma.Restitution + mb.Restitution) / 2
	if -vn < restitutionThreshold {
		e = 0
	}
	j := -(1 + e) * vn / kn
	apply(n.Mul(j))

	rel := relVel()
	vt := rel.Sub(n.Mul(rel.Dot(n)))
	speed := vt.Len()
	if speed < 1e-6 {
		return
	}
	t := vt.Mul(1 / speed)
	kt := effectiveMass(t)
	if kt <= 0 {
		return
	}
	mu := (ma.Friction + mb.Friction) / 2
	jt := max(-speed/kt, -mu*j)
	apply(t.Mul(jt))
}
