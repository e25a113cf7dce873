// pkg/physics/world.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Action is custom per-step logic run by the world inside Step, after body
// integration and contact resolution.
type Action interface {
	Advance(dt float64)
}

// WorldConfig holds world-wide simulation settings.
type WorldConfig struct {
	Bounds         AABB
	Gravity        mgl64.Vec3
	NodeCapacity   int
	Restitution    float64
	LinearDamping  float64
	AngularDamping float64

	SleepLinearThreshold  float64
	SleepAngularThreshold float64
	DeactivationTime      float64
}

// DefaultWorldConfig returns a zero-gravity world large enough for the
// asteroid field.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Bounds:                AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{2048, 2048, 2048}),
		NodeCapacity:          8,
		Restitution:           0.5,
		SleepLinearThreshold:  0.8,
		SleepAngularThreshold: 1.0,
		DeactivationTime:      2.0,
	}
}

// World owns bodies, proxies and actions and advances them together.
type World struct {
	config   WorldConfig
	bodies   []*RigidBody
	proxies  []*Proxy
	actions  []Action
	tree     *Octree
	overflow []CollisionObject
}

// NewWorld creates an empty world.
func NewWorld(config WorldConfig) *World {
	if config.NodeCapacity < 1 {
		config.NodeCapacity = 8
	}
	return &World{
		config: config,
		tree:   NewOctree(config.Bounds, config.NodeCapacity),
	}
}

// Config returns the world settings.
func (w *World) Config() WorldConfig { return w.config }

// CreateCollisionProxy registers a query-only collider.
func (w *World) CreateCollisionProxy(shape Shape, group, mask CollisionGroup) *Proxy {
	proxy := NewProxy(shape, group, mask)
	w.proxies = append(w.proxies, proxy)
	w.rebuildBroadphase()
	return proxy
}

// CreateDynamicBody registers a body. Zero mass creates a static body.
func (w *World) CreateDynamicBody(position mgl64.Vec3, orientation mgl64.Quat, mass float64, shape Shape) *RigidBody {
	body := NewRigidBody(shape, NewTransform(position, orientation), mass)
	w.AddBody(body)
	return body
}

// AddBody registers an existing body.
func (w *World) AddBody(body *RigidBody) {
	w.bodies = append(w.bodies, body)
	w.rebuildBroadphase()
}

// RemoveBody unregisters body. It reports whether the body was found.
func (w *World) RemoveBody(body *RigidBody) bool {
	for i, b := range w.bodies {
		if b == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			w.rebuildBroadphase()
			return true
		}
	}
	return false
}

// RemoveProxy unregisters proxy. It reports whether the proxy was found.
func (w *World) RemoveProxy(proxy *Proxy) bool {
	for i, p := range w.proxies {
		if p == proxy {
			w.proxies = append(w.proxies[:i], w.proxies[i+1:]...)
			w.rebuildBroadphase()
			return true
		}
	}
	return false
}

// Bodies returns the registered bodies.
func (w *World) Bodies() []*RigidBody { return w.bodies }

// Proxies returns the registered proxies.
func (w *World) Proxies() []*Proxy { return w.proxies }

// AddAction registers an action to run once per Step.
func (w *World) AddAction(action Action) {
	w.actions = append(w.actions, action)
}

// RemoveAction unregisters action.
func (w *World) RemoveAction(action Action) bool {
	for i, a := range w.actions {
		if a == action {
			w.actions = append(w.actions[:i], w.actions[i+1:]...)
			return true
		}
	}
	return false
}

// Step advances the simulation by dt seconds. dt <= 0 does nothing.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, body := range w.bodies {
		body.integrate(dt, w.config.Gravity, w.config.LinearDamping, w.config.AngularDamping)
	}

	w.rebuildBroadphase()
	w.resolveContacts()

	for _, action := range w.actions {
		action.Advance(dt)
	}

	for _, body := range w.bodies {
		body.updateActivation(dt, w.config)
	}
}

// SweepConvex casts shape from one transform to another and returns the
// closest accepted hit. Objects are accepted when the filters collide
// symmetrically and the object is not ignored.
func (w *World) SweepConvex(shape Shape, from, to Transform, group, mask CollisionGroup, opts ...SweepOption) (SweepResult, bool) {
	var options sweepOptions
	for _, opt := range opts {
		opt(&options)
	}

	// Proxies move between steps, so the tree is refreshed before querying.
	w.rebuildBroadphase()

	var (
		best  SweepResult
		found bool
	)
	for _, obj := range w.candidates(sweptBounds(shape, from, to)) {
		if options.ignored(obj) {
			continue
		}
		if !Collides(group, mask, obj.FilterGroup(), obj.FilterMask()) {
			continue
		}
		hit, ok := ConvexCast(shape, from, to, obj.Shape(), obj.WorldTransform())
		if !ok {
			continue
		}
		best, found = closestHit(best, found, SweepResult{
			Object:   obj,
			Fraction: hit.Fraction,
			Point:    hit.Point,
			Normal:   hit.Normal,
		})
	}
	return best, found
}

// QueryAABB returns objects whose bounding spheres may touch area.
func (w *World) QueryAABB(area AABB) []CollisionObject {
	w.rebuildBroadphase()
	var found []CollisionObject
	for _, obj := range w.candidates(area) {
		t := obj.WorldTransform()
		if SphereAABB(t.Translation, obj.Shape().BoundingRadius()).Intersects(area) {
			found = append(found, obj)
		}
	}
	return found
}

// candidates returns every object whose origin could place its bounding
// sphere inside area.
func (w *World) candidates(area AABB) []CollisionObject {
	found := w.tree.Query(area.Expand(w.maxRadius()))
	return append(found, w.overflow...)
}

func (w *World) maxRadius() float64 {
	r := 0.0
	for _, b := range w.bodies {
		r = math.Max(r, b.shape.BoundingRadius())
	}
	for _, p := range w.proxies {
		r = math.Max(r, p.shape.BoundingRadius())
	}
	return r
}

func (w *World) rebuildBroadphase() {
	w.tree.Clear()
	w.overflow = w.overflow[:0]
	for _, b := range w.bodies {
		if !w.tree.Insert(b.transform.Translation, b) {
			w.overflow = append(w.overflow, b)
		}
	}
	for _, p := range w.proxies {
		if !w.tree.Insert(p.transform.Translation, p) {
			w.overflow = append(w.overflow, p)
		}
	}
}

// resolveContacts pushes overlapping bodies apart. Proxies are never moved.
func (w *World) resolveContacts() {
	radius := w.maxRadius()
	index := make(map[*RigidBody]int, len(w.bodies))
	for i, b := range w.bodies {
		index[b] = i
	}
	for _, a := range w.bodies {
		if !a.IsDynamic() || !a.IsActive() {
			continue
		}
		aSphere := BoundingSphere{Center: a.transform.Translation, Radius: a.shape.BoundingRadius()}
		area := SphereAABB(aSphere.Center, aSphere.Radius+radius)
		for _, obj := range append(w.tree.Query(area), w.overflow...) {
			b, ok := obj.(*RigidBody)
			if !ok || b == a {
				continue
			}
			// Each dynamic pair is handled once, from its lower index side.
			if b.IsDynamic() && b.IsActive() && index[b] < index[a] {
				continue
			}
			w.resolvePair(a, aSphere, b)
		}
	}
}

func (w *World) resolvePair(a *RigidBody, aSphere BoundingSphere, b *RigidBody) {
	if !a.contactResponse || !b.contactResponse || !FiltersCollide(a, b) {
		return
	}
	bSphere := BoundingSphere{Center: b.transform.Translation, Radius: b.shape.BoundingRadius()}
	contact := CheckCollision(aSphere, bSphere)
	if !contact.Collided {
		return
	}
	if !Distance(a.shape, a.transform, b.shape, b.transform).Overlap {
		return
	}

	invSum := a.inverseMass + b.inverseMass
	if invSum == 0 {
		return
	}
	a.Activate()
	b.Activate()

	n := contact.Normal
	relative := b.linearVelocity.Sub(a.linearVelocity).Dot(n)
	if relative < 0 {
		j := -(1 + w.config.Restitution) * relative / invSum
		a.linearVelocity = a.linearVelocity.Sub(n.Mul(j * a.inverseMass))
		b.linearVelocity = b.linearVelocity.Add(n.Mul(j * b.inverseMass))
	}

	const correction = 0.8
	push := n.Mul(contact.Penetration * correction / invSum)
	a.transform.Translation = a.transform.Translation.Sub(push.Mul(a.inverseMass))
	b.transform.Translation = b.transform.Translation.Add(push.Mul(b.inverseMass))
}
