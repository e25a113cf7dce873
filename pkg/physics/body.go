// pkg/physics/body.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CollisionObject is anything the world can report in a query.
type CollisionObject interface {
	Shape() Shape
	WorldTransform() Transform
	FilterGroup() CollisionGroup
	FilterMask() CollisionGroup
	HasContactResponse() bool
}

// ActivationState tracks whether a body is simulated.
type ActivationState int

const (
	Active ActivationState = iota
	Sleeping
)

// RigidBody is a simulated body. A body with zero mass is static.
type RigidBody struct {
	shape           Shape
	transform       Transform
	group           CollisionGroup
	mask            CollisionGroup
	contactResponse bool

	mass           float64
	inverseMass    float64
	inverseInertia mgl64.Vec3

	linearVelocity  mgl64.Vec3
	angularVelocity mgl64.Vec3

	activation ActivationState
	sleepTimer float64

	// UserData links the body back to its owner, usually an entity ID.
	UserData any
}

// NewRigidBody creates a body outside any world. Static bodies default to
// GroupStatic and skip other statics; dynamic bodies accept everything.
func NewRigidBody(shape Shape, transform Transform, mass float64) *RigidBody {
	if mass < 0 {
		panic("physics: negative body mass")
	}
	body := &RigidBody{
		shape:           shape,
		transform:       transform,
		group:           GroupDefault,
		mask:            GroupAll,
		contactResponse: true,
		mass:            mass,
	}
	if mass == 0 {
		body.group = GroupStatic
		body.mask = GroupAll &^ GroupStatic
		return body
	}
	body.inverseMass = 1 / mass
	inertia := shape.LocalInertia(mass)
	for i := 0; i < 3; i++ {
		if inertia[i] > 0 {
			body.inverseInertia[i] = 1 / inertia[i]
		}
	}
	return body
}

func (b *RigidBody) Shape() Shape                { return b.shape }
func (b *RigidBody) WorldTransform() Transform   { return b.transform }
func (b *RigidBody) FilterGroup() CollisionGroup { return b.group }
func (b *RigidBody) FilterMask() CollisionGroup  { return b.mask }
func (b *RigidBody) HasContactResponse() bool    { return b.contactResponse }

// SetWorldTransform teleports the body.
func (b *RigidBody) SetWorldTransform(t Transform) { b.transform = t }

// SetFilter replaces the body's group and mask.
func (b *RigidBody) SetFilter(group, mask CollisionGroup) {
	b.group = group
	b.mask = mask
}

// SetContactResponse enables or disables collision response.
func (b *RigidBody) SetContactResponse(enabled bool) { b.contactResponse = enabled }

func (b *RigidBody) Mass() float64        { return b.mass }
func (b *RigidBody) InverseMass() float64 { return b.inverseMass }

// IsDynamic reports whether the body responds to impulses.
func (b *RigidBody) IsDynamic() bool { return b.inverseMass > 0 }

func (b *RigidBody) LinearVelocity() mgl64.Vec3  { return b.linearVelocity }
func (b *RigidBody) AngularVelocity() mgl64.Vec3 { return b.angularVelocity }

// SetLinearVelocity sets the velocity of a dynamic body and wakes it.
func (b *RigidBody) SetLinearVelocity(v mgl64.Vec3) {
	if !b.IsDynamic() {
		return
	}
	b.linearVelocity = v
	b.Activate()
}

// SetAngularVelocity sets the spin of a dynamic body and wakes it.
func (b *RigidBody) SetAngularVelocity(w mgl64.Vec3) {
	if !b.IsDynamic() {
		return
	}
	b.angularVelocity = w
	b.Activate()
}

// Activate wakes the body and resets its sleep timer.
func (b *RigidBody) Activate() {
	b.activation = Active
	b.sleepTimer = 0
}

// IsActive reports whether the body is awake.
func (b *RigidBody) IsActive() bool { return b.activation == Active }

// ActivationState returns the current activation state.
func (b *RigidBody) ActivationState() ActivationState { return b.activation }

// ApplyCentralImpulse changes linear velocity only.
func (b *RigidBody) ApplyCentralImpulse(impulse mgl64.Vec3) {
	if !b.IsDynamic() {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(impulse.Mul(b.inverseMass))
}

// ApplyImpulse applies impulse at relPos, an offset from the body origin in
// world space. Static bodies ignore it. It does not wake the body.
func (b *RigidBody) ApplyImpulse(impulse, relPos mgl64.Vec3) {
	if !b.IsDynamic() {
		return
	}
	b.ApplyCentralImpulse(impulse)
	b.angularVelocity = b.angularVelocity.Add(b.applyInverseInertia(relPos.Cross(impulse)))
}

// applyInverseInertia multiplies a world vector by the world inverse inertia tensor.
func (b *RigidBody) applyInverseInertia(v mgl64.Vec3) mgl64.Vec3 {
	local := b.transform.InverseDirection(v)
	return b.transform.ApplyDirection(MulElem(local, b.inverseInertia))
}

func (b *RigidBody) integrate(dt float64, gravity mgl64.Vec3, linearDamping, angularDamping float64) {
	if !b.IsDynamic() || !b.IsActive() {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(gravity.Mul(dt))
	if linearDamping > 0 {
		b.linearVelocity = b.linearVelocity.Mul(math.Pow(1-linearDamping, dt))
	}
	if angularDamping > 0 {
		b.angularVelocity = b.angularVelocity.Mul(math.Pow(1-angularDamping, dt))
	}
	b.transform.Translation = b.transform.Translation.Add(b.linearVelocity.Mul(dt))
	if b.angularVelocity.LenSqr() > 0 {
		b.transform.Rotation = IntegrateOrientation(b.transform.Rotation, b.angularVelocity, dt)
	}
}

func (b *RigidBody) updateActivation(dt float64, cfg WorldConfig) {
	if !b.IsDynamic() || !b.IsActive() || cfg.DeactivationTime <= 0 {
		return
	}
	if b.linearVelocity.Len() < cfg.SleepLinearThreshold &&
		b.angularVelocity.Len() < cfg.SleepAngularThreshold {
		b.sleepTimer += dt
	} else {
		b.sleepTimer = 0
	}
	if b.sleepTimer > cfg.DeactivationTime {
		b.activation = Sleeping
		b.linearVelocity = mgl64.Vec3{}
		b.angularVelocity = mgl64.Vec3{}
	}
}

// Proxy is a query-only collider. The world never moves it; its owner
// writes the transform every step.
type Proxy struct {
	shape           Shape
	transform       Transform
	group           CollisionGroup
	mask            CollisionGroup
	contactResponse bool

	UserData any
}

// NewProxy creates a proxy at the identity transform with contact response on.
func NewProxy(shape Shape, group, mask CollisionGroup) *Proxy {
	return &Proxy{
		shape:           shape,
		transform:       IdentityTransform(),
		group:           group,
		mask:            mask,
		contactResponse: true,
	}
}

func (p *Proxy) Shape() Shape                  { return p.shape }
func (p *Proxy) WorldTransform() Transform     { return p.transform }
func (p *Proxy) SetWorldTransform(t Transform) { p.transform = t }
func (p *Proxy) FilterGroup() CollisionGroup   { return p.group }
func (p *Proxy) FilterMask() CollisionGroup    { return p.mask }
func (p *Proxy) HasContactResponse() bool      { return p.contactResponse }

// SetContactResponse enables or disables collision response for the proxy's owner.
func (p *Proxy) SetContactResponse(enabled bool) { p.contactResponse = enabled }
