// pkg/flight/action.go
package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// Sweeper answers swept convex queries. *physics.World implements it.
type Sweeper interface {
	SweepConvex(shape physics.Shape, from, to physics.Transform, group, mask physics.CollisionGroup, opts ...physics.SweepOption) (physics.SweepResult, bool)
}

// Collision describes a hit the action resolved.
type Collision struct {
	Object   physics.CollisionObject
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Fraction float64
	// Slowdown is the fraction of speed lost, |dir·normal|.
	Slowdown    float64
	SpeedBefore float64
	SpeedAfter  float64
	// Impulse is what was applied to a dynamic body, zero otherwise.
	Impulse mgl64.Vec3
}

// Option configures an Action.
type Option func(*Action)

// WithCollisionHandler registers fn to observe every resolved hit. fn runs
// inside Advance and must not call back into the action.
func WithCollisionHandler(fn func(Collision)) Option {
	return func(a *Action) {
		a.onCollision = fn
	}
}

// Action owns a ship's flight state and advances it once per physics step.
// It is driven by the physics world and is not safe for concurrent use.
type Action struct {
	proxy   *physics.Proxy
	sweeper Sweeper
	config  Config

	position    mgl64.Vec3
	velocity    mgl64.Vec3 // ship-local frame
	orientation mgl64.Quat

	thrust   mgl64.Vec3
	rotation mgl64.Vec3 // pitch, yaw, roll in [-1, 1]

	onCollision func(Collision)
}

// NewAction creates an action at the origin, at rest, with identity
// orientation. proxy and sweeper are required.
func NewAction(proxy *physics.Proxy, sweeper Sweeper, config Config, opts ...Option) *Action {
	if proxy == nil || sweeper == nil {
		panic("flight: action needs a collision proxy and a sweeper")
	}
	a := &Action{
		proxy:       proxy,
		sweeper:     sweeper,
		config:      config,
		orientation: mgl64.QuatIdent(),
	}
	for _, opt := range opts {
		opt(a)
	}
	proxy.SetWorldTransform(a.ExportTransform())
	return a
}

// ApplyInput stores input for the next Advance. A non-zero thrust vector is
// normalized to unit length; rotation axes are stored as given.
func (a *Action) ApplyInput(input ShipInput) {
	a.thrust = physics.NormalizeOrZero(mgl64.Vec3{input[ThrustX], input[ThrustY], input[ThrustZ]})
	a.rotation = mgl64.Vec3{input[Pitch], input[Yaw], input[Roll]}
}

// Advance moves the ship by one step of dt seconds.
func (a *Action) Advance(dt float64) {
	pitch := mgl64.DegToRad(a.rotation[0]*a.config.PitchRate) * dt
	yaw := mgl64.DegToRad(a.rotation[1]*a.config.YawRate) * dt
	roll := mgl64.DegToRad(a.rotation[2]*a.config.RollRate) * dt
	delta := mgl64.AnglesToQuat(yaw, pitch, roll, mgl64.YXZ)
	targetOrientation := a.orientation.Mul(delta).Normalize()

	worldVelocity := a.orientation.Rotate(a.velocity)
	targetPosition := a.position.Add(worldVelocity.Mul(dt))

	targetVelocity := a.damp(a.velocity, dt).Add(a.thrust.Mul(a.config.ThrustSpeed * dt))

	from := physics.NewTransform(a.position, a.orientation)
	to := physics.NewTransform(targetPosition, targetOrientation)
	hit, ok := a.sweeper.SweepConvex(a.proxy.Shape(), from, to,
		a.proxy.FilterGroup(), a.proxy.FilterMask(), physics.IgnoreObject(a.proxy))
	if ok && a.proxy.HasContactResponse() && physics.FiltersCollide(a.proxy, hit.Object) {
		targetVelocity = a.resolve(hit, targetPosition, targetOrientation, targetVelocity)
	}

	a.position = targetPosition
	a.velocity = targetVelocity
	a.orientation = targetOrientation

	a.thrust = mgl64.Vec3{}
	a.rotation = mgl64.Vec3{}

	a.proxy.SetWorldTransform(a.ExportTransform())
}

func (a *Action) damp(v mgl64.Vec3, dt float64) mgl64.Vec3 {
	if dt == 0 {
		return v
	}
	lateral := a.config.dampingFactor(a.config.LateralDamping, dt)
	forward := a.config.dampingFactor(a.config.ForwardDamping, dt)
	return mgl64.Vec3{v[0] * lateral, v[1] * lateral, v[2] * forward}
}

// resolve redirects the ship along the reflection of its motion and pushes
// a dynamic body it struck. The returned velocity is in the target frame.
func (a *Action) resolve(hit physics.SweepResult, targetPosition mgl64.Vec3, targetOrientation mgl64.Quat, targetVelocity mgl64.Vec3) mgl64.Vec3 {
	movement := targetPosition.Sub(a.position)
	if movement.Len() <= physics.Epsilon {
		return targetVelocity
	}
	dir := movement.Normalize()
	reflected := physics.NormalizeOrZero(physics.Reflect(dir, hit.Normal))
	slowdown := math.Abs(dir.Dot(hit.Normal))
	speed := targetVelocity.Len()
	speedAfter := speed * (1 - slowdown)
	worldVelocity := reflected.Mul(speedAfter)

	var impulse mgl64.Vec3
	if body, ok := hit.Object.(*physics.RigidBody); ok && body.IsDynamic() {
		body.Activate()
		impulse = hit.Normal.Mul(-a.config.CollisionImpulse)
		body.ApplyImpulse(impulse, hit.Point.Sub(body.WorldTransform().Translation))
	}

	if a.onCollision != nil {
		a.onCollision(Collision{
			Object:      hit.Object,
			Point:       hit.Point,
			Normal:      hit.Normal,
			Fraction:    hit.Fraction,
			Slowdown:    slowdown,
			SpeedBefore: speed,
			SpeedAfter:  speedAfter,
			Impulse:     impulse,
		})
	}

	return targetOrientation.Conjugate().Rotate(worldVelocity)
}

// ExportTransform returns the ship's current placement with unit scale.
func (a *Action) ExportTransform() physics.Transform {
	return physics.NewTransform(a.position, a.orientation)
}

// CurrentVelocity returns the ship's velocity in world space.
func (a *Action) CurrentVelocity() mgl64.Vec3 {
	return a.orientation.Rotate(a.velocity)
}

func (a *Action) Position() mgl64.Vec3    { return a.position }
func (a *Action) Orientation() mgl64.Quat { return a.orientation }
func (a *Action) Proxy() *physics.Proxy   { return a.proxy }
func (a *Action) Config() Config          { return a.config }

// SetConfig replaces the handling. Call it between steps.
func (a *Action) SetConfig(config Config) { a.config = config }
