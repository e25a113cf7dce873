package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAction struct {
	calls int
	dts   []float64
}

func (a *countingAction) Advance(dt float64) {
	a.calls++
	a.dts = append(a.dts, dt)
}

func TestWorldStep(t *testing.T) {
	t.Run("integrates_dynamic_bodies", func(t *testing.T) {
		world := NewWorld(DefaultWorldConfig())
		body := world.CreateDynamicBody(mgl64.Vec3{}, mgl64.QuatIdent(), 1, NewSphere(1))
		body.SetLinearVelocity(mgl64.Vec3{6, 0, 0})

		world.Step(0.5)

		vecInDelta(t, mgl64.Vec3{3, 0, 0}, body.WorldTransform().Translation, 1e-12)
	})

	t.Run("static_bodies_stay_put", func(t *testing.T) {
		world := NewWorld(DefaultWorldConfig())
		body := world.CreateDynamicBody(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent(), 0, NewSphere(1))
		body.SetLinearVelocity(mgl64.Vec3{6, 0, 0})

		world.Step(1)

		assert.False(t, body.IsDynamic())
		assert.Equal(t, mgl64.Vec3{1, 2, 3}, body.WorldTransform().Translation)
	})

	t.Run("runs_actions_once", func(t *testing.T) {
		world := NewWorld(DefaultWorldConfig())
		action := &countingAction{}
		world.AddAction(action)

		world.Step(1.0 / 60)
		world.Step(0)

		assert.Equal(t, 1, action.calls)
		assert.Equal(t, []float64{1.0 / 60}, action.dts)

		require.True(t, world.RemoveAction(action))
		world.Step(1.0 / 60)
		assert.Equal(t, 1, action.calls)
	})

	t.Run("separates_overlapping_bodies", func(t *testing.T) {
		world := NewWorld(DefaultWorldConfig())
		a := world.CreateDynamicBody(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent(), 1, NewSphere(1))
		b := world.CreateDynamicBody(mgl64.Vec3{1.5, 0, 0}, mgl64.QuatIdent(), 1, NewSphere(1))
		a.SetLinearVelocity(mgl64.Vec3{1, 0, 0})
		b.SetLinearVelocity(mgl64.Vec3{-1, 0, 0})

		world.Step(0.01)

		assert.Less(t, a.LinearVelocity()[0], 0.0)
		assert.Greater(t, b.LinearVelocity()[0], 0.0)
		ta, tb := a.WorldTransform().Translation, b.WorldTransform().Translation
		assert.Greater(t, tb.Sub(ta).Len(), 1.48)
	})

	t.Run("gravity_default_zero", func(t *testing.T) {
		assert.Equal(t, mgl64.Vec3{}, DefaultWorldConfig().Gravity)
	})
}

func TestBodySleep(t *testing.T) {
	world := NewWorld(DefaultWorldConfig())
	body := world.CreateDynamicBody(mgl64.Vec3{}, mgl64.QuatIdent(), 1, NewSphere(1))

	for i := 0; i < 150; i++ {
		world.Step(1.0 / 60)
	}
	assert.Equal(t, Sleeping, body.ActivationState())

	body.Activate()
	assert.True(t, body.IsActive())
}

func TestApplyImpulse(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		body := NewRigidBody(NewSphere(1), IdentityTransform(), 2)
		body.ApplyImpulse(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{})

		vecInDelta(t, mgl64.Vec3{2, 0, 0}, body.LinearVelocity(), 1e-12)
		assert.Equal(t, mgl64.Vec3{}, body.AngularVelocity())
	})

	t.Run("off_center_spins", func(t *testing.T) {
		body := NewRigidBody(NewSphere(1), IdentityTransform(), 1)
		body.ApplyImpulse(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{1, 0, 0})

		// r x J = (1,0,0) x (0,0,-1) = (0,1,0); inverse inertia of a unit sphere is 2.5.
		vecInDelta(t, mgl64.Vec3{0, 2.5, 0}, body.AngularVelocity(), 1e-12)
	})

	t.Run("static_ignores", func(t *testing.T) {
		body := NewRigidBody(NewSphere(1), IdentityTransform(), 0)
		body.ApplyImpulse(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{1, 0, 0})

		assert.Equal(t, mgl64.Vec3{}, body.LinearVelocity())
	})

	t.Run("negative_mass_panics", func(t *testing.T) {
		assert.Panics(t, func() { NewRigidBody(NewSphere(1), IdentityTransform(), -1) })
	})
}

func TestSweepConvex(t *testing.T) {
	newWorld := func() (*World, *RigidBody, *Proxy) {
		world := NewWorld(DefaultWorldConfig())
		rock := world.CreateDynamicBody(mgl64.Vec3{0, 0, 10}, mgl64.QuatIdent(), 5, NewSphere(2))
		ship := world.CreateCollisionProxy(NewCapsuleZ(0.5, 2), GroupShip, GroupAll&^GroupProjectile)
		return world, rock, ship
	}
	from := at(0, 0, 0)
	to := at(0, 0, 20)

	t.Run("closest_hit", func(t *testing.T) {
		world, rock, ship := newWorld()
		world.CreateDynamicBody(mgl64.Vec3{0, 0, 15}, mgl64.QuatIdent(), 5, NewSphere(2))

		hit, ok := world.SweepConvex(ship.Shape(), from, to, ship.FilterGroup(), ship.FilterMask(), IgnoreObject(ship))

		require.True(t, ok)
		assert.Same(t, rock, hit.Object)
		// Capsule tip reaches z=1.5 at rest; the rock surface is at z=8.
		assert.InDelta(t, 6.5/20, hit.Fraction, 1e-3)
		vecInDelta(t, Back, hit.Normal, 1e-3)
		vecInDelta(t, mgl64.Vec3{0, 0, 8}, hit.Point, 1e-2)
	})

	t.Run("self_hit_without_ignore", func(t *testing.T) {
		world, _, ship := newWorld()

		hit, ok := world.SweepConvex(ship.Shape(), from, to, ship.FilterGroup(), ship.FilterMask())

		require.True(t, ok)
		assert.Same(t, ship, hit.Object)
		assert.Zero(t, hit.Fraction)
	})

	t.Run("caster_mask_rejects", func(t *testing.T) {
		world, _, ship := newWorld()

		_, ok := world.SweepConvex(ship.Shape(), from, to, GroupShip, GroupAll&^GroupDefault, IgnoreObject(ship))

		assert.False(t, ok)
	})

	t.Run("target_mask_rejects", func(t *testing.T) {
		world, rock, ship := newWorld()
		rock.SetFilter(GroupDefault, GroupAll&^GroupShip)

		_, ok := world.SweepConvex(ship.Shape(), from, to, ship.FilterGroup(), ship.FilterMask(), IgnoreObject(ship))

		assert.False(t, ok)
	})

	t.Run("outside_bounds_still_found", func(t *testing.T) {
		world, rock, ship := newWorld()
		far := mgl64.Vec3{0, 0, 5000}
		rock.SetWorldTransform(NewTransform(far, mgl64.QuatIdent()))

		hit, ok := world.SweepConvex(ship.Shape(), at(0, 0, 4980), at(0, 0, 5010), ship.FilterGroup(), ship.FilterMask(), IgnoreObject(ship))

		require.True(t, ok)
		assert.Same(t, rock, hit.Object)
	})
}

func TestWorldRegistry(t *testing.T) {
	world := NewWorld(DefaultWorldConfig())
	body := world.CreateDynamicBody(mgl64.Vec3{}, mgl64.QuatIdent(), 1, NewSphere(1))
	proxy := world.CreateCollisionProxy(NewSphere(1), GroupShip, GroupAll)

	assert.Len(t, world.Bodies(), 1)
	assert.Len(t, world.Proxies(), 1)
	assert.Len(t, world.QueryAABB(AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})), 2)

	assert.True(t, world.RemoveBody(body))
	assert.False(t, world.RemoveBody(body))
	assert.True(t, world.RemoveProxy(proxy))
	assert.Empty(t, world.Bodies())
	assert.Empty(t, world.Proxies())
}
