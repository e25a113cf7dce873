package flight

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/opd-ai/go-flight/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorldShip(t *testing.T, cfg Config, opts ...Option) (*physics.World, *Action) {
	t.Helper()
	world := physics.NewWorld(physics.DefaultWorldConfig())
	proxy := world.CreateCollisionProxy(physics.NewCapsuleZ(0.5, 2), physics.GroupShip, physics.GroupAll&^physics.GroupProjectile)
	action := NewAction(proxy, world, cfg, opts...)
	world.AddAction(action)
	return world, action
}

func TestWorldDrivenFlight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThrustSpeed = 20
	world, action := newWorldShip(t, cfg)
	dt := 1.0 / 60

	action.ApplyInput(thrustInput(0, 0, 1))
	world.Step(dt)

	vecInDelta(t, mgl64.Vec3{0, 0, 1.0 / 3}, action.CurrentVelocity(), 1e-12)
	vecInDelta(t, mgl64.Vec3{}, action.Position(), 1e-12)

	world.Step(dt)

	vecInDelta(t, mgl64.Vec3{0, 0, (1.0 / 3) / 60}, action.Position(), 1e-12)
	vecInDelta(t, mgl64.Vec3{0, 0, (1.0 / 3) * 0.99}, action.CurrentVelocity(), 1e-12)
}

func TestWorldDrivenCollision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThrustSpeed = 600
	var hits []Collision
	world, action := newWorldShip(t, cfg, WithCollisionHandler(func(c Collision) { hits = append(hits, c) }))
	rock := world.CreateDynamicBody(mgl64.Vec3{0, 0, 8}, mgl64.QuatIdent(), 1, physics.NewSphere(2))

	action.ApplyInput(thrustInput(0, 0, 1))
	world.Step(0.1)
	require.Empty(t, hits)

	// The ship would travel 6 units; its nose meets the rock after 4.5.
	world.Step(0.1)

	require.Len(t, hits, 1)
	assert.Same(t, rock, hits[0].Object)
	assert.InDelta(t, 0.75, hits[0].Fraction, 1e-3)
	assert.InDelta(t, 0, action.CurrentVelocity().Len(), 0.1)
	assert.InDelta(t, 6.0, action.Position()[2], 1e-9)
	assert.InDelta(t, 10.0, rock.LinearVelocity()[2], 1e-2)
	assert.True(t, rock.IsActive())
}

func TestWorldIgnoresProjectiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThrustSpeed = 600
	world, action := newWorldShip(t, cfg)
	shot := world.CreateDynamicBody(mgl64.Vec3{0, 0, 8}, mgl64.QuatIdent(), 0.1, physics.NewSphere(0.5))
	shot.SetFilter(physics.GroupProjectile, physics.GroupAll&^physics.GroupShip)

	action.ApplyInput(thrustInput(0, 0, 1))
	world.Step(0.1)
	world.Step(0.1)

	assert.InDelta(t, 60*0.99, action.CurrentVelocity().Len(), 1e-9)
	assert.Equal(t, mgl64.Vec3{}, shot.LinearVelocity())
}
