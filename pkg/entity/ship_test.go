package entity

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-flight/pkg/flight"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

func newTestWorld() *physics.World {
	return physics.NewWorld(physics.DefaultWorldConfig())
}

func shipModel() *mesh.Model {
	return mesh.NewModel("ship", mesh.NewShip())
}

// TestShipClass_String tests the String method of ShipClass
func TestShipClass_String(t *testing.T) {
	tests := []struct {
		name     string
		class    ShipClass
		expected string
	}{
		{"scout", Scout, "Scout"},
		{"interceptor", Interceptor, "Interceptor"},
		{"hauler", Hauler, "Hauler"},
		{"unknown", ShipClass(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.class.String())
			if tt.class != ShipClass(999) {
				assert.Equal(t, tt.class, ShipClassFromString(tt.expected))
			}
		})
	}

	assert.Equal(t, Scout, ShipClassFromString(""))
	assert.Equal(t, Scout, ShipClassFromString("Battleship"))
}

func TestShipClass_Handling(t *testing.T) {
	assert.Equal(t, flight.DefaultConfig(), Scout.Handling())
	for _, c := range []ShipClass{Scout, Interceptor, Hauler} {
		assert.NoError(t, c.Handling().Validate(), c.String())
	}
	assert.Greater(t, Interceptor.Handling().ThrustSpeed, Hauler.Handling().ThrustSpeed)
}

func TestNewShip(t *testing.T) {
	world := newTestWorld()
	ship := NewShip(world, shipModel(), Scout, Scout.Handling())

	assert.Equal(t, KindShip, ship.Kind())
	require.Len(t, world.Proxies(), 1)
	proxy := world.Proxies()[0]
	assert.Same(t, proxy, ship.Action.Proxy())
	assert.Equal(t, ship.ID(), proxy.UserData)
	assert.Equal(t, physics.GroupShip, proxy.FilterGroup())
	assert.Zero(t, proxy.FilterMask()&physics.GroupProjectile)
	assert.Equal(t, physics.ShapeCapsule, proxy.Shape().Kind())

	assert.Len(t, ship.Weapons, 2)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, ship.Transform.Scale)
	assert.Equal(t, mgl64.QuatIdent(), ship.Transform.Rotation)
}

func TestShip_ActionRunsInWorldStep(t *testing.T) {
	world := newTestWorld()
	ship := NewShip(world, shipModel(), Scout, Scout.Handling())

	var in flight.ShipInput
	in.Set(flight.ThrustZ, 1)
	ship.Action.ApplyInput(in)
	world.Step(1)
	world.Step(1)
	ship.SyncTransform()

	assert.Greater(t, ship.Position().Z(), 0.0)
	assert.Equal(t, ship.Action.Position(), ship.Position())
}

func TestShip_SyncTransformKeepsScale(t *testing.T) {
	world := newTestWorld()
	ship := NewShip(world, shipModel(), Scout, Scout.Handling())
	ship.Transform.Scale = mgl64.Vec3{2, 2, 2}

	ship.SyncTransform()
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, ship.Transform.Scale)
}

// TestShip_FireWeapon tests the FireWeapon method
func TestShip_FireWeapon(t *testing.T) {
	ship := NewShip(newTestWorld(), shipModel(), Scout, Scout.Handling())
	cannon := ship.Weapons[0]

	t.Run("valid_weapon_index", func(t *testing.T) {
		assert.Same(t, cannon, ship.FireWeapon(0, 0))
		_, exists := ship.LastFired[cannon.Name]
		assert.True(t, exists)
	})

	t.Run("invalid_weapon_index", func(t *testing.T) {
		assert.Nil(t, ship.FireWeapon(-1, time.Second))
		assert.Nil(t, ship.FireWeapon(999, time.Second))
	})

	t.Run("weapon_on_cooldown", func(t *testing.T) {
		now := 10 * time.Second
		require.NotNil(t, ship.FireWeapon(0, now))
		assert.Nil(t, ship.FireWeapon(0, now+cannon.Cooldown/2))
		assert.NotNil(t, ship.FireWeapon(1, now), "weapons cool down independently")
		assert.NotNil(t, ship.FireWeapon(0, now+cannon.Cooldown))
	})
}

func TestShip_Detach(t *testing.T) {
	world := newTestWorld()
	ship := NewShip(world, shipModel(), Scout, Scout.Handling())

	ship.Detach(world)
	assert.Empty(t, world.Proxies())

	var in flight.ShipInput
	in.Set(flight.ThrustZ, 1)
	ship.Action.ApplyInput(in)
	world.Step(1)
	world.Step(1)
	assert.Equal(t, mgl64.Vec3{}, ship.Action.Position(), "detached action no longer runs")
}
