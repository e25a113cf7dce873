// pkg/entity/ship.go
package entity

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/flight"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// ShipClass selects a handling preset
type ShipClass int

const (
	Scout ShipClass = iota
	Interceptor
	Hauler
)

// String returns the class name
func (c ShipClass) String() string {
	switch c {
	case Scout:
		return "Scout"
	case Interceptor:
		return "Interceptor"
	case Hauler:
		return "Hauler"
	default:
		return "Unknown"
	}
}

// ShipClassFromString converts a string to a ShipClass enum value.
func ShipClassFromString(s string) ShipClass {
	switch s {
	case "Interceptor":
		return Interceptor
	case "Hauler":
		return Hauler
	default:
		return Scout // fallback to Scout if unknown
	}
}

// Handling returns the flight configuration of a class. Scout is the stock
// handling.
func (c ShipClass) Handling() flight.Config {
	cfg := flight.DefaultConfig()
	switch c {
	case Interceptor:
		cfg.ThrustSpeed = 120
		cfg.PitchRate = 40
		cfg.YawRate = 35
		cfg.RollRate = 60
		cfg.LateralDamping = 0.9
	case Hauler:
		cfg.ThrustSpeed = 45
		cfg.PitchRate = 15
		cfg.YawRate = 15
		cfg.RollRate = 20
		cfg.CollisionImpulse = 40
	}
	return cfg
}

// Ship collider dimensions. The capsule runs nose to tail along +Z.
const (
	ShipColliderRadius = 1.2
	ShipColliderLength = 1.6
)

// ShipFilterMask is everything except the ship's own projectiles.
const ShipFilterMask = physics.GroupAll &^ physics.GroupProjectile

// Ship is a player-controlled ship
type Ship struct {
	ecs.BasicEntity
	TransformComponent
	ModelComponent
	ShipComponent
}

// Kind returns KindShip
func (s *Ship) Kind() Kind { return KindShip }

// NewShip creates a ship at the origin, registers its collision proxy and
// flight action with world, and arms it with a cannon and a torpedo.
func NewShip(world *physics.World, model *mesh.Model, class ShipClass, cfg flight.Config, opts ...flight.Option) *Ship {
	proxy := world.CreateCollisionProxy(
		physics.NewCapsuleZ(ShipColliderRadius, ShipColliderLength),
		physics.GroupShip, ShipFilterMask)

	ship := &Ship{
		BasicEntity: ecs.NewBasic(),
		ModelComponent: ModelComponent{
			Model:          model,
			ColliderRadius: 1.75,
			ColliderOffset: mgl64.Vec3{0, 1, 0},
		},
		ShipComponent: ShipComponent{
			Class:     class,
			Action:    flight.NewAction(proxy, world, cfg, opts...),
			Weapons:   []*Weapon{NewCannon(), NewTorpedo()},
			LastFired: make(map[string]time.Duration),
		},
	}
	proxy.UserData = ship.ID()
	world.AddAction(ship.Action)
	ship.SyncTransform()

	return ship
}

// SyncTransform copies the action's placement into the transform component.
// Scale belongs to the entity and is left alone.
func (s *Ship) SyncTransform() {
	t := s.Action.ExportTransform()
	if s.Transform.Scale == (mgl64.Vec3{}) {
		s.Transform.Scale = mgl64.Vec3{1, 1, 1}
	}
	s.Transform.Translation = t.Translation
	s.Transform.Rotation = t.Rotation
}

// FireWeapon attempts to fire the specified weapon at simulation time now.
// It returns the weapon when it fired.
func (s *Ship) FireWeapon(weaponIndex int, now time.Duration) *Weapon {
	if weaponIndex < 0 || weaponIndex >= len(s.Weapons) {
		return nil
	}

	weapon := s.Weapons[weaponIndex]

	// Check cooldown
	lastFired, exists := s.LastFired[weapon.Name]
	if exists && now-lastFired < weapon.Cooldown {
		return nil // Weapon still on cooldown
	}

	s.LastFired[weapon.Name] = now
	return weapon
}

// Detach removes the ship's action and proxy from world.
func (s *Ship) Detach(world *physics.World) {
	world.RemoveAction(s.Action)
	world.RemoveProxy(s.Action.Proxy())
}
