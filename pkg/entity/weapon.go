// pkg/entity/weapon.go
package entity

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// Weapon describes a projectile launcher mounted on a ship
type Weapon struct {
	Name     string
	Cooldown time.Duration
	Speed    float64
	Radius   float64
	Mass     float64
	Lifetime time.Duration
	// MuzzleOffset is where projectiles appear, in the ship's frame.
	MuzzleOffset mgl64.Vec3
}

// NewCannon creates the primary weapon: fast, light rounds.
func NewCannon() *Weapon {
	return &Weapon{
		Name:         "Cannon",
		Cooldown:     150 * time.Millisecond,
		Speed:        200,
		Radius:       0.3,
		Mass:         0.5,
		Lifetime:     3 * time.Second,
		MuzzleOffset: mgl64.Vec3{0, 0, 3},
	}
}

// NewTorpedo creates the alternate weapon: slow, heavy and long-lived.
func NewTorpedo() *Weapon {
	return &Weapon{
		Name:         "Torpedo",
		Cooldown:     800 * time.Millisecond,
		Speed:        120,
		Radius:       0.8,
		Mass:         4,
		Lifetime:     6 * time.Second,
		MuzzleOffset: mgl64.Vec3{0, -0.5, 3.5},
	}
}

// LaunchVelocity returns the projectile velocity for a ship facing forward
// and moving at shipVelocity. Projectiles always leave along the nose, at
// the weapon speed plus the ship's speed.
func (w *Weapon) LaunchVelocity(forward, shipVelocity mgl64.Vec3) mgl64.Vec3 {
	return physics.NormalizeOrZero(forward).Mul(w.Speed + shipVelocity.Len())
}

// ProjectileFilterMask keeps projectiles off ships and each other.
const ProjectileFilterMask = physics.GroupAll &^ (physics.GroupShip | physics.GroupProjectile)

// Projectile represents a weapon projectile in the game
type Projectile struct {
	ecs.BasicEntity
	TransformComponent
	ModelComponent
	BodyComponent
	LifetimeComponent
	OwnerID uint64
	Weapon  string
}

// Kind returns KindProjectile
func (p *Projectile) Kind() Kind { return KindProjectile }

// NewProjectile launches a projectile from weapon mounted on a ship placed
// at origin and moving at shipVelocity. The body is registered with world.
func NewProjectile(world *physics.World, model *mesh.Model, weapon *Weapon, ownerID uint64, origin physics.Transform, shipVelocity mgl64.Vec3) *Projectile {
	position := origin.Apply(weapon.MuzzleOffset)
	body := world.CreateDynamicBody(position, origin.Rotation, weapon.Mass, physics.NewSphere(weapon.Radius))
	body.SetFilter(physics.GroupProjectile, ProjectileFilterMask)
	body.SetLinearVelocity(weapon.LaunchVelocity(origin.ApplyDirection(physics.Forward), shipVelocity))

	p := &Projectile{
		BasicEntity: ecs.NewBasic(),
		TransformComponent: TransformComponent{
			Transform: physics.Transform{
				Translation: position,
				Rotation:    origin.Rotation,
				Scale:       mgl64.Vec3{weapon.Radius, weapon.Radius, weapon.Radius},
			},
		},
		ModelComponent: ModelComponent{
			Model:          model,
			ColliderRadius: weapon.Radius,
		},
		BodyComponent:     BodyComponent{Body: body},
		LifetimeComponent: LifetimeComponent{Remaining: weapon.Lifetime},
		OwnerID:           ownerID,
		Weapon:            weapon.Name,
	}
	body.UserData = p.ID()
	return p
}
