// pkg/entity/entity.go
package entity

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/flight"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// Kind names what an entity is.
type Kind string

// Entity kinds
const (
	KindShip       Kind = "ship"
	KindAsteroid   Kind = "asteroid"
	KindProjectile Kind = "projectile"
)

// Entity is the base interface for all game objects
type Entity interface {
	ecs.BasicFace
	ecs.Identifier
	TransformFace
	Kind() Kind
}

// TransformComponent holds the render-facing placement of an entity.
// Simulation code copies into it once per frame; it is never read back
// into physics.
type TransformComponent struct {
	Transform physics.Transform
}

// GetTransformComponent returns the component itself
func (c *TransformComponent) GetTransformComponent() *TransformComponent { return c }

// Position returns the translation part of the transform
func (c *TransformComponent) Position() mgl64.Vec3 { return c.Transform.Translation }

// Forward returns the entity's nose direction in world space
func (c *TransformComponent) Forward() mgl64.Vec3 {
	return c.Transform.ApplyDirection(physics.Forward)
}

// TransformFace is implemented by entities with a TransformComponent
type TransformFace interface {
	GetTransformComponent() *TransformComponent
}

// ModelComponent links an entity to its mesh and the debug collider drawn
// around it.
type ModelComponent struct {
	Model *mesh.Model
	// ColliderRadius is the debug sphere radius in world units.
	// ColliderOffset is rotated with the entity but not scaled. A zero
	// radius draws nothing.
	ColliderRadius float64
	ColliderOffset mgl64.Vec3
}

// GetModelComponent returns the component itself
func (c *ModelComponent) GetModelComponent() *ModelComponent { return c }

// ModelFace is implemented by entities with a ModelComponent
type ModelFace interface {
	GetModelComponent() *ModelComponent
}

// BodyComponent links an entity to its rigid body.
type BodyComponent struct {
	Body *physics.RigidBody
}

// GetBodyComponent returns the component itself
func (c *BodyComponent) GetBodyComponent() *BodyComponent { return c }

// SyncBody copies a body's translation and rotation into t.
func SyncBody(t *TransformComponent, b *BodyComponent) {
	wt := b.Body.WorldTransform()
	t.Transform.Translation = wt.Translation
	t.Transform.Rotation = wt.Rotation
}

// BodyFace is implemented by entities driven by a rigid body
type BodyFace interface {
	GetBodyComponent() *BodyComponent
}

// ShipComponent carries the per-frame input and flight action of a ship.
type ShipComponent struct {
	Class   ShipClass
	Input   flight.ShipInput
	Action  *flight.Action
	Weapons []*Weapon
	// LastFired maps weapon names to the simulation time they last fired.
	LastFired map[string]time.Duration
}

// GetShipComponent returns the component itself
func (c *ShipComponent) GetShipComponent() *ShipComponent { return c }

// ShipFace is implemented by flyable ships
type ShipFace interface {
	GetShipComponent() *ShipComponent
}

// LifetimeComponent counts down until the entity expires.
type LifetimeComponent struct {
	Remaining time.Duration
}

// GetLifetimeComponent returns the component itself
func (c *LifetimeComponent) GetLifetimeComponent() *LifetimeComponent { return c }

// Tick subtracts dt and reports whether the lifetime has run out.
func (c *LifetimeComponent) Tick(dt time.Duration) bool {
	c.Remaining -= dt
	return c.Remaining <= 0
}

// LifetimeFace is implemented by entities that expire
type LifetimeFace interface {
	GetLifetimeComponent() *LifetimeComponent
}

// Renderable is an entity the render system can draw
type Renderable interface {
	ecs.BasicFace
	ecs.Identifier
	TransformFace
	ModelFace
}

// Flyable is an entity controlled through a flight action
type Flyable interface {
	ecs.BasicFace
	ecs.Identifier
	TransformFace
	ShipFace
}

// Simulated is an entity whose transform follows a rigid body
type Simulated interface {
	ecs.BasicFace
	ecs.Identifier
	TransformFace
	BodyFace
}

// Expiring is an entity with a limited lifetime
type Expiring interface {
	ecs.BasicFace
	ecs.Identifier
	LifetimeFace
}
