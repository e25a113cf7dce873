// pkg/entity/asteroid.go
package entity

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// AsteroidConfig sizes an asteroid. The model is expected at unit radius.
type AsteroidConfig struct {
	Mass            float64
	RenderScale     float64
	CollisionRadius float64
}

// DefaultAsteroidConfig returns the stock asteroid size.
func DefaultAsteroidConfig() AsteroidConfig {
	return AsteroidConfig{
		Mass:            50,
		RenderScale:     10,
		CollisionRadius: 7.5,
	}
}

// Asteroid is a drifting rock simulated by a rigid body
type Asteroid struct {
	ecs.BasicEntity
	TransformComponent
	ModelComponent
	BodyComponent
}

// Kind returns KindAsteroid
func (a *Asteroid) Kind() Kind { return KindAsteroid }

// NewAsteroid creates an asteroid and registers its body with world. The
// collision hull is built from model's vertices scaled to the collision
// radius; model must hold exactly one mesh.
func NewAsteroid(world *physics.World, model *mesh.Model, position mgl64.Vec3, orientation mgl64.Quat, cfg AsteroidConfig) *Asteroid {
	hull := mesh.ConvexShape(model, cfg.CollisionRadius)
	body := world.CreateDynamicBody(position, orientation, cfg.Mass, hull)

	a := &Asteroid{
		BasicEntity: ecs.NewBasic(),
		TransformComponent: TransformComponent{
			Transform: physics.Transform{
				Translation: position,
				Rotation:    orientation,
				Scale:       mgl64.Vec3{cfg.RenderScale, cfg.RenderScale, cfg.RenderScale},
			},
		},
		ModelComponent: ModelComponent{
			Model:          model,
			ColliderRadius: hull.BoundingRadius(),
		},
		BodyComponent: BodyComponent{Body: body},
	}
	body.UserData = a.ID()
	return a
}
