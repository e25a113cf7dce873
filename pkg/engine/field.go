// pkg/engine/field.go
package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/config"
	"github.com/opd-ai/go-flight/pkg/logging"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// maxPlacementAttempts bounds rejection sampling around the clear radius.
const maxPlacementAttempts = 64

// loadRockModels returns the rock meshes the field draws from: OBJ files
// when paths are configured, procedural rocks otherwise.
func loadRockModels(field config.FieldConfig, rng *physics.Random) ([]*mesh.Model, error) {
	if len(field.ModelPaths) > 0 {
		models := make([]*mesh.Model, 0, len(field.ModelPaths))
		for _, path := range field.ModelPaths {
			m, err := mesh.LoadOBJFile(path)
			if err != nil {
				return nil, logging.WrapError(err, "failed to load rock model", "path", path)
			}
			models = append(models, m)
		}
		return models, nil
	}

	models := make([]*mesh.Model, field.Models)
	for i := range models {
		models[i] = mesh.NewModel(fmt.Sprintf("rock-%d", i), mesh.NewRock(rng, field.Subdivisions, field.Jitter))
	}
	return models, nil
}

// placeAsteroids picks a transform for every asteroid. Positions fall in
// the cube of half size Extent and outside ClearRadius of the origin; a
// position that keeps landing inside the clear zone is pushed out to its
// edge.
func placeAsteroids(field config.FieldConfig, rng *physics.Random) []physics.Transform {
	placements := make([]physics.Transform, 0, field.Asteroids)
	for i := 0; i < field.Asteroids; i++ {
		pos := rng.Vec3InBox(-field.Extent, field.Extent)
		for attempt := 0; pos.Len() < field.ClearRadius && attempt < maxPlacementAttempts; attempt++ {
			pos = rng.Vec3InBox(-field.Extent, field.Extent)
		}
		if pos.Len() < field.ClearRadius {
			pos = physics.NormalizeOrZero(pos).Mul(field.ClearRadius)
			if pos == (mgl64.Vec3{}) {
				pos = mgl64.Vec3{0, 0, field.ClearRadius}
			}
		}
		placements = append(placements, physics.NewTransform(pos, rng.Orientation(180)))
	}
	return placements
}
