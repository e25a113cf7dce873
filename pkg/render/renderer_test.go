// pkg/render/renderer_test.go
package render

import (
	"errors"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

type stubScene struct {
	cam       entity.Camera
	colliders bool
	status    []string
}

func (s *stubScene) Camera() entity.Camera { return s.cam }
func (s *stubScene) ShowColliders() bool   { return s.colliders }
func (s *stubScene) Status() []string      { return s.status }

type failingRenderer struct {
	NullRenderer
}

func (f *failingRenderer) End() error { return errors.New("screen gone") }

func newRock(world *physics.World, pos mgl64.Vec3) *entity.Asteroid {
	model := mesh.NewModel("rock", mesh.NewRock(physics.NewRandom(3), 0, 0.1))
	return entity.NewAsteroid(world, model, pos, mgl64.QuatIdent(), entity.DefaultAsteroidConfig())
}

func TestNullRenderer_CountsCalls(t *testing.T) {
	r := NewNullRenderer(nil)

	r.Begin(entity.NewCamera())
	r.DrawModel(physics.IdentityTransform(), nil, entity.KindShip)
	r.DrawModel(physics.IdentityTransform(), mesh.NewModel("m"), entity.KindAsteroid)
	r.DrawCollider(mgl64.Vec3{}, 1)
	r.DrawText([]string{"hello"})
	require.NoError(t, r.End())

	assert.Equal(t, 1, r.Frames)
	assert.Equal(t, 2, r.Models)
	assert.Equal(t, 1, r.Colliders)
	assert.Equal(t, []string{"hello"}, r.Text)

	r.Begin(entity.NewCamera())
	assert.Zero(t, r.Models, "Begin resets per-frame counters")
}

func TestSystem_DrawsRenderableEntities(t *testing.T) {
	world := physics.NewWorld(physics.DefaultWorldConfig())
	ship := entity.NewShip(world, mesh.NewModel("ship", mesh.NewShip()), entity.Scout, entity.Scout.Handling())
	rock := newRock(world, mgl64.Vec3{0, 0, 50})

	scene := &stubScene{cam: entity.NewCamera(), status: []string{"speed 0"}}
	r := NewNullRenderer(nil)
	sys := NewSystem(r, scene, nil)
	sys.Add(ship)
	sys.Add(rock)

	sys.Update(1.0 / 60)
	assert.Equal(t, 1, r.Frames)
	assert.Equal(t, 2, r.Models)
	assert.Zero(t, r.Colliders)
	assert.Equal(t, []string{"speed 0"}, r.Text)

	scene.colliders = true
	sys.Update(1.0 / 60)
	assert.Equal(t, 2, r.Colliders)

	sys.Remove(rock.BasicEntity)
	sys.Update(1.0 / 60)
	assert.Equal(t, 1, sys.Len())
	assert.Equal(t, 1, r.Models)
}

func TestSystem_RegistersThroughECSWorld(t *testing.T) {
	world := physics.NewWorld(physics.DefaultWorldConfig())
	r := NewNullRenderer(nil)
	sys := NewSystem(r, &stubScene{cam: entity.NewCamera()}, nil)

	var ecsWorld ecs.World
	var renderable *entity.Renderable
	ecsWorld.AddSystemInterface(sys, renderable, nil)

	rock := newRock(world, mgl64.Vec3{})
	ecsWorld.AddEntity(rock)
	assert.Equal(t, 1, sys.Len())

	ecsWorld.Update(1.0 / 60)
	assert.Equal(t, 1, r.Frames)

	ecsWorld.RemoveEntity(rock.BasicEntity)
	assert.Zero(t, sys.Len())
}

func TestSystem_EndErrorIsLogged(t *testing.T) {
	r := &failingRenderer{NullRenderer: *NewNullRenderer(nil)}
	sys := NewSystem(r, &stubScene{cam: entity.NewCamera()}, nil)

	assert.NotPanics(t, func() { sys.Update(0) })
}

func TestSystem_ColliderFollowsOffset(t *testing.T) {
	rec := &recordingRenderer{NullRenderer: *NewNullRenderer(nil)}
	world := physics.NewWorld(physics.DefaultWorldConfig())
	ship := entity.NewShip(world, nil, entity.Scout, entity.Scout.Handling())

	sys := NewSystem(rec, &stubScene{cam: entity.NewCamera(), colliders: true}, nil)
	sys.Add(ship)
	sys.Update(0)

	require.Len(t, rec.colliders, 1)
	assert.Equal(t, ship.ColliderOffset, rec.colliders[0])
	assert.Equal(t, entity.KindShip, rec.kinds[0])
}

type recordingRenderer struct {
	NullRenderer
	colliders []mgl64.Vec3
	kinds     []entity.Kind
}

func (r *recordingRenderer) DrawModel(_ physics.Transform, _ *mesh.Model, kind entity.Kind) {
	r.kinds = append(r.kinds, kind)
}

func (r *recordingRenderer) DrawCollider(center mgl64.Vec3, _ float64) {
	r.colliders = append(r.colliders, center)
}
