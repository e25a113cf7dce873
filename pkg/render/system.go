package render

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/logging"
)

// PriorityRender runs the render system after every simulation system.
const PriorityRender = -100

// Scene is what the render system reads from the game once per frame.
type Scene interface {
	Camera() entity.Camera
	ShowColliders() bool
	Status() []string
}

// System draws every entity that has a transform and a model.
type System struct {
	renderer Renderer
	scene    Scene
	logger   *logging.Logger
	entities []entity.Renderable
}

// NewSystem creates a render system drawing scene through renderer.
func NewSystem(renderer Renderer, scene Scene, logger *logging.Logger) *System {
	if logger == nil {
		logger = logging.Discard()
	}
	return &System{
		renderer: renderer,
		scene:    scene,
		logger:   logger.WithComponent("render"),
	}
}

// Add registers an entity for drawing.
func (s *System) Add(e entity.Renderable) {
	s.entities = append(s.entities, e)
}

// AddByInterface satisfies ecs.SystemAddByInterfacer.
func (s *System) AddByInterface(o ecs.Identifier) {
	s.Add(o.(entity.Renderable))
}

// Remove satisfies the ecs.System interface
func (s *System) Remove(basic ecs.BasicEntity) {
	for i, e := range s.entities {
		if e.ID() == basic.ID() {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return
		}
	}
}

// Priority satisfies ecs.Prioritizer.
func (s *System) Priority() int { return PriorityRender }

// Len returns the number of entities drawn each frame.
func (s *System) Len() int { return len(s.entities) }

// Update draws one frame.
func (s *System) Update(dt float32) {
	s.renderer.Begin(s.scene.Camera())

	showColliders := s.scene.ShowColliders()
	for _, e := range s.entities {
		t := e.GetTransformComponent().Transform
		m := e.GetModelComponent()
		kind := entity.Kind("")
		if k, ok := e.(interface{ Kind() entity.Kind }); ok {
			kind = k.Kind()
		}
		s.renderer.DrawModel(t, m.Model, kind)

		if showColliders && m.ColliderRadius > 0 {
			center := t.Translation.Add(t.Rotation.Rotate(m.ColliderOffset))
			s.renderer.DrawCollider(center, m.ColliderRadius)
		}
	}

	s.renderer.DrawText(s.scene.Status())

	if err := s.renderer.End(); err != nil {
		s.logger.Error(context.Background(), "frame presentation failed", err)
	}
}
