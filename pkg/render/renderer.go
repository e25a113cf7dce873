// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/logging"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// Renderer draws one frame at a time. Calls between Begin and End belong
// to the same frame.
type Renderer interface {
	Begin(cam entity.Camera)
	DrawModel(t physics.Transform, model *mesh.Model, kind entity.Kind)
	DrawCollider(center mgl64.Vec3, radius float64)
	DrawText(lines []string)
	End() error
}

// NullRenderer draws nothing and logs each call at debug level.
type NullRenderer struct {
	logger *logging.Logger

	Frames    int
	Models    int
	Colliders int
	Text      []string
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger.WithComponent("null_renderer")}
}

// Begin implements Renderer.
func (d *NullRenderer) Begin(cam entity.Camera) {
	d.Models, d.Colliders, d.Text = 0, 0, nil
	d.logger.Debug(context.Background(), "Begin called", "camera", cam.Position)
}

// DrawModel implements Renderer.
func (d *NullRenderer) DrawModel(t physics.Transform, model *mesh.Model, kind entity.Kind) {
	d.Models++
	name := ""
	if model != nil {
		name = model.Name
	}
	d.logger.Debug(context.Background(), "DrawModel called",
		"kind", kind,
		"model", name,
		"position", t.Translation,
	)
}

// DrawCollider implements Renderer.
func (d *NullRenderer) DrawCollider(center mgl64.Vec3, radius float64) {
	d.Colliders++
	d.logger.Debug(context.Background(), "DrawCollider called", "center", center, "radius", radius)
}

// DrawText implements Renderer.
func (d *NullRenderer) DrawText(lines []string) {
	d.Text = append(d.Text, lines...)
}

// End implements Renderer.
func (d *NullRenderer) End() error {
	d.Frames++
	d.logger.Debug(context.Background(), "End called", "models", d.Models, "colliders", d.Colliders)
	return nil
}
