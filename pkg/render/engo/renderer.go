// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// Blip sizes in pixels.
const (
	minBlipSize  = 3
	maxBlipSize  = 64
	shipBlipSize = 16
)

// Blip is one sprite on the radar.
type Blip struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// RadarRenderer implements render.Renderer as a top-down radar of engo
// sprites. Blips are pooled and reused from frame to frame; unused ones are
// hidden.
type RadarRenderer struct {
	renderSystem *common.RenderSystem
	assets       *AssetManager
	view         *RadarView
	hud          *HUD

	blips []*Blip
	used  int
}

// NewRadarRenderer creates a radar drawing into renderSystem. renderSystem,
// assets and hud may be nil, in which case blips are laid out but never
// shown.
func NewRadarRenderer(renderSystem *common.RenderSystem, assets *AssetManager, view *RadarView, hud *HUD) *RadarRenderer {
	return &RadarRenderer{
		renderSystem: renderSystem,
		assets:       assets,
		view:         view,
		hud:          hud,
	}
}

// Begin implements render.Renderer.
func (r *RadarRenderer) Begin(cam entity.Camera) {
	r.view.Aim(cam)
	r.used = 0
}

// DrawModel implements render.Renderer.
func (r *RadarRenderer) DrawModel(t physics.Transform, model *mesh.Model, kind entity.Kind) {
	pos, ok := r.view.WorldToScreen(t.Translation)
	if !ok {
		return
	}

	size := float32(shipBlipSize)
	if kind != entity.KindShip {
		size = r.blipSize(modelRadius(model) * maxScale(t.Scale))
	}
	r.place(kind, pos, size, r.view.Heading(t.ApplyDirection(physics.Forward)), KindColor(kind))
}

// DrawCollider implements render.Renderer.
func (r *RadarRenderer) DrawCollider(center mgl64.Vec3, radius float64) {
	pos, ok := r.view.WorldToScreen(center)
	if !ok {
		return
	}
	r.place(spriteRing, pos, r.blipSize(radius), 0, KindColor(spriteRing))
}

// DrawText implements render.Renderer.
func (r *RadarRenderer) DrawText(lines []string) {
	if r.hud != nil {
		r.hud.SetLines(lines)
	}
}

// End implements render.Renderer.
func (r *RadarRenderer) End() error {
	for _, b := range r.blips[r.used:] {
		b.Hidden = true
	}
	return nil
}

// Visible returns the blips drawn this frame.
func (r *RadarRenderer) Visible() []*Blip {
	return r.blips[:r.used]
}

// blipSize converts a world radius into a clamped sprite size.
func (r *RadarRenderer) blipSize(radius float64) float32 {
	size := float32(2 * radius * r.view.Scale())
	if size < minBlipSize {
		return minBlipSize
	}
	if size > maxBlipSize {
		return maxBlipSize
	}
	return size
}

// place centers the next pooled blip on pos.
func (r *RadarRenderer) place(kind entity.Kind, pos engo.Point, size, rotation float32, tint color.Color) {
	b := r.nextBlip()
	b.Drawable = r.assets.Sprite(kind)
	b.Color = tint
	b.Hidden = b.Drawable == nil
	if b.Drawable != nil {
		b.Scale = engo.Point{X: size / b.Drawable.Width(), Y: size / b.Drawable.Height()}
	}
	b.Width, b.Height = size, size
	b.Rotation = rotation
	b.SetCenter(pos)
}

// nextBlip returns the next unused blip, creating it on first use.
func (r *RadarRenderer) nextBlip() *Blip {
	if r.used < len(r.blips) {
		b := r.blips[r.used]
		r.used++
		return b
	}

	b := &Blip{BasicEntity: ecs.NewBasic()}
	if r.renderSystem != nil {
		r.renderSystem.Add(&b.BasicEntity, &b.RenderComponent, &b.SpaceComponent)
	}
	r.blips = append(r.blips, b)
	r.used++
	return b
}

func modelRadius(model *mesh.Model) float64 {
	if model == nil {
		return 0
	}
	r := 0.0
	for _, m := range model.Meshes {
		if mr := m.Radius(); mr > r {
			r = mr
		}
	}
	return r
}

func maxScale(s mgl64.Vec3) float64 {
	return max(s[0], s[1], s[2])
}
