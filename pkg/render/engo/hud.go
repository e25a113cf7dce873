// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// HUD layout in pixels.
const (
	hudMarginX    = 10
	hudMarginY    = 10
	hudLineHeight = 18
	hudZIndex     = 10
)

// hudLine is one text entity of the heads-up display.
type hudLine struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUD shows status text in the top-left corner. Text entities are created
// on demand and hidden when fewer lines are shown.
type HUD struct {
	renderSystem *common.RenderSystem
	font         *common.Font
	color        color.Color

	lines    []string
	entities []*hudLine
}

// NewHUD creates a HUD drawing with font into renderSystem. Either may be
// nil; the HUD then only keeps the text.
func NewHUD(renderSystem *common.RenderSystem, font *common.Font) *HUD {
	return &HUD{
		renderSystem: renderSystem,
		font:         font,
		color:        color.RGBA{255, 255, 255, 255},
	}
}

// SetLines replaces the displayed text.
func (hud *HUD) SetLines(lines []string) {
	hud.lines = append(hud.lines[:0], lines...)

	for i, text := range hud.lines {
		e := hud.line(i)
		if hud.font == nil {
			continue
		}
		e.Drawable = common.Text{Font: hud.font, Text: text}
		e.Hidden = false
	}
	for _, e := range hud.entities[len(hud.lines):] {
		e.Hidden = true
	}
}

// Lines returns the text currently displayed.
func (hud *HUD) Lines() []string {
	return hud.lines
}

// line returns the entity for line i, creating it on first use.
func (hud *HUD) line(i int) *hudLine {
	for len(hud.entities) <= i {
		n := len(hud.entities)
		e := &hudLine{BasicEntity: ecs.NewBasic()}
		e.Color = hud.color
		e.Hidden = true
		e.Position = engo.Point{X: hudMarginX, Y: hudMarginY + float32(n*hudLineHeight)}
		e.Height = hudLineHeight
		if hud.renderSystem != nil {
			e.SetZIndex(hudZIndex)
			hud.renderSystem.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
		}
		hud.entities = append(hud.entities, e)
	}
	return hud.entities[i]
}
