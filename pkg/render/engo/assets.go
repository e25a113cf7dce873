// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-flight/pkg/entity"
)

// HUDFontURL is the name the embedded HUD font is registered under.
const HUDFontURL = "goregular.ttf"

// spriteRing is the sprite key for debug collider circles.
const spriteRing entity.Kind = "collider"

// AssetManager handles loading and managing game assets
type AssetManager struct {
	// Radar blip sprites by entity kind
	sprites map[entity.Kind]common.Drawable

	font *common.Font
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[entity.Kind]common.Drawable),
	}
}

// LoadAssets builds every sprite and the HUD font. It needs a GL context.
func (am *AssetManager) LoadAssets() error {
	for kind, pattern := range SpritePatterns() {
		am.sprites[kind] = am.createSprite(pattern)
	}
	return am.loadFont()
}

// loadFont registers the embedded Go font with engo.
func (am *AssetManager) loadFont() error {
	if err := engo.Files.LoadReaderData(HUDFontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	font := &common.Font{
		URL:  HUDFontURL,
		FG:   color.White,
		Size: 14,
	}
	if err := font.CreatePreloaded(); err != nil {
		return fmt.Errorf("failed to create HUD font: %w", err)
	}
	am.font = font
	return nil
}

// SpritePatterns returns the pixel pattern of every sprite. Ones are drawn
// white and tinted per entity by the render component.
func SpritePatterns() map[entity.Kind][][]int {
	return map[entity.Kind][][]int{
		// Ship: arrow pointing up the radar
		entity.KindShip: {
			{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
			{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
			{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
			{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
			{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
			{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
			{0, 1, 1, 1, 1, 1, 0, 1, 1, 0, 1, 1, 1, 1, 1, 0},
			{0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 1, 1, 0},
			{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
			{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1},
			{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
		},
		entity.KindAsteroid: circlePattern(12, false),
		// Projectile: small dot
		entity.KindProjectile: {
			{0, 1, 1, 0},
			{1, 1, 1, 1},
			{1, 1, 1, 1},
			{0, 1, 1, 0},
		},
		spriteRing: circlePattern(32, true),
	}
}

// circlePattern draws a disc, or just its outline when hollow.
func circlePattern(size int, hollow bool) [][]int {
	pattern := make([][]int, size)
	r := float64(size) / 2
	for y := range pattern {
		pattern[y] = make([]int, size)
		for x := range pattern[y] {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			d2 := dx*dx + dy*dy
			inside := d2 <= r*r
			if hollow {
				inside = inside && d2 >= (r-1.5)*(r-1.5)
			}
			if inside {
				pattern[y][x] = 1
			}
		}
	}
	return pattern
}

// createSprite creates a texture from a 2D pattern
func (am *AssetManager) createSprite(pattern [][]int) common.Drawable {
	img := PatternImage(pattern)
	return common.NewTextureSingle(common.NewImageObject(img))
}

// PatternImage renders a pattern into a transparent image with white
// pixels where the pattern holds ones.
func PatternImage(pattern [][]int) *image.NRGBA {
	height := len(pattern)
	width := 0
	if height > 0 {
		width = len(pattern[0])
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	for y, row := range pattern {
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// Sprite returns the sprite for an entity kind, nil before LoadAssets or
// for unknown kinds.
func (am *AssetManager) Sprite(kind entity.Kind) common.Drawable {
	if am == nil {
		return nil
	}
	return am.sprites[kind]
}

// Font returns the HUD font, nil before LoadAssets.
func (am *AssetManager) Font() *common.Font {
	if am == nil {
		return nil
	}
	return am.font
}

// KindColor returns the radar tint of an entity kind.
func KindColor(kind entity.Kind) color.Color {
	switch kind {
	case entity.KindShip:
		return color.RGBA{0, 255, 0, 255}
	case entity.KindAsteroid:
		return color.RGBA{170, 150, 130, 255}
	case entity.KindProjectile:
		return color.RGBA{255, 255, 0, 255}
	case spriteRing:
		return color.RGBA{255, 0, 0, 160}
	default:
		return color.RGBA{128, 128, 128, 255}
	}
}
