// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// Zoom button names registered by RegisterBindings.
const (
	ButtonZoomIn    = "zoomIn"
	ButtonZoomOut   = "zoomOut"
	ButtonResetZoom = "resetZoom"
)

// DefaultRadarRange is the world distance from the radar center to the
// edge of the shorter screen axis.
const DefaultRadarRange = 250.0

// RadarView projects the world onto a top-down radar centered on the chase
// camera and turned with it, so the camera's forward points up the screen.
type RadarView struct {
	// Viewport is the screen size in pixels.
	Viewport engo.Point

	zoom    float64
	minZoom float64
	maxZoom float64
	rng     float64

	center  mgl64.Vec3
	right   mgl64.Vec3
	forward mgl64.Vec3
}

// NewRadarView creates a view of the given range over a viewport.
func NewRadarView(viewport engo.Point, rangeUnits float64) *RadarView {
	if rangeUnits <= 0 {
		rangeUnits = DefaultRadarRange
	}
	return &RadarView{
		Viewport: viewport,
		zoom:     1.0,
		minZoom:  0.1,
		maxZoom:  8.0,
		rng:      rangeUnits,
		right:    physics.Right,
		forward:  physics.Forward,
	}
}

// Aim centers the radar on the camera and aligns it with the camera's
// heading. Height differences are dropped.
func (v *RadarView) Aim(cam entity.Camera) {
	v.center = cam.Position
	forward := physics.NormalizeOrZero(cam.Target.Sub(cam.Position))
	up := physics.NormalizeOrZero(cam.Up)
	right := physics.NormalizeOrZero(forward.Cross(up))
	if forward == (mgl64.Vec3{}) || right == (mgl64.Vec3{}) {
		v.right, v.forward = physics.Right, physics.Forward
		return
	}
	v.right = right
	v.forward = forward
}

// Scale returns pixels per world unit.
func (v *RadarView) Scale() float64 {
	half := math.Min(float64(v.Viewport.X), float64(v.Viewport.Y)) / 2
	return half / v.rng * v.zoom
}

// WorldToScreen converts world coordinates to screen coordinates. ok is
// false when the point falls outside the viewport.
func (v *RadarView) WorldToScreen(p mgl64.Vec3) (engo.Point, bool) {
	rel := p.Sub(v.center)
	x := rel.Dot(v.right) * v.Scale()
	y := rel.Dot(v.forward) * v.Scale()

	screen := engo.Point{
		X: v.Viewport.X/2 + float32(x),
		Y: v.Viewport.Y/2 - float32(y),
	}
	ok := screen.X >= 0 && screen.Y >= 0 && screen.X <= v.Viewport.X && screen.Y <= v.Viewport.Y
	return screen, ok
}

// ScreenToWorld converts screen coordinates to a world point in the radar
// plane through the camera.
func (v *RadarView) ScreenToWorld(s engo.Point) mgl64.Vec3 {
	x := float64(s.X-v.Viewport.X/2) / v.Scale()
	y := float64(v.Viewport.Y/2-s.Y) / v.Scale()
	return v.center.Add(v.right.Mul(x)).Add(v.forward.Mul(y))
}

// Heading returns the clockwise screen rotation in degrees of something
// facing dir in the world.
func (v *RadarView) Heading(dir mgl64.Vec3) float32 {
	return float32(mgl64.RadToDeg(math.Atan2(dir.Dot(v.right), dir.Dot(v.forward))))
}

// SetZoom sets the zoom level
func (v *RadarView) SetZoom(zoom float64) {
	v.zoom = mgl64.Clamp(zoom, v.minZoom, v.maxZoom)
}

// Zoom returns the current zoom level
func (v *RadarView) Zoom() float64 {
	return v.zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (v *RadarView) SetZoomLimits(min, max float64) {
	v.minZoom = min
	v.maxZoom = max
	v.SetZoom(v.zoom)
}

// ZoomLimits returns the current zoom limits
func (v *RadarView) ZoomLimits() (float64, float64) {
	return v.minZoom, v.maxZoom
}

// ZoomSystem changes the radar zoom from the mouse wheel and zoom keys.
type ZoomSystem struct {
	view *RadarView
}

// NewZoomSystem creates a zoom system for view
func NewZoomSystem(view *RadarView) *ZoomSystem {
	return &ZoomSystem{view: view}
}

// Remove satisfies the ecs.System interface
func (zs *ZoomSystem) Remove(basic ecs.BasicEntity) {}

// Update applies this frame's zoom input
func (zs *ZoomSystem) Update(dt float32) {
	// Mouse wheel zoom
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		zs.view.SetZoom(zs.view.Zoom() * (1.0 + float64(scrollY)*0.1))
	}

	// Keyboard zoom
	if engo.Input.Button(ButtonZoomIn).Down() {
		zs.view.SetZoom(zs.view.Zoom() * 1.02)
	}
	if engo.Input.Button(ButtonZoomOut).Down() {
		zs.view.SetZoom(zs.view.Zoom() * 0.98)
	}
	if engo.Input.Button(ButtonResetZoom).JustPressed() {
		zs.view.SetZoom(1.0)
	}
}
