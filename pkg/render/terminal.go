package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

var (
	styleShip       = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleAsteroid   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCollider   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// TerminalRenderer projects the scene onto a tcell screen as points.
// Nearer points overwrite farther ones.
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int

	viewProj mgl64.Mat4
	right    mgl64.Vec3
	up       mgl64.Vec3
	depth    []float64
}

// NewTerminalRenderer creates a renderer drawing to an initialized screen.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// Begin implements Renderer.
func (r *TerminalRenderer) Begin(cam entity.Camera) {
	r.width, r.height = r.screen.Size()
	r.screen.Clear()

	aspect := 1.0
	if r.height > 0 {
		aspect = float64(r.width) / (float64(r.height) * CellAspect)
	}
	r.viewProj = cam.Projection(aspect).Mul4(cam.View())

	forward := physics.NormalizeOrZero(cam.Target.Sub(cam.Position))
	r.right = physics.NormalizeOrZero(forward.Cross(cam.Up))
	r.up = physics.NormalizeOrZero(r.right.Cross(forward))

	n := r.width * r.height
	if cap(r.depth) < n {
		r.depth = make([]float64, n)
	}
	r.depth = r.depth[:n]
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
}

// Project maps a world point to a screen cell. ok is false for points
// behind the camera or off screen. depth is the clip-space w, which grows
// with distance.
func (r *TerminalRenderer) Project(p mgl64.Vec3) (x, y int, depth float64, ok bool) {
	clip := r.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= physics.Epsilon {
		return 0, 0, 0, false
	}
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
	if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 {
		return 0, 0, 0, false
	}
	x = int((ndcX + 1) / 2 * float64(r.width))
	y = int((1 - ndcY) / 2 * float64(r.height))
	if x >= r.width {
		x = r.width - 1
	}
	if y >= r.height {
		y = r.height - 1
	}
	return x, y, clip.W(), true
}

func (r *TerminalRenderer) plot(p mgl64.Vec3, glyph rune, style tcell.Style) {
	x, y, depth, ok := r.Project(p)
	if !ok {
		return
	}
	i := y*r.width + x
	if depth >= r.depth[i] {
		return
	}
	r.depth[i] = depth
	r.screen.SetContent(x, y, glyph, nil, style)
}

// DrawModel implements Renderer. Vertices are plotted as dots and the
// origin as a glyph chosen by kind.
func (r *TerminalRenderer) DrawModel(t physics.Transform, model *mesh.Model, kind entity.Kind) {
	glyph, style := glyphFor(kind)
	if model != nil && kind != entity.KindProjectile {
		for _, m := range model.Meshes {
			for _, v := range m.Vertices {
				r.plot(t.Apply(v), '.', style)
			}
		}
	}
	r.plot(t.Translation, glyph, style)
}

func glyphFor(kind entity.Kind) (rune, tcell.Style) {
	switch kind {
	case entity.KindShip:
		return 'A', styleShip
	case entity.KindProjectile:
		return '*', styleProjectile
	case entity.KindAsteroid:
		return '@', styleAsteroid
	default:
		return '+', tcell.StyleDefault
	}
}

// colliderSegments is the number of points on a debug circle.
const colliderSegments = 24

// DrawCollider implements Renderer. The sphere is drawn as a circle facing
// the camera.
func (r *TerminalRenderer) DrawCollider(center mgl64.Vec3, radius float64) {
	for i := 0; i < colliderSegments; i++ {
		a := 2 * math.Pi * float64(i) / colliderSegments
		offset := r.right.Mul(math.Cos(a) * radius).Add(r.up.Mul(math.Sin(a) * radius))
		r.plot(center.Add(offset), 'o', styleCollider)
	}
}

// DrawText implements Renderer. Lines are written top-left and clipped to
// the screen width.
func (r *TerminalRenderer) DrawText(lines []string) {
	for y, line := range lines {
		if y >= r.height {
			return
		}
		x := 0
		for _, c := range line {
			if x >= r.width {
				break
			}
			r.screen.SetContent(x, y, c, nil, styleText)
			x++
		}
	}
}

// End implements Renderer.
func (r *TerminalRenderer) End() error {
	r.screen.Show()
	return nil
}
