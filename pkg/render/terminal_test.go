package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/input"
	"github.com/opd-ai/go-flight/pkg/physics"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func lookAtOrigin() entity.Camera {
	cam := entity.NewCamera()
	cam.Position = mgl64.Vec3{0, 0, -10}
	cam.Target = mgl64.Vec3{}
	return cam
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestTerminalRenderer_Project(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)
	r.Begin(lookAtOrigin())

	tests := []struct {
		name  string
		point mgl64.Vec3
		ok    bool
		x, y  int
	}{
		{"center", mgl64.Vec3{}, true, 40, 12},
		{"behind_camera", mgl64.Vec3{0, 0, -20}, false, 0, 0},
		{"far_off_screen", mgl64.Vec3{1000, 0, 0}, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, _, ok := r.Project(tt.point)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.x, x)
				assert.Equal(t, tt.y, y)
			}
		})
	}

	_, upY, _, ok := r.Project(mgl64.Vec3{0, 2, 0})
	require.True(t, ok)
	assert.Less(t, upY, 12, "world up is screen up")
}

func TestTerminalRenderer_DepthOrdering(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	r.Begin(lookAtOrigin())
	r.DrawModel(physics.IdentityTransform(), nil, entity.KindShip)
	r.DrawModel(physics.NewTransform(mgl64.Vec3{0, 0, 50}, mgl64.QuatIdent()), nil, entity.KindAsteroid)
	require.NoError(t, r.End())
	assert.Equal(t, 'A', runeAt(screen, 40, 12), "nearer ship stays in front")

	r.Begin(lookAtOrigin())
	r.DrawModel(physics.NewTransform(mgl64.Vec3{0, 0, 50}, mgl64.QuatIdent()), nil, entity.KindAsteroid)
	r.DrawModel(physics.NewTransform(mgl64.Vec3{0, 0, -5}, mgl64.QuatIdent()), nil, entity.KindProjectile)
	require.NoError(t, r.End())
	assert.Equal(t, '*', runeAt(screen, 40, 12), "nearer projectile overwrites")
}

func TestTerminalRenderer_TextAndColliders(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	r := NewTerminalRenderer(screen)

	r.Begin(lookAtOrigin())
	r.DrawCollider(mgl64.Vec3{}, 2)
	r.DrawText([]string{"speed 12.5 and a very long tail", "hits 3"})
	require.NoError(t, r.End())

	assert.Equal(t, 's', runeAt(screen, 0, 0))
	assert.Equal(t, 'h', runeAt(screen, 0, 1))

	found := false
	for y := 2; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if runeAt(screen, x, y) == 'o' {
				found = true
			}
		}
	}
	assert.True(t, found, "collider ring is visible")
}

func TestTerminalDevice_KeysHoldAndExpire(t *testing.T) {
	d := NewTerminalDevice(100 * time.Millisecond)
	start := time.Unix(0, 0)

	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), start)
	d.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), start)
	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), start)

	assert.True(t, d.Down(input.ThrustForward))
	assert.True(t, d.JustPressed(input.ThrustForward))
	assert.True(t, d.Down(input.PitchDown), "up arrow pushes the nose down")

	d.EndFrame()
	d.Expire(start.Add(50 * time.Millisecond))
	assert.True(t, d.Down(input.ThrustForward))
	assert.False(t, d.JustPressed(input.ThrustForward))

	// auto-repeat keeps the key alive without a new edge
	d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), start.Add(90*time.Millisecond))
	assert.False(t, d.JustPressed(input.ThrustForward))

	d.Expire(start.Add(150 * time.Millisecond))
	assert.True(t, d.Down(input.ThrustForward))
	assert.False(t, d.Down(input.PitchDown))

	d.Expire(start.Add(time.Second))
	assert.False(t, d.Down(input.ThrustForward))
}

func TestTerminalDevice_Mouse(t *testing.T) {
	d := NewTerminalDevice(0)
	now := time.Unix(0, 0)

	d.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone), now)
	dx, dy := d.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	d.HandleEvent(tcell.NewEventMouse(13, 3, tcell.Button1, tcell.ModNone), now)
	dx, dy = d.MouseDelta()
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, -2.0, dy)
	assert.True(t, d.JustPressed(input.FirePrimary))

	d.EndFrame()
	d.HandleEvent(tcell.NewEventMouse(13, 3, tcell.Button1, tcell.ModNone), now)
	assert.False(t, d.JustPressed(input.FirePrimary), "held button does not refire")

	in := input.NewMapper().Map(d)
	assert.False(t, in.Firing())
}
