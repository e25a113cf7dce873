// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-flight/pkg/input"
)

// Bindings maps logical buttons to the keys that drive them.
var Bindings = map[input.Button][]engo.Key{
	input.ThrustForward:  {engo.KeyW},
	input.ThrustBackward: {engo.KeyS},
	input.YawLeft:        {engo.KeyA},
	input.YawRight:       {engo.KeyD},
	input.StrafeLeft:     {engo.KeyQ},
	input.StrafeRight:    {engo.KeyE},
	input.StrafeUp:       {engo.KeyR},
	input.StrafeDown:     {engo.KeyF},
	input.PitchUp:        {engo.KeyArrowDown},
	input.PitchDown:      {engo.KeyArrowUp},
	input.RollLeft:       {engo.KeyArrowLeft},
	input.RollRight:      {engo.KeyArrowRight},
	input.FirePrimary:    {engo.KeySpace},
	input.FireAlternate:  {engo.KeyX},
	input.ToggleDebug:    {engo.KeyF1, engo.KeyOne},
	input.Quit:           {engo.KeyEscape},
}

// RegisterBindings sets up the key bindings for the game
func RegisterBindings() {
	for button, keys := range Bindings {
		engo.Input.RegisterButton(string(button), keys...)
	}

	// Radar zoom
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyPageUp)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyPageDown)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyHome)
}

// Device implements input.Device over engo's global input state. Mouse
// buttons fire the weapons.
type Device struct {
	lastX, lastY float32
	tracking     bool
	dx, dy       float64
	mouseFire    map[input.Button]bool
}

// NewDevice creates an engo input device
func NewDevice() *Device {
	return &Device{mouseFire: make(map[input.Button]bool)}
}

// Poll samples the mouse once per frame. Call it before the game's systems
// read the device.
func (d *Device) Poll() {
	m := engo.Input.Mouse
	if d.tracking {
		d.dx = float64(m.X - d.lastX)
		d.dy = float64(m.Y - d.lastY)
	}
	d.lastX, d.lastY = m.X, m.Y
	d.tracking = true

	clear(d.mouseFire)
	if m.Action == engo.Press {
		switch m.Button {
		case engo.MouseButtonLeft:
			d.mouseFire[input.FirePrimary] = true
		case engo.MouseButtonRight:
			d.mouseFire[input.FireAlternate] = true
		}
	}
}

// Down implements input.Device.
func (d *Device) Down(b input.Button) bool {
	return engo.Input.Button(string(b)).Down()
}

// JustPressed implements input.Device.
func (d *Device) JustPressed(b input.Button) bool {
	return d.mouseFire[b] || engo.Input.Button(string(b)).JustPressed()
}

// MouseDelta implements input.Device.
func (d *Device) MouseDelta() (float64, float64) {
	return d.dx, d.dy
}
