// pkg/input/input.go
package input

import (
	"math"

	"github.com/opd-ai/go-flight/pkg/flight"
)

// Button names a logical control. Device adapters bind these to keys.
type Button string

const (
	ThrustForward  Button = "thrust_forward"
	ThrustBackward Button = "thrust_backward"
	StrafeLeft     Button = "strafe_left"
	StrafeRight    Button = "strafe_right"
	StrafeUp       Button = "strafe_up"
	StrafeDown     Button = "strafe_down"
	PitchUp        Button = "pitch_up"
	PitchDown      Button = "pitch_down"
	YawLeft        Button = "yaw_left"
	YawRight       Button = "yaw_right"
	RollLeft       Button = "roll_left"
	RollRight      Button = "roll_right"
	FirePrimary    Button = "fire"
	FireAlternate  Button = "alt_fire"
	ToggleDebug    Button = "toggle_debug"
	Quit           Button = "quit"
)

// Buttons lists every logical control.
var Buttons = []Button{
	ThrustForward, ThrustBackward,
	StrafeLeft, StrafeRight, StrafeUp, StrafeDown,
	PitchUp, PitchDown, YawLeft, YawRight, RollLeft, RollRight,
	FirePrimary, FireAlternate, ToggleDebug, Quit,
}

// Device reports raw control state for the current frame.
type Device interface {
	// Down reports whether the button is held.
	Down(b Button) bool
	// JustPressed reports whether the button went down this frame.
	JustPressed(b Button) bool
	// MouseDelta returns pointer movement since the previous frame.
	MouseDelta() (dx, dy float64)
}

// DefaultMouseSensitivity scales raw mouse deltas into axis values.
const DefaultMouseSensitivity = 0.15

// Mapper turns device state into ship input.
type Mapper struct {
	MouseSensitivity float64
	// MouseLook adds scaled mouse movement to pitch and yaw.
	MouseLook bool
}

// NewMapper returns a mapper with the stock sensitivity and mouse look off.
func NewMapper() *Mapper {
	return &Mapper{MouseSensitivity: DefaultMouseSensitivity}
}

// Map builds this frame's ShipInput. Movement axes are level-triggered and
// clamped to [-1, 1]; fire triggers are set only on the press frame.
func (m *Mapper) Map(d Device) flight.ShipInput {
	var in flight.ShipInput

	in.Set(flight.ThrustZ, axis(d, ThrustForward, ThrustBackward))
	in.Set(flight.ThrustX, axis(d, StrafeLeft, StrafeRight))
	in.Set(flight.ThrustY, axis(d, StrafeUp, StrafeDown))

	pitch := axis(d, PitchDown, PitchUp)
	yaw := axis(d, YawLeft, YawRight)
	roll := axis(d, RollRight, RollLeft)

	if m.MouseLook {
		dx, dy := d.MouseDelta()
		pitch += dy * m.MouseSensitivity
		yaw -= dx * m.MouseSensitivity
	}

	in.Set(flight.Pitch, clamp(pitch))
	in.Set(flight.Yaw, clamp(yaw))
	in.Set(flight.Roll, clamp(roll))

	if d.JustPressed(FirePrimary) {
		in.Set(flight.Fire, 1)
	}
	if d.JustPressed(FireAlternate) {
		in.Set(flight.AltFire, 1)
	}
	return in
}

func axis(d Device, positive, negative Button) float64 {
	v := 0.0
	if d.Down(positive) {
		v++
	}
	if d.Down(negative) {
		v--
	}
	return v
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
