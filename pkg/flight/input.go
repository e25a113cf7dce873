// pkg/flight/input.go
package flight

import "fmt"

// Axis indexes a ShipInput. Positive values push along +X (left), +Y (up)
// and +Z (forward), pitch the nose down, yaw it left and roll to the right.
type Axis int

const (
	ThrustX Axis = iota
	ThrustY
	ThrustZ
	Pitch
	Yaw
	Roll
	Fire
	AltFire

	axisCount
)

var axisNames = [axisCount]string{
	ThrustX: "thrust_x",
	ThrustY: "thrust_y",
	ThrustZ: "thrust_z",
	Pitch:   "pitch",
	Yaw:     "yaw",
	Roll:    "roll",
	Fire:    "fire",
	AltFire: "alt_fire",
}

func (a Axis) String() string {
	if a < 0 || a >= axisCount {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// ShipInput is one frame of control input. Movement axes hold values in
// [-1, 1]; Fire and AltFire are 0 or 1.
type ShipInput [axisCount]float64

// Get returns the value of axis.
func (in ShipInput) Get(axis Axis) float64 { return in[axis] }

// Set stores value for axis.
func (in *ShipInput) Set(axis Axis, value float64) { in[axis] = value }

// Firing reports whether the primary weapon trigger is set.
func (in ShipInput) Firing() bool { return in[Fire] != 0 }

// AltFiring reports whether the alternate weapon trigger is set.
func (in ShipInput) AltFiring() bool { return in[AltFire] != 0 }

// Reset zeroes every axis.
func (in *ShipInput) Reset() { *in = ShipInput{} }
