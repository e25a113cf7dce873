package flight

import (
	"errors"
	"fmt"
	"math"
)

// DampingMode selects how velocity damping scales with the step length.
type DampingMode string

const (
	// DampingPerStep multiplies by the damping factor once per step.
	DampingPerStep DampingMode = "per_step"
	// DampingExponential multiplies by factor^(dt*60), matching per-step
	// damping at 60 Hz for any step length.
	DampingExponential DampingMode = "exponential"
)

// Config holds the handling characteristics of a ship.
type Config struct {
	ThrustSpeed      float64     `json:"thrustSpeed" yaml:"thrust_speed"`
	PitchRate        float64     `json:"pitchRate" yaml:"pitch_rate"` // degrees per second
	YawRate          float64     `json:"yawRate" yaml:"yaw_rate"`
	RollRate         float64     `json:"rollRate" yaml:"roll_rate"`
	LateralDamping   float64     `json:"lateralDamping" yaml:"lateral_damping"`
	ForwardDamping   float64     `json:"forwardDamping" yaml:"forward_damping"`
	DampingMode      DampingMode `json:"dampingMode" yaml:"damping_mode"`
	CollisionImpulse float64     `json:"collisionImpulse" yaml:"collision_impulse"`
}

// DefaultConfig returns the stock ship handling.
func DefaultConfig() Config {
	return Config{
		ThrustSpeed:      80,
		PitchRate:        25,
		YawRate:          25,
		RollRate:         30,
		LateralDamping:   0.95,
		ForwardDamping:   0.99,
		DampingMode:      DampingPerStep,
		CollisionImpulse: 10,
	}
}

// Validate checks that every tunable is usable.
func (c Config) Validate() error {
	var errs []error
	for name, v := range map[string]float64{
		"thrust speed":      c.ThrustSpeed,
		"pitch rate":        c.PitchRate,
		"yaw rate":          c.YawRate,
		"roll rate":         c.RollRate,
		"collision impulse": c.CollisionImpulse,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%s must be a non-negative number, got %v", name, v))
		}
	}
	for name, v := range map[string]float64{
		"lateral damping": c.LateralDamping,
		"forward damping": c.ForwardDamping,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}
	switch c.DampingMode {
	case DampingPerStep, DampingExponential:
	default:
		errs = append(errs, fmt.Errorf("unknown damping mode %q", c.DampingMode))
	}
	return errors.Join(errs...)
}

// dampingFactor returns the multiplier applied to a velocity component.
func (c Config) dampingFactor(factor, dt float64) float64 {
	if c.DampingMode == DampingExponential {
		return math.Pow(factor, dt*60)
	}
	return factor
}
