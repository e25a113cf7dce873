// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/flight"
)

// GameConfig contains configuration for a flight session
type GameConfig struct {
	Seed    uint64        `json:"seed" yaml:"seed"`
	Ship    ShipConfig    `json:"ship" yaml:"ship"`
	Field   FieldConfig   `json:"field" yaml:"field"`
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Camera  CameraConfig  `json:"camera" yaml:"camera"`
	Input   InputConfig   `json:"input" yaml:"input"`
	Display DisplayConfig `json:"display" yaml:"display"`
}

// ShipConfig selects the player ship. Handling, when present, replaces the
// class preset.
type ShipConfig struct {
	Class    string         `json:"class" yaml:"class"`
	Handling *flight.Config `json:"handling,omitempty" yaml:"handling,omitempty"`
}

// FlightConfig returns the effective ship handling.
func (s ShipConfig) FlightConfig() flight.Config {
	if s.Handling != nil {
		return *s.Handling
	}
	return entity.ShipClassFromString(s.Class).Handling()
}

// FieldConfig describes the asteroid field
type FieldConfig struct {
	Asteroids int `json:"asteroids" yaml:"asteroids"`
	// Extent is the half size of the cube asteroids are scattered in.
	Extent float64 `json:"extent" yaml:"extent"`
	// ClearRadius keeps the spawn point free of rocks.
	ClearRadius     float64 `json:"clearRadius" yaml:"clear_radius"`
	Mass            float64 `json:"mass" yaml:"mass"`
	RenderScale     float64 `json:"renderScale" yaml:"render_scale"`
	CollisionRadius float64 `json:"collisionRadius" yaml:"collision_radius"`
	// Models is the number of distinct rock meshes generated.
	Models       int     `json:"models" yaml:"models"`
	Subdivisions int     `json:"subdivisions" yaml:"subdivisions"`
	Jitter       float64 `json:"jitter" yaml:"jitter"`
	// ModelPaths, when set, loads rock meshes from OBJ files instead.
	ModelPaths []string `json:"modelPaths,omitempty" yaml:"model_paths,omitempty"`
}

// AsteroidConfig returns the per-rock sizing.
func (f FieldConfig) AsteroidConfig() entity.AsteroidConfig {
	return entity.AsteroidConfig{
		Mass:            f.Mass,
		RenderScale:     f.RenderScale,
		CollisionRadius: f.CollisionRadius,
	}
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	// FixedStep is the simulation step in seconds.
	FixedStep float64 `json:"fixedStep" yaml:"fixed_step"`
	// MaxFrameTime caps the frame time fed to the accumulator.
	MaxFrameTime   float64 `json:"maxFrameTime" yaml:"max_frame_time"`
	WorldExtent    float64 `json:"worldExtent" yaml:"world_extent"`
	Restitution    float64 `json:"restitution" yaml:"restitution"`
	LinearDamping  float64 `json:"linearDamping" yaml:"linear_damping"`
	AngularDamping float64 `json:"angularDamping" yaml:"angular_damping"`
	QueueCapacity  int     `json:"queueCapacity" yaml:"queue_capacity"`
}

// Step returns FixedStep as a duration.
func (p PhysicsConfig) Step() time.Duration {
	return time.Duration(p.FixedStep * float64(time.Second))
}

// CameraConfig contains chase camera configuration
type CameraConfig struct {
	Offset    [3]float64 `json:"offset" yaml:"offset"`
	Lerp      float64    `json:"lerp" yaml:"lerp"`
	LookAhead float64    `json:"lookAhead" yaml:"look_ahead"`
	FOV       float64    `json:"fov" yaml:"fov"`
}

// InputConfig contains input mapping configuration
type InputConfig struct {
	MouseLook        bool    `json:"mouseLook" yaml:"mouse_look"`
	MouseSensitivity float64 `json:"mouseSensitivity" yaml:"mouse_sensitivity"`
}

// DisplayConfig contains window and debug drawing configuration
type DisplayConfig struct {
	Title         string `json:"title" yaml:"title"`
	Width         int    `json:"width" yaml:"width"`
	Height        int    `json:"height" yaml:"height"`
	TargetFPS     int    `json:"targetFPS" yaml:"target_fps"`
	ShowColliders bool   `json:"showColliders" yaml:"show_colliders"`
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch formatFor(path) {
	case formatYAML:
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, in the format chosen by its
// extension.
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	switch formatFor(path) {
	case formatYAML:
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Seed: 1,
		Ship: ShipConfig{
			Class: entity.Scout.String(),
		},
		Field: FieldConfig{
			Asteroids:       300,
			Extent:          500,
			ClearRadius:     30,
			Mass:            50,
			RenderScale:     10,
			CollisionRadius: 7.5,
			Models:          6,
			Subdivisions:    1,
			Jitter:          0.25,
		},
		Physics: PhysicsConfig{
			FixedStep:     1.0 / 60.0,
			MaxFrameTime:  0.25,
			WorldExtent:   2048,
			Restitution:   0.5,
			QueueCapacity: 256,
		},
		Camera: CameraConfig{
			Offset:    [3]float64{-2.5, 3, -10},
			Lerp:      0.08,
			LookAhead: 20,
			FOV:       60,
		},
		Input: InputConfig{
			MouseSensitivity: 0.15,
		},
		Display: DisplayConfig{
			Title:     "go-flight",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
	}
}

// Validate checks the whole configuration and reports every problem found.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, field string, value interface{}, message string) {
		if !ok {
			errs = append(errs, &ValidationError{Field: field, Value: value, Message: message})
		}
	}
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	check(c.Field.Asteroids >= 0, "Field.Asteroids", c.Field.Asteroids, "must not be negative")
	check(finite(c.Field.Extent) && c.Field.Extent > 0, "Field.Extent", c.Field.Extent, "must be positive")
	check(finite(c.Field.ClearRadius) && c.Field.ClearRadius >= 0 && c.Field.ClearRadius < c.Field.Extent,
		"Field.ClearRadius", c.Field.ClearRadius, "must be non-negative and smaller than the extent")
	check(finite(c.Field.Mass) && c.Field.Mass >= 0, "Field.Mass", c.Field.Mass, "must not be negative")
	check(finite(c.Field.RenderScale) && c.Field.RenderScale > 0, "Field.RenderScale", c.Field.RenderScale, "must be positive")
	check(finite(c.Field.CollisionRadius) && c.Field.CollisionRadius > 0, "Field.CollisionRadius", c.Field.CollisionRadius, "must be positive")
	check(c.Field.Models > 0 || len(c.Field.ModelPaths) > 0, "Field.Models", c.Field.Models, "must be at least 1")
	check(c.Field.Subdivisions >= 0 && c.Field.Subdivisions <= 5, "Field.Subdivisions", c.Field.Subdivisions, "must be between 0 and 5")
	check(c.Field.Jitter >= 0 && c.Field.Jitter < 1, "Field.Jitter", c.Field.Jitter, "must be in [0, 1)")

	check(finite(c.Physics.FixedStep) && c.Physics.FixedStep > 0, "Physics.FixedStep", c.Physics.FixedStep, "must be positive")
	check(c.Physics.MaxFrameTime >= c.Physics.FixedStep, "Physics.MaxFrameTime", c.Physics.MaxFrameTime, "must be at least one step")
	check(finite(c.Physics.WorldExtent) && c.Physics.WorldExtent >= c.Field.Extent,
		"Physics.WorldExtent", c.Physics.WorldExtent, "must contain the asteroid field")
	check(c.Physics.Restitution >= 0 && c.Physics.Restitution <= 1, "Physics.Restitution", c.Physics.Restitution, "must be in [0, 1]")
	check(c.Physics.LinearDamping >= 0 && c.Physics.LinearDamping < 1, "Physics.LinearDamping", c.Physics.LinearDamping, "must be in [0, 1)")
	check(c.Physics.AngularDamping >= 0 && c.Physics.AngularDamping < 1, "Physics.AngularDamping", c.Physics.AngularDamping, "must be in [0, 1)")
	check(c.Physics.QueueCapacity > 0, "Physics.QueueCapacity", c.Physics.QueueCapacity, "must be positive")

	check(c.Camera.Lerp > 0 && c.Camera.Lerp <= 1, "Camera.Lerp", c.Camera.Lerp, "must be in (0, 1]")
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "Camera.FOV", c.Camera.FOV, "must be in (0, 180)")
	check(c.Input.MouseSensitivity >= 0, "Input.MouseSensitivity", c.Input.MouseSensitivity, "must not be negative")
	check(c.Display.Width > 0 && c.Display.Height > 0, "Display.Size",
		fmt.Sprintf("%dx%d", c.Display.Width, c.Display.Height), "must be positive")
	check(c.Display.TargetFPS > 0, "Display.TargetFPS", c.Display.TargetFPS, "must be positive")

	if err := c.Ship.FlightConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ship handling: %w", err))
	}

	return errors.Join(errs...)
}
