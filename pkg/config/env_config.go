// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names
const (
	EnvConfigPath    = "FLIGHT_CONFIG"
	EnvSeed          = "FLIGHT_SEED"
	EnvShipClass     = "FLIGHT_SHIP_CLASS"
	EnvAsteroids     = "FLIGHT_ASTEROIDS"
	EnvFieldExtent   = "FLIGHT_FIELD_EXTENT"
	EnvFixedStep     = "FLIGHT_FIXED_STEP"
	EnvTargetFPS     = "FLIGHT_TARGET_FPS"
	EnvMouseLook     = "FLIGHT_MOUSE_LOOK"
	EnvShowColliders = "FLIGHT_SHOW_COLLIDERS"
	EnvFieldTemplate = "FLIGHT_FIELD_TEMPLATE"
)

// EnvironmentConfig holds the settings that can come from the environment.
type EnvironmentConfig struct {
	ConfigPath    string
	Seed          uint64
	ShipClass     string
	Asteroids     int
	FieldExtent   float64
	FixedStep     time.Duration
	TargetFPS     int
	MouseLook     bool
	ShowColliders bool
	FieldTemplate string
}

// ValidationError reports a single invalid setting
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %s (value: %v): %s", e.Field, e.Value, e.Message)
}

// LoadConfigFromEnv reads every FLIGHT_* variable, falling back to the
// defaults, and validates the result.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	defaults := DefaultConfig()
	config := &EnvironmentConfig{
		ConfigPath:    getEnvOrDefault(EnvConfigPath, ""),
		Seed:          getEnvAsSeedOrDefault(EnvSeed, defaults.Seed),
		ShipClass:     getEnvOrDefault(EnvShipClass, defaults.Ship.Class),
		Asteroids:     getEnvAsIntOrDefault(EnvAsteroids, defaults.Field.Asteroids),
		FieldExtent:   getEnvAsFloatOrDefault(EnvFieldExtent, defaults.Field.Extent),
		FixedStep:     getEnvAsDurationOrDefault(EnvFixedStep, defaults.Physics.Step()),
		TargetFPS:     getEnvAsIntOrDefault(EnvTargetFPS, defaults.Display.TargetFPS),
		MouseLook:     getEnvAsBoolOrDefault(EnvMouseLook, defaults.Input.MouseLook),
		ShowColliders: getEnvAsBoolOrDefault(EnvShowColliders, defaults.Display.ShowColliders),
		FieldTemplate: getEnvOrDefault(EnvFieldTemplate, ""),
	}

	if err := validateEnvironmentConfig(config); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	return config, nil
}

func validateEnvironmentConfig(config *EnvironmentConfig) error {
	if config.Asteroids < 0 || config.Asteroids > 10000 {
		return &ValidationError{Field: "Asteroids", Value: config.Asteroids, Message: "must be between 0 and 10000"}
	}
	if config.FieldExtent < 10 || config.FieldExtent > 100000 {
		return &ValidationError{Field: "FieldExtent", Value: config.FieldExtent, Message: "must be between 10 and 100000"}
	}
	if config.FixedStep < time.Millisecond || config.FixedStep > 100*time.Millisecond {
		return &ValidationError{Field: "FixedStep", Value: config.FixedStep, Message: "must be between 1ms and 100ms"}
	}
	if config.TargetFPS < 1 || config.TargetFPS > 1000 {
		return &ValidationError{Field: "TargetFPS", Value: config.TargetFPS, Message: "must be between 1 and 1000"}
	}
	if config.FieldTemplate != "" && GetFieldTemplate(config.FieldTemplate) == nil {
		return &ValidationError{Field: "FieldTemplate", Value: config.FieldTemplate, Message: "unknown field template"}
	}
	return nil
}

// ApplyEnvironmentOverrides copies every FLIGHT_* variable that is set onto
// gameConfig. Unset variables leave the file values alone. A field
// template is applied before the individual overrides.
func ApplyEnvironmentOverrides(gameConfig *GameConfig) error {
	env, err := LoadConfigFromEnv()
	if err != nil {
		return err
	}

	if isSet(EnvFieldTemplate) {
		if err := ApplyFieldTemplate(gameConfig, env.FieldTemplate); err != nil {
			return err
		}
	}
	if isSet(EnvSeed) {
		gameConfig.Seed = env.Seed
	}
	if isSet(EnvShipClass) {
		gameConfig.Ship.Class = env.ShipClass
		gameConfig.Ship.Handling = nil
	}
	if isSet(EnvAsteroids) {
		gameConfig.Field.Asteroids = env.Asteroids
	}
	if isSet(EnvFieldExtent) {
		gameConfig.Field.Extent = env.FieldExtent
		if gameConfig.Physics.WorldExtent < env.FieldExtent {
			gameConfig.Physics.WorldExtent = env.FieldExtent * 2
		}
	}
	if isSet(EnvFixedStep) {
		gameConfig.Physics.FixedStep = env.FixedStep.Seconds()
	}
	if isSet(EnvTargetFPS) {
		gameConfig.Display.TargetFPS = env.TargetFPS
	}
	if isSet(EnvMouseLook) {
		gameConfig.Input.MouseLook = env.MouseLook
	}
	if isSet(EnvShowColliders) {
		gameConfig.Display.ShowColliders = env.ShowColliders
	}

	return nil
}

// Load reads the file named by FLIGHT_CONFIG (or path when the variable is
// unset), falling back to the defaults when neither is given, then applies
// environment overrides and validates.
func Load(path string) (*GameConfig, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		path = p
	}

	config := DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := ApplyEnvironmentOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func isSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
