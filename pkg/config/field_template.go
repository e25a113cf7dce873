package config

import (
	"fmt"
	"sort"
)

// FieldTemplate is a named asteroid field preset
type FieldTemplate struct {
	Name        string
	Description string
	Asteroids   int
	Extent      float64
	ClearRadius float64
	Mass        float64
}

var fieldTemplates = map[string]FieldTemplate{
	"classic": {
		Name:        "Classic",
		Description: "300 rocks in a 1000 unit cube",
		Asteroids:   300,
		Extent:      500,
		ClearRadius: 30,
		Mass:        50,
	},
	"sparse": {
		Name:        "Sparse",
		Description: "a few heavy rocks spread wide",
		Asteroids:   80,
		Extent:      900,
		ClearRadius: 60,
		Mass:        200,
	},
	"dense": {
		Name:        "Dense",
		Description: "a tight cluster of light rocks",
		Asteroids:   600,
		Extent:      300,
		ClearRadius: 25,
		Mass:        20,
	},
}

// GetFieldTemplate returns the named template, or nil if there is none.
func GetFieldTemplate(name string) *FieldTemplate {
	t, ok := fieldTemplates[name]
	if !ok {
		return nil
	}
	return &t
}

// ListFieldTemplates returns the template keys in sorted order.
func ListFieldTemplates() []string {
	names := make([]string, 0, len(fieldTemplates))
	for name := range fieldTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyFieldTemplate overwrites cfg's field layout with the named template,
// growing the physics world if the field no longer fits.
func ApplyFieldTemplate(cfg *GameConfig, name string) error {
	t := GetFieldTemplate(name)
	if t == nil {
		return fmt.Errorf("unknown field template %q", name)
	}

	cfg.Field.Asteroids = t.Asteroids
	cfg.Field.Extent = t.Extent
	cfg.Field.ClearRadius = t.ClearRadius
	cfg.Field.Mass = t.Mass
	if cfg.Physics.WorldExtent < t.Extent {
		cfg.Physics.WorldExtent = t.Extent * 2
	}
	return nil
}
