package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestRandomDeterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float(-500, 500), b.Float(-500, 500))
		assert.Equal(t, a.Int(0, 100), b.Int(0, 100))
	}
}

func TestRandomBounds(t *testing.T) {
	rng := NewRandom(7)
	for i := 0; i < 1000; i++ {
		n := rng.Int(-3, 3)
		assert.GreaterOrEqual(t, n, -3)
		assert.LessOrEqual(t, n, 3)

		f := rng.Float(0, 180)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 180.0)

		p := rng.Vec3InBox(-500, 500)
		for _, c := range p {
			assert.True(t, c >= -500 && c < 500)
		}

		assert.InDelta(t, 1.0, rng.UnitVector().Len(), 1e-9)
		assert.InDelta(t, 1.0, rng.Orientation(180).Len(), 1e-9)
	}
}

func TestRandomEdgeCases(t *testing.T) {
	rng := NewRandom(1)

	tests := []struct {
		name string
		fn   func()
	}{
		{"int_inverted", func() { rng.Int(5, 1) }},
		{"float_inverted", func() { rng.Float(1, 0) }},
		{"float_infinite", func() { rng.Float(0, math.Inf(1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}

	assert.Equal(t, 4, rng.Int(4, 4))
	assert.Equal(t, 2.5, rng.Float(2.5, 2.5))
	assert.Equal(t, mgl64.QuatIdent(), rng.Orientation(0))
}
