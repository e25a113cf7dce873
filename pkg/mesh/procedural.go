package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// NewIcosphere returns a unit sphere made by subdividing an icosahedron.
func NewIcosphere(subdivisions int) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	raw := []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	m := &Mesh{Vertices: make([]mgl64.Vec3, len(raw))}
	for i, v := range raw {
		m.Vertices[i] = v.Normalize()
	}
	m.Indices = []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for s := 0; s < subdivisions; s++ {
		midpoints := make(map[[2]uint32]uint32)
		midpoint := func(a, b uint32) uint32 {
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			mid := m.Vertices[a].Add(m.Vertices[b]).Normalize()
			idx := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, mid)
			midpoints[key] = idx
			return idx
		}

		indices := make([]uint32, 0, len(m.Indices)*4)
		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			indices = append(indices,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		m.Indices = indices
	}
	return m
}

// NewRock returns a lumpy unit-radius asteroid: an icosphere whose vertices
// are pushed in by up to jitter, then rescaled so the furthest vertex sits
// at radius 1.
func NewRock(rng *physics.Random, subdivisions int, jitter float64) *Mesh {
	m := NewIcosphere(subdivisions)
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Mul(1 - rng.Float(0, jitter))
	}
	if r := m.Radius(); r > 0 {
		for i, v := range m.Vertices {
			m.Vertices[i] = v.Mul(1 / r)
		}
	}
	return m
}

// NewShip returns a small arrow-head hull pointing down +Z.
func NewShip() *Mesh {
	return &Mesh{
		Vertices: []mgl64.Vec3{
			{0, 0, 2},       // nose
			{-1.2, 0, -1},   // left wing
			{1.2, 0, -1},    // right wing
			{0, 0.6, -0.8},  // canopy
			{0, -0.3, -0.8}, // keel
			{0, 0, -1.2},    // engine
		},
		Indices: []uint32{
			0, 1, 3, 0, 3, 2, 0, 4, 1, 0, 2, 4,
			1, 5, 3, 3, 5, 2, 1, 4, 5, 5, 4, 2,
		},
	}
}
