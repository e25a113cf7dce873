// pkg/mesh/mesh.go
package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/opd-ai/go-flight/pkg/physics"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Bounds returns the box enclosing every vertex.
func (m *Mesh) Bounds() physics.AABB {
	if len(m.Vertices) == 0 {
		return physics.AABB{}
	}
	b := physics.AABB{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b = b.Union(physics.AABB{Min: v, Max: v})
	}
	return b
}

// Radius returns the largest vertex distance from the origin.
func (m *Mesh) Radius() float64 {
	r := 0.0
	for _, v := range m.Vertices {
		r = math.Max(r, v.Len())
	}
	return r
}

// Edges returns each undirected triangle edge once.
func (m *Mesh) Edges() [][2]uint32 {
	seen := make(map[[2]uint32]struct{}, len(m.Indices))
	edges := make([][2]uint32, 0, len(m.Indices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}
	return edges
}

// Model groups the meshes loaded from one asset.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// NewModel wraps meshes into a model.
func NewModel(name string, meshes ...*Mesh) *Model {
	return &Model{Name: name, Meshes: meshes}
}

// VertexCount returns the vertex total across meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.VertexCount()
	}
	return n
}

// ConvexShape builds a collision hull from a single-mesh model scaled
// uniformly. A model with other than one mesh, or no vertices, panics.
func ConvexShape(model *Model, scale float64) *physics.ConvexHull {
	if len(model.Meshes) != 1 {
		panic(fmt.Sprintf("mesh: convex collision needs exactly one mesh, %q has %d", model.Name, len(model.Meshes)))
	}
	if model.Meshes[0].VertexCount() == 0 {
		panic(fmt.Sprintf("mesh: model %q has no vertices", model.Name))
	}
	return physics.NewConvexHull(model.Meshes[0].Vertices, scale)
}
