package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// AABBFromCenter builds a box from its center and half extents.
func AABBFromCenter(center, halfExtents mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// SphereAABB returns the box enclosing a sphere.
func SphereAABB(center mgl64.Vec3, radius float64) AABB {
	return AABBFromCenter(center, mgl64.Vec3{radius, radius, radius})
}

// Center returns the middle of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the edge lengths of the box.
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether point lies inside the box. Max faces are exclusive
// so that octants never share a point.
func (b AABB) Contains(point mgl64.Vec3) bool {
	return point[0] >= b.Min[0] && point[0] < b.Max[0] &&
		point[1] >= b.Min[1] && point[1] < b.Max[1] &&
		point[2] >= b.Min[2] && point[2] < b.Max[2]
}

// Intersects reports whether two boxes overlap.
func (b AABB) Intersects(other AABB) bool {
	return !(other.Min[0] > b.Max[0] || other.Max[0] < b.Min[0] ||
		other.Min[1] > b.Max[1] || other.Max[1] < b.Min[1] ||
		other.Min[2] > b.Max[2] || other.Max[2] < b.Min[2])
}

// Union returns the smallest box enclosing both.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(b.Min[0], other.Min[0]), math.Min(b.Min[1], other.Min[1]), math.Min(b.Min[2], other.Min[2])},
		Max: mgl64.Vec3{math.Max(b.Max[0], other.Max[0]), math.Max(b.Max[1], other.Max[1]), math.Max(b.Max[2], other.Max[2])},
	}
}

// Expand grows the box by margin on every side.
func (b AABB) Expand(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}
