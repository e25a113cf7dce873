// pkg/physics/collision.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// BoundingSphere is a sphere used for broad contact tests.
type BoundingSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Collides checks if two spheres overlap.
func (s BoundingSphere) Collides(other BoundingSphere) bool {
	return s.Center.Sub(other.Center).Len() < s.Radius+other.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       mgl64.Vec3 // from A towards B
	Penetration  float64
	ContactPoint mgl64.Vec3
}

// CheckCollision performs detailed collision detection between two spheres
func CheckCollision(a, b BoundingSphere) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Len()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	penetration := a.Radius + b.Radius - distance

	// Coincident centers have no preferred direction.
	normal = NormalizeOrZero(normal)
	if normal == (mgl64.Vec3{}) {
		normal = Up
	}
	contactPoint := a.Center.Add(normal.Mul(a.Radius))

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  penetration,
		ContactPoint: contactPoint,
	}
}

// maxOctreeDepth stops subdivision when many objects share a point.
const maxOctreeDepth = 12

// Octree partitions space for broadphase queries.
type Octree struct {
	Boundary AABB
	Capacity int
	Points   []mgl64.Vec3
	Objects  []CollisionObject
	Divided  bool
	Children [8]*Octree

	depth int
}

// NewOctree creates a new octree with the given boundary and node capacity
func NewOctree(boundary AABB, capacity int) *Octree {
	if capacity < 1 {
		capacity = 1
	}
	return &Octree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]mgl64.Vec3, 0, capacity),
		Objects:  make([]CollisionObject, 0, capacity),
	}
}

// Insert stores object at point. It returns false when point lies outside
// the tree's boundary.
func (ot *Octree) Insert(point mgl64.Vec3, object CollisionObject) bool {
	if !ot.Boundary.Contains(point) {
		return false
	}

	if !ot.Divided && (len(ot.Points) < ot.Capacity || ot.depth >= maxOctreeDepth) {
		ot.Points = append(ot.Points, point)
		ot.Objects = append(ot.Objects, object)
		return true
	}

	if !ot.Divided {
		ot.Subdivide()
	}

	for _, child := range ot.Children {
		if child.Insert(point, object) {
			return true
		}
	}
	return false
}

// Subdivide splits the node into eight octants
func (ot *Octree) Subdivide() {
	center := ot.Boundary.Center()
	for i := range ot.Children {
		var octant AABB
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) == 0 {
				octant.Min[axis] = ot.Boundary.Min[axis]
				octant.Max[axis] = center[axis]
			} else {
				octant.Min[axis] = center[axis]
				octant.Max[axis] = ot.Boundary.Max[axis]
			}
		}
		ot.Children[i] = NewOctree(octant, ot.Capacity)
		ot.Children[i].depth = ot.depth + 1
	}
	ot.Divided = true
}

// Query returns all objects whose stored point lies in area.
func (ot *Octree) Query(area AABB) []CollisionObject {
	return ot.query(area, nil)
}

func (ot *Octree) query(area AABB, found []CollisionObject) []CollisionObject {
	if !ot.Boundary.Intersects(area) {
		return found
	}

	for i, point := range ot.Points {
		if area.Min[0] <= point[0] && point[0] <= area.Max[0] &&
			area.Min[1] <= point[1] && point[1] <= area.Max[1] &&
			area.Min[2] <= point[2] && point[2] <= area.Max[2] {
			found = append(found, ot.Objects[i])
		}
	}

	if !ot.Divided {
		return found
	}

	for _, child := range ot.Children {
		found = child.query(area, found)
	}
	return found
}

// Clear empties the tree while keeping its boundary and capacity.
func (ot *Octree) Clear() {
	ot.Points = ot.Points[:0]
	ot.Objects = ot.Objects[:0]
	ot.Divided = false
	ot.Children = [8]*Octree{}
}

// Len returns the number of stored objects.
func (ot *Octree) Len() int {
	n := len(ot.Objects)
	if ot.Divided {
		for _, child := range ot.Children {
			n += child.Len()
		}
	}
	return n
}
