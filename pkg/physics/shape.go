// pkg/physics/shape.go
package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind identifies a collision shape family.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeCapsule
	ShapeCylinder
	ShapeConvexHull
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeCapsule:
		return "capsule"
	case ShapeCylinder:
		return "cylinder"
	case ShapeConvexHull:
		return "convex_hull"
	default:
		return fmt.Sprintf("shape(%d)", int(k))
	}
}

// Axis selects the local axis a capsule or cylinder is aligned with.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) unit() mgl64.Vec3 {
	switch a {
	case AxisX:
		return mgl64.Vec3{1, 0, 0}
	case AxisY:
		return Up
	default:
		return Forward
	}
}

// Shape is a convex collision volume described in its own local frame.
type Shape interface {
	Kind() ShapeKind
	// Support returns the local point of the shape furthest along direction.
	Support(direction mgl64.Vec3) mgl64.Vec3
	// BoundingRadius is the largest distance from the local origin to the surface.
	BoundingRadius() float64
	LocalBounds() AABB
	// LocalInertia returns the diagonal of the inertia tensor for the given mass.
	LocalInertia(mass float64) mgl64.Vec3
}

// boxInertia approximates a shape's inertia by its bounding box.
func boxInertia(bounds AABB, mass float64) mgl64.Vec3 {
	size := bounds.Size()
	lx2, ly2, lz2 := size[0]*size[0], size[1]*size[1], size[2]*size[2]
	return mgl64.Vec3{
		mass / 12 * (ly2 + lz2),
		mass / 12 * (lx2 + lz2),
		mass / 12 * (lx2 + ly2),
	}
}

// Sphere is a ball centered on the local origin.
type Sphere struct {
	Radius float64
}

// NewSphere creates a sphere shape.
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

func (s *Sphere) Kind() ShapeKind { return ShapeSphere }

func (s *Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	dir := NormalizeOrZero(direction)
	if dir == (mgl64.Vec3{}) {
		dir = Right
	}
	return dir.Mul(s.Radius)
}

func (s *Sphere) BoundingRadius() float64 { return s.Radius }

func (s *Sphere) LocalBounds() AABB { return SphereAABB(mgl64.Vec3{}, s.Radius) }

func (s *Sphere) LocalInertia(mass float64) mgl64.Vec3 {
	i := 0.4 * mass * s.Radius * s.Radius
	return mgl64.Vec3{i, i, i}
}

// Capsule is a cylinder capped with hemispheres. Length is the distance
// between the two hemisphere centers.
type Capsule struct {
	Axis   Axis
	Radius float64
	Length float64
}

// NewCapsuleX creates a capsule along the local X axis.
func NewCapsuleX(radius, length float64) *Capsule {
	return &Capsule{Axis: AxisX, Radius: radius, Length: length}
}

// NewCapsuleY creates a capsule along the local Y axis.
func NewCapsuleY(radius, length float64) *Capsule {
	return &Capsule{Axis: AxisY, Radius: radius, Length: length}
}

// NewCapsuleZ creates a capsule along the local Z axis.
func NewCapsuleZ(radius, length float64) *Capsule {
	return &Capsule{Axis: AxisZ, Radius: radius, Length: length}
}

func (c *Capsule) Kind() ShapeKind { return ShapeCapsule }

func (c *Capsule) Support(direction mgl64.Vec3) mgl64.Vec3 {
	axis := c.Axis.unit()
	half := c.Length / 2
	if direction.Dot(axis) < 0 {
		half = -half
	}
	dir := NormalizeOrZero(direction)
	if dir == (mgl64.Vec3{}) {
		dir = axis
	}
	return axis.Mul(half).Add(dir.Mul(c.Radius))
}

func (c *Capsule) BoundingRadius() float64 { return c.Length/2 + c.Radius }

func (c *Capsule) LocalBounds() AABB {
	half := MulElem(c.Axis.unit(), mgl64.Vec3{c.Length / 2, c.Length / 2, c.Length / 2})
	r := mgl64.Vec3{c.Radius, c.Radius, c.Radius}
	return AABBFromCenter(mgl64.Vec3{}, r.Add(mgl64.Vec3{math.Abs(half[0]), math.Abs(half[1]), math.Abs(half[2])}))
}

func (c *Capsule) LocalInertia(mass float64) mgl64.Vec3 {
	return boxInertia(c.LocalBounds(), mass)
}

// Cylinder is a solid cylinder; Length runs along Axis and Radius across it.
type Cylinder struct {
	Axis   Axis
	Radius float64
	Length float64
}

// NewCylinderX creates a cylinder along the local X axis.
func NewCylinderX(radius, length float64) *Cylinder {
	return &Cylinder{Axis: AxisX, Radius: radius, Length: length}
}

// NewCylinderY creates a cylinder along the local Y axis.
func NewCylinderY(radius, length float64) *Cylinder {
	return &Cylinder{Axis: AxisY, Radius: radius, Length: length}
}

// NewCylinderZ creates a cylinder along the local Z axis.
func NewCylinderZ(radius, length float64) *Cylinder {
	return &Cylinder{Axis: AxisZ, Radius: radius, Length: length}
}

func (c *Cylinder) Kind() ShapeKind { return ShapeCylinder }

func (c *Cylinder) Support(direction mgl64.Vec3) mgl64.Vec3 {
	axis := c.Axis.unit()
	along := direction.Dot(axis)
	half := c.Length / 2
	if along < 0 {
		half = -half
	}
	radial := NormalizeOrZero(direction.Sub(axis.Mul(along)))
	return axis.Mul(half).Add(radial.Mul(c.Radius))
}

func (c *Cylinder) BoundingRadius() float64 {
	return math.Hypot(c.Length/2, c.Radius)
}

func (c *Cylinder) LocalBounds() AABB {
	half := mgl64.Vec3{c.Radius, c.Radius, c.Radius}
	half[int(c.Axis)] = c.Length / 2
	return AABBFromCenter(mgl64.Vec3{}, half)
}

func (c *Cylinder) LocalInertia(mass float64) mgl64.Vec3 {
	return boxInertia(c.LocalBounds(), mass)
}

// ConvexHull is the convex hull of a point cloud, typically mesh vertices.
type ConvexHull struct {
	points []mgl64.Vec3
	bounds AABB
	radius float64
}

// NewConvexHull builds a hull from points uniformly scaled by scale. An empty
// point set is a programming error and panics.
func NewConvexHull(points []mgl64.Vec3, scale float64) *ConvexHull {
	if len(points) == 0 {
		panic("physics: convex hull needs at least one point")
	}
	hull := &ConvexHull{points: make([]mgl64.Vec3, len(points))}
	for i, p := range points {
		scaled := p.Mul(scale)
		hull.points[i] = scaled
		if i == 0 {
			hull.bounds = AABB{Min: scaled, Max: scaled}
		} else {
			hull.bounds = hull.bounds.Union(AABB{Min: scaled, Max: scaled})
		}
		hull.radius = math.Max(hull.radius, scaled.Len())
	}
	return hull
}

func (h *ConvexHull) Kind() ShapeKind { return ShapeConvexHull }

// Points returns the scaled hull points.
func (h *ConvexHull) Points() []mgl64.Vec3 { return h.points }

func (h *ConvexHull) Support(direction mgl64.Vec3) mgl64.Vec3 {
	best := h.points[0]
	bestDot := best.Dot(direction)
	for _, p := range h.points[1:] {
		if d := p.Dot(direction); d > bestDot {
			best, bestDot = p, d
		}
	}
	return best
}

func (h *ConvexHull) BoundingRadius() float64 { return h.radius }

func (h *ConvexHull) LocalBounds() AABB { return h.bounds }

func (h *ConvexHull) LocalInertia(mass float64) mgl64.Vec3 {
	return boxInertia(h.bounds, mass)
}

// worldSupport evaluates a shape's support mapping for a world direction.
func worldSupport(shape Shape, transform Transform, direction mgl64.Vec3) mgl64.Vec3 {
	local := transform.InverseDirection(direction)
	return transform.Apply(shape.Support(local))
}
