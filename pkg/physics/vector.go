// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the smallest length treated as a real direction.
const Epsilon = 1e-7

// Ship-local axes in a right-handed, Y-up frame with Forward = +Z. Seen
// from behind the ship, +X is on the left.
var (
	Forward = mgl64.Vec3{0, 0, 1}
	Back    = mgl64.Vec3{0, 0, -1}
	Up      = mgl64.Vec3{0, 1, 0}
	Down    = mgl64.Vec3{0, -1, 0}
	Right   = mgl64.Vec3{-1, 0, 0}
	Left    = mgl64.Vec3{1, 0, 0}
)

// NormalizeOrZero returns a unit vector in the same direction, or the zero
// vector when v is too short to have one. mgl64's Normalize divides by zero.
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length <= Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / length)
}

// Reflect mirrors direction about the plane with the given unit normal.
func Reflect(direction, normal mgl64.Vec3) mgl64.Vec3 {
	return direction.Sub(normal.Mul(2 * direction.Dot(normal)))
}

// MulElem multiplies two vectors component-wise.
func MulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// AnyPerpendicular returns a unit vector perpendicular to v.
func AnyPerpendicular(v mgl64.Vec3) mgl64.Vec3 {
	axis := Right
	if math.Abs(v[0]) > 0.9*v.Len() {
		axis = Up
	}
	return NormalizeOrZero(v.Cross(axis))
}

// QuatAngle returns the rotation angle in radians between two orientations.
func QuatAngle(a, b mgl64.Quat) float64 {
	dot := math.Abs(a.Normalize().Dot(b.Normalize()))
	if dot > 1 {
		dot = 1
	}
	return 2 * math.Acos(dot)
}

// IntegrateOrientation advances q by angular velocity omega (world frame)
// over dt and renormalizes.
func IntegrateOrientation(q mgl64.Quat, omega mgl64.Vec3, dt float64) mgl64.Quat {
	spin := mgl64.Quat{W: 0, V: omega}.Mul(q).Scale(0.5 * dt)
	return q.Add(spin).Normalize()
}
