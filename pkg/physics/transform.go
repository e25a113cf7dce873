package physics

import "github.com/go-gl/mathgl/mgl64"

// Transform places an object in the world. Physics ignores Scale; it is
// carried for render-facing consumers.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// IdentityTransform returns a transform at the origin with no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// NewTransform creates a unit-scale transform.
func NewTransform(translation mgl64.Vec3, rotation mgl64.Quat) Transform {
	return Transform{
		Translation: translation,
		Rotation:    rotation,
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// Apply maps a local point into world space (scale excluded).
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	return t.Translation.Add(t.Rotation.Rotate(local))
}

// ApplyDirection rotates a local direction into world space.
func (t Transform) ApplyDirection(local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(local)
}

// InverseDirection rotates a world direction into the local frame.
func (t Transform) InverseDirection(world mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(world)
}

// Interpolate blends linearly between translations and spherically between
// rotations. amount 0 returns t, 1 returns to.
func (t Transform) Interpolate(to Transform, amount float64) Transform {
	if amount <= 0 {
		return t
	}
	if amount >= 1 {
		return to
	}
	return Transform{
		Translation: t.Translation.Add(to.Translation.Sub(t.Translation).Mul(amount)),
		Rotation:    mgl64.QuatSlerp(t.Rotation, to.Rotation, amount),
		Scale:       t.Scale.Add(to.Scale.Sub(t.Scale).Mul(amount)),
	}
}
