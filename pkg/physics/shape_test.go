package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func vecInDelta(t *testing.T, expected, actual mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestShapeLocalBounds(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  AABB
	}{
		{"sphere", NewSphere(2), AABB{Min: mgl64.Vec3{-2, -2, -2}, Max: mgl64.Vec3{2, 2, 2}}},
		{"capsule_x", NewCapsuleX(1, 4), AABB{Min: mgl64.Vec3{-3, -1, -1}, Max: mgl64.Vec3{3, 1, 1}}},
		{"capsule_z", NewCapsuleZ(0.5, 2), AABB{Min: mgl64.Vec3{-0.5, -0.5, -1.5}, Max: mgl64.Vec3{0.5, 0.5, 1.5}}},
		{"cylinder_y", NewCylinderY(2, 6), AABB{Min: mgl64.Vec3{-2, -3, -2}, Max: mgl64.Vec3{2, 3, 2}}},
		{"cylinder_z", NewCylinderZ(1, 2), AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.shape.LocalBounds()
			vecInDelta(t, tt.want.Min, got.Min, 1e-12)
			vecInDelta(t, tt.want.Max, got.Max, 1e-12)
		})
	}
}

func TestShapeSupport(t *testing.T) {
	tests := []struct {
		name      string
		shape     Shape
		direction mgl64.Vec3
		want      mgl64.Vec3
	}{
		{"sphere_diagonal", NewSphere(1), mgl64.Vec3{1, 1, 0}, mgl64.Vec3{0.70710678, 0.70710678, 0}},
		{"capsule_tip", NewCapsuleZ(0.5, 2), Forward, mgl64.Vec3{0, 0, 1.5}},
		{"capsule_side", NewCapsuleZ(0.5, 2), mgl64.Vec3{1, 0, 0.001}, mgl64.Vec3{0.5, 0, 1}},
		{"cylinder_rim", NewCylinderY(2, 6), mgl64.Vec3{1, 1, 0}, mgl64.Vec3{2, 3, 0}},
		{"cylinder_cap_center", NewCylinderY(2, 6), Down, mgl64.Vec3{0, -3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vecInDelta(t, tt.want, tt.shape.Support(tt.direction), 1e-3)
		})
	}
}

func TestBoundingRadius(t *testing.T) {
	assert.Equal(t, 2.0, NewSphere(2).BoundingRadius())
	assert.Equal(t, 1.5, NewCapsuleZ(0.5, 2).BoundingRadius())
	assert.InDelta(t, 5.0, NewCylinderX(4, 6).BoundingRadius(), 1e-12)
}

func TestConvexHull(t *testing.T) {
	t.Run("scales_points", func(t *testing.T) {
		hull := NewConvexHull([]mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 2, 0}, {0, 0, -1}}, 3)

		assert.Equal(t, ShapeConvexHull, hull.Kind())
		assert.InDelta(t, 6.0, hull.BoundingRadius(), 1e-12)
		vecInDelta(t, mgl64.Vec3{0, 6, 0}, hull.Support(Up), 1e-12)
		vecInDelta(t, mgl64.Vec3{-3, 0, 0}, hull.Support(Right), 1e-12)
		vecInDelta(t, mgl64.Vec3{-3, 0, -3}, hull.LocalBounds().Min, 1e-12)
		vecInDelta(t, mgl64.Vec3{3, 6, 0}, hull.LocalBounds().Max, 1e-12)
	})

	t.Run("empty_panics", func(t *testing.T) {
		assert.Panics(t, func() { NewConvexHull(nil, 1) })
	})
}

func TestSphereInertia(t *testing.T) {
	vecInDelta(t, mgl64.Vec3{1.6, 1.6, 1.6}, NewSphere(2).LocalInertia(1), 1e-12)
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name      string
		direction mgl64.Vec3
		normal    mgl64.Vec3
		want      mgl64.Vec3
	}{
		{"head_on", Forward, Back, Back},
		{"grazing", Right, Back, Right},
		{"diagonal", mgl64.Vec3{1, 0, 1}, Back, mgl64.Vec3{1, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vecInDelta(t, tt.want, Reflect(tt.direction, tt.normal), 1e-12)
		})
	}
}

func TestNormalizeOrZero(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, NormalizeOrZero(mgl64.Vec3{}))
	vecInDelta(t, Up, NormalizeOrZero(mgl64.Vec3{0, 5, 0}), 1e-12)
}

func TestTransformInterpolate(t *testing.T) {
	from := IdentityTransform()
	to := NewTransform(mgl64.Vec3{10, 0, 0}, mgl64.QuatRotate(mgl64.DegToRad(90), Up))

	half := from.Interpolate(to, 0.5)
	vecInDelta(t, mgl64.Vec3{5, 0, 0}, half.Translation, 1e-12)
	assert.InDelta(t, mgl64.DegToRad(45), QuatAngle(from.Rotation, half.Rotation), 1e-9)

	assert.Equal(t, from, from.Interpolate(to, -1))
	assert.Equal(t, to, from.Interpolate(to, 2))
}

func TestTransformApply(t *testing.T) {
	tr := NewTransform(mgl64.Vec3{1, 2, 3}, mgl64.QuatRotate(mgl64.DegToRad(90), Up))

	// Rotating +Z by 90 degrees about +Y gives +X.
	vecInDelta(t, mgl64.Vec3{2, 2, 3}, tr.Apply(Forward), 1e-12)
	vecInDelta(t, Forward, tr.InverseDirection(tr.ApplyDirection(Forward)), 1e-12)
}
