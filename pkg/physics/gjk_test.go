package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x, y, z float64) Transform {
	return NewTransform(mgl64.Vec3{x, y, z}, mgl64.QuatIdent())
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name         string
		shapeA       Shape
		ta           Transform
		shapeB       Shape
		tb           Transform
		wantOverlap  bool
		wantDistance float64
	}{
		{"separated_spheres", NewSphere(1), at(0, 0, 0), NewSphere(1), at(5, 0, 0), false, 3},
		{"overlapping_spheres", NewSphere(1), at(0, 0, 0), NewSphere(1), at(1.5, 0, 0), true, 0},
		{"capsule_side_sphere", NewCapsuleZ(0.5, 2), at(0, 0, 0), NewSphere(1), at(3, 0, 0.5), false, 1.5},
		{"capsule_tip_sphere", NewCapsuleZ(0.5, 2), at(0, 0, 0), NewSphere(1), at(0, 0, 4), false, 1.5},
		{"cylinder_cap_sphere", NewCylinderY(2, 2), at(0, 0, 0), NewSphere(1), at(0.5, 3, 0), false, 1},
		{"hull_face_sphere", unitCube(), at(0, 0, 0), NewSphere(0.5), at(0.2, 0.1, 2.5), false, 1},
		{"hull_inside_sphere", unitCube(), at(0, 0, 0), NewSphere(0.5), at(0.2, 0.1, 0.3), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.shapeA, tt.ta, tt.shapeB, tt.tb)
			assert.Equal(t, tt.wantOverlap, got.Overlap)
			if !tt.wantOverlap {
				assert.InDelta(t, tt.wantDistance, got.Distance, 1e-4)
				assert.InDelta(t, tt.wantDistance, got.PointA.Sub(got.PointB).Len(), 1e-4)
			}
		})
	}
}

func TestDistanceWitnessPoints(t *testing.T) {
	got := Distance(NewSphere(1), at(0, 0, 0), NewSphere(1), at(5, 0, 0))

	require.False(t, got.Overlap)
	vecInDelta(t, mgl64.Vec3{1, 0, 0}, got.PointA, 1e-6)
	vecInDelta(t, mgl64.Vec3{4, 0, 0}, got.PointB, 1e-6)
	vecInDelta(t, mgl64.Vec3{-1, 0, 0}, got.Normal, 1e-6)
}

func unitCube() *ConvexHull {
	var points []mgl64.Vec3
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				points = append(points, mgl64.Vec3{x, y, z})
			}
		}
	}
	return NewConvexHull(points, 1)
}

func TestConvexCast(t *testing.T) {
	tests := []struct {
		name         string
		from, to     Transform
		target       Transform
		wantHit      bool
		wantFraction float64
		wantNormal   mgl64.Vec3
	}{
		{"head_on", at(0, 0, 0), at(10, 0, 0), at(5, 0, 0), true, 0.3, mgl64.Vec3{-1, 0, 0}},
		{"passes_beside", at(0, 0, 0), at(10, 0, 0), at(5, 3, 0), false, 0, mgl64.Vec3{}},
		{"stops_short", at(0, 0, 0), at(2, 0, 0), at(5, 0, 0), false, 0, mgl64.Vec3{}},
		{"moving_away", at(0, 0, 0), at(-10, 0, 0), at(5, 0, 0), false, 0, mgl64.Vec3{}},
		{"overlap_closing", at(0, 0, 0), at(10, 0, 0), at(1, 0, 0), true, 0, mgl64.Vec3{-1, 0, 0}},
		{"overlap_separating", at(0, 0, 0), at(-10, 0, 0), at(1, 0, 0), false, 0, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := ConvexCast(NewSphere(1), tt.from, tt.to, NewSphere(1), tt.target)
			require.Equal(t, tt.wantHit, ok)
			if !tt.wantHit {
				return
			}
			assert.InDelta(t, tt.wantFraction, hit.Fraction, 1e-3)
			vecInDelta(t, tt.wantNormal, hit.Normal, 1e-3)
		})
	}
}

func TestConvexCastHitPoint(t *testing.T) {
	hit, ok := ConvexCast(NewSphere(1), at(0, 0, 0), at(10, 0, 0), NewSphere(1), at(5, 0, 0))

	require.True(t, ok)
	vecInDelta(t, mgl64.Vec3{4, 0, 0}, hit.Point, 1e-3)
}

func TestConvexCastWithRotation(t *testing.T) {
	capsule := NewCapsuleZ(0.5, 2)
	from := at(0, 0, 0)
	to := NewTransform(mgl64.Vec3{0, 0, 0.5}, mgl64.QuatRotate(mgl64.DegToRad(90), Up))

	// The capsule swings its tip through the sphere placed off to the side.
	_, ok := ConvexCast(capsule, from, to, NewSphere(0.5), at(1.2, 0, 0.6))
	assert.True(t, ok)
}
