package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-flight/pkg/physics"
)

func TestNewCameraArm(t *testing.T) {
	arm := NewCameraArm(DefaultCameraOffset)

	assert.InDelta(t, DefaultCameraOffset.Len(), arm.Distance, 1e-12)
	assert.Equal(t, DefaultCameraMinDist, arm.MinDistance)
	assert.InDelta(t, 1, arm.baseDir.Len(), 1e-12)
	assert.InDelta(t, 1, arm.baseUp.Len(), 1e-12)
	assert.InDelta(t, 0, arm.baseUp.Dot(arm.baseDir), 1e-12, "up is perpendicular to the arm")
	assert.Greater(t, arm.baseUp.Y(), 0.0)
	assert.Greater(t, DefaultCameraOffset.Dot(physics.Right), 0.0, "camera sits over the right shoulder")
}

func TestCameraArm_FollowAtRest(t *testing.T) {
	arm := NewCameraArm(DefaultCameraOffset)
	target := physics.NewTransform(mgl64.Vec3{10, 0, 0}, mgl64.QuatIdent())

	cam := arm.Follow(target, DefaultCameraLerp, DefaultCameraLookAhead)

	vecInDelta(t, target.Translation.Add(DefaultCameraOffset), cam.Position, 1e-9)
	vecInDelta(t, mgl64.Vec3{10, 0, 20}, cam.Target, 1e-9)
	assert.Greater(t, cam.Up.Y(), 0.0)
}

func TestCameraArm_LagsBehindRotation(t *testing.T) {
	arm := NewCameraArm(DefaultCameraOffset)
	arm.Follow(physics.IdentityTransform(), DefaultCameraLerp, DefaultCameraLookAhead)

	turned := mgl64.QuatRotate(math.Pi/2, physics.Up)
	target := physics.NewTransform(mgl64.Vec3{}, turned)

	arm.Follow(target, DefaultCameraLerp, DefaultCameraLookAhead)
	first := physics.QuatAngle(arm.Rotation(), turned)
	assert.Greater(t, first, 0.0)
	assert.Less(t, first, math.Pi/2)

	for i := 0; i < 200; i++ {
		arm.Follow(target, DefaultCameraLerp, DefaultCameraLookAhead)
	}
	assert.InDelta(t, 0, physics.QuatAngle(arm.Rotation(), turned), 1e-3)
}

func TestCameraArm_LooksAlongShipNose(t *testing.T) {
	arm := NewCameraArm(DefaultCameraOffset)
	arm.Follow(physics.IdentityTransform(), DefaultCameraLerp, DefaultCameraLookAhead)

	turned := physics.NewTransform(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, physics.Up))
	cam := arm.Follow(turned, DefaultCameraLerp, DefaultCameraLookAhead)

	vecInDelta(t, mgl64.Vec3{20, 0, 0}, cam.Target, 1e-9)
}

func TestCameraArm_Zoom(t *testing.T) {
	arm := NewCameraArm(DefaultCameraOffset)

	arm.Zoom(-1000)
	assert.Equal(t, arm.MinDistance, arm.Distance)
	arm.Zoom(1e6)
	assert.Equal(t, arm.MaxDistance, arm.Distance)

	arm.Reset()
	cam := arm.Follow(physics.IdentityTransform(), 0, 0)
	assert.InDelta(t, arm.MaxDistance, cam.Position.Len(), 1e-9)
}

func TestCamera_Matrices(t *testing.T) {
	cam := NewCamera()
	cam.Position = mgl64.Vec3{0, 0, -10}
	cam.Target = mgl64.Vec3{}

	view := cam.View()
	origin := view.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -10, origin.Z(), 1e-9, "target lies ahead on the view axis")

	proj := cam.Projection(16.0 / 9.0)
	clip := proj.Mul4x1(origin)
	assert.Greater(t, clip.W(), 0.0)
}
