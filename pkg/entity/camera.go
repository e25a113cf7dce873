package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/physics"
)

// Camera is a look-at camera with a perspective lens.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64 // vertical, degrees
	Near     float64
	Far      float64
}

// NewCamera returns a camera at the origin looking down +Z.
func NewCamera() Camera {
	return Camera{
		Target: physics.Forward,
		Up:     physics.Up,
		FOV:    60,
		Near:   0.5,
		Far:    2000,
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Chase camera defaults.
const (
	DefaultCameraLerp      = 0.08
	DefaultCameraLookAhead = 20.0
	DefaultCameraMinDist   = 2.0
)

// DefaultCameraOffset places the camera behind, above and right of the ship.
var DefaultCameraOffset = mgl64.Vec3{-2.5, 3, -10}

// CameraArm trails a target with a lagging rotation. The offset direction
// and up vector are fixed in the target's frame; only the arm's rotation
// eases towards the target's.
type CameraArm struct {
	Distance    float64
	MinDistance float64
	MaxDistance float64

	baseDir  mgl64.Vec3
	baseUp   mgl64.Vec3
	rotation mgl64.Quat
	attached bool
}

// NewCameraArm creates an arm whose rest position is offset from the
// target, in the target's frame.
func NewCameraArm(offset mgl64.Vec3) *CameraArm {
	dir := physics.NormalizeOrZero(offset)
	up := physics.NormalizeOrZero(dir.Cross(physics.Right))
	if up == (mgl64.Vec3{}) {
		up = physics.Up
	}
	dist := offset.Len()
	return &CameraArm{
		Distance:    dist,
		MinDistance: DefaultCameraMinDist,
		MaxDistance: dist * 4,
		baseDir:     dir,
		baseUp:      up,
		rotation:    mgl64.QuatIdent(),
	}
}

// Rotation returns the arm's current, lagging rotation.
func (a *CameraArm) Rotation() mgl64.Quat { return a.rotation }

// Zoom changes the arm length by delta, clamped to the arm's limits.
func (a *CameraArm) Zoom(delta float64) {
	a.Distance = mgl64.Clamp(a.Distance+delta, a.MinDistance, a.MaxDistance)
}

// Follow eases the arm towards target's rotation by lerp and returns the
// camera for this frame. The first call snaps to the target.
func (a *CameraArm) Follow(target physics.Transform, lerp, lookAhead float64) Camera {
	goal := target.Rotation
	if !a.attached {
		a.rotation = goal
		a.attached = true
	} else {
		if a.rotation.Dot(goal) < 0 {
			goal = goal.Scale(-1)
		}
		a.rotation = mgl64.QuatNlerp(a.rotation, goal, mgl64.Clamp(lerp, 0, 1))
	}

	dist := mgl64.Clamp(a.Distance, a.MinDistance, a.MaxDistance)
	cam := NewCamera()
	cam.Position = target.Translation.Add(a.rotation.Rotate(a.baseDir).Mul(dist))
	cam.Up = a.rotation.Rotate(a.baseUp)
	cam.Target = target.Translation.Add(target.Rotation.Rotate(physics.Forward).Mul(lookAhead))
	return cam
}

// Reset makes the next Follow snap to its target.
func (a *CameraArm) Reset() { a.attached = false }
