package physics

import "github.com/go-gl/mathgl/mgl64"

const (
	castMaxIterations = 64
	// castTolerance is the gap at which a cast counts as touching.
	castTolerance = 1e-3
)

// CastResult is the outcome of a convex cast.
type CastResult struct {
	Fraction float64
	Point    mgl64.Vec3 // on the target
	Normal   mgl64.Vec3 // away from the target
}

// ConvexCast sweeps shape from one transform to another against a fixed
// target using conservative advancement. An initial overlap only counts as a
// hit when the motion closes on the target.
func ConvexCast(shape Shape, from, to Transform, target Shape, targetTransform Transform) (CastResult, bool) {
	motion := to.Translation.Sub(from.Translation)
	angularBound := QuatAngle(from.Rotation, to.Rotation) * shape.BoundingRadius()

	fraction := 0.0
	var last DistanceResult
	for i := 0; i < castMaxIterations; i++ {
		current := from.Interpolate(to, fraction)
		result := Distance(shape, current, target, targetTransform)

		if result.Overlap {
			if i > 0 {
				return CastResult{Fraction: fraction, Point: last.PointB, Normal: last.Normal}, true
			}
			normal := NormalizeOrZero(from.Translation.Sub(targetTransform.Translation))
			if normal == (mgl64.Vec3{}) {
				normal = NormalizeOrZero(motion.Mul(-1))
			}
			if normal == (mgl64.Vec3{}) || motion.Dot(normal) >= 0 {
				return CastResult{}, false
			}
			point := worldSupport(target, targetTransform, normal)
			return CastResult{Fraction: 0, Point: point, Normal: normal}, true
		}
		last = result

		closing := -motion.Dot(result.Normal) + angularBound
		if result.Distance <= castTolerance {
			if closing <= Epsilon {
				return CastResult{}, false
			}
			return CastResult{Fraction: fraction, Point: result.PointB, Normal: result.Normal}, true
		}
		if closing <= Epsilon {
			return CastResult{}, false
		}

		fraction += result.Distance / closing
		if fraction > 1 {
			return CastResult{}, false
		}
	}
	return CastResult{}, false
}

// SweepResult is the closest hit reported by World.SweepConvex.
type SweepResult struct {
	Object   CollisionObject
	Fraction float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

type sweepOptions struct {
	ignore []CollisionObject
}

// SweepOption configures a sweep query.
type SweepOption func(*sweepOptions)

// IgnoreObject excludes objects from a sweep, typically the caster's own proxy.
func IgnoreObject(objects ...CollisionObject) SweepOption {
	return func(o *sweepOptions) {
		o.ignore = append(o.ignore, objects...)
	}
}

func (o *sweepOptions) ignored(obj CollisionObject) bool {
	for _, ig := range o.ignore {
		if ig == obj {
			return true
		}
	}
	return false
}

// sweptBounds encloses a shape over a linear sweep.
func sweptBounds(shape Shape, from, to Transform) AABB {
	r := shape.BoundingRadius()
	return SphereAABB(from.Translation, r).Union(SphereAABB(to.Translation, r))
}

// closestHit keeps the lowest fraction seen.
func closestHit(best SweepResult, found bool, candidate SweepResult) (SweepResult, bool) {
	if !found || candidate.Fraction < best.Fraction {
		return candidate, true
	}
	return best, found
}
