package physics

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Random is a seedable generator owned by whoever needs reproducible
// placement. It is not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a generator from seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Int returns a value in [min, max]. min > max panics.
func (r *Random) Int(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("physics: random int bounds inverted: %d > %d", min, max))
	}
	if min == max {
		return min
	}
	return min + r.rng.IntN(max-min+1)
}

// Float returns a value in [min, max). min > max or a non-finite bound panics.
func (r *Random) Float(min, max float64) float64 {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		panic("physics: random float bounds must be finite")
	}
	if min > max {
		panic(fmt.Sprintf("physics: random float bounds inverted: %g > %g", min, max))
	}
	if min == max {
		return min
	}
	return min + r.rng.Float64()*(max-min)
}

// Vec3InBox returns a point with every component in [min, max).
func (r *Random) Vec3InBox(min, max float64) mgl64.Vec3 {
	return mgl64.Vec3{r.Float(min, max), r.Float(min, max), r.Float(min, max)}
}

// UnitVector returns a uniformly distributed direction.
func (r *Random) UnitVector() mgl64.Vec3 {
	z := r.Float(-1, 1)
	phi := r.Float(0, 2*math.Pi)
	s := math.Sqrt(1 - z*z)
	return mgl64.Vec3{s * math.Cos(phi), s * math.Sin(phi), z}
}

// Orientation returns a random rotation about a random axis by up to
// maxDegrees.
func (r *Random) Orientation(maxDegrees float64) mgl64.Quat {
	angle := mgl64.DegToRad(r.Float(0, maxDegrees))
	return mgl64.QuatRotate(angle, r.UnitVector()).Normalize()
}
