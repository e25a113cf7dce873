package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	gjkMaxIterations = 64
	gjkRelativeTol   = 1e-8
	gjkOverlapTol    = 1e-12
	degenerateTol    = 1e-14
)

// DistanceResult describes the closest features of two convex shapes.
type DistanceResult struct {
	Overlap  bool
	Distance float64
	// PointA and PointB are the closest world points on each shape.
	PointA mgl64.Vec3
	PointB mgl64.Vec3
	// Normal is the unit direction from B towards A.
	Normal mgl64.Vec3
}

// supportPoint is a Minkowski difference vertex with the points it came from.
type supportPoint struct {
	w, a, b mgl64.Vec3
}

func minkowskiSupport(shapeA Shape, ta Transform, shapeB Shape, tb Transform, dir mgl64.Vec3) supportPoint {
	a := worldSupport(shapeA, ta, dir)
	b := worldSupport(shapeB, tb, dir.Mul(-1))
	return supportPoint{w: a.Sub(b), a: a, b: b}
}

// Distance computes the separation between two convex shapes using GJK.
func Distance(shapeA Shape, ta Transform, shapeB Shape, tb Transform) DistanceResult {
	dir := ta.Translation.Sub(tb.Translation)
	if dir.LenSqr() < degenerateTol {
		dir = Right
	}
	simplex := []supportPoint{minkowskiSupport(shapeA, ta, shapeB, tb, dir.Mul(-1))}
	weights := []float64{1}
	v := simplex[0].w

	for i := 0; i < gjkMaxIterations; i++ {
		vv := v.LenSqr()
		if vv <= gjkOverlapTol {
			return DistanceResult{Overlap: true}
		}

		w := minkowskiSupport(shapeA, ta, shapeB, tb, v.Mul(-1))
		if vv-v.Dot(w.w) <= gjkRelativeTol*vv || containsVertex(simplex, w) {
			break
		}

		simplex = append(simplex, w)
		v, simplex, weights = closestOnSimplex(simplex)
		if len(simplex) == 4 {
			return DistanceResult{Overlap: true}
		}
	}

	if v.LenSqr() <= gjkOverlapTol {
		return DistanceResult{Overlap: true}
	}

	var pa, pb mgl64.Vec3
	for i, sp := range simplex {
		pa = pa.Add(sp.a.Mul(weights[i]))
		pb = pb.Add(sp.b.Mul(weights[i]))
	}
	distance := v.Len()
	return DistanceResult{
		Distance: distance,
		PointA:   pa,
		PointB:   pb,
		Normal:   v.Mul(1 / distance),
	}
}

func containsVertex(simplex []supportPoint, sp supportPoint) bool {
	for _, s := range simplex {
		if s.w.Sub(sp.w).LenSqr() < degenerateTol {
			return true
		}
	}
	return false
}

// closestOnSimplex returns the point of the simplex closest to the origin,
// the smallest sub-simplex containing it, and its barycentric weights.
func closestOnSimplex(s []supportPoint) (mgl64.Vec3, []supportPoint, []float64) {
	switch len(s) {
	case 1:
		return s[0].w, s, []float64{1}
	case 2:
		return closestOnSegment(s[0], s[1])
	case 3:
		return closestOnTriangle(s[0], s[1], s[2])
	default:
		return closestOnTetrahedron(s[0], s[1], s[2], s[3])
	}
}

func closestOnSegment(a, b supportPoint) (mgl64.Vec3, []supportPoint, []float64) {
	ab := b.w.Sub(a.w)
	denom := ab.LenSqr()
	if denom < degenerateTol {
		return a.w, []supportPoint{a}, []float64{1}
	}
	t := -a.w.Dot(ab) / denom
	if t <= 0 {
		return a.w, []supportPoint{a}, []float64{1}
	}
	if t >= 1 {
		return b.w, []supportPoint{b}, []float64{1}
	}
	return a.w.Add(ab.Mul(t)), []supportPoint{a, b}, []float64{1 - t, t}
}

func closestOnTriangle(a, b, c supportPoint) (mgl64.Vec3, []supportPoint, []float64) {
	ab := b.w.Sub(a.w)
	ac := c.w.Sub(a.w)
	ap := a.w.Mul(-1)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a.w, []supportPoint{a}, []float64{1}
	}

	bp := b.w.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b.w, []supportPoint{b}, []float64{1}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		return a.w.Add(ab.Mul(t)), []supportPoint{a, b}, []float64{1 - t, t}
	}

	cp := c.w.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c.w, []supportPoint{c}, []float64{1}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		return a.w.Add(ac.Mul(t)), []supportPoint{a, c}, []float64{1 - t, t}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.w.Add(c.w.Sub(b.w).Mul(t)), []supportPoint{b, c}, []float64{1 - t, t}
	}

	sum := va + vb + vc
	if math.Abs(sum) < degenerateTol {
		// Collinear: fall back to the best edge.
		p1, s1, w1 := closestOnSegment(a, b)
		p2, s2, w2 := closestOnSegment(a, c)
		if p2.LenSqr() < p1.LenSqr() {
			return p2, s2, w2
		}
		return p1, s1, w1
	}
	v := vb / sum
	w := vc / sum
	point := a.w.Add(ab.Mul(v)).Add(ac.Mul(w))
	return point, []supportPoint{a, b, c}, []float64{1 - v - w, v, w}
}

func closestOnTetrahedron(a, b, c, d supportPoint) (mgl64.Vec3, []supportPoint, []float64) {
	faces := [4][4]supportPoint{
		{a, b, c, d},
		{a, c, d, b},
		{a, d, b, c},
		{b, d, c, a},
	}

	var (
		best        mgl64.Vec3
		bestSimplex []supportPoint
		bestWeights []float64
		bestDist    = math.Inf(1)
		outside     bool
	)
	for _, f := range faces {
		if !originOutsidePlane(f[0].w, f[1].w, f[2].w, f[3].w) {
			continue
		}
		outside = true
		p, s, w := closestOnTriangle(f[0], f[1], f[2])
		if dist := p.LenSqr(); dist < bestDist {
			best, bestSimplex, bestWeights, bestDist = p, s, w, dist
		}
	}
	if !outside {
		return mgl64.Vec3{}, []supportPoint{a, b, c, d}, []float64{0.25, 0.25, 0.25, 0.25}
	}
	return best, bestSimplex, bestWeights
}

// originOutsidePlane reports whether the origin and d lie on opposite sides
// of the plane through a, b, c.
func originOutsidePlane(a, b, c, d mgl64.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	signP := a.Mul(-1).Dot(n)
	signD := d.Sub(a).Dot(n)
	if math.Abs(signD) < degenerateTol {
		return true
	}
	return signP*signD < 0
}
