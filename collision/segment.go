package collision

import (
	"math"

	"github.com/golang/geo/r3"
)

// DistToLineSegment returns the distance from point p to line segment ab.
func DistToLineSegment(a, b, p r3.Vector) float64 {
	return p.Sub(ClosestPointOnSegment(a, b, p)).Norm()
}

// ClosestPointOnSegment returns the point on segment ab closest to p.
func ClosestPointOnSegment(a, b, p r3.Vector) r3.Vector {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t <= 0 {
		return a
	} else if t >= 1 {
		return b
	}
	return a.Add(ab.Mul(t))
}

// SegmentDistanceToSegment returns the minimum distance between segments
// p1q1 and p2q2.
func SegmentDistanceToSegment(p1, q1, p2, q2 r3.Vector) float64 {
	best1, best2 := ClosestPointsSegmentSegment(p1, q1, p2, q2)
	return best1.Sub(best2).Norm()
}

// ClosestPointsSegmentSegment returns the pair of closest points on segments
// p1q1 and p2q2. Implements the clamped parametric line solution from
// Ericson, Real-Time Collision Detection, 5.1.9.
func ClosestPointsSegmentSegment(p1, q1, p2, q2 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= floatEpsilon && e <= floatEpsilon:
		// both segments degenerate to points
		return p1, p2
	case a <= floatEpsilon:
		s = 0
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= floatEpsilon {
			t = 0
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > floatEpsilon {
				s = clamp01((b*f - c*e) / denom)
			} else {
				// segments are parallel, any s on the overlap works
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}

const floatEpsilon = 1e-12

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
