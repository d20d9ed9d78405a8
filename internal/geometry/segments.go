package geometry

import "math"

const (
	// orientTolerance scales the collinearity test by the squared edge lengths.
	orientTolerance = 1e-12
	// boundaryTolerance is the distance under which a point is on an edge.
	boundaryTolerance = 1e-9
	// paramTolerance trims split parameters that coincide with an endpoint.
	paramTolerance = 1e-12
)

// orientSign returns +1 when c is left of ab, -1 when right, 0 when collinear.
func orientSign(a, b, c Point) int {
	ab := b.Sub(a)
	ac := c.Sub(a)
	v := ab.Cross(ac)
	tol := orientTolerance * (ab.NormSquare() + ac.NormSquare())
	switch {
	case v > tol:
		return 1
	case v < -tol:
		return -1
	}
	return 0
}

// onSegment reports whether p lies on segment ab.
func onSegment(p, a, b Point) bool {
	return pointSegmentDistance(p, a, b) < boundaryTolerance
}

// segmentsIntersect reports whether segments ab and cd share any point.
func segmentsIntersect(a, b, c, d Point) bool {
	o1 := orientSign(a, b, c)
	o2 := orientSign(a, b, d)
	o3 := orientSign(c, d, a)
	o4 := orientSign(c, d, b)
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	return onSegment(c, a, b) || onSegment(d, a, b) || onSegment(a, c, d) || onSegment(b, c, d)
}

// segmentsCross reports whether ab and cd cross at a single interior point
// of both.
func segmentsCross(a, b, c, d Point) bool {
	return orientSign(a, b, c)*orientSign(a, b, d) < 0 && orientSign(c, d, a)*orientSign(c, d, b) < 0
}

// splitParams returns the parameters along ab, strictly inside (0, 1), at
// which cd touches or crosses ab.
func splitParams(a, b, c, d Point, dst []float64) []float64 {
	ab := b.Sub(a)
	l2 := ab.NormSquare()
	if l2 == 0 {
		return dst
	}
	param := func(p Point) float64 { return p.Sub(a).Dot(ab) / l2 }
	keep := func(t float64) {
		if t > paramTolerance && t < 1-paramTolerance {
			dst = append(dst, t)
		}
	}
	if onSegment(c, a, b) {
		keep(param(c))
	}
	if onSegment(d, a, b) {
		keep(param(d))
	}
	if segmentsCross(a, b, c, d) {
		cd := d.Sub(c)
		den := ab.Cross(cd)
		if math.Abs(den) > 0 {
			keep(c.Sub(a).Cross(cd) / den)
		}
	}
	return dst
}
