package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// minRingPoints is the smallest closed ring with non-zero area.
const minRingPoints = 4

func polygonValid(p *Polygon) bool {
	if !ringValid(p.outer) {
		return false
	}
	for i, hole := range p.inners {
		if !ringValid(hole) {
			return false
		}
		if !ringInside(hole, p.outer) {
			return false
		}
		for _, other := range p.inners[:i] {
			if !ringsDisjoint(hole, other) {
				return false
			}
		}
	}
	return true
}

// ringValid checks closure, finiteness, non-zero area and simplicity.
func ringValid(r orb.Ring) bool {
	if len(r) < minRingPoints || !r.Closed() {
		return false
	}
	for _, pt := range r {
		if math.IsNaN(pt[0]) || math.IsNaN(pt[1]) || math.IsInf(pt[0], 0) || math.IsInf(pt[1], 0) {
			return false
		}
	}
	if r.Orientation() == 0 || math.Abs(planar.Area(r)) < AreaEpsilon {
		return false
	}
	n := len(r) - 1 // edges
	for i := 0; i < n; i++ {
		a, b := fromOrb(r[i]), fromOrb(r[i+1])
		for j := i + 1; j < n; j++ {
			c, d := fromOrb(r[j]), fromOrb(r[j+1])
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if !adjacent {
				if segmentsIntersect(a, b, c, d) {
					return false
				}
				continue
			}
			// Adjacent edges may only share their common vertex.
			if j == i+1 {
				if onSegment(a, c, d) || onSegment(d, a, b) {
					return false
				}
			} else if onSegment(b, c, d) || onSegment(c, a, b) {
				return false
			}
		}
	}
	return true
}

// ringInside reports whether inner lies within outer without crossing it.
// Isolated touching vertices are tolerated.
func ringInside(inner, outer orb.Ring) bool {
	if ringsCross(inner, outer) {
		return false
	}
	outerPoly := orb.Polygon{outer}
	interior := false
	for _, pt := range inner {
		onEdge := ringBoundary(outer, fromOrb(pt))
		if !onEdge && !planar.PolygonContains(outerPoly, pt) {
			return false
		}
		if !onEdge {
			interior = true
		}
	}
	return interior
}

// ringsDisjoint reports whether two holes neither cross nor contain one
// another.
func ringsDisjoint(a, b orb.Ring) bool {
	if ringsCross(a, b) {
		return false
	}
	pa := orb.Polygon{a}
	pb := orb.Polygon{b}
	for _, pt := range b {
		if !ringBoundary(a, fromOrb(pt)) && planar.PolygonContains(pa, pt) {
			return false
		}
	}
	for _, pt := range a {
		if !ringBoundary(b, fromOrb(pt)) && planar.PolygonContains(pb, pt) {
			return false
		}
	}
	return true
}

func ringsCross(a, b orb.Ring) bool {
	for i := 0; i+1 < len(a); i++ {
		p, q := fromOrb(a[i]), fromOrb(a[i+1])
		for j := 0; j+1 < len(b); j++ {
			if segmentsCross(p, q, fromOrb(b[j]), fromOrb(b[j+1])) {
				return true
			}
			// Collinear overlap of edges counts as crossing the boundary.
			if collinearOverlap(p, q, fromOrb(b[j]), fromOrb(b[j+1])) {
				return true
			}
		}
	}
	return false
}

// collinearOverlap reports whether ab and cd share a stretch of positive
// length.
func collinearOverlap(a, b, c, d Point) bool {
	if orientSign(a, b, c) != 0 || orientSign(a, b, d) != 0 {
		return false
	}
	ab := b.Sub(a)
	l2 := ab.NormSquare()
	if l2 == 0 {
		return false
	}
	t0 := c.Sub(a).Dot(ab) / l2
	t1 := d.Sub(a).Dot(ab) / l2
	lo, hi := math.Min(t0, t1), math.Max(t0, t1)
	return math.Min(hi, 1)-math.Max(lo, 0) > paramTolerance
}

func ringBoundary(r orb.Ring, pt Point) bool {
	for i := 0; i+1 < len(r); i++ {
		if onSegment(pt, fromOrb(r[i]), fromOrb(r[i+1])) {
			return true
		}
	}
	return false
}
