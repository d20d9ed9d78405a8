package geometry

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// AreaEpsilon is the smallest area treated as a real overlap.
const AreaEpsilon = 1e-9

// edge is a directed ring edge; the polygon interior is on its left.
type edge struct {
	a, b Point
}

func polygonEdges(p *Polygon) []edge {
	var edges []edge
	for _, r := range p.rings() {
		for i := 0; i+1 < len(r); i++ {
			a, b := fromOrb(r[i]), fromOrb(r[i+1])
			if a.Equal(b) {
				continue
			}
			edges = append(edges, edge{a: a, b: b})
		}
	}
	return edges
}

// intersectionArea integrates x dy - y dx along the boundary of p ∩ q.
// That boundary is made of the pieces of p's edges inside q and the pieces
// of q's edges inside p. Pieces on a shared boundary belong to it once, and
// only when both edges run the same way.
func intersectionArea(p, q *Polygon) float64 {
	pe := polygonEdges(p)
	qe := polygonEdges(q)
	pq := q.orb()
	pp := p.orb()

	sum := boundaryIntegral(pe, qe, pq, true) + boundaryIntegral(qe, pe, pp, false)
	area := sum / 2
	if area < AreaEpsilon {
		return 0
	}
	return area
}

// boundaryIntegral sums the shoelace terms of the pieces of edges lying
// inside the polygon described by others/poly. keepShared selects whether
// same-direction pieces on the shared boundary are counted.
func boundaryIntegral(edges, others []edge, poly orb.Polygon, keepShared bool) float64 {
	var sum float64
	params := make([]float64, 0, 8)
	for _, e := range edges {
		params = params[:0]
		params = append(params, 0, 1)
		for _, o := range others {
			params = splitParams(e.a, e.b, o.a, o.b, params)
		}
		sort.Float64s(params)

		d := e.b.Sub(e.a)
		prev := e.a
		prevT := 0.0
		for _, t := range params[1:] {
			if t-prevT <= paramTolerance {
				continue
			}
			next := e.a.Add(d.Scale(t))
			if t == 1 {
				next = e.b
			}
			mid := prev.Add(next).Scale(0.5)
			if pieceInside(mid, d, others, poly, keepShared) {
				sum += prev.Cross(next)
			}
			prev, prevT = next, t
		}
	}
	return sum
}

func pieceInside(mid, dir Point, others []edge, poly orb.Polygon, keepShared bool) bool {
	for _, o := range others {
		if onSegment(mid, o.a, o.b) {
			return keepShared && dir.Dot(o.b.Sub(o.a)) > 0
		}
	}
	return planar.PolygonContains(poly, mid.orb())
}
