package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Kind records which constructor produced a polygon. It is informational
// only; every kind shares the same algorithms.
type Kind int

const (
	KindBox Kind = iota + 1
	KindRegion
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindRegion:
		return "region"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Polygon is a simple polygon: one outer ring and zero or more holes.
// It is read-only once a constructor returns.
type Polygon struct {
	kind   Kind
	outer  orb.Ring
	inners []orb.Ring

	// Reference edges, only meaningful for KindBox.
	front Segment
	back  Segment
}

// NewPolygon builds and corrects a polygon from raw rings.
func NewPolygon(kind Kind, outer []Point, inners [][]Point) *Polygon {
	p := &Polygon{kind: kind}
	p.setOuter(outer)
	p.setInners(inners)
	p.correct()
	return p
}

func toRing(points []Point) orb.Ring {
	r := make(orb.Ring, 0, len(points)+1)
	for _, pt := range points {
		r = append(r, pt.orb())
	}
	return r
}

func fromRing(r orb.Ring) []Point {
	out := make([]Point, len(r))
	for i, o := range r {
		out[i] = fromOrb(o)
	}
	return out
}

func (p *Polygon) setOuter(outer []Point) {
	p.outer = toRing(outer)
}

func (p *Polygon) setInners(inners [][]Point) {
	p.inners = make([]orb.Ring, len(inners))
	for i, in := range inners {
		p.inners[i] = toRing(in)
	}
}

// correct closes every ring, drops repeated consecutive points and orients
// the outer ring counter-clockwise and holes clockwise.
func (p *Polygon) correct() {
	p.outer = correctRing(p.outer, orb.CCW)
	for i := range p.inners {
		p.inners[i] = correctRing(p.inners[i], orb.CW)
	}
}

func correctRing(r orb.Ring, want orb.Orientation) orb.Ring {
	if len(r) == 0 {
		return r
	}
	out := make(orb.Ring, 0, len(r)+1)
	for _, pt := range r {
		if len(out) > 0 && fromOrb(out[len(out)-1]).Equal(fromOrb(pt)) {
			continue
		}
		out = append(out, pt)
	}
	if !fromOrb(out[0]).Equal(fromOrb(out[len(out)-1])) {
		out = append(out, out[0])
	} else {
		out[len(out)-1] = out[0]
	}
	if o := out.Orientation(); o != 0 && o != want {
		out.Reverse()
	}
	return out
}

func (p *Polygon) orb() orb.Polygon {
	poly := make(orb.Polygon, 0, len(p.inners)+1)
	poly = append(poly, p.outer)
	return append(poly, p.inners...)
}

// rings returns the outer ring followed by every hole.
func (p *Polygon) rings() []orb.Ring {
	return append([]orb.Ring{p.outer}, p.inners...)
}

// Kind returns the constructor tag.
func (p *Polygon) Kind() Kind { return p.kind }

// Outer returns a copy of the corrected outer ring.
func (p *Polygon) Outer() []Point { return fromRing(p.outer) }

// Inners returns a copy of the corrected holes.
func (p *Polygon) Inners() [][]Point {
	out := make([][]Point, len(p.inners))
	for i, r := range p.inners {
		out[i] = fromRing(r)
	}
	return out
}

// Bound returns the bounding box of the outer ring.
func (p *Polygon) Bound() orb.Bound { return p.outer.Bound() }

// Clone returns a deep copy.
func (p *Polygon) Clone() *Polygon {
	c := *p
	c.outer = p.outer.Clone()
	c.inners = make([]orb.Ring, len(p.inners))
	for i, r := range p.inners {
		c.inners[i] = r.Clone()
	}
	return &c
}

// IsValid reports whether the rings form a simple, correctly nested
// geometry.
func (p *Polygon) IsValid() bool { return polygonValid(p) }

// Area returns the planar area with holes subtracted.
func (p *Polygon) Area() float64 {
	if len(p.outer) == 0 {
		return 0
	}
	return planar.Area(p.orb())
}

// IntersectionArea returns the total area shared by p and other, summed over
// every disjoint piece of the intersection.
func (p *Polygon) IntersectionArea(other *Polygon) float64 {
	if other == nil || len(p.outer) == 0 || len(other.outer) == 0 {
		return 0
	}
	if !p.Bound().Intersects(other.Bound()) {
		return 0
	}
	return intersectionArea(p, other)
}

// IoU returns intersection over union in [0, 1].
func (p *Polygon) IoU(other *Polygon) float64 {
	inter := p.IntersectionArea(other)
	if inter <= 0 {
		return 0
	}
	union := p.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// IoUTarget returns the percentage of other's area covered by p.
func (p *Polygon) IoUTarget(other *Polygon) int {
	inter := p.IntersectionArea(other)
	if inter <= 0 {
		return 0
	}
	return ratioPercent(inter, other.Area())
}

// IoUSelf returns the percentage of p's own area covered by the overlap
// with other.
func (p *Polygon) IoUSelf(other *Polygon) int {
	inter := p.IntersectionArea(other)
	if inter <= 0 {
		return 0
	}
	return ratioPercent(inter, p.Area())
}

func ratioPercent(num, den float64) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(num / den * 100))
}

// Within reports whether pt lies strictly inside p. Boundary points are
// excluded.
func (p *Polygon) Within(pt Point) bool {
	if len(p.outer) == 0 || p.onBoundary(pt) {
		return false
	}
	return planar.PolygonContains(p.orb(), pt.orb())
}

// Covered reports whether pt lies inside p or on its boundary.
func (p *Polygon) Covered(pt Point) bool {
	if len(p.outer) == 0 {
		return false
	}
	if p.onBoundary(pt) {
		return true
	}
	return planar.PolygonContains(p.orb(), pt.orb())
}

func (p *Polygon) onBoundary(pt Point) bool {
	for _, r := range p.rings() {
		for i := 0; i+1 < len(r); i++ {
			if pointSegmentDistance(pt, fromOrb(r[i]), fromOrb(r[i+1])) < boundaryTolerance {
				return true
			}
		}
	}
	return false
}

// FrontSegment returns the box's front edge.
func (p *Polygon) FrontSegment() Segment { return p.front }

// BackSegment returns the box's back edge.
func (p *Polygon) BackSegment() Segment { return p.back }

// FrontDistanceTo returns the distance between the front edge and seg.
func (p *Polygon) FrontDistanceTo(seg Segment) float64 { return p.front.DistanceTo(seg) }

// BackDistanceTo returns the distance between the back edge and seg.
func (p *Polygon) BackDistanceTo(seg Segment) float64 { return p.back.DistanceTo(seg) }

// String renders the rings as nested coordinate lists.
func (p *Polygon) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, r := range p.rings() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, pt := range r {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fromOrb(pt).String())
		}
		b.WriteString(")")
	}
	b.WriteString(")")
	return b.String()
}
