package geometry

import "math"

// NewBox builds an oriented rectangle around center. length runs along the
// heading and width across it; spindle is the heading in hundredths of a
// degree, 0 along the Z axis, clockwise.
//
// The edge through corners 3 and 0 is tagged as the front and the edge
// through corners 1 and 2 as the back.
func NewBox(center Point, length, width float64, spindle uint32) *Polygon {
	rad := float64(spindle) * math.Pi / 18000
	c, s := math.Cos(rad), math.Sin(rad)
	cosY := c * width / 2
	cosZ := c * length / 2
	sinY := s * width / 2
	sinZ := s * length / 2

	corners := []Point{
		{Y: cosY + sinZ, Z: -sinY + cosZ},
		{Y: cosY - sinZ, Z: -sinY - cosZ},
		{Y: -cosY - sinZ, Z: sinY - cosZ},
		{Y: -cosY + sinZ, Z: sinY + cosZ},
	}
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}

	p := &Polygon{
		kind:  KindBox,
		front: Segment{A: corners[3], B: corners[0]},
		back:  Segment{A: corners[1], B: corners[2]},
	}
	p.setOuter(corners)
	p.correct()
	return p
}
