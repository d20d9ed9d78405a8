package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the tolerance used for point equality and null-vector checks.
const Epsilon = 1e-6

var (
	// ErrZeroDivisor is returned when a point is divided by a near-zero coefficient.
	ErrZeroDivisor = errors.New("coefficient is null, cannot be used as divisor")
	// ErrNullVector is returned when a null vector is normalised.
	ErrNullVector = errors.New("null vector cannot be normalised")
)

// Point is a coordinate in the sensor's horizontal plane.
type Point struct {
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.Y, Y: p.Z} }

func fromVec(v r2.Vec) Point { return Point{Y: v.X, Z: v.Y} }

func (p Point) orb() orb.Point { return orb.Point{p.Y, p.Z} }

func fromOrb(o orb.Point) Point { return Point{Y: o[0], Z: o[1]} }

// Neg returns -p.
func (p Point) Neg() Point { return Point{Y: -p.Y, Z: -p.Z} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return fromVec(r2.Add(p.vec(), q.vec())) }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return fromVec(r2.Sub(p.vec(), q.vec())) }

// AddScalar adds s to both coordinates.
func (p Point) AddScalar(s float64) Point { return Point{Y: p.Y + s, Z: p.Z + s} }

// SubScalar subtracts s from both coordinates.
func (p Point) SubScalar(s float64) Point { return Point{Y: p.Y - s, Z: p.Z - s} }

// Scale returns p*f.
func (p Point) Scale(f float64) Point { return fromVec(r2.Scale(f, p.vec())) }

// Div returns p/coeff, refusing near-zero divisors.
func (p Point) Div(coeff float64) (Point, error) {
	if math.Abs(coeff) < Epsilon {
		return p, ErrZeroDivisor
	}
	return p.Scale(1 / coeff), nil
}

// Dot returns the scalar product.
func (p Point) Dot(q Point) float64 { return r2.Dot(p.vec(), q.vec()) }

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(q Point) float64 { return r2.Cross(p.vec(), q.vec()) }

// NormSquare returns |p|².
func (p Point) NormSquare() float64 { return r2.Norm2(p.vec()) }

// Norm returns |p|.
func (p Point) Norm() float64 { return r2.Norm(p.vec()) }

// IsZero reports whether |p| is below Epsilon.
func (p Point) IsZero() bool { return p.Norm() < Epsilon }

// Normalize returns the unit vector along p.
func (p Point) Normalize() (Point, error) {
	if p.IsZero() {
		return p, ErrNullVector
	}
	return fromVec(r2.Unit(p.vec())), nil
}

// DistanceTo returns the Euclidean distance to q. Distances below Epsilon
// collapse to zero.
func (p Point) DistanceTo(q Point) float64 {
	d := math.Hypot(p.Y-q.Y, p.Z-q.Z)
	if d < Epsilon {
		return 0
	}
	return d
}

// DistanceSquareTo returns the squared distance to q.
func (p Point) DistanceSquareTo(q Point) float64 {
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return dy*dy + dz*dz
}

// Equal reports whether both coordinates differ by less than Epsilon.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.Y-q.Y) < Epsilon && math.Abs(p.Z-q.Z) < Epsilon
}

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.Y, p.Z) }

// Segment is a directed line segment.
type Segment struct {
	A, B Point
}

// DistanceTo returns the minimum distance between two segments, zero when
// they intersect.
func (s Segment) DistanceTo(o Segment) float64 {
	if segmentsIntersect(s.A, s.B, o.A, o.B) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(s.A, o.A, o.B), pointSegmentDistance(s.B, o.A, o.B)),
		math.Min(pointSegmentDistance(o.A, s.A, s.B), pointSegmentDistance(o.B, s.A, s.B)),
	)
}

// pointSegmentDistance returns the distance from p to segment ab.
func pointSegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.NormSquare()
	if l2 == 0 {
		return math.Sqrt(p.DistanceSquareTo(a))
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Sqrt(p.DistanceSquareTo(a.Add(ab.Scale(t))))
}
