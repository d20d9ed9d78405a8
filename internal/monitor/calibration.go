package monitor

import (
	"math"

	"github.com/banshee-data/regionmonitor/internal/geometry"
	"github.com/banshee-data/regionmonitor/internal/monitoring"
	"gonum.org/v1/gonum/mat"
)

// identityTolerance is the per-coefficient tolerance of the identity test.
const identityTolerance = 1e-5

// Calibration corrects geometry from the sensor frame into the monitor's
// reference frame: p' = Rotation · (p - Translation).
type Calibration struct {
	Enabled     bool
	Rotation    [2]geometry.Point
	Translation geometry.Point
	// Heading is the yaw correction in hundredths of a radian.
	Heading int32
}

// Apply corrects one point. A disabled calibration returns p unchanged.
func (c Calibration) Apply(p geometry.Point) geometry.Point {
	if !c.Enabled {
		return p
	}
	t := p.Sub(c.Translation)
	return geometry.Point{Y: c.Rotation[0].Dot(t), Z: c.Rotation[1].Dot(t)}
}

// ApplyRing corrects every point of a ring.
func (c Calibration) ApplyRing(ring []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(ring))
	for i, p := range ring {
		out[i] = c.Apply(p)
	}
	return out
}

// ApplyRings corrects every point of every ring.
func (c Calibration) ApplyRings(rings [][]geometry.Point) [][]geometry.Point {
	out := make([][]geometry.Point, len(rings))
	for i, r := range rings {
		out[i] = c.ApplyRing(r)
	}
	return out
}

// parseCalibration extracts the correction from a row-major 4x4
// sensor-to-world transform T. ok is false when the rotation block is not a
// proper rotation within precision. An identity rotation with zero
// translation yields a disabled calibration.
func parseCalibration(T [16]float64, precision float64) (c Calibration, ok bool) {
	rotation := mat.NewDense(3, 3, []float64{
		T[0], T[1], T[2],
		T[4], T[5], T[6],
		T[8], T[9], T[10],
	})
	translation := geometry.Point{Y: T[7], Z: T[11]}

	det := mat.Det(rotation)
	if math.Abs(det-1) >= precision {
		monitoring.Warnf("rotation matrix is not valid: determinant %g", det)
		return Calibration{}, false
	}

	// T maps sensor to world; the correction needs world to sensor.
	var inverse mat.Dense
	if err := inverse.Inverse(rotation); err != nil {
		monitoring.Warnf("rotation matrix cannot be inverted: %v", err)
		return Calibration{}, false
	}

	if isIdentity(&inverse) && translation.IsZero() {
		monitoring.Logf("calibration matrix is identity, correction disabled")
		return Calibration{}, true
	}

	euler := eulerZYX(&inverse)
	c = Calibration{
		Enabled: true,
		Rotation: [2]geometry.Point{
			{Y: inverse.At(1, 1), Z: inverse.At(1, 2)},
			{Y: inverse.At(2, 1), Z: inverse.At(2, 2)},
		},
		Translation: translation,
		Heading:     int32(-euler[2] * 100),
	}
	monitoring.Logf("calibration enabled: rotation %v translation %v heading %d",
		c.Rotation, c.Translation, c.Heading)
	return c, true
}

func isIdentity(m mat.Matrix) bool {
	r, cols := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(m.At(i, j)-want) > identityTolerance {
				return false
			}
		}
	}
	return true
}

// eulerZYX decomposes a rotation as Rz(a0)·Ry(a1)·Rx(a2) with a0 in [0, π]
// and a1, a2 in [-π, π].
func eulerZYX(m mat.Matrix) [3]float64 {
	var res [3]float64
	res[0] = math.Atan2(m.At(1, 0), m.At(0, 0))
	c2 := math.Hypot(m.At(2, 2), m.At(2, 1))
	if res[0] < 0 {
		res[0] += math.Pi
		res[1] = math.Atan2(-m.At(2, 0), -c2)
	} else {
		res[1] = math.Atan2(-m.At(2, 0), c2)
	}
	s1, c1 := math.Sincos(res[0])
	res[2] = math.Atan2(s1*m.At(0, 2)-c1*m.At(1, 2), c1*m.At(1, 1)-s1*m.At(0, 1))
	return res
}
