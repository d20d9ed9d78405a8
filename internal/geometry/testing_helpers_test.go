package geometry

import "math"

func drawCircle(center Point, radius float64, n int) []Point {
	circle := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		circle = append(circle, Point{Y: center.Y + radius*math.Cos(angle), Z: center.Z + radius*math.Sin(angle)})
	}
	return circle
}

// drawRect returns a clockwise rectangle so that construction has to
// re-orient it.
func drawRect(center Point, width, height float64) []Point {
	return []Point{
		{Y: center.Y - width/2, Z: center.Z - height/2},
		{Y: center.Y - width/2, Z: center.Z + height/2},
		{Y: center.Y + width/2, Z: center.Z + height/2},
		{Y: center.Y + width/2, Z: center.Z - height/2},
	}
}

func signedArea(ring []Point) float64 {
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i].Cross(ring[i+1])
	}
	return sum / 2
}

var (
	rectA = []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	rectB = []Point{{6, 0}, {12, 0}, {12, 3}, {6, 3}}
)
