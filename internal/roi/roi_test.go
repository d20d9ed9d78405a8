package roi

import (
	"math"
	"testing"

	"github.com/banshee-data/regionmonitor/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawCircle(center geometry.Point, radius float64, n int) []geometry.Point {
	circle := make([]geometry.Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		circle = append(circle, geometry.Point{Y: center.Y + radius*math.Cos(angle), Z: center.Z + radius*math.Sin(angle)})
	}
	return circle
}

func drawRect(center geometry.Point, width, height float64) []geometry.Point {
	return []geometry.Point{
		{Y: center.Y - width/2, Z: center.Z - height/2},
		{Y: center.Y - width/2, Z: center.Z + height/2},
		{Y: center.Y + width/2, Z: center.Z + height/2},
		{Y: center.Y + width/2, Z: center.Z - height/2},
	}
}

func polygon(outer []geometry.Point, inners ...[]geometry.Point) *geometry.Polygon {
	return geometry.NewPolygon(geometry.KindPolygon, outer, inners)
}

func TestDisjointSetAdd(t *testing.T) {
	t.Parallel()

	t.Run("valid polygon", func(t *testing.T) {
		s := NewDisjointSet()
		assert.True(t, s.Add(0, drawCircle(geometry.Point{}, 20, 100), [][]geometry.Point{drawCircle(geometry.Point{Y: 5, Z: 5}, 5, 50)}))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("invalid polygon", func(t *testing.T) {
		s := NewDisjointSet()
		assert.False(t, s.Add(0, drawCircle(geometry.Point{}, 20, 100), [][]geometry.Point{drawCircle(geometry.Point{Y: 10}, 20, 100)}))
		assert.True(t, s.Empty())
	})

	t.Run("overlap rejected and set unchanged", func(t *testing.T) {
		s := NewDisjointSet()
		first := drawRect(geometry.Point{}, 10, 10)
		require.True(t, s.Add(1, first, nil))

		overlapping := drawRect(geometry.Point{Y: 4}, 10, 10)
		assert.False(t, s.Add(2, overlapping, nil))
		assert.Equal(t, []uint64{1}, s.IDs())
		assert.True(t, s.Overlapped(polygon(overlapping)))

		got, ok := s.Polygon(1)
		require.True(t, ok)
		assert.InDelta(t, 1.0, got.IoU(polygon(first)), 1e-9)
	})

	t.Run("touching members allowed", func(t *testing.T) {
		s := NewDisjointSet()
		require.True(t, s.Add(1, drawRect(geometry.Point{}, 10, 10), nil))
		assert.True(t, s.Add(2, drawRect(geometry.Point{Y: 10}, 10, 10), nil))
		assert.True(t, s.Add(3, drawRect(geometry.Point{Y: 10, Z: 10}, 10, 10), nil))
		assert.Equal(t, 3, s.Len())
	})

	t.Run("idempotent re-add", func(t *testing.T) {
		s := NewDisjointSet()
		rect := drawRect(geometry.Point{}, 10, 10)
		assert.True(t, s.Add(1, rect, nil))
		assert.True(t, s.Add(1, rect, nil))
		assert.Equal(t, 1, s.Len())
		got, _ := s.Polygon(1)
		assert.InDelta(t, 100.0, got.Area(), 1e-9)
	})

	t.Run("replace rolls back on overlap", func(t *testing.T) {
		s := NewDisjointSet()
		a := drawRect(geometry.Point{}, 10, 10)
		b := drawRect(geometry.Point{Y: 20}, 10, 10)
		require.True(t, s.Add(1, a, nil))
		require.True(t, s.Add(2, b, nil))

		assert.False(t, s.Add(1, drawRect(geometry.Point{Y: 15}, 10, 10), nil))
		got, ok := s.Polygon(1)
		require.True(t, ok)
		assert.InDelta(t, 1.0, got.IoU(polygon(a)), 1e-9)

		// Overlapping only the member being replaced is fine.
		shifted := drawRect(geometry.Point{Y: 2}, 10, 10)
		assert.True(t, s.Add(1, shifted, nil))
		got, _ = s.Polygon(1)
		assert.InDelta(t, 1.0, got.IoU(polygon(shifted)), 1e-9)
		assert.False(t, s.Within(geometry.Point{Y: -4}))
	})
}

func TestDisjointSetNeverOverlaps(t *testing.T) {
	t.Parallel()

	s := NewDisjointSet()
	// Walk a grid of squares of varying size; many candidates collide.
	for i := 0; i < 60; i++ {
		y := float64((i * 7) % 23)
		z := float64((i * 11) % 17)
		side := float64(2 + i%5)
		id := uint64(i % 13)
		if i%9 == 0 {
			s.Remove(id)
			continue
		}
		s.Add(id, drawRect(geometry.Point{Y: y, Z: z}, side, side), nil)
	}

	ids := s.IDs()
	require.NotEmpty(t, ids)
	for i, a := range ids {
		pa, _ := s.Polygon(a)
		for _, b := range ids[i+1:] {
			pb, _ := s.Polygon(b)
			assert.Equal(t, 0.0, pa.IntersectionArea(pb), "members %d and %d overlap", a, b)
		}
	}
}

func TestDisjointSetRemove(t *testing.T) {
	t.Parallel()

	s := NewDisjointSet()
	assert.True(t, s.Empty())
	require.True(t, s.Add(0, drawCircle(geometry.Point{}, 20, 100), [][]geometry.Point{drawCircle(geometry.Point{}, 10, 100)}))
	assert.False(t, s.Empty())
	assert.False(t, s.Remove(1))
	assert.True(t, s.Remove(0))
	assert.True(t, s.Empty())
	assert.False(t, s.Remove(0))

	// The slot is free again.
	assert.True(t, s.Add(5, drawRect(geometry.Point{}, 4, 4), nil))
}

func TestDisjointSetContainment(t *testing.T) {
	t.Parallel()

	t.Run("within", func(t *testing.T) {
		s := NewDisjointSet()
		pt := geometry.Point{Y: 78, Z: 83}
		assert.False(t, s.Within(pt))
		require.True(t, s.Add(0, drawCircle(geometry.Point{}, 20, 100), nil))
		assert.False(t, s.Within(pt))
		assert.True(t, s.Within(geometry.Point{Y: 5, Z: 15}))
	})

	t.Run("covered", func(t *testing.T) {
		s := NewDisjointSet()
		pt := geometry.Point{Y: 85, Z: 91}
		assert.False(t, s.Covered(pt))
		require.True(t, s.Add(0, drawRect(geometry.Point{Y: 13, Z: 71}, 23, 37), nil))
		assert.False(t, s.Covered(pt))
		assert.True(t, s.Covered(geometry.Point{Y: 15, Z: 73}))
		assert.True(t, s.Covered(geometry.Point{Y: 1.5, Z: 89.5}), "corner")
		assert.True(t, s.Covered(geometry.Point{Y: 24.5, Z: 79}), "edge")
		assert.False(t, s.Within(geometry.Point{Y: 24.5, Z: 79}))
	})
}

func TestDisjointSetOverlapped(t *testing.T) {
	t.Parallel()

	s := NewDisjointSet()
	require.True(t, s.Add(0, drawCircle(geometry.Point{}, 20, 100), nil))
	assert.True(t, s.Overlapped(polygon(drawCircle(geometry.Point{Y: -10}, 20, 100), drawCircle(geometry.Point{Y: -10}, 5, 50))))
	assert.False(t, s.Overlapped(polygon(drawRect(geometry.Point{Y: 100}, 5, 5))))
}

func TestDisjointSetIoUTarget(t *testing.T) {
	t.Parallel()

	s := NewDisjointSet()
	require.True(t, s.Add(0, drawRect(geometry.Point{}, 40, 30), [][]geometry.Point{drawRect(geometry.Point{}, 10, 10)}))
	assert.Equal(t, 67, s.IoUTarget(polygon(drawRect(geometry.Point{}, 20, 15))))

	// Two members each covering half of the target sum up.
	split := NewDisjointSet()
	require.True(t, split.Add(1, drawRect(geometry.Point{Y: -5}, 10, 10), nil))
	require.True(t, split.Add(2, drawRect(geometry.Point{Y: 5}, 10, 10), nil))
	assert.Equal(t, 100, split.IoUTarget(polygon(drawRect(geometry.Point{}, 10, 4))))
}

func TestROIIsUseful(t *testing.T) {
	t.Parallel()

	outer := drawRect(geometry.Point{}, 40, 30)
	hole := drawRect(geometry.Point{}, 10, 10)

	t.Run("interested above rate", func(t *testing.T) {
		r := NewROI(true, 50)
		require.True(t, r.Add(0, outer, [][]geometry.Point{hole}))
		assert.True(t, r.IsUseful(polygon(drawRect(geometry.Point{}, 20, 15))))
		assert.False(t, r.IsUseful(polygon(drawRect(geometry.Point{}, 5, 5))))
		assert.True(t, r.Interested())
		assert.Equal(t, 50, r.Rate())
	})

	t.Run("not interested below rate", func(t *testing.T) {
		r := NewROI(false, 50)
		require.True(t, r.Add(0, outer, [][]geometry.Point{hole}))
		assert.True(t, r.IsUseful(polygon(drawRect(geometry.Point{}, 5, 5))))
		assert.False(t, r.IsUseful(polygon(drawRect(geometry.Point{}, 20, 15))))
	})

	t.Run("rate is exclusive", func(t *testing.T) {
		r := NewROI(true, 50)
		require.True(t, r.Add(0, drawRect(geometry.Point{}, 10, 10), nil))
		// exactly half of the target lies inside
		assert.False(t, r.IsUseful(polygon(drawRect(geometry.Point{Y: 5}, 10, 10))))
	})

	t.Run("points", func(t *testing.T) {
		notInterested := NewROI(false, 50)
		require.True(t, notInterested.Add(0, outer, [][]geometry.Point{hole}))
		assert.True(t, notInterested.IsUsefulPoint(geometry.Point{}))
		assert.False(t, notInterested.IsUsefulPoint(geometry.Point{Y: 10}))

		interested := NewROI(true, DefaultRate)
		require.True(t, interested.Add(0, outer, [][]geometry.Point{hole}))
		assert.False(t, interested.IsUsefulPoint(geometry.Point{}))
		assert.True(t, interested.IsUsefulPoint(geometry.Point{Y: 10}))
	})
}
