package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		outer  []Point
		attrs  []uint32
		values []int32
		valid  bool
		stored int
	}{
		{"valid", rectA, []uint32{1, 2}, []int32{10, 20}, true, 2},
		{"no attributes", rectA, nil, nil, true, 0},
		{"duplicate attribute", rectA, []uint32{1, 1}, []int32{10, 20}, false, 0},
		{"length mismatch", rectA, []uint32{1}, []int32{10, 20}, false, 0},
		{"invalid geometry", []Point{{0, 0}, {2, 2}, {2, 0}, {0, 2}}, []uint32{1}, []int32{1}, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegion(7, tt.outer, nil, tt.attrs, tt.values)
			assert.Equal(t, tt.valid, r.IsValid())
			assert.Equal(t, KindRegion, r.Kind())
			assert.Equal(t, uint64(7), r.ID())
			attrs, values := r.AttributesAndValues()
			assert.Len(t, attrs, tt.stored)
			assert.Len(t, values, tt.stored)
		})
	}
}

func TestRegionGeometryBuiltOnAttributeFailure(t *testing.T) {
	t.Parallel()

	r := NewRegion(1, rectA, nil, []uint32{3, 3}, []int32{1, 2})
	assert.False(t, r.IsValid())
	assert.True(t, r.Polygon.IsValid())
	assert.InDelta(t, 50.0, r.Area(), 1e-9)
}

func TestRegionAttributes(t *testing.T) {
	t.Parallel()

	r := NewRegion(1, rectA, nil, []uint32{4, 2}, []int32{40, 20})

	assert.True(t, r.HasAttribute(2))
	assert.False(t, r.HasAttribute(3))
	v, ok := r.Value(4)
	assert.True(t, ok)
	assert.Equal(t, int32(40), v)
	_, ok = r.Value(3)
	assert.False(t, ok)

	attrs, values := r.AttributesAndValues()
	assert.Equal(t, []uint32{2, 4}, attrs)
	assert.Equal(t, []int32{20, 40}, values)

	// A failed replace keeps the existing map.
	assert.False(t, r.SetAttributesAndValues([]uint32{5, 5}, []int32{1, 1}))
	assert.False(t, r.SetAttributesAndValues([]uint32{5}, nil))
	v, _ = r.Value(4)
	assert.Equal(t, int32(40), v)

	assert.True(t, r.SetAttributesAndValues([]uint32{5}, []int32{50}))
	assert.False(t, r.HasAttribute(4))
	v, _ = r.Value(5)
	assert.Equal(t, int32(50), v)
}

func TestRegionClone(t *testing.T) {
	t.Parallel()

	r := NewRegion(3, rectA, nil, []uint32{1}, []int32{1})
	c := r.Clone()
	assert.True(t, c.IsValid())
	assert.True(t, c.SetAttributesAndValues([]uint32{9}, []int32{9}))
	assert.True(t, r.HasAttribute(1))
	assert.False(t, r.HasAttribute(9))
}
