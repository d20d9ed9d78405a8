package geometry

import (
	"maps"
	"slices"
)

// Region is a polygon carrying a set of attribute values that are already
// multiplied by their resolution.
type Region struct {
	Polygon

	id         uint64
	init       bool
	attributes map[uint32]int32
}

// NewRegion builds a region. A length mismatch or a duplicated attribute
// leaves the attribute map empty and the region invalid; the geometry is
// still built.
func NewRegion(id uint64, outer []Point, inners [][]Point, attributes []uint32, values []int32) *Region {
	r := &Region{
		Polygon:    *NewPolygon(KindRegion, outer, inners),
		id:         id,
		attributes: map[uint32]int32{},
	}
	r.init = r.SetAttributesAndValues(attributes, values)
	return r
}

// SetAttributesAndValues replaces the attribute map. The existing map is
// kept when the inputs differ in length or repeat an attribute.
func (r *Region) SetAttributesAndValues(attributes []uint32, values []int32) bool {
	if len(attributes) != len(values) {
		return false
	}
	next := make(map[uint32]int32, len(attributes))
	for i, attr := range attributes {
		if _, dup := next[attr]; dup {
			return false
		}
		next[attr] = values[i]
	}
	r.attributes = next
	return true
}

// ID returns the region id.
func (r *Region) ID() uint64 { return r.id }

// AttributesAndValues returns parallel slices sorted by attribute.
func (r *Region) AttributesAndValues() ([]uint32, []int32) {
	attrs := make([]uint32, 0, len(r.attributes))
	for a := range r.attributes {
		attrs = append(attrs, a)
	}
	slices.Sort(attrs)
	values := make([]int32, len(attrs))
	for i, a := range attrs {
		values[i] = r.attributes[a]
	}
	return attrs, values
}

// HasAttribute reports whether attr is set.
func (r *Region) HasAttribute(attr uint32) bool {
	_, ok := r.attributes[attr]
	return ok
}

// Value returns the scaled value of attr.
func (r *Region) Value(attr uint32) (int32, bool) {
	v, ok := r.attributes[attr]
	return v, ok
}

// IsValid requires both valid geometry and a successful attribute set.
func (r *Region) IsValid() bool {
	return r.init && r.Polygon.IsValid()
}

// Clone returns a deep copy.
func (r *Region) Clone() *Region {
	return &Region{
		Polygon:    *r.Polygon.Clone(),
		id:         r.id,
		init:       r.init,
		attributes: maps.Clone(r.attributes),
	}
}
