package roi

import (
	"slices"

	"github.com/banshee-data/regionmonitor/internal/geometry"
)

// DisjointSet is a keyed set of polygons with pairwise zero overlap.
// It is not safe for concurrent use.
type DisjointSet struct {
	polygons map[uint64]*geometry.Polygon
	index    *geometry.Index
}

// NewDisjointSet returns an empty set.
func NewDisjointSet() *DisjointSet {
	return &DisjointSet{
		polygons: make(map[uint64]*geometry.Polygon),
		index:    geometry.NewIndex(),
	}
}

// Add inserts or replaces the polygon for id. It fails, leaving the set
// unchanged, when the candidate is invalid or overlaps another member.
func (s *DisjointSet) Add(id uint64, outer []geometry.Point, inners [][]geometry.Point) bool {
	candidate := geometry.NewPolygon(geometry.KindPolygon, outer, inners)
	if !candidate.IsValid() {
		return false
	}

	prev, exists := s.polygons[id]
	if exists {
		s.remove(id)
	}
	if s.Overlapped(candidate) {
		if exists {
			s.put(id, prev)
		}
		return false
	}
	s.put(id, candidate)
	return true
}

func (s *DisjointSet) put(id uint64, p *geometry.Polygon) {
	s.polygons[id] = p
	s.index.Insert(id, p.Bound())
}

func (s *DisjointSet) remove(id uint64) {
	delete(s.polygons, id)
	s.index.Delete(id)
}

// Remove deletes id, reporting whether it existed.
func (s *DisjointSet) Remove(id uint64) bool {
	if _, ok := s.polygons[id]; !ok {
		return false
	}
	s.remove(id)
	return true
}

// candidates returns the members whose bounds meet p's bounds.
func (s *DisjointSet) candidates(p *geometry.Polygon) []*geometry.Polygon {
	ids := s.index.Search(p.Bound())
	out := make([]*geometry.Polygon, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.polygons[id])
	}
	return out
}

// Overlapped reports whether p shares a non-zero area with any member.
func (s *DisjointSet) Overlapped(p *geometry.Polygon) bool {
	for _, member := range s.candidates(p) {
		if member.IntersectionArea(p) > 0 {
			return true
		}
	}
	return false
}

// IoUTarget sums, over every member, the percentage of p covered by that
// member.
func (s *DisjointSet) IoUTarget(p *geometry.Polygon) int {
	sum := 0
	for _, member := range s.candidates(p) {
		sum += member.IoUTarget(p)
	}
	return sum
}

// Within reports whether pt is strictly inside any member.
func (s *DisjointSet) Within(pt geometry.Point) bool {
	for _, p := range s.polygons {
		if p.Within(pt) {
			return true
		}
	}
	return false
}

// Covered reports whether pt is inside or on the border of any member.
func (s *DisjointSet) Covered(pt geometry.Point) bool {
	for _, p := range s.polygons {
		if p.Covered(pt) {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no members.
func (s *DisjointSet) Empty() bool { return len(s.polygons) == 0 }

// Len returns the number of members.
func (s *DisjointSet) Len() int { return len(s.polygons) }

// IDs returns the member ids in ascending order.
func (s *DisjointSet) IDs() []uint64 {
	ids := make([]uint64, 0, len(s.polygons))
	for id := range s.polygons {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Polygon returns a copy of the member stored under id.
func (s *DisjointSet) Polygon(id uint64) (*geometry.Polygon, bool) {
	p, ok := s.polygons[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}
