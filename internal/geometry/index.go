package geometry

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// indexPad keeps degenerate bounds representable as R-tree rectangles.
const indexPad = 1e-9

// indexEntry is one keyed bounding box stored in an Index.
type indexEntry struct {
	id   uint64
	rect rtreego.Rect
}

// Bounds implements the rtreego.Spatial interface.
func (e *indexEntry) Bounds() rtreego.Rect { return e.rect }

// Index is an R-tree of outer-ring bounds keyed by id. It is not safe for
// concurrent use; owners guard it with their own lock.
type Index struct {
	tree    *rtreego.Rtree
	entries map[uint64]*indexEntry
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		tree:    rtreego.NewTree(2, 2, 8),
		entries: make(map[uint64]*indexEntry),
	}
}

// boundRect converts b to an R-tree rectangle. ok is false for an empty
// bound, such as that of an empty ring.
func boundRect(b orb.Bound) (rtreego.Rect, bool) {
	if b.IsEmpty() {
		return rtreego.Rect{}, false
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{b.Min[0] - indexPad, b.Min[1] - indexPad},
		[]float64{b.Max[0] - b.Min[0] + 2*indexPad, b.Max[1] - b.Min[1] + 2*indexPad},
	)
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}

// Insert stores or replaces the bound for id. An empty bound only removes
// the previous entry.
func (x *Index) Insert(id uint64, b orb.Bound) {
	x.Delete(id)
	rect, ok := boundRect(b)
	if !ok {
		return
	}
	e := &indexEntry{id: id, rect: rect}
	x.entries[id] = e
	x.tree.Insert(e)
}

// Delete removes id, reporting whether it was present.
func (x *Index) Delete(id uint64) bool {
	e, ok := x.entries[id]
	if !ok {
		return false
	}
	delete(x.entries, id)
	x.tree.Delete(e)
	return true
}

// Search returns the ids whose bounds intersect b.
func (x *Index) Search(b orb.Bound) []uint64 {
	rect, ok := boundRect(b)
	if !ok {
		return nil
	}
	hits := x.tree.SearchIntersect(rect)
	ids := make([]uint64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.(*indexEntry).id)
	}
	return ids
}

// Len returns the number of indexed ids.
func (x *Index) Len() int { return len(x.entries) }
