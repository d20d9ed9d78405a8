package roi

import "github.com/banshee-data/regionmonitor/internal/geometry"

// DefaultRate is the coverage percentage above which a detection counts as
// inside the ROI.
const DefaultRate = 50

// ROI is a DisjointSet used as an accept/reject filter. When interested,
// detections covered above the rate are useful; otherwise detections
// covered at or below it are.
type ROI struct {
	*DisjointSet

	interested bool
	rate       int
}

// NewROI returns an empty ROI.
func NewROI(interested bool, rate int) *ROI {
	return &ROI{
		DisjointSet: NewDisjointSet(),
		interested:  interested,
		rate:        rate,
	}
}

// Interested returns the interest flag.
func (r *ROI) Interested() bool { return r.interested }

// Rate returns the coverage threshold in percent.
func (r *ROI) Rate() int { return r.rate }

// IsUseful decides whether a detection polygon passes the filter.
func (r *ROI) IsUseful(p *geometry.Polygon) bool {
	above := r.IoUTarget(p) > r.rate
	return above == r.interested
}

// IsUsefulPoint decides whether a point passes the filter.
func (r *ROI) IsUsefulPoint(pt geometry.Point) bool {
	return r.Within(pt) == r.interested
}
