package monitor

import (
	"fmt"
	"slices"
	"sync"

	"github.com/banshee-data/regionmonitor/internal/config"
	"github.com/banshee-data/regionmonitor/internal/geometry"
	"github.com/banshee-data/regionmonitor/internal/monitoring"
	"github.com/banshee-data/regionmonitor/internal/roi"
)

// Config holds the construction parameters of a Monitor.
type Config struct {
	// Resolution multiplies the raw value of attribute a by
	// Resolution[(a-1) % len(Resolution)].
	Resolution []int32
	// ROIInterested selects whether detections inside the ROI are useful.
	ROIInterested bool
	// ROIRate is the coverage percentage the ROI compares against.
	ROIRate int
	// ROIFlagSlot is the resolution slot that marks a region as ROI. With a
	// non-empty Resolution it must lie in [1, len(Resolution)); slot 0 holds
	// headings.
	ROIFlagSlot int
}

// DefaultConfig returns production-default monitor parameters.
func DefaultConfig() Config {
	return Config{
		Resolution:    append([]int32(nil), config.DefaultResolution...),
		ROIInterested: config.DefaultROIInterested,
		ROIRate:       config.DefaultROIRate,
		ROIFlagSlot:   config.DefaultROIFlagSlot,
	}
}

// ConfigFromFile derives a monitor Config from a loaded MonitorConfig.
func ConfigFromFile(c *config.MonitorConfig) Config {
	return Config{
		Resolution:    c.GetResolution(),
		ROIInterested: c.GetROIInterested(),
		ROIRate:       c.GetROIRate(),
		ROIFlagSlot:   c.GetROIFlagSlot(),
	}
}

// Related collects the attributes of every region overlapping a query box.
// The three slices are parallel: IoUs[i] is the overlap percentage of the
// region that contributed Attributes[i] and Values[i].
type Related struct {
	Attributes []uint32
	Values     []int32
	IoUs       []int32
}

// Monitor tracks attributed regions and the ROI and answers overlap queries.
// All methods are safe for concurrent use unless documented otherwise.
type Monitor struct {
	mu sync.Mutex

	resolution []int32
	roiSlot    int
	regions    map[uint64]*geometry.Region
	index      *geometry.Index
	roi        *roi.ROI
	calib      Calibration
}

// Validate checks the ROI flag slot against the resolution and the ROI
// rate, with the same rules as config.MonitorConfig.Validate.
func (c Config) Validate() error {
	if err := config.CheckROIParams(len(c.Resolution), c.ROIFlagSlot, c.ROIRate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// New creates a Monitor with no regions and calibration disabled. It
// rejects a Config that fails Validate.
func New(cfg Config) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Monitor{
		resolution: append([]int32(nil), cfg.Resolution...),
		roiSlot:    cfg.ROIFlagSlot,
		regions:    make(map[uint64]*geometry.Region),
		index:      geometry.NewIndex(),
		roi:        roi.NewROI(cfg.ROIInterested, cfg.ROIRate),
	}, nil
}

// NewFromConfig creates a Monitor from a loaded configuration and applies
// its calibration matrix, if any.
func NewFromConfig(c *config.MonitorConfig) (*Monitor, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	m, err := New(ConfigFromFile(c))
	if err != nil {
		return nil, err
	}
	if c.Calibration != nil {
		if !m.InitRTMatrix(c.Calibration.Matrix, c.GetCalibrationPrecision()) {
			return nil, fmt.Errorf("calibration matrix rejected: rotation block is not a proper rotation")
		}
	}
	return m, nil
}

func (m *Monitor) slot(attr uint32) int {
	return int((attr - 1) % uint32(len(m.resolution)))
}

// Add creates or replaces region id.
//
// Attributes falling in the ROI flag slot put the outline into the ROI
// instead of being stored; all others are scaled by their resolution slot
// (slot 0 values first go through the heading correction when calibration
// is enabled) and stored on the region.
//
// A length mismatch between attributes and values, or attributes on a
// monitor without resolution, is returned as an error without mutating
// anything. An ROI outline that is invalid or overlaps another ROI member is
// returned as ErrInvalidROI. An invalid region returns false and keeps the
// previous region for id.
func (m *Monitor) Add(id uint64, outer []geometry.Point, inners [][]geometry.Point, attributes []uint32, values []int32) (bool, error) {
	if len(attributes) != len(values) {
		return false, fmt.Errorf("region %d: %w: %d != %d", id, ErrAttributeMismatch, len(attributes), len(values))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(attributes) > 0 && len(m.resolution) == 0 {
		return false, fmt.Errorf("region %d: %w", id, ErrEmptyResolution)
	}

	isROI := false
	keep := make([]uint32, 0, len(attributes))
	scaled := make([]int32, 0, len(values))
	for i, attr := range attributes {
		slot := m.slot(attr)
		if slot == m.roiSlot {
			isROI = true
			continue
		}
		v := values[i]
		if slot == config.HeadingSlot && m.calib.Enabled {
			v = wrapHeading(v, m.calib.Heading)
		}
		keep = append(keep, attr)
		scaled = append(scaled, v*m.resolution[slot])
	}

	if isROI {
		if !m.addROILocked(id, outer, inners) {
			return false, fmt.Errorf("region %d: %w", id, ErrInvalidROI)
		}
	} else if m.roi.Remove(id) {
		monitoring.Logf("removed ROI attribute of region %d", id)
	}

	if len(keep) == 0 {
		return true, nil
	}

	if m.calib.Enabled {
		outer = m.calib.ApplyRing(outer)
		inners = m.calib.ApplyRings(inners)
	}
	region := geometry.NewRegion(id, outer, inners, keep, scaled)
	if !region.IsValid() {
		monitoring.Warnf("input region not valid, id %d", id)
		return false, nil
	}

	_, replaced := m.regions[id]
	m.regions[id] = region
	m.index.Insert(id, region.Bound())
	if replaced {
		monitoring.Logf("region replaced, id %d", id)
	} else {
		monitoring.Logf("region added, id %d", id)
	}
	return true, nil
}

// Remove deletes id from both the ROI and the region registry. It reports
// whether anything was removed.
func (m *Monitor) Remove(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := false
	if m.roi.Remove(id) {
		monitoring.Logf("ROI id %d removed", id)
		removed = true
	}
	if _, ok := m.regions[id]; ok {
		delete(m.regions, id)
		m.index.Delete(id)
		monitoring.Logf("region id %d removed", id)
		removed = true
	}
	if !removed {
		monitoring.Warnf("region id %d not found", id)
	}
	return removed
}

// FindRelatedMessage collects the attributes of every region overlapping
// box. Each region contributes all its attribute/value pairs tagged with
// the percentage of the region's own area covered by box, and increments
// flow[regionID]. Regions are visited in ascending id order. flow may be nil.
func (m *Monitor) FindRelatedMessage(box *geometry.Polygon, flow map[uint64]uint32) Related {
	var out Related

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.index.Search(box.Bound())
	slices.Sort(ids)
	for _, id := range ids {
		region := m.regions[id]
		rate := region.IoUSelf(box)
		if rate <= 0 {
			continue
		}
		if flow != nil {
			flow[id]++
		}
		attrs, values := region.AttributesAndValues()
		for i := range attrs {
			out.Attributes = append(out.Attributes, attrs[i])
			out.Values = append(out.Values, values[i])
			out.IoUs = append(out.IoUs, int32(rate))
		}
	}
	return out
}

// FindRelatedMessageBox builds the detection box and runs FindRelatedMessage.
func (m *Monitor) FindRelatedMessageBox(center geometry.Point, length, width float64, spindle uint32, flow map[uint64]uint32) Related {
	return m.FindRelatedMessage(geometry.NewBox(center, length, width, spindle), flow)
}

// IsUseful reports whether a detection polygon passes the ROI filter.
func (m *Monitor) IsUseful(p *geometry.Polygon) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roi.IsUseful(p)
}

// IsUsefulPoint reports whether a point passes the ROI filter.
func (m *Monitor) IsUsefulPoint(pt geometry.Point) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roi.IsUsefulPoint(pt)
}

// AddROI adds or replaces an ROI outline, applying the calibration first.
func (m *Monitor) AddROI(id uint64, outer []geometry.Point, inners [][]geometry.Point) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addROILocked(id, outer, inners)
}

func (m *Monitor) addROILocked(id uint64, outer []geometry.Point, inners [][]geometry.Point) bool {
	if m.calib.Enabled {
		outer = m.calib.ApplyRing(outer)
		inners = m.calib.ApplyRings(inners)
	}
	return m.roi.Add(id, outer, inners)
}

// RemoveROI removes an ROI outline.
func (m *Monitor) RemoveROI(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roi.Remove(id)
}

// InitRTMatrix installs the sensor extrinsics from a row-major 4x4
// sensor-to-world transform. Calibration is disabled first; it returns false
// when the rotation block's determinant is not within precision of 1. An
// identity transform is accepted but leaves calibration disabled. Regions
// already stored are not corrected retroactively.
func (m *Monitor) InitRTMatrix(matrix [16]float64, precision float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calib = Calibration{}
	c, ok := parseCalibration(matrix, precision)
	if !ok {
		return false
	}
	m.calib = c
	return true
}

// RotatTrans corrects one point with the current calibration.
func (m *Monitor) RotatTrans(p geometry.Point) geometry.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calib.Apply(p)
}

// RotatTransRing corrects a ring with the current calibration.
func (m *Monitor) RotatTransRing(ring []geometry.Point) []geometry.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calib.ApplyRing(ring)
}

// RotatTransRings corrects a set of rings with the current calibration.
func (m *Monitor) RotatTransRings(rings [][]geometry.Point) [][]geometry.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calib.ApplyRings(rings)
}

// ComputeHeading adds the calibration heading to angle (hundredths of a
// radian) and wraps the result into [0, 628).
func (m *Monitor) ComputeHeading(angle int32) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return wrapHeading(angle, m.calib.Heading)
}

// Region returns a copy of region id.
func (m *Monitor) Region(id uint64) (*geometry.Region, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regions[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Background returns the corrected outer ring of every region, in ascending
// id order. The first corner is repeated at the end of each ring.
func (m *Monitor) Background() [][]geometry.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]geometry.Point, 0, len(m.regions))
	ids := make([]uint64, 0, len(m.regions))
	for id := range m.regions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, m.regions[id].Outer())
	}
	return out
}

// Resolution returns a copy of the resolution vector. Not synchronised;
// the vector never changes after construction.
func (m *Monitor) Resolution() []int32 {
	return append([]int32(nil), m.resolution...)
}

// RegionMap returns copies of every stored region. Not synchronised: debug
// only, never call concurrently with Add or Remove.
func (m *Monitor) RegionMap() map[uint64]*geometry.Region {
	out := make(map[uint64]*geometry.Region, len(m.regions))
	for id, r := range m.regions {
		out[id] = r.Clone()
	}
	return out
}

// Calibration returns the current calibration.
func (m *Monitor) Calibration() Calibration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calib
}

// NeedRT reports whether incoming geometry is being corrected.
func (m *Monitor) NeedRT() bool { return m.Calibration().Enabled }

// Rotation returns the two rows of the correction's 2x2 rotation block.
func (m *Monitor) Rotation() [2]geometry.Point { return m.Calibration().Rotation }

// Translation returns the correction's translation.
func (m *Monitor) Translation() geometry.Point { return m.Calibration().Translation }

// Heading returns the correction's heading in hundredths of a radian.
func (m *Monitor) Heading() int32 { return m.Calibration().Heading }

// ROIReady reports whether the ROI has at least one member.
func (m *Monitor) ROIReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.roi.Empty()
}

// ROIIDs returns the ROI member ids in ascending order.
func (m *Monitor) ROIIDs() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roi.IDs()
}

// ROIPolygon returns a copy of ROI member id.
func (m *Monitor) ROIPolygon(id uint64) (*geometry.Polygon, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roi.Polygon(id)
}
