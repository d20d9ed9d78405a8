package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/regionmonitor/internal/fsutil"
)

// DefaultConfigPath is the path to the canonical monitor defaults file.
const DefaultConfigPath = "config/monitor.defaults.json"

// Defaults applied by the Get* accessors when a field is omitted.
const (
	DefaultROIInterested        = true
	DefaultROIRate              = 50
	DefaultROIFlagSlot          = 8
	DefaultCalibrationPrecision = 1e-3
)

// DefaultResolution scales attribute slots 0..9.
var DefaultResolution = []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// MonitorConfig represents the root configuration of a region monitor.
type MonitorConfig struct {
	// Resolution multiplies the raw value of attribute a by
	// Resolution[(a-1) % len(Resolution)].
	Resolution []int32 `json:"resolution,omitempty"`

	// ROI filter params
	ROIInterested *bool `json:"roi_interested,omitempty"`
	ROIRate       *int  `json:"roi_rate,omitempty"`
	// ROIFlagSlot is the resolution slot whose attributes mark a region as
	// part of the ROI instead of storing a value.
	ROIFlagSlot *int `json:"roi_flag_slot,omitempty"`

	// Sensor extrinsics (optional)
	Calibration *CalibrationConfig `json:"calibration,omitempty"`
}

// CalibrationConfig holds a row-major 4x4 sensor-to-world transform.
type CalibrationConfig struct {
	Matrix    [16]float64 `json:"matrix"`
	Precision *float64    `json:"precision,omitempty"`
}

func ptrBool(v bool) *bool { return &v }
func ptrInt(v int) *int    { return &v }

// EmptyMonitorConfig returns a MonitorConfig with all fields unset.
func EmptyMonitorConfig() *MonitorConfig {
	return &MonitorConfig{}
}

// DefaultMonitorConfig returns a MonitorConfig with every default filled in.
func DefaultMonitorConfig() *MonitorConfig {
	return &MonitorConfig{
		Resolution:    append([]int32(nil), DefaultResolution...),
		ROIInterested: ptrBool(DefaultROIInterested),
		ROIRate:       ptrInt(DefaultROIRate),
		ROIFlagSlot:   ptrInt(DefaultROIFlagSlot),
	}
}

// LoadMonitorConfig loads a MonitorConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Omitted fields
// fall back to the Get* defaults.
func LoadMonitorConfig(path string) (*MonitorConfig, error) {
	return LoadMonitorConfigFS(fsutil.OSFileSystem{}, path)
}

// LoadMonitorConfigFS is LoadMonitorConfig reading through fsys.
func LoadMonitorConfigFS(fsys fsutil.FileSystem, path string) (*MonitorConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyMonitorConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file cannot
// be loaded, intended for test setup.
func MustLoadDefaultConfig() *MonitorConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadMonitorConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *MonitorConfig) Validate() error {
	if c.Resolution != nil && len(c.Resolution) == 0 {
		return fmt.Errorf("resolution must not be empty when set")
	}

	if err := CheckROIParams(len(c.GetResolution()), c.GetROIFlagSlot(), c.GetROIRate()); err != nil {
		return err
	}

	if c.Calibration != nil && c.Calibration.Precision != nil {
		if *c.Calibration.Precision <= 0 {
			return fmt.Errorf("calibration precision must be positive, got %g", *c.Calibration.Precision)
		}
	}

	return nil
}

// HeadingSlot is the resolution slot whose values are heading angles.
const HeadingSlot = 0

// CheckROIParams validates an ROI flag slot against a resolution of slots
// entries, and the ROI rate. The slot is only checked when slots > 0; it
// must be in range and must not be the heading slot.
func CheckROIParams(slots, flagSlot, rate int) error {
	if rate < 0 || rate > 100 {
		return fmt.Errorf("roi_rate must be between 0 and 100, got %d", rate)
	}
	if slots == 0 {
		return nil
	}
	if flagSlot < 0 {
		return fmt.Errorf("roi_flag_slot must be non-negative, got %d", flagSlot)
	}
	if flagSlot == HeadingSlot {
		return fmt.Errorf("roi_flag_slot %d is the heading slot", flagSlot)
	}
	if flagSlot >= slots {
		return fmt.Errorf("roi_flag_slot %d out of range for %d resolution slots", flagSlot, slots)
	}
	return nil
}

// GetResolution returns a copy of the resolution vector or the default.
func (c *MonitorConfig) GetResolution() []int32 {
	if len(c.Resolution) == 0 {
		return append([]int32(nil), DefaultResolution...)
	}
	return append([]int32(nil), c.Resolution...)
}

// GetROIInterested returns the roi_interested value or the default.
func (c *MonitorConfig) GetROIInterested() bool {
	if c.ROIInterested == nil {
		return DefaultROIInterested
	}
	return *c.ROIInterested
}

// GetROIRate returns the roi_rate value or the default.
func (c *MonitorConfig) GetROIRate() int {
	if c.ROIRate == nil {
		return DefaultROIRate
	}
	return *c.ROIRate
}

// GetROIFlagSlot returns the roi_flag_slot value or the default.
func (c *MonitorConfig) GetROIFlagSlot() int {
	if c.ROIFlagSlot == nil {
		return DefaultROIFlagSlot
	}
	return *c.ROIFlagSlot
}

// GetCalibrationPrecision returns the calibration precision or the default.
func (c *MonitorConfig) GetCalibrationPrecision() float64 {
	if c.Calibration == nil || c.Calibration.Precision == nil {
		return DefaultCalibrationPrecision
	}
	return *c.Calibration.Precision
}
