package monitor

import "errors"

var (
	// ErrAttributeMismatch is returned by Add when the attribute and value
	// slices differ in length. Nothing is mutated.
	ErrAttributeMismatch = errors.New("attribute count does not match value count")
	// ErrEmptyResolution is returned by Add when attributes are supplied to
	// a monitor without resolution slots.
	ErrEmptyResolution = errors.New("resolution vector is empty")
	// ErrInvalidROI is returned by Add when a region flagged as ROI is
	// invalid or overlaps an existing ROI member.
	ErrInvalidROI = errors.New("ROI region is not valid")
	// ErrInvalidConfig is returned by New when the ROI flag slot or rate
	// does not fit the resolution.
	ErrInvalidConfig = errors.New("invalid monitor configuration")
)
