package donut

import "errors"

// Errors returned when chart data or configuration cannot be used.
// They are wrapped with context; test with errors.Is.
var (
	// ErrNoSectors is returned when a chart is created without data.
	ErrNoSectors = errors.New("donut: no sectors")

	// ErrInvalidValue is returned for a sector value that is not a
	// positive finite number.
	ErrInvalidValue = errors.New("donut: invalid sector value")

	// ErrZeroTotal is returned when the sector values sum to zero.
	ErrZeroTotal = errors.New("donut: sector values sum to zero")

	// ErrInvalidColor is returned for a color that is not #RGB or #RRGGBB.
	ErrInvalidColor = errors.New("donut: invalid color")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("donut: invalid config")

	// ErrClosed is returned by operations on a closed chart.
	ErrClosed = errors.New("donut: chart closed")
)
