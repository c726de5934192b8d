package tables

import (
	"log/slog"
	"runtime"

	"github.com/tsawler/tablescan/raster"
	"github.com/tsawler/tablescan/warp"
)

// Config holds detector configuration
type Config struct {
	// Ruling line extraction, used on the page and again on each
	// rectified table
	Mask raster.MaskOptions

	// Minimum contour area (square pixels) of a candidate region
	MinTableArea float64

	// Douglas-Peucker tolerance (pixels) for the region outline
	Epsilon float64

	// Minimum number of joints in a region and in its joint grid
	MinJoints int

	// Maximum vertical distance (pixels) between joint pixels of one row
	YCutoff int

	// Maximum horizontal gap (pixels) between pixels of one joint
	XCutoff int

	// Frame added around each rectified table
	Pad warp.PadOptions

	// Boundary strategies tried in order. Empty means DefaultStrategies().
	Strategies []BoundaryStrategy

	// Maximum number of candidates processed concurrently. Zero or less
	// means runtime.NumCPU().
	Workers int

	// Logger receives rejection and fallback messages. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Mask:         raster.DefaultMaskOptions(),
		MinTableArea: 50,
		Epsilon:      3,
		MinJoints:    5,
		YCutoff:      5,
		XCutoff:      5,
		Pad:          warp.DefaultPadOptions(),
		Workers:      runtime.NumCPU(),
	}
}
