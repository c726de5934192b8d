package tables

import (
	"fmt"
	"image"

	"github.com/tsawler/tablescan/contour"
	"github.com/tsawler/tablescan/internal/logger"
	"github.com/tsawler/tablescan/model"
)

// Region is a candidate table area found in a ruling line mask
type Region struct {
	// Index is the position of the outline among all outlines of the mask,
	// in raster order of their first pixel
	Index int

	// Contour is the traced outer boundary of the connected lines
	Contour contour.Contour

	// Polygon is Contour simplified with Config.Epsilon
	Polygon contour.Contour

	// Rect bounds Polygon
	Rect model.Rect

	// Joints is the number of line intersections inside Rect
	Joints int
}

// DetectRegions finds the outlines of connected ruling lines in mask and
// keeps those large enough and crossed by enough joints to be a table.
// intersections is the mask of horizontal/vertical line crossings.
//
// Accepted regions keep discovery order. Rejected outlines are returned
// as Rejections wrapping ErrRegionRejected.
func DetectRegions(mask, intersections *image.Gray, cfg Config) ([]Region, []Rejection) {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	var regions []Region
	var rejected []Rejection

	for i, c := range contour.FindExternal(mask) {
		region, err := verifyRegion(i, c, intersections, cfg)
		if err != nil {
			log.Debug("region rejected", "index", i, "rect", region.Rect, "error", err)
			rejected = append(rejected, Rejection{Index: i, Rect: region.Rect, Err: err})
			continue
		}
		regions = append(regions, region)
	}
	return regions, rejected
}

// verifyRegion applies the area and joint count checks to one outline
func verifyRegion(index int, c contour.Contour, intersections *image.Gray, cfg Config) (Region, error) {
	region := Region{Index: index, Contour: c, Rect: contour.BoundingRect(c)}

	if area := contour.Area(c); area < cfg.MinTableArea {
		return region, fmt.Errorf("%w: area %.1f below %.1f", ErrRegionRejected, area, cfg.MinTableArea)
	}

	region.Polygon = contour.Approximate(c, cfg.Epsilon, true)
	region.Rect = contour.BoundingRect(region.Polygon)
	region.Joints = contour.CountComponents(intersections, region.Rect)

	if region.Joints < cfg.MinJoints {
		return region, fmt.Errorf("%w: %d joints, need %d", ErrRegionRejected, region.Joints, cfg.MinJoints)
	}
	return region, nil
}
