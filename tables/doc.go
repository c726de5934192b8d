// Package tables finds ruled tables in page images and maps recognized
// words onto their cells.
//
// # Pipeline
//
// A [Detector] runs the following steps on a page:
//
//  1. Build a mask of the horizontal and vertical ruling lines
//  2. Trace the outer outline of each group of connected lines
//  3. Keep outlines with enough area and enough line crossings ([DetectRegions])
//  4. Rectify each region to an upright, framed image
//  5. Find the line crossings again and group them into rows ([ClusterJoints])
//  6. Derive cell rectangles from the rows ([BuildCellBounds])
//
// Regions are processed concurrently; the returned tables keep the order in
// which their outlines were found (top to bottom, then left to right by
// first pixel).
//
//	d := tables.NewDetector(tables.DefaultConfig())
//	found, err := d.Detect(ctx, img)
//
// # Cell bounds
//
// Cell rectangles come from a [BoundaryStrategy]. [PrimaryStrategy] pairs
// each joint with the joint diagonally below-right of it; when a row is
// missing joints it fails and [FallbackStrategy], a looser heuristic, is
// tried next. Strategies are registered by name:
//
//	s, err := tables.StrategiesByName("fallback")
//
// # Text
//
// Words recognized on [Table.Image] are placed with [Table.AssignWords], or
// for a batch of tables with [Recognize]. A word lands in the first cell,
// in row-major order, that contains the center of its box.
package tables
