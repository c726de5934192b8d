// Package contour extracts and measures the outlines of foreground regions
// in a binary mask: boundary tracing, polygon area, Douglas-Peucker
// simplification, bounding rectangles and connected component counts.
package contour
