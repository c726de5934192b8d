// Package raster implements the pixel level operations of the table
// pipeline: grayscale conversion, adaptive thresholding, line morphology
// and mask algebra.
//
// Masks are *image.Gray values holding 0 (background) or [Foreground].
//
// # Grid masks
//
// [BuildGridMask] turns a page photo into a mask of its ruling lines:
//
//	gm := raster.BuildGridMask(img, raster.DefaultMaskOptions())
//	joints := gm.Intersections()
//
// Thresholding is local (a mean over a BlockSize window), so uneven
// lighting across a photographed page does not wipe out faint lines.
// Horizontal and vertical lines are isolated separately with an opening
// by a line kernel of length width/Scale (height/Scale), see [OpenLine].
//
// # OCR preparation
//
// [RemoveLines] erases ruling lines from a table image before it is
// handed to an OCR engine.
package raster
