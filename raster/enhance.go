package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// RemoveLines prepares a table image for OCR. Pixels covered by mask,
// grown by one pixel in every direction, are painted white so ruling lines
// are not read as characters, and the result is passed through
// imaging.AdjustContrast with the given percentage (0 leaves contrast as is).
//
// mask must share the bounds of ToGray(img), that is, the size of img with
// the origin at (0, 0).
func RemoveLines(img image.Image, mask *image.Gray, contrast float64) *image.NRGBA {
	gray := ToGray(img)
	grown := DilateLine(DilateLine(mask, 3, Horizontal), 3, Vertical)

	out := image.NewNRGBA(gray.Rect)
	for y := gray.Rect.Min.Y; y < gray.Rect.Max.Y; y++ {
		for x := gray.Rect.Min.X; x < gray.Rect.Max.X; x++ {
			v := gray.GrayAt(x, y).Y
			if grown.GrayAt(x, y).Y != 0 {
				v = 255
			}
			out.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	if contrast == 0 {
		return out
	}
	return imaging.AdjustContrast(out, contrast)
}
