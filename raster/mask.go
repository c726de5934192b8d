package raster

import "image"

// MaskOptions controls ruling-line extraction.
type MaskOptions struct {
	// BlockSize is the side of the square neighborhood used for the local
	// mean in adaptive thresholding. Must be odd; even values are rounded up.
	BlockSize int

	// C is subtracted from the local mean before comparison
	C float64

	// Scale divides the image width (height) to obtain the horizontal
	// (vertical) line kernel length. Larger values keep shorter segments.
	Scale int
}

// DefaultMaskOptions returns the options used by the detector
func DefaultMaskOptions() MaskOptions {
	return MaskOptions{
		BlockSize: 15,
		C:         0,
		Scale:     15,
	}
}

// GridMask holds the ruling-line masks of an image. All three share the
// bounds of the source image.
type GridMask struct {
	Mask       *image.Gray // Horizontal OR Vertical
	Horizontal *image.Gray
	Vertical   *image.Gray
}

// Intersections returns the pixels lying on both a horizontal and a
// vertical line.
func (g GridMask) Intersections() *image.Gray {
	return And(g.Horizontal, g.Vertical)
}

// BuildGridMask extracts horizontal and vertical ruling lines from img.
//
// The image is converted to grayscale and inverted so ink becomes bright,
// then binarized with AdaptiveThreshold. Each direction is isolated with a
// morphological opening by a line kernel whose length is the image extent
// divided by opts.Scale, which removes text strokes and noise shorter than
// the kernel.
func BuildGridMask(img image.Image, opts MaskOptions) GridMask {
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultMaskOptions().BlockSize
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultMaskOptions().Scale
	}

	gray := ToGray(img)
	binary := AdaptiveThreshold(Invert(gray), opts.BlockSize, opts.C)

	w, h := binary.Rect.Dx(), binary.Rect.Dy()
	horizontal := OpenLine(binary, max(1, w/opts.Scale), Horizontal)
	vertical := OpenLine(binary, max(1, h/opts.Scale), Vertical)

	return GridMask{
		Mask:       Or(horizontal, vertical),
		Horizontal: horizontal,
		Vertical:   vertical,
	}
}
