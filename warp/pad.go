package warp

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Insets holds a per-side width in pixels
type Insets struct {
	Top, Right, Bottom, Left int
}

// PadOptions controls the frame added around a rectified table. The
// border closes tables whose outer ruling lines are missing or were cut
// by the warp; the margin keeps that frame clear of the image edge.
type PadOptions struct {
	Trim        int    // pixels removed from every side first
	Border      Insets // frame drawn around the trimmed image
	BorderColor color.Color
	Margin      int // uniform margin around the frame
	MarginColor color.Color
}

// DefaultPadOptions returns the padding used by the detector
func DefaultPadOptions() PadOptions {
	return PadOptions{
		Trim:        2,
		Border:      Insets{Top: 2, Right: 4, Bottom: 2, Left: 2},
		BorderColor: color.Gray{Y: 100},
		Margin:      10,
		MarginColor: color.White,
	}
}

// Pad trims, frames and surrounds img according to opts. Trimming is
// skipped when it would leave nothing.
func Pad(img image.Image, opts PadOptions) *image.NRGBA {
	out := imaging.Clone(img)

	if t := opts.Trim; t > 0 {
		b := out.Bounds()
		if b.Dx() > 2*t && b.Dy() > 2*t {
			out = imaging.Crop(out, image.Rect(t, t, b.Dx()-t, b.Dy()-t))
		}
	}

	in := opts.Border
	if in.Top > 0 || in.Right > 0 || in.Bottom > 0 || in.Left > 0 {
		out = frame(out, in, opts.BorderColor)
	}
	if m := opts.Margin; m > 0 {
		out = frame(out, Insets{m, m, m, m}, opts.MarginColor)
	}
	return out
}

func frame(img *image.NRGBA, in Insets, c color.Color) *image.NRGBA {
	if c == nil {
		c = color.White
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx()+in.Left+in.Right, b.Dy()+in.Top+in.Bottom, c)
	return imaging.Paste(bg, img, image.Pt(in.Left, in.Top))
}

// Normalize rectifies the table outlined by points and pads the result.
// points is usually the raw contour of the table region.
func Normalize(img image.Image, points []image.Point, opts PadOptions) (*image.NRGBA, Quad, error) {
	q, err := Corners(points)
	if err != nil {
		return nil, Quad{}, err
	}
	flat, err := Perspective(img, q)
	if err != nil {
		return nil, q, err
	}
	return Pad(flat, opts), q, nil
}
