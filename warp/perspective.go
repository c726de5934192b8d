package warp

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Perspective rectifies the quadrilateral q of img into an upright
// rectangle of size q.Size(). The corners of q land on the corners of the
// output; samples are interpolated bilinearly and any part of the output
// that maps outside img is white.
//
// Quad coordinates are relative to the top-left of img's bounds.
func Perspective(img image.Image, q Quad) (*image.NRGBA, error) {
	w, h := q.Size()
	src := imaging.Clone(img)

	corners := q.Points()
	from := [4]Vec{{0, 0}, {float64(w - 1), 0}, {float64(w - 1), float64(h - 1)}, {0, float64(h - 1)}}
	var to [4]Vec
	for i, p := range corners {
		to[i] = Vec{float64(p.X), float64(p.Y)}
	}

	// Map each output pixel back into the source
	m, err := Homography(from, to)
	if err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := Transform(m, float64(x), float64(y))
			i := dst.PixOffset(x, y)
			sample(src, sx, sy, dst.Pix[i:i+4])
		}
	}
	return dst, nil
}

// sample writes the bilinear interpolation of src at (sx, sy) into px.
// Taps outside src read as opaque white.
func sample(src *image.NRGBA, sx, sy float64, px []uint8) {
	if math.IsInf(sx, 0) || math.IsNaN(sx) || math.IsInf(sy, 0) || math.IsNaN(sy) {
		px[0], px[1], px[2], px[3] = 255, 255, 255, 255
		return
	}

	x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
	fx, fy := sx-float64(x0), sy-float64(y0)
	weights := [4]float64{(1 - fx) * (1 - fy), fx * (1 - fy), (1 - fx) * fy, fx * fy}
	taps := [4]image.Point{{x0, y0}, {x0 + 1, y0}, {x0, y0 + 1}, {x0 + 1, y0 + 1}}

	var acc [4]float64
	b := src.Rect
	for k, t := range taps {
		wk := weights[k]
		if wk == 0 {
			continue
		}
		if !t.In(b) {
			for c := range acc {
				acc[c] += 255 * wk
			}
			continue
		}
		j := src.PixOffset(t.X, t.Y)
		for c := range acc {
			acc[c] += float64(src.Pix[j+c]) * wk
		}
	}
	for c := range acc {
		px[c] = uint8(math.Min(255, math.Max(0, acc[c]+0.5)))
	}
}
