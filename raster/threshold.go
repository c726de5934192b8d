package raster

import "image"

// AdaptiveThreshold binarizes src against the mean of a blockSize x blockSize
// neighborhood centered on each pixel. A pixel becomes Foreground when its
// value is strictly greater than the local mean minus c, otherwise 0.
//
// The window is clipped at the image border. Local means are read from an
// integral image so the cost is constant per pixel regardless of blockSize.
func AdaptiveThreshold(src *image.Gray, blockSize int, c float64) *image.Gray {
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}

	b := src.Rect
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	if w == 0 || h == 0 {
		return dst
	}

	integral := integralImage(src)
	stride := w + 1
	r := blockSize / 2

	for y := 0; y < h; y++ {
		y0, y1 := max(0, y-r), min(h-1, y+r)
		for x := 0; x < w; x++ {
			x0, x1 := max(0, x-r), min(w-1, x+r)

			sum := integral[(y1+1)*stride+x1+1] - integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] + integral[y0*stride+x0]
			count := int64((x1 - x0 + 1) * (y1 - y0 + 1))

			v := int64(src.Pix[y*src.Stride+x])
			if float64(v*count) > float64(sum)-c*float64(count) {
				dst.Pix[y*dst.Stride+x] = Foreground
			}
		}
	}
	return dst
}

// integralImage returns a (w+1) x (h+1) summed-area table with a zero first
// row and column.
func integralImage(src *image.Gray) []int64 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	stride := w + 1
	sums := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(src.Pix[y*src.Stride+x])
			sums[(y+1)*stride+x+1] = sums[y*stride+x+1] + rowSum
		}
	}
	return sums
}
