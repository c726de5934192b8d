package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Foreground is the mask value of a structural pixel. Background is 0.
const Foreground = 255

// ToGray converts any image to a new 8-bit grayscale buffer with its origin
// at (0, 0). The input is never modified.
func ToGray(img image.Image) *image.Gray {
	if img == nil || img.Bounds().Empty() {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}

	// imaging uses the same luma weights as OpenCV (0.299, 0.587, 0.114)
	nrgba := imaging.Grayscale(img)
	bounds := nrgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*w]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := range dst {
			dst[x] = src[4*x]
		}
	}
	return gray
}

// Invert returns the complement (255 - v) of a grayscale image.
func Invert(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Rect)
	for i, v := range src.Pix {
		dst.Pix[i] = 255 - v
	}
	return dst
}

// And returns the pixel-wise intersection of two masks of equal size.
func And(a, b *image.Gray) *image.Gray {
	return combine(a, b, func(p, q uint8) bool { return p != 0 && q != 0 })
}

// Or returns the pixel-wise union of two masks of equal size.
func Or(a, b *image.Gray) *image.Gray {
	return combine(a, b, func(p, q uint8) bool { return p != 0 || q != 0 })
}

func combine(a, b *image.Gray, op func(p, q uint8) bool) *image.Gray {
	r := a.Rect.Intersect(b.Rect)
	dst := image.NewGray(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if op(a.GrayAt(x, y).Y, b.GrayAt(x, y).Y) {
				dst.Pix[dst.PixOffset(x, y)] = Foreground
			}
		}
	}
	return dst
}

// IsBlank reports whether a mask has no foreground pixels.
func IsBlank(m *image.Gray) bool {
	for _, v := range m.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// CountForeground returns the number of non-zero pixels in a mask.
func CountForeground(m *image.Gray) int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
