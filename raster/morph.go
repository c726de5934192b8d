package raster

import "image"

// Orientation selects the axis of a line structuring element.
type Orientation int

const (
	// Horizontal is a length x 1 kernel.
	Horizontal Orientation = iota
	// Vertical is a 1 x length kernel.
	Vertical
)

// String returns the orientation name
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ErodeLine erodes a mask with a flat line kernel of the given length and
// orientation, anchored at length/2. A pixel survives only if every kernel
// position is foreground. Positions outside the image count as foreground,
// so runs touching the border are not shortened.
func ErodeLine(src *image.Gray, length int, o Orientation) *image.Gray {
	return applyLine(src, length, o, erodeRun)
}

// DilateLine dilates a mask with the reflection of the line kernel used by
// ErodeLine, so DilateLine(ErodeLine(m)) is a morphological opening.
// Positions outside the image count as background.
func DilateLine(src *image.Gray, length int, o Orientation) *image.Gray {
	return applyLine(src, length, o, dilateRun)
}

// OpenLine erodes then dilates with the same line kernel. The result keeps
// only straight runs of at least length foreground pixels along the axis,
// restored to their original extent.
func OpenLine(src *image.Gray, length int, o Orientation) *image.Gray {
	return DilateLine(ErodeLine(src, length, o), length, o)
}

type runOp func(in, out []bool, prefix []int, k int)

// applyLine runs op over every row (Horizontal) or column (Vertical).
func applyLine(src *image.Gray, length int, o Orientation, op runOp) *image.Gray {
	b := src.Rect
	dst := image.NewGray(b)
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return dst
	}
	if length < 1 {
		length = 1
	}

	n, lines := w, h
	if o == Vertical {
		n, lines = h, w
	}

	in := make([]bool, n)
	out := make([]bool, n)
	prefix := make([]int, n+1)

	for l := 0; l < lines; l++ {
		for i := 0; i < n; i++ {
			in[i] = src.Pix[offset(src, o, l, i)] != 0
		}
		op(in, out, prefix, length)
		for i := 0; i < n; i++ {
			if out[i] {
				dst.Pix[offset(dst, o, l, i)] = Foreground
			}
		}
	}
	return dst
}

// offset returns the Pix index of position i on line l.
func offset(m *image.Gray, o Orientation, l, i int) int {
	if o == Vertical {
		return i*m.Stride + l
	}
	return l*m.Stride + i
}

func fillPrefix(in []bool, prefix []int) {
	prefix[0] = 0
	for i, v := range in {
		prefix[i+1] = prefix[i]
		if v {
			prefix[i+1]++
		}
	}
}

// countRange returns the number of true values in in[lo..hi] clipped to the
// slice bounds.
func countRange(prefix []int, n, lo, hi int) int {
	lo, hi = max(lo, 0), min(hi, n-1)
	if hi < lo {
		return 0
	}
	return prefix[hi+1] - prefix[lo]
}

func erodeRun(in, out []bool, prefix []int, k int) {
	n := len(in)
	a := k / 2
	fillPrefix(in, prefix)
	for x := 0; x < n; x++ {
		lo, hi := x-a, x-a+k-1
		outside := max(0, -lo) + max(0, hi-(n-1))
		out[x] = countRange(prefix, n, lo, hi)+outside >= k
	}
}

func dilateRun(in, out []bool, prefix []int, k int) {
	n := len(in)
	a := k / 2
	fillPrefix(in, prefix)
	for x := 0; x < n; x++ {
		out[x] = countRange(prefix, n, x-(k-1-a), x+a) > 0
	}
}
