package contour

import "image"

// Contour is an ordered closed boundary. Consecutive points are 8-neighbors
// and the last point connects back to the first.
type Contour []image.Point

// Moore neighborhood, clockwise starting at west (y grows downward).
var neighbors = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// FindExternal returns the outer boundary of every 8-connected foreground
// component of mask that is not nested inside a hole of another component.
// Contours are ordered by the raster position (row, then column) of their
// first pixel, which is also the first point of each contour. Boundaries
// are traced clockwise in image coordinates.
func FindExternal(mask *image.Gray) []Contour {
	b := mask.Rect
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	fg := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && mask.Pix[y*mask.Stride+x] != 0
	}

	outside := outerBackground(mask)
	visited := make([]bool, w*h)
	var contours []Contour

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !fg(x, y) {
				continue
			}
			if y == 0 || outside[(y-1)*w+x] {
				c := trace(image.Pt(x, y), fg, w*h)
				for i := range c {
					c[i] = c[i].Add(b.Min)
				}
				contours = append(contours, c)
			}
			floodFill(x, y, w, h, fg, visited)
		}
	}
	return contours
}

// trace follows the boundary of the component containing start using Moore
// neighbor tracing with Jacob's stopping criterion. start must be the first
// pixel of its component in raster order, so its west neighbor is
// background.
func trace(start image.Point, fg func(x, y int) bool, area int) Contour {
	contour := Contour{start}
	limit := 4*area + 8

	p := start
	search := 0
	var first image.Point

	for step := 0; step < limit; step++ {
		q, d, ok := nextBoundary(p, search, fg)
		if !ok {
			break // isolated pixel
		}
		if step == 0 {
			first = q
		} else if p == start && q == first {
			break
		}
		contour = append(contour, q)
		p = q
		// Resume the search from the last background pixel examined
		if d%2 == 0 {
			search = (d + 6) % 8
		} else {
			search = (d + 5) % 8
		}
	}

	if n := len(contour); n > 1 && contour[n-1] == start {
		contour = contour[:n-1]
	}
	return contour
}

func nextBoundary(p image.Point, search int, fg func(x, y int) bool) (image.Point, int, bool) {
	for i := 0; i < 8; i++ {
		d := (search + i) % 8
		q := p.Add(neighbors[d])
		if fg(q.X, q.Y) {
			return q, d, true
		}
	}
	return p, 0, false
}

// outerBackground marks the background pixels 4-connected to the image
// border. Background regions not reached are holes of some component.
func outerBackground(mask *image.Gray) []bool {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	outside := make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))

	push := func(x, y int) {
		i := y*w + x
		if outside[i] || mask.Pix[y*mask.Stride+x] != 0 {
			return
		}
		outside[i] = true
		queue = append(queue, i)
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%w, i/w
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}
	return outside
}

// floodFill marks the 8-connected component containing (x, y)
func floodFill(x, y, w, h int, fg func(x, y int) bool, visited []bool) {
	stack := []image.Point{{x, y}}
	visited[y*w+x] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range neighbors {
			q := p.Add(n)
			if !fg(q.X, q.Y) || visited[q.Y*w+q.X] {
				continue
			}
			visited[q.Y*w+q.X] = true
			stack = append(stack, q)
		}
	}
}
