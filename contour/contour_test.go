package contour

import (
	"image"
	"image/color"
	"testing"

	"github.com/tsawler/tablescan/model"
)

func maskFromRows(rows ...string) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				m.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return m
}

func fill(m *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetGray(x, y, color.Gray{Y: 255})
		}
	}
}

// ============================================================================
// FindExternal
// ============================================================================

func TestFindExternal_Empty(t *testing.T) {
	if got := FindExternal(image.NewGray(image.Rect(0, 0, 10, 10))); len(got) != 0 {
		t.Errorf("blank mask gave %d contours", len(got))
	}
	if got := FindExternal(image.NewGray(image.Rect(0, 0, 0, 0))); got != nil {
		t.Errorf("empty mask gave %v", got)
	}
}

func TestFindExternal_Block(t *testing.T) {
	m := maskFromRows(
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	cs := FindExternal(m)
	if len(cs) != 1 {
		t.Fatalf("got %d contours, want 1", len(cs))
	}
	want := Contour{
		{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}, {2, 3}, {1, 3}, {1, 2},
	}
	if len(cs[0]) != len(want) {
		t.Fatalf("contour = %v, want %v", cs[0], want)
	}
	for i := range want {
		if cs[0][i] != want[i] {
			t.Fatalf("contour = %v, want %v", cs[0], want)
		}
	}
	if a := Area(cs[0]); a != 4 {
		t.Errorf("Area = %v, want 4", a)
	}
}

func TestFindExternal_SinglePixelAndLine(t *testing.T) {
	m := maskFromRows(
		"#....",
		".....",
		".###.",
	)
	cs := FindExternal(m)
	if len(cs) != 2 {
		t.Fatalf("got %d contours, want 2", len(cs))
	}
	if len(cs[0]) != 1 || cs[0][0] != image.Pt(0, 0) {
		t.Errorf("pixel contour = %v", cs[0])
	}
	want := Contour{{1, 2}, {2, 2}, {3, 2}, {2, 2}}
	if len(cs[1]) != len(want) {
		t.Fatalf("line contour = %v, want %v", cs[1], want)
	}
	for i := range want {
		if cs[1][i] != want[i] {
			t.Fatalf("line contour = %v, want %v", cs[1], want)
		}
	}
}

func TestFindExternal_DiagonalConnectivity(t *testing.T) {
	m := maskFromRows(
		"#...",
		".#..",
		"..#.",
	)
	if cs := FindExternal(m); len(cs) != 1 {
		t.Errorf("diagonal pixels should form one component, got %d", len(cs))
	}
}

func TestFindExternal_IgnoresHoles(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 30, 30))
	// Frame with a nested block inside its hole
	fill(m, image.Rect(2, 2, 28, 4))
	fill(m, image.Rect(2, 26, 28, 28))
	fill(m, image.Rect(2, 2, 4, 28))
	fill(m, image.Rect(26, 2, 28, 28))
	fill(m, image.Rect(12, 12, 16, 16))
	// Separate block outside
	fill(m, image.Rect(29, 0, 30, 2))

	cs := FindExternal(m)
	if len(cs) != 2 {
		t.Fatalf("got %d contours, want 2", len(cs))
	}
	if cs[0][0] != image.Pt(29, 0) {
		t.Errorf("first contour starts at %v, want (29,0)", cs[0][0])
	}
	if cs[1][0] != image.Pt(2, 2) {
		t.Errorf("second contour starts at %v, want (2,2)", cs[1][0])
	}
	if r := BoundingRect(cs[1]); r != model.NewRect(2, 2, 26, 26) {
		t.Errorf("frame rect = %+v", r)
	}
}

func TestFindExternal_Offset(t *testing.T) {
	m := image.NewGray(image.Rect(10, 10, 20, 20))
	fill(m, image.Rect(12, 13, 15, 16))
	cs := FindExternal(m)
	if len(cs) != 1 || cs[0][0] != image.Pt(12, 13) {
		t.Errorf("contours = %v", cs)
	}
}

// ============================================================================
// Area / BoundingRect
// ============================================================================

func TestArea(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
		want float64
	}{
		{"empty", nil, 0},
		{"two points", Contour{{0, 0}, {5, 0}}, 0},
		{"square", Contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 100},
		{"counter clockwise", Contour{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, 100},
		{"triangle", Contour{{0, 0}, {4, 0}, {0, 3}}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.c); got != tt.want {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingRect(t *testing.T) {
	if r := BoundingRect(nil); r.Valid() {
		t.Errorf("empty rect = %+v", r)
	}
	if r := BoundingRect([]image.Point{{3, 4}}); r != model.NewRect(3, 4, 1, 1) {
		t.Errorf("point rect = %+v", r)
	}
	r := BoundingRect([]image.Point{{5, 2}, {1, 8}, {3, 3}})
	if r != model.NewRect(1, 2, 5, 7) {
		t.Errorf("rect = %+v", r)
	}
}

// ============================================================================
// Approximate
// ============================================================================

func TestApproximate_RectangleBoundary(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 60, 40))
	fill(m, image.Rect(5, 5, 55, 35))
	cs := FindExternal(m)
	if len(cs) != 1 {
		t.Fatalf("got %d contours", len(cs))
	}

	poly := Approximate(cs[0], 3, true)
	want := []image.Point{{5, 5}, {54, 5}, {54, 34}, {5, 34}}
	if len(poly) != 4 {
		t.Fatalf("Approximate = %v, want 4 corners", poly)
	}
	for i := range want {
		if poly[i] != want[i] {
			t.Errorf("corner %d = %v, want %v", i, poly[i], want[i])
		}
	}
}

func TestApproximate_OpenPolyline(t *testing.T) {
	line := Contour{{0, 0}, {1, 1}, {2, 0}, {3, 1}, {4, 0}, {10, 20}}
	got := Approximate(line, 3, false)
	if got[0] != line[0] || got[len(got)-1] != line[len(line)-1] {
		t.Errorf("endpoints not kept: %v", got)
	}
	for _, p := range got[1 : len(got)-1] {
		if p == (image.Point{1, 1}) || p == (image.Point{3, 1}) {
			t.Errorf("noise point %v kept", p)
		}
	}
}

func TestApproximate_Short(t *testing.T) {
	c := Contour{{1, 1}, {2, 2}}
	got := Approximate(c, 3, true)
	if len(got) != 2 {
		t.Errorf("Approximate short = %v", got)
	}
	got[0] = image.Pt(9, 9)
	if c[0] != image.Pt(1, 1) {
		t.Error("Approximate aliased its input")
	}
}

// ============================================================================
// CountComponents
// ============================================================================

func TestCountComponents(t *testing.T) {
	m := maskFromRows(
		"##...##...",
		"##...##...",
		"..........",
		"#.......#.",
		".#.......#",
	)
	tests := []struct {
		name string
		r    model.Rect
		want int
	}{
		{"whole mask", model.NewRect(0, 0, 10, 5), 4},
		{"left half", model.NewRect(0, 0, 5, 5), 2},
		{"split block", model.NewRect(0, 0, 1, 2), 1},
		{"empty area", model.NewRect(2, 0, 3, 3), 0},
		{"outside mask", model.NewRect(50, 50, 5, 5), 0},
		{"clipped", model.NewRect(-5, -5, 8, 8), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountComponents(m, tt.r); got != tt.want {
				t.Errorf("CountComponents(%+v) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}
