package model

import (
	"errors"
	"fmt"
)

// ErrMalformedJointGrid is returned when a joint grid cannot bound a single
// cell: fewer than two rows, or a row with fewer than two joints.
var ErrMalformedJointGrid = errors.New("model: malformed joint grid")

// JointGrid holds the detected line intersections of one table, grouped into
// rows. Rows are sorted by ascending Y and the joints within a row by
// ascending X. Rows may have different lengths when some lines were not
// detected.
type JointGrid [][]Point

// RowCount returns the number of joint rows
func (g JointGrid) RowCount() int {
	return len(g)
}

// Count returns the total number of joints
func (g JointGrid) Count() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// IsRagged reports whether the rows hold different numbers of joints
func (g JointGrid) IsRagged() bool {
	for i := 1; i < len(g); i++ {
		if len(g[i]) != len(g[0]) {
			return true
		}
	}
	return false
}

// Validate checks the grid can bound at least one cell.
func (g JointGrid) Validate() error {
	if len(g) < 2 {
		return fmt.Errorf("%w: %d rows", ErrMalformedJointGrid, len(g))
	}
	for i, row := range g {
		if len(row) < 2 {
			return fmt.Errorf("%w: row %d has %d joints", ErrMalformedJointGrid, i, len(row))
		}
	}
	return nil
}

// WordBox is a word recognized by an OCR engine, positioned in the pixel
// space of the image it was recognized from.
type WordBox struct {
	Text       string
	Left       int
	Top        int
	Width      int
	Height     int
	Confidence float64 // 0-100, engine defined
}

// Right returns the right edge X coordinate
func (w WordBox) Right() int {
	return w.Left + w.Width
}

// Bottom returns the bottom edge Y coordinate
func (w WordBox) Bottom() int {
	return w.Top + w.Height
}

// Centroid returns the center of the word's box
func (w WordBox) Centroid() (x, y float64) {
	return float64(w.Left+w.Right()) / 2, float64(w.Top+w.Bottom()) / 2
}

// CellText is the recognized text of one cell. Valid is false when no word
// was assigned to the cell.
type CellText struct {
	Text  string
	Valid bool
}

// Text returns a valid CellText holding s
func Text(s string) CellText {
	return CellText{Text: s, Valid: true}
}

// String returns the text, or "" for an absent cell
func (c CellText) String() string {
	if !c.Valid {
		return ""
	}
	return c.Text
}

// TextGrid is the row-major text content of a table, one entry per cell.
type TextGrid [][]CellText

// NewTextGrid creates a grid of absent cells with the given row lengths
func NewTextGrid(rowLengths []int) TextGrid {
	grid := make(TextGrid, len(rowLengths))
	for i, n := range rowLengths {
		grid[i] = make([]CellText, n)
	}
	return grid
}

// RowCount returns the number of rows
func (g TextGrid) RowCount() int {
	return len(g)
}

// ColCount returns the length of the longest row
func (g TextGrid) ColCount() int {
	n := 0
	for _, row := range g {
		n = max(n, len(row))
	}
	return n
}

// Get returns the cell at the given row and column (0-indexed). Out of range
// positions return an absent cell.
func (g TextGrid) Get(row, col int) CellText {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return CellText{}
	}
	return g[row][col]
}

// Strings flattens the grid, rendering absent cells as the given placeholder.
// Short rows are padded to ColCount so every row has the same length.
func (g TextGrid) Strings(absent string) [][]string {
	cols := g.ColCount()
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = absent
			if j < len(row) && row[j].Valid {
				out[i][j] = row[j].Text
			}
		}
	}
	return out
}
