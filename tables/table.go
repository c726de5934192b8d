package tables

import (
	"image"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tidwall/rtree"

	"github.com/tsawler/tablescan/internal/logger"
	"github.com/tsawler/tablescan/model"
	"github.com/tsawler/tablescan/warp"
)

// Table is one detected table, rectified and padded
type Table struct {
	// Index is the position of the table in detection order
	Index int

	// Region is the bounding rect of the table in the source image
	Region model.Rect

	// Quad holds the source corners that were mapped onto Image
	Quad warp.Quad

	// Image is the rectified, padded table
	Image *image.NRGBA

	// Lines is the ruling line mask of Image
	Lines *image.Gray

	// Joints are the line intersections of Image, grouped into rows
	Joints model.JointGrid

	strategies []BoundaryStrategy
	log        *slog.Logger

	boundsOnce sync.Once
	bounds     [][]model.CellBounds
	boundsErr  error

	textOnce sync.Once
	assigned atomic.Bool
	text     model.TextGrid
	textErr  error
}

// NewTable creates a table from a rectified image and its joint grid.
// Cell bounds are built with the default strategies.
func NewTable(img *image.NRGBA, joints model.JointGrid) *Table {
	return &Table{Image: img, Joints: joints}
}

// CellBounds returns the cell rectangles of the table, row-major. They are
// computed on first use and cached along with any error.
func (t *Table) CellBounds() ([][]model.CellBounds, error) {
	t.boundsOnce.Do(func() {
		log := t.log
		if log == nil {
			log = logger.Discard()
		}
		t.bounds, t.boundsErr = BuildCellBounds(log.With("table", t.Index), t.Joints, t.strategies...)
	})
	return t.bounds, t.boundsErr
}

// Rows returns the number of cell rows, or 0 if bounds cannot be built
func (t *Table) Rows() int {
	cells, err := t.CellBounds()
	if err != nil {
		return 0
	}
	return len(cells)
}

// Cols returns the length of the longest cell row
func (t *Table) Cols() int {
	cells, err := t.CellBounds()
	if err != nil {
		return 0
	}
	n := 0
	for _, row := range cells {
		n = max(n, len(row))
	}
	return n
}

// AssignWords places each word in the cell containing the center of its
// box, edges included. A word whose center lies in several cells goes to
// the first of them in row-major order; a word outside every cell is
// dropped, as is a word with empty text. The words of a cell are joined
// with single spaces in the order given, and cells without words are
// absent.
//
// Words must be in the pixel space of t.Image. The grid is computed on the
// first call; later calls return it regardless of their argument.
func (t *Table) AssignWords(words []model.WordBox) (model.TextGrid, error) {
	t.textOnce.Do(func() {
		t.text, t.textErr = t.assign(words)
		t.assigned.Store(true)
	})
	return t.text, t.textErr
}

// TextGrid returns the grid built by AssignWords, or nil before it ran
func (t *Table) TextGrid() model.TextGrid {
	if !t.assigned.Load() {
		return nil
	}
	return t.text
}

type cellRef struct {
	row, col int
}

func (t *Table) assign(words []model.WordBox) (model.TextGrid, error) {
	cells, err := t.CellBounds()
	if err != nil {
		return nil, err
	}

	var tr rtree.RTreeG[int]
	var refs []cellRef
	lengths := make([]int, len(cells))
	for i, row := range cells {
		lengths[i] = len(row)
		for j, c := range row {
			tr.Insert(
				[2]float64{float64(c.Left), float64(c.Top)},
				[2]float64{float64(c.Right), float64(c.Bottom)},
				len(refs),
			)
			refs = append(refs, cellRef{i, j})
		}
	}

	parts := make(map[int][]string)
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		cx, cy := w.Centroid()
		best := -1
		tr.Search([2]float64{cx - 0.5, cy - 0.5}, [2]float64{cx + 0.5, cy + 0.5},
			func(_, _ [2]float64, idx int) bool {
				r := refs[idx]
				if cells[r.row][r.col].Contains(cx, cy) && (best < 0 || idx < best) {
					best = idx
				}
				return true
			})
		if best >= 0 {
			parts[best] = append(parts[best], w.Text)
		}
	}

	grid := model.NewTextGrid(lengths)
	for idx, texts := range parts {
		r := refs[idx]
		grid[r.row][r.col] = model.Text(strings.Join(texts, " "))
	}
	return grid, nil
}
