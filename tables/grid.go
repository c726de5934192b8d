package tables

import (
	"image"
	"sort"

	"github.com/tsawler/tablescan/model"
)

// ClusterJoints groups the foreground pixels of an intersection mask into
// rows of joints.
//
// Pixels are visited in raster order. A pixel more than yCutoff below the
// previous pixel starts a new row. Within a row, pixels are sorted by X and
// every chain of pixels spaced at most xCutoff apart collapses into one
// joint located at the first pixel of the chain.
//
// Rows come out sorted by Y and joints by strictly increasing X. Rows may
// have different lengths; see DropShortRows.
func ClusterJoints(intersections *image.Gray, yCutoff, xCutoff int) model.JointGrid {
	b := intersections.Rect
	var grid model.JointGrid
	var row []model.Point
	lastY := 0

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if intersections.Pix[intersections.PixOffset(x, y)] == 0 {
				continue
			}
			if len(row) > 0 && y-lastY > yCutoff {
				grid = append(grid, collapseRow(row, xCutoff))
				row = nil
			}
			row = append(row, model.Pt(x, y))
			lastY = y
		}
	}
	if len(row) > 0 {
		grid = append(grid, collapseRow(row, xCutoff))
	}
	return grid
}

// collapseRow merges pixels of one row that belong to the same joint
func collapseRow(pixels []model.Point, xCutoff int) []model.Point {
	sort.SliceStable(pixels, func(i, j int) bool {
		return pixels[i].X < pixels[j].X
	})

	joints := []model.Point{pixels[0]}
	prev := pixels[0]
	for _, p := range pixels[1:] {
		if p.X-prev.X > xCutoff {
			joints = append(joints, p)
		}
		prev = p
	}
	return joints
}

// DropShortRows removes rows with fewer than two joints. Such rows cannot
// bound a cell and usually come from noise or a partially detected line.
func DropShortRows(grid model.JointGrid) model.JointGrid {
	out := grid[:0:0]
	for _, row := range grid {
		if len(row) >= 2 {
			out = append(out, row)
		}
	}
	return out
}
