package tables

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/tsawler/tablescan/model"
)

func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	return img
}

// drawRuledTable draws 2px black ruling lines at the given positions. Each
// line spans the full extent of the table.
func drawRuledTable(img draw.Image, xs, ys []int) {
	black := &image.Uniform{color.Black}
	for _, x := range xs {
		draw.Draw(img, image.Rect(x, ys[0], x+2, ys[len(ys)-1]+2), black, image.Point{}, draw.Src)
	}
	for _, y := range ys {
		draw.Draw(img, image.Rect(xs[0], y, xs[len(xs)-1]+2, y+2), black, image.Point{}, draw.Src)
	}
}

// regularGrid returns a joint grid with rows at ys and joints at xs
func regularGrid(xs, ys []int) model.JointGrid {
	grid := make(model.JointGrid, len(ys))
	for i, y := range ys {
		for _, x := range xs {
			grid[i] = append(grid[i], model.Pt(x, y))
		}
	}
	return grid
}

// wordAt returns a 20x10 word box centered on (cx, cy)
func wordAt(text string, cx, cy int) model.WordBox {
	return model.WordBox{Text: text, Left: cx - 10, Top: cy - 5, Width: 20, Height: 10}
}
