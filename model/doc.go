// Package model provides the data types shared by the table recovery
// pipeline.
//
// Geometry is expressed in image pixel coordinates with the origin at the
// top-left and Y growing downward.
//
// # Geometry
//
//   - [Point] - integer pixel position with distance calculation
//   - [Rect] - integer bounding box of a detected table region
//   - [CellBounds] - inclusive top/bottom/left/right edges of one cell
//
// # Tables
//
// A table is described by its [JointGrid], the line intersections grouped
// into rows, from which a grid of [CellBounds] is derived. Recognized words
// arrive as [WordBox] values and are assigned to cells, producing a
// [TextGrid]:
//
//	grid := model.NewTextGrid([]int{4, 4, 4})
//	grid[0][1] = model.Text("Total")
//	rows := grid.Strings("")
//
// Cells that received no text hold an absent [CellText] (Valid == false).
package model
