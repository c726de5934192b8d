// Package warp rectifies a table photographed at an angle. The outline of
// the table is reduced to four corners ([Corners]), mapped onto an upright
// rectangle with a projective transform ([Perspective]) and framed
// ([Pad]) so the outer cells are closed even when the page lacked outer
// ruling lines.
package warp
