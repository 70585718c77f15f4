package widget

import "math"

// Rect is a positioned rectangle in fractional cell units.
// Layout divides space evenly, so positions and sizes are rarely whole cells;
// they are floored only where they meet the grid.
type Rect struct {
	X, Y, W, H float64
}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Cells returns the floored cell origin of the rect.
func (r Rect) Cells() (col, row int) {
	return int(math.Floor(r.X)), int(math.Floor(r.Y))
}

// HitRow reports whether a click at (col, row) lands on the rect's text row.
// The row must match exactly; columns run from the first to the last cell
// the rect covers.
func (r Rect) HitRow(col, row int) bool {
	x, y := r.Cells()
	if y != row {
		return false
	}
	last := int(math.Floor(r.X+r.W)) - 1
	return col >= x && col <= last
}
