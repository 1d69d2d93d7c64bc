package app

import (
	"image"

	"github.com/7robots/conway-game-of-life/internal/ui"
)

// Layout places the stats bar, the grid and the sidebar in the window.
type Layout struct {
	Rows, Cols int
	Scale      int
}

// Screen returns the window size in pixels.
func (l Layout) Screen() (int, int) {
	return l.Cols*l.Scale + ui.SidebarWidth, ui.StatsBarHeight + l.Rows*l.Scale
}

// Grid returns the rectangle the board is drawn into.
func (l Layout) Grid() image.Rectangle {
	return image.Rect(0, ui.StatsBarHeight, l.Cols*l.Scale, ui.StatsBarHeight+l.Rows*l.Scale)
}

// CellAt maps a window position to a board cell.
func (l Layout) CellAt(x, y int) (row, col int, ok bool) {
	p := image.Pt(x, y)
	g := l.Grid()
	if l.Scale <= 0 || !p.In(g) {
		return 0, 0, false
	}
	return (y - g.Min.Y) / l.Scale, (x - g.Min.X) / l.Scale, true
}
