package render

import (
	"image/color"

	"github.com/7robots/conway-game-of-life/internal/sims/life"
)

var (
	// DeadColor fills empty cells.
	DeadColor = color.RGBA{R: 17, G: 17, B: 17, A: 255}
	// Background fills the window behind the grid.
	Background = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	// GridLineColor separates cells at larger scales.
	GridLineColor = color.RGBA{R: 26, G: 26, B: 26, A: 255}
)

// AgePalette colours live cells from newborn (index 0) to elder.
var AgePalette = [life.MaxAge + 1]color.RGBA{
	{R: 57, G: 255, B: 20, A: 255},
	{R: 0, G: 230, B: 118, A: 255},
	{R: 0, G: 200, B: 200, A: 255},
	{R: 0, G: 180, B: 255, A: 255},
	{R: 80, G: 140, B: 255, A: 255},
	{R: 120, G: 100, B: 255, A: 255},
	{R: 170, G: 70, B: 255, A: 255},
	{R: 210, G: 50, B: 210, A: 255},
	{R: 255, G: 50, B: 150, A: 255},
	{R: 255, G: 80, B: 80, A: 255},
}

// TrailPalette colours recently dead cells, freshest first.
var TrailPalette = [life.TrailLength]color.RGBA{
	{R: 50, G: 30, B: 15, A: 255},
	{R: 35, G: 20, B: 12, A: 255},
	{R: 25, G: 14, B: 10, A: 255},
	{R: 20, G: 11, B: 9, A: 255},
}

// CellColor picks the colour for one cell. v is the board value (0 dead,
// age+1 alive) and trail the fade countdown for dead cells.
func CellColor(v, trail uint8) color.RGBA {
	switch {
	case v != 0:
		return AgePalette[min(int(v)-1, len(AgePalette)-1)]
	case trail > 0 && int(trail) <= len(TrailPalette):
		return TrailPalette[len(TrailPalette)-int(trail)]
	default:
		return DeadColor
	}
}

// fillCellsRGBA converts board values into RGBA pixels in buf. trail may be
// nil or shorter than cells.
func fillCellsRGBA(buf []byte, cells, trail []uint8) {
	for i, v := range cells {
		var t uint8
		if i < len(trail) {
			t = trail[i]
		}
		col := CellColor(v, t)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
