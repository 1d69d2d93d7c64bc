//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads board cells into a single image and draws it scaled.
type GridPainter struct {
	rows, cols int
	img        *ebiten.Image
	lines      *ebiten.Image
	buf        []byte
}

// NewGridPainter allocates a painter for a rows x cols board.
func NewGridPainter(rows, cols int) *GridPainter {
	return &GridPainter{
		rows: rows,
		cols: cols,
		img:  ebiten.NewImage(cols, rows),
		buf:  make([]byte, 4*rows*cols),
	}
}

// Blit draws cells (with optional trails) at (x, y), each cell scale pixels
// wide. Grid lines are drawn when scale leaves room for them.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells, trail []uint8, x, y, scale int) {
	if len(cells) != gp.rows*gp.cols {
		return
	}
	fillCellsRGBA(gp.buf, cells, trail)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(gp.img, op)

	if scale >= 6 {
		gp.drawLines(dst, x, y, scale)
	}
}

func (gp *GridPainter) drawLines(dst *ebiten.Image, x, y, scale int) {
	w, h := gp.cols*scale, gp.rows*scale
	if gp.lines == nil || gp.lines.Bounds().Dx() != w+1 || gp.lines.Bounds().Dy() != h+1 {
		gp.lines = ebiten.NewImage(w+1, h+1)
		for r := 0; r <= gp.rows; r++ {
			for c := 0; c <= w; c++ {
				gp.lines.Set(c, r*scale, GridLineColor)
			}
		}
		for c := 0; c <= gp.cols; c++ {
			for r := 0; r <= h; r++ {
				gp.lines.Set(c*scale, r, GridLineColor)
			}
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(gp.lines, op)
}

// Size returns the board dimensions the painter was built for.
func (gp *GridPainter) Size() (int, int) { return gp.rows, gp.cols }
