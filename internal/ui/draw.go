//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/7robots/conway-game-of-life/internal/scan"
)

var (
	sidebarBG     = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	sidebarHeader = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	sidebarText   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	dividerColor  = color.RGBA{R: 40, G: 40, B: 50, A: 255}

	toastBG     = color.RGBA{R: 30, G: 60, B: 30, A: 255}
	toastBorder = color.RGBA{R: 60, G: 180, B: 60, A: 255}
	toastText   = color.RGBA{R: 180, G: 255, B: 180, A: 255}

	statsText  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	browserBG  = color.RGBA{R: 12, G: 12, B: 16, A: 235}
	browserSel = color.RGBA{R: 40, G: 60, B: 90, A: 255}
)

const (
	toastWidth  = 220
	toastHeight = 28
	toastGap    = 6
)

var pixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

func fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(pixel, op)
}

func fade(c color.RGBA, alpha float64) color.RGBA {
	a := uint8(float64(c.A) * alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: a,
	}
}

// DrawSidebar paints the discovery list in a panel at x spanning height.
func DrawSidebar(dst *ebiten.Image, found []scan.Discovery, x, height int) {
	fillRect(dst, image.Rect(x, 0, x+SidebarWidth, height), sidebarBG, 1)
	fillRect(dst, image.Rect(x, 0, x+1, height), dividerColor, 1)

	face := basicfont.Face7x13
	header, lines := SidebarLines(found, height)
	text.Draw(dst, header, face, x+sidebarPadding, 24, sidebarHeader)
	fillRect(dst, image.Rect(x+sidebarPadding, sidebarHeaderH-6, x+SidebarWidth-sidebarPadding, sidebarHeaderH-5), dividerColor, 1)
	for i, line := range lines {
		y := sidebarHeaderH + sidebarLineHeight*(i+1) - 4
		text.Draw(dst, line, face, x+sidebarPadding, y, sidebarText)
	}
}

// DrawToasts stacks visible toasts at the bottom right of the grid area
// whose right edge is right and bottom edge is bottom.
func DrawToasts(dst *ebiten.Image, toasts []Toast, right, bottom int) {
	face := basicfont.Face7x13
	for i, t := range toasts {
		slot := len(toasts) - 1 - i
		y0 := bottom - toastGap - (toastHeight+toastGap)*slot - toastHeight
		box := image.Rect(right-toastWidth-toastGap, y0, right-toastGap, y0+toastHeight)
		a := float32(t.Alpha)
		fillRect(dst, box, toastBorder, a)
		fillRect(dst, box.Inset(1), toastBG, a)
		text.Draw(dst, t.Text, face, box.Min.X+8, box.Min.Y+18, fade(toastText, t.Alpha))
	}
}

// DrawStats paints the stats bar across the top of the window.
func DrawStats(dst *ebiten.Image, s Stats, width int) {
	fillRect(dst, image.Rect(0, 0, width, StatsBarHeight), sidebarBG, 1)
	fillRect(dst, image.Rect(0, StatsBarHeight-1, width, StatsBarHeight), dividerColor, 1)
	face := basicfont.Face7x13
	x := 12
	for _, f := range s.Fields() {
		text.Draw(dst, f, face, x, 23, statsText)
		x += text.BoundString(face, f).Dx() + 24
	}
}

// DrawBrowser overlays the saved-run list on r.
func DrawBrowser(dst *ebiten.Image, b *Browser, r image.Rectangle) {
	if b == nil || !b.IsOpen() {
		return
	}
	fillRect(dst, r, browserBG, 1)
	face := basicfont.Face7x13
	text.Draw(dst, "Saved runs  (Enter load, Del delete, Esc close)", face, r.Min.X+12, r.Min.Y+22, sidebarHeader)
	lines, sel := b.Lines()
	if len(lines) == 0 {
		text.Draw(dst, "No saved runs", face, r.Min.X+12, r.Min.Y+50, sidebarText)
		return
	}
	room := max(1, (r.Dy()-50)/sidebarLineHeight)
	first := max(0, sel-room+1)
	for i := first; i < len(lines) && i < first+room; i++ {
		y := r.Min.Y + 40 + (i-first)*sidebarLineHeight
		if i == sel {
			fillRect(dst, image.Rect(r.Min.X+6, y, r.Max.X-6, y+sidebarLineHeight), browserSel, 1)
		}
		text.Draw(dst, lines[i], face, r.Min.X+12, y+13, sidebarText)
	}
}
