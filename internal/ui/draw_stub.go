//go:build !ebiten

package ui

import (
	"image"

	"github.com/7robots/conway-game-of-life/internal/scan"
)

// DrawSidebar is a no-op in headless builds.
func DrawSidebar(any, []scan.Discovery, int, int) {}

// DrawToasts is a no-op in headless builds.
func DrawToasts(any, []Toast, int, int) {}

// DrawStats is a no-op in headless builds.
func DrawStats(any, Stats, int) {}

// DrawBrowser is a no-op in headless builds.
func DrawBrowser(any, *Browser, image.Rectangle) {}
