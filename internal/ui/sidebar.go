package ui

import (
	"fmt"

	"github.com/7robots/conway-game-of-life/internal/scan"
)

const (
	// SidebarWidth is the pixel width of the discovery panel.
	SidebarWidth = 200
	// MaxNameLen is the longest pattern name shown before truncation.
	MaxNameLen = 20

	sidebarLineHeight = 18
	sidebarHeaderH    = 40
	sidebarPadding    = 10
)

// SidebarLines returns the header and one line per discovery that fits in
// a panel height pixels tall. Overflow collapses into a "+N more..." line.
func SidebarLines(found []scan.Discovery, height int) (string, []string) {
	header := fmt.Sprintf("Discovered: %d", len(found))
	room := (height - sidebarHeaderH - sidebarPadding) / sidebarLineHeight
	if room <= 0 || len(found) == 0 {
		return header, nil
	}
	lines := make([]string, 0, min(room, len(found)))
	for i, d := range found {
		if i == room-1 && len(found) > room {
			lines = append(lines, fmt.Sprintf("+%d more...", len(found)-i))
			break
		}
		lines = append(lines, TruncateName(d.Name))
	}
	return header, lines
}

// TruncateName shortens long names to MaxNameLen runes ending in "..".
func TruncateName(name string) string {
	r := []rune(name)
	if len(r) <= MaxNameLen {
		return name
	}
	return string(r[:MaxNameLen-2]) + ".."
}
