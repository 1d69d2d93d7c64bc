package ui

import (
	"fmt"

	"github.com/7robots/conway-game-of-life/internal/store"
)

// Browser lists saved runs and tracks the highlighted one.
type Browser struct {
	open     bool
	runs     []store.RunSummary
	selected int
}

// Open shows the browser with runs, newest first as ListRuns returns them.
func (b *Browser) Open(runs []store.RunSummary) {
	b.open = true
	b.runs = runs
	b.selected = 0
}

// Close hides the browser.
func (b *Browser) Close() { b.open = false }

// IsOpen reports whether the browser is shown.
func (b *Browser) IsOpen() bool { return b.open }

// Move shifts the selection by delta, clamped to the list.
func (b *Browser) Move(delta int) {
	if len(b.runs) == 0 {
		return
	}
	b.selected = max(0, min(b.selected+delta, len(b.runs)-1))
}

// Selected returns the highlighted run.
func (b *Browser) Selected() (store.RunSummary, bool) {
	if b.selected < 0 || b.selected >= len(b.runs) {
		return store.RunSummary{}, false
	}
	return b.runs[b.selected], true
}

// Remove drops the run with id from the list after a delete.
func (b *Browser) Remove(id int64) {
	for i, r := range b.runs {
		if r.ID == id {
			b.runs = append(b.runs[:i], b.runs[i+1:]...)
			break
		}
	}
	if b.selected >= len(b.runs) {
		b.selected = max(0, len(b.runs)-1)
	}
}

// Lines renders one row per run, with the selected index.
func (b *Browser) Lines() ([]string, int) {
	out := make([]string, 0, len(b.runs))
	for _, r := range b.runs {
		out = append(out, fmt.Sprintf("#%d %-20s gen %-5d %d patterns",
			r.ID, TruncateName(r.Name), r.FinalGeneration, r.PatternCount))
	}
	return out, b.selected
}
