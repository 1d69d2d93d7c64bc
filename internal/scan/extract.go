package scan

import (
	"errors"
	"fmt"

	"github.com/7robots/conway-game-of-life/internal/pattern"
)

// ErrOutOfBounds is returned when a live cell lies outside the grid.
var ErrOutOfBounds = errors.New("cell outside grid bounds")

var neighborOffsets = [8]pattern.Cell{
	{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1},
	{Row: 0, Col: -1}, {Row: 0, Col: 1},
	{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
}

// Extractor partitions live cells into 8-connected components on a bounded
// grid. A zero Rows or Cols disables the upper bound on that axis; negative
// coordinates are always rejected.
type Extractor struct {
	Rows int
	Cols int
}

// Components returns the maximal 8-connected components of live, ordered by
// each component's first cell in row-major order.
func (e Extractor) Components(live pattern.CellSet) ([]pattern.CellSet, error) {
	for c := range live {
		if !e.contains(c) {
			return nil, fmt.Errorf("%w: (%d,%d) not in %dx%d grid", ErrOutOfBounds, c.Row, c.Col, e.Rows, e.Cols)
		}
	}

	var comps []pattern.CellSet
	visited := make(pattern.CellSet, len(live))
	var queue []pattern.Cell
	for _, seed := range live.Sorted() {
		if visited.Has(seed) {
			continue
		}
		comp := pattern.NewCellSet(seed)
		visited.Add(seed)
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range neighborOffsets {
				n := pattern.Cell{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
				if visited.Has(n) || !live.Has(n) {
					continue
				}
				visited.Add(n)
				comp.Add(n)
				queue = append(queue, n)
			}
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

func (e Extractor) contains(c pattern.Cell) bool {
	if c.Row < 0 || c.Col < 0 {
		return false
	}
	if e.Rows > 0 && c.Row >= e.Rows {
		return false
	}
	if e.Cols > 0 && c.Col >= e.Cols {
		return false
	}
	return true
}
