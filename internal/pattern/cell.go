package pattern

import (
	"cmp"
	"slices"
)

// Cell is a grid coordinate.
type Cell struct {
	Row int
	Col int
}

// Less orders cells row-major.
func (c Cell) Less(o Cell) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

func compareCells(a, b Cell) int {
	if a.Row != b.Row {
		return cmp.Compare(a.Row, b.Row)
	}
	return cmp.Compare(a.Col, b.Col)
}

// SortCells sorts cells in place, row-major.
func SortCells(cells []Cell) {
	slices.SortFunc(cells, compareCells)
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the provided cells. Duplicates collapse.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a cell.
func (s CellSet) Add(c Cell) { s[c] = struct{}{} }

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of cells.
func (s CellSet) Len() int { return len(s) }

// Sorted returns the cells in row-major order.
func (s CellSet) Sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	SortCells(out)
	return out
}

// Translate returns a copy of the set shifted by (dr, dc).
func (s CellSet) Translate(dr, dc int) CellSet {
	out := make(CellSet, len(s))
	for c := range s {
		out[Cell{Row: c.Row + dr, Col: c.Col + dc}] = struct{}{}
	}
	return out
}

// Bounds returns the bounding box of the set. ok is false for an empty set.
func (s CellSet) Bounds() (box BoundingBox, ok bool) {
	first := true
	for c := range s {
		if first {
			box = BoundingBox{MinRow: c.Row, MinCol: c.Col, MaxRow: c.Row, MaxCol: c.Col}
			first = false
			continue
		}
		box = box.extend(c)
	}
	return box, !first
}

// BoundingBox is the minimal axis-aligned rectangle around a set of cells.
type BoundingBox struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Width is the number of columns spanned.
func (b BoundingBox) Width() int { return b.MaxCol - b.MinCol + 1 }

// Height is the number of rows spanned.
func (b BoundingBox) Height() int { return b.MaxRow - b.MinRow + 1 }

// Exceeds reports whether either dimension is larger than max.
func (b BoundingBox) Exceeds(max int) bool {
	return b.Width() > max || b.Height() > max
}

func (b BoundingBox) extend(c Cell) BoundingBox {
	b.MinRow = min(b.MinRow, c.Row)
	b.MinCol = min(b.MinCol, c.Col)
	b.MaxRow = max(b.MaxRow, c.Row)
	b.MaxCol = max(b.MaxCol, c.Col)
	return b
}
