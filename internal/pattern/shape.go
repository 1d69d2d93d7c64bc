package pattern

import (
	"slices"
	"strings"
)

// Shape is a normalized cell set: sorted row-major and translated so its
// bounding box starts at (0,0). The zero Shape is empty.
type Shape struct {
	cells  []Cell
	height int
	width  int
}

// Normalize translates the set so its minimum row and column are zero.
func Normalize(s CellSet) Shape {
	box, ok := s.Bounds()
	if !ok {
		return Shape{}
	}
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, Cell{Row: c.Row - box.MinRow, Col: c.Col - box.MinCol})
	}
	SortCells(cells)
	return Shape{cells: cells, height: box.Height(), width: box.Width()}
}

// NormalizeCells is Normalize for a cell slice. Duplicates collapse.
func NormalizeCells(cells []Cell) Shape {
	return Normalize(NewCellSet(cells...))
}

// Cells returns a copy of the shape's cells in row-major order.
func (s Shape) Cells() []Cell { return slices.Clone(s.cells) }

// Len returns the number of live cells.
func (s Shape) Len() int { return len(s.cells) }

// Empty reports whether the shape has no cells.
func (s Shape) Empty() bool { return len(s.cells) == 0 }

// Width returns the bounding box width.
func (s Shape) Width() int { return s.width }

// Height returns the bounding box height.
func (s Shape) Height() int { return s.height }

// Bounds returns the shape's bounding box, anchored at the origin.
func (s Shape) Bounds() BoundingBox {
	if s.Empty() {
		return BoundingBox{MaxRow: -1, MaxCol: -1}
	}
	return BoundingBox{MaxRow: s.height - 1, MaxCol: s.width - 1}
}

// Set returns the shape as a CellSet.
func (s Shape) Set() CellSet { return NewCellSet(s.cells...) }

// Equal reports set equality.
func (s Shape) Equal(o Shape) bool { return slices.Equal(s.cells, o.cells) }

// Hash returns the canonical hash of the shape.
func (s Shape) Hash() Hash { return HashShape(s) }

// String renders the shape in plaintext form, one row per line.
func (s Shape) String() string {
	if s.Empty() {
		return ""
	}
	grid := make([][]byte, s.height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(string(deadChar), s.width))
	}
	for _, c := range s.cells {
		grid[c.Row][c.Col] = aliveChar
	}
	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
