package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	Rows, Cols int
	data       []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(rows, cols int) *ByteGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &ByteGrid{Rows: rows, Cols: cols, data: make([]uint8, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for (row, col).
func (g *ByteGrid) Index(row, col int) int { return row*g.Cols + col }

// In reports whether (row, col) lies on the grid.
func (g *ByteGrid) In(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Get returns the value at (row, col), or zero off the grid.
func (g *ByteGrid) Get(row, col int) uint8 {
	if !g.In(row, col) {
		return 0
	}
	return g.data[g.Index(row, col)]
}

// Set stores v at (row, col). Off-grid writes are ignored.
func (g *ByteGrid) Set(row, col int, v uint8) {
	if g.In(row, col) {
		g.data[g.Index(row, col)] = v
	}
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(row, col int) (int, int) {
	row = (row%g.Rows + g.Rows) % g.Rows
	col = (col%g.Cols + g.Cols) % g.Cols
	return row, col
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() { clear(g.data) }
