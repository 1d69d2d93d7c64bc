package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	Rows int
	Cols int
}

// Cells returns the number of cells in a grid of this size.
func (s Size) Cells() int { return s.Rows * s.Cols }

// Sim defines the minimal contract a cellular automaton must implement.
// Cells returns one byte per cell in row-major order; zero is dead and any
// other value is sim-specific shading.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
	Generation() int
}
