// Package life implements Conway's Game of Life (B3/S23) on a bounded or
// toroidal grid, tracking cell age and fading trails for display.
package life

import (
	"github.com/7robots/conway-game-of-life/internal/core"
	"github.com/7robots/conway-game-of-life/internal/pattern"
)

const (
	// MaxAge caps the age counter of a surviving cell.
	MaxAge = 9
	// TrailLength is how many generations a dead cell's trail lasts.
	TrailLength = 4
)

// Life holds the board. Ages are stored as age+1 so zero means dead.
type Life struct {
	cfg   Config
	cur   *core.ByteGrid
	nxt   *core.ByteGrid
	trail *core.ByteGrid
	gen   int
}

// New returns an empty Life board.
func New(cfg Config) *Life {
	return &Life{
		cfg:   cfg,
		cur:   core.NewByteGrid(cfg.Rows, cfg.Cols),
		nxt:   core.NewByteGrid(cfg.Rows, cfg.Cols),
		trail: core.NewByteGrid(cfg.Rows, cfg.Cols),
	}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{Rows: l.cur.Rows, Cols: l.cur.Cols} }

// Config returns the configuration the board was built with.
func (l *Life) Config() Config { return l.cfg }

// Cells exposes the current grid: 0 for dead, age+1 for live cells.
func (l *Life) Cells() []uint8 { return l.cur.Cells() }

// Trail exposes the fade countdown of recently dead cells.
func (l *Life) Trail() []uint8 { return l.trail.Cells() }

// Generation returns the number of steps since the last reset.
func (l *Life) Generation() int { return l.gen }

// Reset randomizes the board at the configured density.
func (l *Life) Reset(seed int64) {
	l.Randomize(core.NewRNG(seed), l.cfg.Density)
}

// Randomize clears the board and fills each cell with probability density.
func (l *Life) Randomize(rng *core.RNG, density float64) {
	l.Clear()
	core.FillDensity(rng.Source(), l.cur.Cells(), density)
}

// Clear kills every cell and resets the generation counter.
func (l *Life) Clear() {
	l.cur.Clear()
	l.trail.Clear()
	l.gen = 0
}

// Alive reports whether (row, col) is live. Off-grid cells are dead.
func (l *Life) Alive(row, col int) bool { return l.cur.Get(row, col) != 0 }

// Age returns the age of a live cell, or -1 for a dead one.
func (l *Life) Age(row, col int) int { return int(l.cur.Get(row, col)) - 1 }

// Set makes (row, col) live or dead. Off-grid writes are ignored.
func (l *Life) Set(row, col int, alive bool) {
	if alive {
		if !l.Alive(row, col) {
			l.cur.Set(row, col, 1)
		}
		return
	}
	l.cur.Set(row, col, 0)
}

// Toggle flips (row, col) and returns its new state.
func (l *Life) Toggle(row, col int) bool {
	alive := !l.Alive(row, col)
	l.Set(row, col, alive)
	return alive && l.cur.In(row, col)
}

// Population counts live cells.
func (l *Life) Population() int {
	n := 0
	for _, v := range l.cur.Cells() {
		if v != 0 {
			n++
		}
	}
	return n
}

// LiveCells returns the coordinates of every live cell.
func (l *Life) LiveCells() pattern.CellSet {
	live := pattern.NewCellSet()
	cols := l.cur.Cols
	for i, v := range l.cur.Cells() {
		if v != 0 {
			live.Add(pattern.Cell{Row: i / cols, Col: i % cols})
		}
	}
	return live
}

// Snapshot returns the board as rows of 0/1 values.
func (l *Life) Snapshot() [][]uint8 {
	out := make([][]uint8, l.cur.Rows)
	for r := range out {
		out[r] = make([]uint8, l.cur.Cols)
		for c := range out[r] {
			if l.Alive(r, c) {
				out[r][c] = 1
			}
		}
	}
	return out
}

// Restore replaces the board with a 0/1 snapshot, clipping to the grid.
func (l *Life) Restore(grid [][]uint8) {
	l.Clear()
	for r, row := range grid {
		for c, v := range row {
			l.Set(r, c, v != 0)
		}
	}
}

// Load clears the board and places a preset at its offset. Cells that fall
// outside the grid are dropped.
func (l *Life) Load(p Preset) {
	l.Clear()
	for _, c := range p.Cells {
		l.Set(p.Offset.Row+c.Row, p.Offset.Col+c.Col, true)
	}
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	rows, cols := l.cur.Rows, l.cur.Cols
	cur, nxt, trail := l.cur.Cells(), l.nxt.Cells(), l.trail.Cells()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := l.neighbors(r, c)
			idx := r*cols + c
			v := cur[idx]
			switch {
			case v != 0 && (n == 2 || n == 3):
				nxt[idx] = min(v+1, MaxAge+1)
			case v != 0:
				nxt[idx] = 0
				trail[idx] = TrailLength
			case n == 3:
				nxt[idx] = 1
			default:
				nxt[idx] = 0
				if trail[idx] > 0 {
					trail[idx]--
				}
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	l.gen++
}

func (l *Life) neighbors(r, c int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if l.cfg.Wrap {
				nr, nc = l.cur.Wrap(nr, nc)
			}
			if l.cur.Get(nr, nc) != 0 {
				n++
			}
		}
	}
	return n
}

var _ core.Sim = (*Life)(nil)
