// Package session binds a Life board to a scanner the way the interactive
// front ends drive them: every user action that changes the board keeps the
// discovery record consistent with it.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/7robots/conway-game-of-life/internal/config"
	"github.com/7robots/conway-game-of-life/internal/core"
	"github.com/7robots/conway-game-of-life/internal/scan"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
	"github.com/7robots/conway-game-of-life/internal/store"
)

// SpeedStep is the increment used by Faster and Slower.
const SpeedStep = 10

// RunSaver persists a finished run.
type RunSaver interface {
	SaveRun(ctx context.Context, run store.Run) (int64, error)
}

// Controller owns the board, the scanner and the run settings.
// It is not safe for concurrent use.
type Controller struct {
	board   *life.Life
	scanner *scan.Scanner
	logger  *slog.Logger

	start   [][]uint8
	speedMS int
	density float64
	running bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSpeed sets the initial step delay in milliseconds.
func WithSpeed(ms int) Option {
	return func(c *Controller) { c.speedMS = clampSpeed(ms) }
}

// WithDensity sets the live-cell probability used by Randomize.
func WithDensity(d float64) Option {
	return func(c *Controller) { c.density = d }
}

// New returns a paused controller. The scanner must be sized for board.
func New(board *life.Life, scanner *scan.Scanner, opts ...Option) *Controller {
	c := &Controller{
		board:   board,
		scanner: scanner,
		logger:  slog.New(slog.DiscardHandler),
		speedMS: 100,
		density: board.Config().Density,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.start = board.Snapshot()
	return c
}

// Board returns the underlying board.
func (c *Controller) Board() *life.Life { return c.board }

// Scanner returns the underlying scanner.
func (c *Controller) Scanner() *scan.Scanner { return c.scanner }

// SetScanner swaps in a new scanner, typically once a catalog finishes
// loading, and scans the current generation with it.
func (c *Controller) SetScanner(sc *scan.Scanner) ([]scan.Discovery, error) {
	c.scanner = sc
	return c.scan()
}

// Generation returns the board's generation.
func (c *Controller) Generation() int { return c.board.Generation() }

// Running reports whether the board should advance on its own.
func (c *Controller) Running() bool { return c.running }

// SetRunning starts or pauses automatic stepping.
func (c *Controller) SetRunning(on bool) { c.running = on }

// ToggleRunning flips between running and paused.
func (c *Controller) ToggleRunning() bool {
	c.running = !c.running
	return c.running
}

// SpeedMS returns the step delay in milliseconds.
func (c *Controller) SpeedMS() int { return c.speedMS }

// SetSpeed sets the step delay, clamped to the supported range.
func (c *Controller) SetSpeed(ms int) int {
	c.speedMS = clampSpeed(ms)
	return c.speedMS
}

// Faster shortens the step delay by SpeedStep.
func (c *Controller) Faster() int { return c.SetSpeed(c.speedMS - SpeedStep) }

// Slower lengthens the step delay by SpeedStep.
func (c *Controller) Slower() int { return c.SetSpeed(c.speedMS + SpeedStep) }

// Step advances one generation and scans the result.
func (c *Controller) Step() ([]scan.Discovery, error) {
	c.board.Step()
	return c.scan()
}

// Clear empties the board, pauses and resets discoveries without scanning.
func (c *Controller) Clear() {
	c.board.Clear()
	c.running = false
	c.scanner.Reset()
	c.start = c.board.Snapshot()
	c.logger.Debug("board cleared")
}

// Randomize refills the board at the configured density, resets
// discoveries and scans generation 0. A zero seed is time-based.
func (c *Controller) Randomize(seed int64) ([]scan.Discovery, error) {
	seed = core.SeedOrNow(seed)
	c.board.Randomize(core.NewRNG(seed), c.density)
	c.scanner.Reset()
	c.start = c.board.Snapshot()
	c.logger.Debug("board randomized", "seed", seed, "population", c.board.Population())
	return c.scan()
}

// LoadPreset places the named preset, pauses, resets discoveries and scans
// generation 0.
func (c *Controller) LoadPreset(name string) ([]scan.Discovery, error) {
	p, err := life.PresetByName(name)
	if err != nil {
		return nil, err
	}
	c.board.Load(p)
	c.running = false
	c.scanner.Reset()
	c.start = c.board.Snapshot()
	c.logger.Debug("preset loaded", "preset", p.Name)
	return c.scan()
}

// Restore replaces the board with a saved starting grid, pauses, resets
// discoveries and scans generation 0.
func (c *Controller) Restore(grid [][]uint8) ([]scan.Discovery, error) {
	c.board.Restore(grid)
	c.running = false
	c.scanner.Reset()
	c.start = c.board.Snapshot()
	return c.scan()
}

// Toggle flips a cell. Edits made before the first step also change the
// recorded starting grid.
func (c *Controller) Toggle(row, col int) bool {
	alive := c.board.Toggle(row, col)
	c.touch(row, col, alive)
	return alive
}

// Paint sets a cell, as when dragging the mouse.
func (c *Controller) Paint(row, col int, alive bool) {
	c.board.Set(row, col, alive)
	c.touch(row, col, alive && c.board.Alive(row, col))
}

func (c *Controller) touch(row, col int, alive bool) {
	if c.board.Generation() != 0 {
		return
	}
	if row < 0 || row >= len(c.start) || col < 0 || col >= len(c.start[row]) {
		return
	}
	c.start[row][col] = 0
	if alive {
		c.start[row][col] = 1
	}
}

// StartingGrid returns a copy of the generation-0 board.
func (c *Controller) StartingGrid() [][]uint8 {
	out := make([][]uint8, len(c.start))
	for i, row := range c.start {
		out[i] = append([]uint8(nil), row...)
	}
	return out
}

// Run describes the current session as a saveable run.
func (c *Controller) Run(name string) store.Run {
	run := store.Run{
		Session:         c.scanner.Session(),
		Name:            name,
		StartingGrid:    c.StartingGrid(),
		FinalGeneration: c.board.Generation(),
		SpeedMS:         c.speedMS,
		Wrap:            c.board.Config().Wrap,
	}
	for _, d := range c.scanner.Ordered() {
		run.Patterns = append(run.Patterns, store.RunPattern{Name: d.Name, Generation: d.Generation})
	}
	return run
}

// Save persists the current session under name.
func (c *Controller) Save(ctx context.Context, saver RunSaver, name string) (int64, error) {
	if name == "" {
		name = fmt.Sprintf("Run gen %d", c.board.Generation())
	}
	id, err := saver.SaveRun(ctx, c.Run(name))
	if err != nil {
		return 0, fmt.Errorf("saving run: %w", err)
	}
	return id, nil
}

func (c *Controller) scan() ([]scan.Discovery, error) {
	return c.scanner.Scan(c.board.LiveCells(), c.board.Generation())
}

func clampSpeed(ms int) int {
	return max(config.MinSpeedMS, min(ms, config.MaxSpeedMS))
}
