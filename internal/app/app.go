//go:build ebiten

// Package app drives the interactive Life window: it steps the board at
// the configured speed, scans each generation and renders the panels.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/7robots/conway-game-of-life/internal/core"
	"github.com/7robots/conway-game-of-life/internal/pattern"
	"github.com/7robots/conway-game-of-life/internal/render"
	"github.com/7robots/conway-game-of-life/internal/scan"
	"github.com/7robots/conway-game-of-life/internal/session"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
	"github.com/7robots/conway-game-of-life/internal/store"
	"github.com/7robots/conway-game-of-life/internal/ui"
)

var presetKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6,
}

type catalogResult struct {
	cat *pattern.Catalog
	err error
}

// Game adapts a session controller to the ebiten.Game interface.
type Game struct {
	ctrl    *session.Controller
	painter *render.GridPainter
	layout  Layout
	step    *core.FixedStep
	store   *store.Store
	logger  *slog.Logger

	toasts  *ui.Toasts
	browser ui.Browser

	ctx      context.Context
	cancel   context.CancelFunc
	catalogC chan catalogResult
	loading  bool

	painting  bool
	paintLive bool
}

// New constructs a Game for board and starts loading the catalog. Until it
// arrives the board runs without matching; the current generation is
// scanned as soon as the catalog is ready.
func New(board *life.Life, load CatalogLoader, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	size := board.Size()
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		painter:  render.NewGridPainter(size.Rows, size.Cols),
		layout:   Layout{Rows: size.Rows, Cols: size.Cols, Scale: opts.Scale},
		store:    opts.Store,
		logger:   logger,
		toasts:   ui.NewToasts(),
		ctx:      ctx,
		cancel:   cancel,
		catalogC: make(chan catalogResult, 1),
		loading:  true,
	}
	g.ctrl = session.New(board, g.newScanner(pattern.New(nil)),
		session.WithLogger(logger),
		session.WithSpeed(opts.SpeedMS),
		session.WithDensity(opts.Density),
	)
	g.step = core.NewFixedStep(time.Duration(g.ctrl.SpeedMS()) * time.Millisecond)

	if opts.Preset != "" {
		if _, err := g.ctrl.LoadPreset(opts.Preset); err != nil {
			logger.Warn("preset not loaded", "preset", opts.Preset, "error", err)
		}
	} else {
		g.report(g.ctrl.Randomize(opts.Seed))
	}
	g.ctrl.SetRunning(opts.Run)

	go func() {
		start := time.Now()
		cat, err := load(ctx)
		if err == nil {
			logger.Info("catalog ready", "patterns", cat.Len(), "entries", cat.Entries(), "elapsed", time.Since(start))
		}
		g.catalogC <- catalogResult{cat: cat, err: err}
	}()
	return g
}

func (g *Game) newScanner(cat *pattern.Catalog) *scan.Scanner {
	return scan.NewScanner(cat, g.layout.Rows, g.layout.Cols,
		scan.WithLogger(g.logger),
		scan.WithHandler(func(d scan.Discovery) { g.toasts.Found(d.Name) }),
	)
}

// Close stops background work.
func (g *Game) Close() { g.cancel() }

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	g.pollCatalog()

	if g.browser.IsOpen() {
		g.updateBrowser()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if !g.ctrl.ToggleRunning() {
			g.step.Pause()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !g.ctrl.Running() {
		g.report(g.ctrl.Step())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Clear()
		g.toasts.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.toasts.Clear()
		g.report(g.ctrl.Randomize(0))
	}
	for i, p := range life.Presets() {
		if i < len(presetKeys) && inpututil.IsKeyJustPressed(presetKeys[i]) {
			g.toasts.Clear()
			g.report(g.ctrl.LoadPreset(p.Name))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.ctrl.Faster()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.ctrl.Slower()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveRun()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.openBrowser()
	}

	g.updatePaint()

	g.step.SetInterval(time.Duration(g.ctrl.SpeedMS()) * time.Millisecond)
	if g.ctrl.Running() && g.step.ShouldStep() {
		g.report(g.ctrl.Step())
	}
	return nil
}

func (g *Game) pollCatalog() {
	if !g.loading {
		return
	}
	select {
	case res := <-g.catalogC:
		g.loading = false
		if res.err != nil {
			if !errors.Is(res.err, context.Canceled) {
				g.logger.Error("pattern catalog unavailable", "error", res.err)
				g.toasts.Add("Patterns failed to load")
			}
			return
		}
		g.report(g.ctrl.SetScanner(g.newScanner(res.cat)))
	default:
	}
}

// updatePaint draws with the mouse while paused. The first cell pressed
// decides whether the drag paints live or dead cells.
func (g *Game) updatePaint() {
	if g.ctrl.Running() {
		g.painting = false
		return
	}
	x, y := ebiten.CursorPosition()
	row, col, ok := g.layout.CellAt(x, y)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && ok {
		g.painting = true
		g.paintLive = g.ctrl.Toggle(row, col)
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.painting = false
		return
	}
	if g.painting && ok && g.ctrl.Board().Alive(row, col) != g.paintLive {
		g.ctrl.Paint(row, col, g.paintLive)
	}
}

func (g *Game) saveRun() {
	if g.store == nil {
		g.toasts.Add("No run database")
		return
	}
	id, err := g.ctrl.Save(g.ctx, g.store, "")
	if err != nil {
		g.logger.Error("save failed", "error", err)
		g.toasts.Add("Save failed")
		return
	}
	g.logger.Info("run saved", "id", id, "generation", g.ctrl.Generation())
	g.toasts.Add("Saved run #" + strconv.FormatInt(id, 10))
}

func (g *Game) openBrowser() {
	if g.store == nil {
		g.toasts.Add("No run database")
		return
	}
	runs, err := g.store.ListRuns(g.ctx)
	if err != nil {
		g.logger.Error("listing runs", "error", err)
		return
	}
	g.ctrl.SetRunning(false)
	g.step.Pause()
	g.browser.Open(runs)
}

func (g *Game) updateBrowser() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.browser.Close()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.browser.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.browser.Move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		sel, ok := g.browser.Selected()
		if !ok {
			return
		}
		run, err := g.store.LoadRun(g.ctx, sel.ID)
		if err != nil {
			g.logger.Error("loading run", "id", sel.ID, "error", err)
			return
		}
		g.toasts.Clear()
		g.ctrl.SetSpeed(run.SpeedMS)
		g.report(g.ctrl.Restore(run.StartingGrid))
		g.browser.Close()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		sel, ok := g.browser.Selected()
		if !ok {
			return
		}
		if err := g.store.DeleteRun(g.ctx, sel.ID); err != nil && !errors.Is(err, store.ErrRunNotFound) {
			g.logger.Error("deleting run", "id", sel.ID, "error", err)
			return
		}
		g.browser.Remove(sel.ID)
	}
}

func (g *Game) report(_ []scan.Discovery, err error) {
	if err != nil {
		g.logger.Error("scan failed", "generation", g.ctrl.Generation(), "error", err)
	}
}

// Draw renders the board and the panels.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	board := g.ctrl.Board()
	grid := g.layout.Grid()
	g.painter.Blit(screen, board.Cells(), board.Trail(), grid.Min.X, grid.Min.Y, g.layout.Scale)

	_, h := g.layout.Screen()
	ui.DrawStats(screen, ui.Stats{
		Generation: board.Generation(),
		Population: board.Population(),
		Running:    g.ctrl.Running(),
		SpeedMS:    g.ctrl.SpeedMS(),
		Loading:    g.loading,
	}, grid.Max.X)
	ui.DrawSidebar(screen, g.ctrl.Scanner().Ordered(), grid.Max.X, h)
	ui.DrawToasts(screen, g.toasts.Visible(), grid.Max.X, h)
	ui.DrawBrowser(screen, &g.browser, grid.Inset(24))
}

// Layout returns the logical screen size.
func (g *Game) Layout(int, int) (int, int) {
	return g.layout.Screen()
}

var _ ebiten.Game = (*Game)(nil)
