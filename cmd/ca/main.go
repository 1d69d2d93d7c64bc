//go:build ebiten

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"github.com/7robots/conway-game-of-life/internal/app"
	"github.com/7robots/conway-game-of-life/internal/config"
	"github.com/7robots/conway-game-of-life/internal/logging"
	"github.com/7robots/conway-game-of-life/internal/pattern"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
	"github.com/7robots/conway-game-of-life/internal/store"
	"github.com/7robots/conway-game-of-life/patterns"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(pflag.CommandLine)
	pflag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(flags *app.Flags) error {
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return err
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if flags.Patterns != "" {
		cfg.Patterns.Dir = flags.Patterns
	}
	if flags.DB != "" {
		cfg.Store.Path = flags.DB
	}
	if flags.Seed != 0 {
		cfg.Sim.Seed = flags.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if flags.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", flags.Scale)
	}
	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)

	st, err := store.Open(cfg.Store.Path, store.WithLogger(logger))
	if err != nil {
		logger.Warn("run database unavailable, saving disabled", "path", cfg.Store.Path, "error", err)
		st = nil
	} else {
		defer st.Close()
	}

	board := life.New(life.Config{
		Rows:    cfg.Grid.Rows,
		Cols:    cfg.Grid.Cols,
		Wrap:    cfg.Grid.Wrap,
		Density: cfg.Sim.Density,
	})
	game := app.New(board, catalogLoader(cfg, logger), app.Options{
		Scale:   flags.Scale,
		SpeedMS: cfg.Sim.SpeedMS,
		Density: cfg.Sim.Density,
		Seed:    cfg.Sim.Seed,
		Preset:  flags.Preset,
		Run:     flags.Run,
		Store:   st,
		Logger:  logger,
	})
	defer game.Close()

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("Conway's Game of Life")
	ebiten.SetTPS(flags.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func catalogLoader(cfg *config.Config, logger *slog.Logger) app.CatalogLoader {
	return func(ctx context.Context) (*pattern.Catalog, error) {
		opts := []pattern.Option{
			pattern.WithMaxBBox(cfg.Patterns.MaxBBox),
			pattern.WithLogger(logger),
		}
		if cfg.Patterns.Dir == "" {
			return pattern.LoadFS(ctx, patterns.FS, ".", opts...)
		}
		return pattern.Load(ctx, cfg.Patterns.Dir, opts...)
	}
}
