package app

import (
	"context"
	"log/slog"

	"github.com/7robots/conway-game-of-life/internal/pattern"
	"github.com/7robots/conway-game-of-life/internal/store"
)

// CatalogLoader builds the pattern catalog. It runs off the UI goroutine.
type CatalogLoader func(ctx context.Context) (*pattern.Catalog, error)

// Options configures a Game.
type Options struct {
	Scale   int
	SpeedMS int
	Density float64
	Seed    int64
	Preset  string
	Run     bool
	Store   *store.Store
	Logger  *slog.Logger
}
