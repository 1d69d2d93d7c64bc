package soup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7robots/conway-game-of-life/internal/pattern"
	"github.com/7robots/conway-game-of-life/internal/scan"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
	"github.com/7robots/conway-game-of-life/patterns"
)

func bundled(t *testing.T) *pattern.Catalog {
	t.Helper()
	cat, err := pattern.LoadFS(context.Background(), patterns.FS, ".")
	require.NoError(t, err)
	return cat
}

func smallConfig(workers int) Config {
	return Config{
		Soups:       12,
		Generations: 60,
		Workers:     workers,
		Board:       life.Config{Rows: 24, Cols: 24, Density: 0.35},
		Seed:        2024,
	}
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	cat := bundled(t)
	one, err := Run(context.Background(), cat, smallConfig(1))
	require.NoError(t, err)
	many, err := Run(context.Background(), cat, smallConfig(6))
	require.NoError(t, err)

	require.Len(t, one.Results, 12)
	assert.Equal(t, one.Results, many.Results)
	assert.Equal(t, one.Tallies, many.Tallies)
	for i, res := range one.Results {
		assert.Equal(t, i, res.Index)
	}
}

func TestRunFindsCommonAsh(t *testing.T) {
	rep, err := Run(context.Background(), bundled(t), smallConfig(4))
	require.NoError(t, err)
	require.NotEmpty(t, rep.Tallies, "twelve dense soups should settle into known still lifes or oscillators")
	for i := 1; i < len(rep.Tallies); i++ {
		assert.GreaterOrEqual(t, rep.Tallies[i-1].Soups, rep.Tallies[i].Soups)
	}
}

func TestTally(t *testing.T) {
	results := []Result{
		{Index: 0, Discoveries: []scan.Discovery{{Name: "Block", Generation: 30}, {Name: "Blinker", Generation: 31}}},
		{Index: 1, Discoveries: []scan.Discovery{{Name: "Block", Generation: 12}}},
		{Index: 2},
		{Index: 3, Discoveries: []scan.Discovery{{Name: "Glider", Generation: 40}, {Name: "Block", Generation: 50}}},
	}
	got := tally(results)
	want := []Tally{
		{Name: "Block", Soups: 3, Earliest: 12, EarliestSoup: 1},
		{Name: "Blinker", Soups: 1, Earliest: 31, EarliestSoup: 0},
		{Name: "Glider", Soups: 1, Earliest: 40, EarliestSoup: 3},
	}
	assert.Equal(t, want, got)
}

func TestRunProgressAndZeroSoups(t *testing.T) {
	cat := bundled(t)
	seen := 0
	cfg := smallConfig(3)
	cfg.Soups = 5
	_, err := Run(context.Background(), cat, cfg, WithProgress(func(Result) { seen++ }))
	require.NoError(t, err)
	assert.Equal(t, 5, seen)

	cfg.Soups = 0
	rep, err := Run(context.Background(), cat, cfg)
	require.NoError(t, err)
	assert.Empty(t, rep.Results)
	assert.Empty(t, rep.Tallies)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := smallConfig(2)
	cfg.Generations = 500
	_, err := Run(ctx, bundled(t), cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsNegative(t *testing.T) {
	cfg := smallConfig(1)
	cfg.Soups = -1
	_, err := Run(context.Background(), bundled(t), cfg)
	require.Error(t, err)
}
