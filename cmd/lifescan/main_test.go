package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7robots/conway-game-of-life/internal/scan"
)

// isolate points XDG homes at temp directories so tests never touch the
// real config or run database.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lifescan version "+version)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}

func TestCatalogSummary(t *testing.T) {
	isolate(t)
	out, err := execute(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Glider")
	assert.Contains(t, out, "rejected (too large): Pulsar")
}

func TestCatalogLookup(t *testing.T) {
	dir := isolate(t)
	// Glider rotated a quarter turn.
	file := filepath.Join(dir, "mystery.cells")
	require.NoError(t, os.WriteFile(file, []byte("O..\nO.O\nOO.\n"), 0o644))
	blob := filepath.Join(dir, "blob.cells")
	require.NoError(t, os.WriteFile(blob, []byte("OOOO\nO..O\n"), 0o644))

	out, err := execute(t, "catalog", "--lookup", file, "--lookup", blob)
	require.NoError(t, err)
	assert.Contains(t, out, "mystery.cells: Glider")
	assert.Contains(t, out, "blob.cells: no match")
}

func TestCatalogCustomDir(t *testing.T) {
	dir := isolate(t)
	corpus := filepath.Join(dir, "corpus")
	require.NoError(t, os.MkdirAll(corpus, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(corpus, "blinker.cells"), []byte("!Name: Blinker\nOOO\n"), 0o644))

	out, err := execute(t, "catalog", "--patterns-dir", corpus, "--json")
	require.NoError(t, err)
	var sum catalogSummary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, []string{"Blinker"}, sum.Patterns)
	assert.Equal(t, 2, sum.Entries)

	_, err = execute(t, "catalog", "--patterns-dir", filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestRunSaveAndInspect(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "runs.db")

	out, err := execute(t, "run", "--preset", "Blinker", "--generations", "5", "--save", "demo", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "found Blinker")
	assert.Contains(t, out, "saved as run 1")

	out, err = execute(t, "runs", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "demo")

	out, err = execute(t, "runs", "show", "1", "--grid", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Run 1: demo")
	assert.Contains(t, out, "generations: 5")
	assert.Contains(t, out, "OOO")

	out, err = execute(t, "runs", "replay", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed run 1 to generation 5")
	assert.Contains(t, out, "Blinker")

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Blinker")

	out, err = execute(t, "runs", "delete", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted run 1")

	_, err = execute(t, "runs", "show", "1", "--db", db)
	require.Error(t, err)
	_, err = execute(t, "runs", "show", "abc", "--db", db)
	require.Error(t, err)
}

func TestRunJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "run", "--preset", "Glider", "--generations", "8", "--json")
	require.NoError(t, err)

	var res struct {
		Generations int              `json:"generations"`
		Population  int              `json:"population"`
		Discoveries []scan.Discovery `json:"discoveries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 8, res.Generations)
	assert.Equal(t, 5, res.Population)
	assert.Equal(t, []scan.Discovery{{Name: "Glider", Generation: 0}}, res.Discoveries)
}

func TestRunUnknownPreset(t *testing.T) {
	isolate(t)
	_, err := execute(t, "run", "--preset", "Nope")
	require.ErrorContains(t, err, "unknown preset")
}

func TestSweep(t *testing.T) {
	isolate(t)
	t.Setenv("LIFESCAN_GRID_ROWS", "20")
	t.Setenv("LIFESCAN_GRID_COLS", "20")
	out, err := execute(t, "sweep", "--soups", "4", "--generations", "30", "--workers", "2", "--seed", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "4 soups x 30 generations on 20x20 (seed 11)")
	assert.True(t, strings.Contains(out, "PATTERN"))
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)
	_, err := execute(t, "catalog", "--log-level", "loud")
	require.ErrorContains(t, err, "invalid configuration")
}

func TestRunBoardOverrides(t *testing.T) {
	isolate(t)
	var res struct {
		Population  int              `json:"population"`
		Discoveries []scan.Discovery `json:"discoveries"`
	}

	out, err := execute(t, "run", "--preset", "Blinker", "--generations", "2", "--board", "rows=30,cols=30,wrap=true", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Population)
	assert.Equal(t, []scan.Discovery{{Name: "Blinker", Generation: 0}}, res.Discoveries)

	// The Blinker preset sits at row 23, so a 10x10 board clips it away.
	out, err = execute(t, "run", "--preset", "Blinker", "--generations", "2", "--board", "rows=10,cols=10", "--json")
	require.NoError(t, err)
	res.Discoveries = nil
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 0, res.Population)
	assert.Empty(t, res.Discoveries)
}
