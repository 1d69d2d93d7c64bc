package life

import (
	"errors"
	"fmt"
	"strings"

	"github.com/7robots/conway-game-of-life/internal/pattern"
)

// ErrUnknownPreset is returned by PresetByName for names not in Presets.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a starting configuration placed at a fixed offset on the board.
type Preset struct {
	Name   string
	Offset pattern.Cell
	Cells  []pattern.Cell
}

func cells(pairs ...int) []pattern.Cell {
	out := make([]pattern.Cell, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, pattern.Cell{Row: pairs[i], Col: pairs[i+1]})
	}
	return out
}

var presets = []Preset{
	{
		Name:   "Glider",
		Offset: pattern.Cell{Row: 2, Col: 2},
		Cells:  cells(0, 1, 1, 2, 2, 0, 2, 1, 2, 2),
	},
	{
		Name:   "Blinker",
		Offset: pattern.Cell{Row: 23, Col: 24},
		Cells:  cells(0, 0, 0, 1, 0, 2),
	},
	{
		Name:   "Toad",
		Offset: pattern.Cell{Row: 23, Col: 23},
		Cells:  cells(0, 1, 0, 2, 0, 3, 1, 0, 1, 1, 1, 2),
	},
	{
		Name:   "Beacon",
		Offset: pattern.Cell{Row: 22, Col: 23},
		Cells:  cells(0, 0, 0, 1, 1, 0, 1, 1, 2, 2, 2, 3, 3, 2, 3, 3),
	},
	{
		Name:   "Pulsar",
		Offset: pattern.Cell{Row: 18, Col: 18},
		Cells: cells(
			0, 2, 0, 3, 0, 4, 0, 8, 0, 9, 0, 10,
			2, 0, 2, 5, 2, 7, 2, 12,
			3, 0, 3, 5, 3, 7, 3, 12,
			4, 0, 4, 5, 4, 7, 4, 12,
			5, 2, 5, 3, 5, 4, 5, 8, 5, 9, 5, 10,
			7, 2, 7, 3, 7, 4, 7, 8, 7, 9, 7, 10,
			8, 0, 8, 5, 8, 7, 8, 12,
			9, 0, 9, 5, 9, 7, 9, 12,
			10, 0, 10, 5, 10, 7, 10, 12,
			12, 2, 12, 3, 12, 4, 12, 8, 12, 9, 12, 10,
		),
	},
	{
		Name:   "Gosper Gun",
		Offset: pattern.Cell{Row: 10, Col: 1},
		Cells: cells(
			0, 24,
			1, 22, 1, 24,
			2, 12, 2, 13, 2, 20, 2, 21, 2, 34, 2, 35,
			3, 11, 3, 15, 3, 20, 3, 21, 3, 34, 3, 35,
			4, 0, 4, 1, 4, 10, 4, 16, 4, 20, 4, 21,
			5, 0, 5, 1, 5, 10, 5, 14, 5, 16, 5, 17, 5, 22, 5, 24,
			6, 10, 6, 16, 6, 24,
			7, 11, 7, 15,
			8, 12, 8, 13,
		),
	},
}

// Presets returns the built-in presets in menu order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByName finds a preset by case-insensitive name.
func PresetByName(name string) (Preset, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
