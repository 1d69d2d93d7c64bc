package render

import (
	"testing"

	"github.com/7robots/conway-game-of-life/internal/sims/life"
)

func TestCellColor(t *testing.T) {
	tests := []struct {
		name  string
		v     uint8
		trail uint8
		want  [4]uint8
	}{
		{"dead", 0, 0, [4]uint8{17, 17, 17, 255}},
		{"newborn", 1, 0, [4]uint8{57, 255, 20, 255}},
		{"elder", life.MaxAge + 1, 0, [4]uint8{255, 80, 80, 255}},
		{"over cap clamps", 200, 0, [4]uint8{255, 80, 80, 255}},
		{"just died", 0, life.TrailLength, [4]uint8{50, 30, 15, 255}},
		{"fading", 0, 1, [4]uint8{20, 11, 9, 255}},
		{"live ignores trail", 2, 3, [4]uint8{0, 230, 118, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CellColor(tt.v, tt.trail)
			if got := [4]uint8{c.R, c.G, c.B, c.A}; got != tt.want {
				t.Fatalf("CellColor(%d,%d) = %v, want %v", tt.v, tt.trail, got, tt.want)
			}
		})
	}
}

func TestFillCellsRGBA(t *testing.T) {
	cells := []uint8{0, 1, 0}
	buf := make([]byte, 4*len(cells))
	fillCellsRGBA(buf, cells, []uint8{0, 0, life.TrailLength})

	want := []byte{
		17, 17, 17, 255,
		57, 255, 20, 255,
		50, 30, 15, 255,
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}

	fillCellsRGBA(buf, cells, nil)
	if buf[8] != 17 {
		t.Fatal("nil trail should render dead cells plainly")
	}
}
