package pattern

import (
	"math/rand/v2"
	"testing"
)

func TestHashIndependentOfInsertionOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	base := HashCells(NewCellSet(rPentomino...))
	for i := 0; i < 20; i++ {
		cells := append([]Cell(nil), rPentomino...)
		rng.Shuffle(len(cells), func(a, b int) { cells[a], cells[b] = cells[b], cells[a] })
		s := make(CellSet)
		for _, c := range cells {
			s.Add(c)
		}
		if got := HashCells(s); got != base {
			t.Fatalf("hash changed with insertion order: %s != %s", got, base)
		}
	}
}

func TestHashTranslationInvariant(t *testing.T) {
	s := NewCellSet(gliderCells...)
	if HashCells(s) != HashCells(s.Translate(30, 12)) {
		t.Fatal("translated sets must hash identically")
	}
}

func TestHashDistinguishesShapes(t *testing.T) {
	shapes := [][]Cell{
		gliderCells,
		rPentomino,
		lCells,
		{{0, 0}},
		{{0, 0}, {0, 1}},
		{{0, 0}, {1, 1}},
	}
	seen := map[Hash]int{}
	for i, cells := range shapes {
		h := HashCells(NewCellSet(cells...))
		if j, ok := seen[h]; ok {
			t.Fatalf("shapes %d and %d collide", j, i)
		}
		seen[h] = i
	}
}

func TestHashStringForms(t *testing.T) {
	h := HashCells(NewCellSet(gliderCells...))
	if len(h.String()) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(h.String()))
	}
	if h.Short() != h.String()[:16] {
		t.Fatalf("short form %q is not a prefix of %q", h.Short(), h.String())
	}
}
