package life

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/7robots/conway-game-of-life/internal/core"
	"github.com/7robots/conway-game-of-life/internal/pattern"
)

func board(rows, cols int) *Life {
	return New(Config{Rows: rows, Cols: cols})
}

func TestBlinkerOscillation(t *testing.T) {
	life := board(5, 5)
	life.Set(1, 2, true)
	life.Set(2, 2, true)
	life.Set(3, 2, true)

	life.Step()
	want := pattern.NewCellSet(
		pattern.Cell{Row: 2, Col: 1}, pattern.Cell{Row: 2, Col: 2}, pattern.Cell{Row: 2, Col: 3},
	)
	if diff := cmp.Diff(want.Sorted(), life.LiveCells().Sorted()); diff != "" {
		t.Fatalf("after one step (-want +got):\n%s", diff)
	}

	life.Step()
	want = pattern.NewCellSet(
		pattern.Cell{Row: 1, Col: 2}, pattern.Cell{Row: 2, Col: 2}, pattern.Cell{Row: 3, Col: 2},
	)
	if diff := cmp.Diff(want.Sorted(), life.LiveCells().Sorted()); diff != "" {
		t.Fatalf("after second step (-want +got):\n%s", diff)
	}
	if life.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", life.Generation())
	}
}

func TestBoundedEdgesDoNotWrap(t *testing.T) {
	// A vertical blinker on the left edge cannot grow its off-grid arm.
	life := board(5, 5)
	life.Set(1, 0, true)
	life.Set(2, 0, true)
	life.Set(3, 0, true)
	life.Step()
	if diff := cmp.Diff([]pattern.Cell{{Row: 2, Col: 0}, {Row: 2, Col: 1}}, life.LiveCells().Sorted()); diff != "" {
		t.Fatalf("bounded step (-want +got):\n%s", diff)
	}

	wrapped := New(Config{Rows: 5, Cols: 5, Wrap: true})
	wrapped.Set(1, 0, true)
	wrapped.Set(2, 0, true)
	wrapped.Set(3, 0, true)
	wrapped.Step()
	want := []pattern.Cell{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 4}}
	if diff := cmp.Diff(want, wrapped.LiveCells().Sorted()); diff != "" {
		t.Fatalf("toroidal step (-want +got):\n%s", diff)
	}
}

func TestAgeAndTrail(t *testing.T) {
	life := board(6, 6)
	for _, c := range []pattern.Cell{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 2}} {
		life.Set(c.Row, c.Col, true)
	}
	life.Set(5, 5, true)
	if life.Age(1, 1) != 0 {
		t.Fatalf("new cell age = %d, want 0", life.Age(1, 1))
	}
	for i := 0; i < 12; i++ {
		life.Step()
	}
	if life.Age(1, 1) != MaxAge {
		t.Fatalf("still-life age = %d, want capped at %d", life.Age(1, 1), MaxAge)
	}
	if life.Age(5, 5) != -1 {
		t.Fatal("isolated cell should be dead")
	}

	fresh := board(3, 3)
	fresh.Set(1, 1, true)
	fresh.Step()
	if got := fresh.Trail()[4]; got != TrailLength {
		t.Fatalf("trail after death = %d, want %d", got, TrailLength)
	}
	fresh.Step()
	if got := fresh.Trail()[4]; got != TrailLength-1 {
		t.Fatalf("trail should decay, got %d", got)
	}
}

func TestSetToggleOffGrid(t *testing.T) {
	life := board(4, 4)
	life.Set(10, 10, true)
	if life.Population() != 0 {
		t.Fatal("off-grid Set should be ignored")
	}
	if !life.Toggle(0, 0) || !life.Alive(0, 0) {
		t.Fatal("toggle should make a dead cell live")
	}
	if life.Toggle(0, 0) || life.Alive(0, 0) {
		t.Fatal("toggle should kill a live cell")
	}
	if life.Toggle(-1, 0) {
		t.Fatal("off-grid toggle should report dead")
	}
}

func TestResetDeterministic(t *testing.T) {
	a := New(DefaultConfig())
	b := New(DefaultConfig())
	a.Reset(99)
	b.Reset(99)
	if diff := cmp.Diff(a.Snapshot(), b.Snapshot()); diff != "" {
		t.Fatalf("same seed differs (-a +b):\n%s", diff)
	}
	if a.Population() == 0 {
		t.Fatal("random fill produced an empty board")
	}
	a.Step()
	a.Reset(99)
	if a.Generation() != 0 {
		t.Fatal("reset should restart the generation counter")
	}
}

func TestSnapshotRestore(t *testing.T) {
	life := board(4, 5)
	life.Load(Preset{Name: "L", Cells: []pattern.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}}})
	snap := life.Snapshot()
	other := board(4, 5)
	other.Restore(snap)
	if diff := cmp.Diff(life.LiveCells().Sorted(), other.LiveCells().Sorted()); diff != "" {
		t.Fatalf("restore mismatch (-want +got):\n%s", diff)
	}
}

func TestPresets(t *testing.T) {
	names := make([]string, 0)
	for _, p := range Presets() {
		names = append(names, p.Name)
	}
	want := []string{"Glider", "Blinker", "Toad", "Beacon", "Pulsar", "Gosper Gun"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("preset order (-want +got):\n%s", diff)
	}

	gun, err := PresetByName("gosper gun")
	if err != nil {
		t.Fatal(err)
	}
	life := New(DefaultConfig())
	life.Load(gun)
	if life.Population() != 36 {
		t.Fatalf("gosper gun population = %d, want 36", life.Population())
	}
	if !life.Alive(14, 1) {
		t.Fatal("gun cell (4,0) should land at (14,1)")
	}

	small := board(20, 20)
	small.Load(gun)
	if small.Population() >= 36 {
		t.Fatal("cells outside a small grid should be clipped")
	}

	if _, err := PresetByName("Spaceship"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestConfigApply(t *testing.T) {
	c := DefaultConfig().Apply(map[string]string{"rows": "12", "cols": "8", "wrap": "true", "density": "0.5"})
	want := Config{Rows: 12, Cols: 8, Wrap: true, Density: 0.5}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
	if l := New(c); l.Size() != (core.Size{Rows: 12, Cols: 8}) {
		t.Fatalf("size = %+v", l.Size())
	}
}

func TestConfigApplyIgnoresBadValues(t *testing.T) {
	c := DefaultConfig().Apply(map[string]string{"rows": "-3", "cols": "x", "density": "2", "colour": "red"})
	if diff := cmp.Diff(DefaultConfig(), c); diff != "" {
		t.Fatalf("bad values should keep defaults (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultConfig(), DefaultConfig().Apply(nil)); diff != "" {
		t.Fatalf("nil overrides changed config:\n%s", diff)
	}
}
