package scan

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/7robots/conway-game-of-life/internal/metrics"
	"github.com/7robots/conway-game-of-life/internal/pattern"
)

func cells(pairs ...int) pattern.CellSet {
	s := pattern.NewCellSet()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Add(pattern.Cell{Row: pairs[i], Col: pairs[i+1]})
	}
	return s
}

func merge(sets ...pattern.CellSet) pattern.CellSet {
	out := pattern.NewCellSet()
	for _, s := range sets {
		for c := range s {
			out.Add(c)
		}
	}
	return out
}

var (
	blinker = cells(0, 0, 0, 1, 0, 2)
	block   = cells(0, 0, 0, 1, 1, 0, 1, 1)
	glider  = cells(0, 1, 1, 2, 2, 0, 2, 1, 2, 2)
)

func testCatalog() *pattern.Catalog {
	return pattern.New([]pattern.Definition{
		pattern.NewDefinition("Blinker", blinker.Sorted()...),
		pattern.NewDefinition("Block", block.Sorted()...),
		pattern.NewDefinition("Glider", glider.Sorted()...),
	})
}

func TestScanBlinkerEndToEnd(t *testing.T) {
	s := NewScanner(testCatalog(), 50, 50)
	got, err := s.Scan(cells(5, 5, 5, 6, 5, 7), 3)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []Discovery{{Name: "Blinker", Generation: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("discoveries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"Blinker": 3}, s.Discovered()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	// The vertical phase is the same pattern and must not rediscover it.
	got, err = s.Scan(cells(4, 6, 5, 6, 6, 6), 4)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no new discoveries, got %+v", got)
	}
	if gen, ok := s.FirstSeen("Blinker"); !ok || gen != 3 {
		t.Fatalf("FirstSeen = %d, %v; want 3, true", gen, ok)
	}
}

func TestScanComponentIsolation(t *testing.T) {
	separated := merge(block.Translate(2, 2), glider.Translate(2, 10))
	s := NewScanner(testCatalog(), 20, 20)
	got, err := s.Scan(separated, 1)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []Discovery{{Name: "Block", Generation: 1}, {Name: "Glider", Generation: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("separated mismatch (-want +got):\n%s", diff)
	}

	// Moving the glider so it touches the block merges them into one
	// unrecognised component.
	adjacent := merge(block.Translate(2, 2), glider.Translate(2, 4))
	s.Reset()
	got, err = s.Scan(adjacent, 1)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("touching patterns should not match, got %+v", got)
	}
}

func TestScanMonotonic(t *testing.T) {
	s := NewScanner(testCatalog(), 30, 30)
	frames := []pattern.CellSet{
		block.Translate(1, 1),
		merge(block.Translate(1, 1), blinker.Translate(10, 10)),
		pattern.NewCellSet(),
		glider.Translate(20, 20),
		merge(block.Translate(5, 5), glider.Translate(20, 2)),
	}
	prev := map[string]int{}
	for gen, live := range frames {
		if _, err := s.Scan(live, gen); err != nil {
			t.Fatalf("gen %d: %v", gen, err)
		}
		rec := s.Discovered()
		for name, first := range prev {
			if rec[name] != first {
				t.Fatalf("gen %d: %s moved from %d to %d", gen, name, first, rec[name])
			}
		}
		prev = rec
	}
	want := []Discovery{
		{Name: "Block", Generation: 0},
		{Name: "Blinker", Generation: 1},
		{Name: "Glider", Generation: 3},
	}
	if diff := cmp.Diff(want, s.Ordered()); diff != "" {
		t.Fatalf("ordered mismatch (-want +got):\n%s", diff)
	}
}

func TestScanReset(t *testing.T) {
	s := NewScanner(testCatalog(), 10, 10)
	if _, err := s.Scan(block, 0); err != nil {
		t.Fatal(err)
	}
	before := s.Session()
	s.Reset()
	if s.Len() != 0 || len(s.Ordered()) != 0 {
		t.Fatalf("reset left %d entries", s.Len())
	}
	if s.Session() == before {
		t.Fatal("reset should start a new session")
	}
	got, err := s.Scan(block, 7)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Discovery{{Name: "Block", Generation: 7}}, got); diff != "" {
		t.Fatalf("rediscovery mismatch (-want +got):\n%s", diff)
	}
}

func TestScanOutOfBoundsLeavesRecord(t *testing.T) {
	s := NewScanner(testCatalog(), 10, 10)
	if _, err := s.Scan(block, 0); err != nil {
		t.Fatal(err)
	}
	bad := merge(blinker.Translate(3, 3), cells(10, 0))
	if _, err := s.Scan(bad, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if diff := cmp.Diff(map[string]int{"Block": 0}, s.Discovered()); diff != "" {
		t.Fatalf("record changed (-want +got):\n%s", diff)
	}
	if s.State() != Idle {
		t.Fatalf("state = %v after failed scan", s.State())
	}
}

func TestScanSkipsOversized(t *testing.T) {
	var line []pattern.Cell
	for c := 0; c < 12; c++ {
		line = append(line, pattern.Cell{Row: 0, Col: c})
	}
	cat := pattern.New([]pattern.Definition{pattern.NewDefinition("Line", line...)}, pattern.WithMaxBBox(12))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	s := NewScanner(cat, 20, 20, WithMetrics(m))
	got, err := s.Scan(pattern.NewCellSet(line...), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("line within a 12 limit should match, got %+v", got)
	}

	strict := NewScanner(testCatalog(), 20, 20, WithMetrics(m))
	got, err = strict.Scan(pattern.NewCellSet(line...), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("oversized component should be skipped, got %+v", got)
	}
	want := `
# HELP lifescan_oversized_components_total Components skipped for exceeding the bounding box limit.
# TYPE lifescan_oversized_components_total counter
lifescan_oversized_components_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "lifescan_oversized_components_total"); err != nil {
		t.Fatal(err)
	}
}

func TestScanHandler(t *testing.T) {
	var seen []Discovery
	var states []State
	var s *Scanner
	s = NewScanner(testCatalog(), 30, 30, WithHandler(func(d Discovery) {
		seen = append(seen, d)
		states = append(states, s.State())
	}))
	live := merge(glider.Translate(1, 1), blinker.Translate(20, 20), blinker.Translate(25, 5))
	got, err := s.Scan(live, 9)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, seen); diff != "" {
		t.Fatalf("handler saw different discoveries (-returned +handled):\n%s", diff)
	}
	for _, st := range states {
		if st != Scanning {
			t.Fatalf("handler ran while state = %v", st)
		}
	}
	if s.State() != Idle {
		t.Fatalf("state = %v after scan", s.State())
	}
}

func TestOrderedSortsWithinGeneration(t *testing.T) {
	s := NewScanner(testCatalog(), 20, 20)
	got, err := s.Scan(merge(glider.Translate(1, 1), block.Translate(10, 10)), 0)
	if err != nil {
		t.Fatal(err)
	}
	found := []Discovery{{Name: "Glider"}, {Name: "Block"}}
	if diff := cmp.Diff(found, got); diff != "" {
		t.Fatalf("scan should report in component order (-want +got):\n%s", diff)
	}
	ordered := []Discovery{{Name: "Block"}, {Name: "Glider"}}
	if diff := cmp.Diff(ordered, s.Ordered()); diff != "" {
		t.Fatalf("ordered (-want +got):\n%s", diff)
	}
}
