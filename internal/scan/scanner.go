// Package scan finds catalogued patterns among the live cells of a grid,
// one generation at a time, and keeps the per-session discovery record.
package scan

import (
	"cmp"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/7robots/conway-game-of-life/internal/metrics"
	"github.com/7robots/conway-game-of-life/internal/pattern"
)

// State reports whether a scan is in flight.
type State int32

const (
	Idle State = iota
	Scanning
)

func (s State) String() string {
	if s == Scanning {
		return "scanning"
	}
	return "idle"
}

// Discovery is the first sighting of a pattern within a session.
type Discovery struct {
	Name       string `json:"name"`
	Generation int    `json:"generation"`
}

// Handler receives discoveries synchronously during Scan. It must not call
// back into the Scanner.
type Handler func(Discovery)

// Scanner matches grid components against a catalog and records the
// generation at which each pattern was first seen.
type Scanner struct {
	catalog   *pattern.Catalog
	extractor Extractor
	handler   Handler
	logger    *slog.Logger
	metrics   *metrics.Metrics

	state atomic.Int32

	mu         sync.Mutex
	session    uuid.UUID
	discovered map[string]int
	events     []Discovery
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithHandler registers a callback for each new discovery.
func WithHandler(h Handler) Option {
	return func(s *Scanner) { s.handler = h }
}

// WithLogger sets the scanner's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scanner) { s.metrics = m }
}

// NewScanner returns a scanner for a rows x cols grid. The component size
// limit is the catalog's MaxBBox so both sides always agree.
func NewScanner(cat *pattern.Catalog, rows, cols int, opts ...Option) *Scanner {
	s := &Scanner{
		catalog:    cat,
		extractor:  Extractor{Rows: rows, Cols: cols},
		logger:     slog.New(slog.DiscardHandler),
		session:    uuid.New(),
		discovered: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan extracts components from live, looks each one up and records patterns
// not yet seen this session. New discoveries are returned in component order
// and passed to the handler before Scan returns. Out-of-range cells yield an
// error wrapping ErrOutOfBounds and leave the record untouched.
func (s *Scanner) Scan(live pattern.CellSet, generation int) ([]Discovery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Store(int32(Scanning))
	defer s.state.Store(int32(Idle))

	start := time.Now()
	comps, err := s.extractor.Components(live)
	if err != nil {
		s.metrics.ObserveScanError()
		return nil, err
	}

	maxBBox := s.catalog.MaxBBox()
	var found []Discovery
	oversized := 0
	for _, comp := range comps {
		box, _ := comp.Bounds()
		if box.Exceeds(maxBBox) {
			oversized++
			continue
		}
		name, ok := s.catalog.Lookup(pattern.Normalize(comp))
		if !ok {
			continue
		}
		s.metrics.ObserveMatch(name)
		if _, seen := s.discovered[name]; seen {
			continue
		}
		d := Discovery{Name: name, Generation: generation}
		s.discovered[name] = generation
		s.events = append(s.events, d)
		found = append(found, d)
		s.metrics.ObserveDiscovery(name)
		s.logger.Info("pattern discovered", "pattern", name, "generation", generation)
		if s.handler != nil {
			s.handler(d)
		}
	}
	s.metrics.ObserveScan(time.Since(start), len(comps), oversized)
	s.logger.Debug("scan complete", "generation", generation,
		"components", len(comps), "oversized", oversized, "new", len(found))
	return found, nil
}

// Reset clears the discovery record and starts a new session.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.discovered)
	s.events = nil
	s.session = uuid.New()
}

// State reports whether a scan is running.
func (s *Scanner) State() State { return State(s.state.Load()) }

// Session identifies the current discovery session.
func (s *Scanner) Session() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Discovered returns a copy of the record: pattern name to first generation.
func (s *Scanner) Discovered() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.discovered)
}

// Ordered returns the session's discoveries sorted by generation, then
// name.
func (s *Scanner) Ordered() []Discovery {
	s.mu.Lock()
	out := slices.Clone(s.events)
	s.mu.Unlock()
	slices.SortStableFunc(out, func(a, b Discovery) int {
		if c := cmp.Compare(a.Generation, b.Generation); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// FirstSeen returns the generation at which name was discovered.
func (s *Scanner) FirstSeen(name string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.discovered[name]
	return gen, ok
}

// Len returns the number of patterns discovered this session.
func (s *Scanner) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.discovered)
}

// Catalog returns the catalog the scanner matches against.
func (s *Scanner) Catalog() *pattern.Catalog { return s.catalog }
