// Package soup runs batches of random Life soups against a shared pattern
// catalog and tallies what they produce.
package soup

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/7robots/conway-game-of-life/internal/core"
	"github.com/7robots/conway-game-of-life/internal/metrics"
	"github.com/7robots/conway-game-of-life/internal/pattern"
	"github.com/7robots/conway-game-of-life/internal/scan"
	"github.com/7robots/conway-game-of-life/internal/sims/life"
)

// Config sizes a sweep.
type Config struct {
	Soups       int
	Generations int
	Workers     int

	Board life.Config
	Seed  int64
}

// Result is the outcome of one soup.
type Result struct {
	Index           int
	Seed            int64
	Discoveries     []scan.Discovery
	FinalPopulation int
	Generations     int
}

// Tally aggregates one pattern across every soup in a sweep.
type Tally struct {
	Name         string
	Soups        int
	Earliest     int
	EarliestSoup int
}

// Report summarises a sweep. Results are in soup order and Tallies are
// sorted by soup count, then name.
type Report struct {
	Config  Config
	Results []Result
	Tallies []Tally
	Elapsed time.Duration
}

// Option configures Run.
type Option func(*runner)

type runner struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	progress func(Result)
}

// WithLogger sets the sweep's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics attaches Prometheus instrumentation to every soup's scanner.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *runner) { r.metrics = m }
}

// WithProgress registers a callback invoked from the collecting goroutine as
// each soup finishes, in completion order.
func WithProgress(fn func(Result)) Option {
	return func(r *runner) { r.progress = fn }
}

type job struct {
	index int
	seed  int64
}

// Run simulates cfg.Soups random boards for cfg.Generations each on a pool of
// workers. Every soup gets its own board and scanner; the catalog is shared
// read-only. Per-soup seeds are drawn up front from cfg.Seed, so results do
// not depend on scheduling.
func Run(ctx context.Context, cat *pattern.Catalog, cfg Config, opts ...Option) (Report, error) {
	r := &runner{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.Soups < 0 || cfg.Generations < 0 {
		return Report{}, fmt.Errorf("soups and generations must be non-negative")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Board.Rows <= 0 || cfg.Board.Cols <= 0 {
		def := life.DefaultConfig()
		cfg.Board.Rows, cfg.Board.Cols = def.Rows, def.Cols
	}

	seeds := core.NewRNG(cfg.Seed)
	jobsList := make([]job, cfg.Soups)
	for i := range jobsList {
		jobsList[i] = job{index: i, seed: seeds.Int64()}
	}

	r.logger.Info("sweep started", "soups", cfg.Soups, "generations", cfg.Generations, "workers", cfg.Workers)
	start := time.Now()

	jobs := make(chan job)
	results := make(chan Result)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, j := range jobsList {
			select {
			case jobs <- j:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < cfg.Workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				res, err := r.runSoup(gctx, cat, cfg, j)
				if err != nil {
					return err
				}
				select {
				case results <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		close(results)
	}()

	out := make([]Result, cfg.Soups)
	for res := range results {
		out[res.Index] = res
		r.metrics.ObserveSoup()
		if r.progress != nil {
			r.progress(res)
		}
	}
	if err := <-errc; err != nil {
		return Report{}, err
	}

	rep := Report{Config: cfg, Results: out, Tallies: tally(out), Elapsed: time.Since(start)}
	r.logger.Info("sweep finished", "soups", cfg.Soups, "patterns", len(rep.Tallies),
		"elapsed", rep.Elapsed.Round(time.Millisecond))
	return rep, nil
}

func (r *runner) runSoup(ctx context.Context, cat *pattern.Catalog, cfg Config, j job) (Result, error) {
	board := life.New(cfg.Board)
	board.Randomize(core.NewRNG(j.seed), cfg.Board.Density)
	sc := scan.NewScanner(cat, cfg.Board.Rows, cfg.Board.Cols, scan.WithMetrics(r.metrics))

	if _, err := sc.Scan(board.LiveCells(), 0); err != nil {
		return Result{}, fmt.Errorf("soup %d: %w", j.index, err)
	}
	for gen := 1; gen <= cfg.Generations; gen++ {
		if gen%64 == 1 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		board.Step()
		if _, err := sc.Scan(board.LiveCells(), gen); err != nil {
			return Result{}, fmt.Errorf("soup %d generation %d: %w", j.index, gen, err)
		}
		if board.Population() == 0 {
			break
		}
	}
	r.logger.Debug("soup finished", "soup", j.index, "patterns", sc.Len(), "population", board.Population())
	return Result{
		Index:           j.index,
		Seed:            j.seed,
		Discoveries:     sc.Ordered(),
		FinalPopulation: board.Population(),
		Generations:     board.Generation(),
	}, nil
}

func tally(results []Result) []Tally {
	byName := map[string]*Tally{}
	for _, res := range results {
		for _, d := range res.Discoveries {
			t, ok := byName[d.Name]
			if !ok {
				t = &Tally{Name: d.Name, Earliest: d.Generation, EarliestSoup: res.Index}
				byName[d.Name] = t
			}
			t.Soups++
			if d.Generation < t.Earliest {
				t.Earliest = d.Generation
				t.EarliestSoup = res.Index
			}
		}
	}
	out := make([]Tally, 0, len(byName))
	for _, t := range byName {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Soups != out[j].Soups {
			return out[i].Soups > out[j].Soups
		}
		return out[i].Name < out[j].Name
	})
	return out
}
