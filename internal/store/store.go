// Package store persists saved runs and cumulative pattern statistics in
// SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunPattern is a pattern discovered during a run.
type RunPattern struct {
	Name       string
	Generation int
}

// Run is a saved simulation: its starting board and what it found.
type Run struct {
	ID              int64
	Session         uuid.UUID
	Name            string
	CreatedAt       time.Time
	StartingGrid    [][]uint8
	FinalGeneration int
	SpeedMS         int
	Wrap            bool
	Patterns        []RunPattern
}

// RunSummary is a row of ListRuns.
type RunSummary struct {
	ID              int64
	Session         uuid.UUID
	Name            string
	CreatedAt       time.Time
	FinalGeneration int
	SpeedMS         int
	PatternCount    int
}

// PatternStat aggregates discoveries of one pattern across saved runs.
type PatternStat struct {
	Name            string
	TimesDiscovered int
	FirstSeenAt     time.Time
	LastSeenAt      time.Time
	RunsAppearedIn  int
}

// Store wraps the run database.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens (creating if needed) the database at path and applies
// migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{
		db:     db,
		path:   path,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	s.logger.Debug("run store opened", "path", path)
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun inserts a run with its patterns and bumps the cumulative pattern
// statistics, all in one transaction. It returns the new run id.
func (s *Store) SaveRun(ctx context.Context, run Run) (int64, error) {
	grid, err := json.Marshal(run.StartingGrid)
	if err != nil {
		return 0, fmt.Errorf("encoding starting grid: %w", err)
	}
	if run.Session == uuid.Nil {
		run.Session = uuid.New()
	}
	now := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (session_id, name, created_at, starting_grid, final_generation, speed_ms, wrap)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Session.String(), run.Name, now, string(grid), run.FinalGeneration, run.SpeedMS, run.Wrap)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, p := range run.Patterns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_patterns (run_id, pattern_name, generation_discovered) VALUES (?, ?, ?)`,
			id, p.Name, p.Generation); err != nil {
			return 0, fmt.Errorf("insert run pattern %s: %w", p.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pattern_stats (pattern_name, times_discovered, first_seen_at, last_seen_at, runs_appeared_in)
			 VALUES (?, 1, ?, ?, 1)
			 ON CONFLICT(pattern_name) DO UPDATE SET
			     times_discovered = times_discovered + 1,
			     last_seen_at = excluded.last_seen_at,
			     runs_appeared_in = runs_appeared_in + 1`,
			p.Name, now, now); err != nil {
			return 0, fmt.Errorf("update pattern stats %s: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	s.logger.Info("run saved", "run_id", id, "name", run.Name, "patterns", len(run.Patterns))
	return id, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.run_id, r.session_id, r.name, r.created_at, r.final_generation, r.speed_ms,
		        COUNT(rp.id) AS pattern_count
		 FROM runs r
		 LEFT JOIN run_patterns rp ON r.run_id = rp.run_id
		 GROUP BY r.run_id
		 ORDER BY r.created_at DESC, r.run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			sum              RunSummary
			session, created string
		)
		if err := rows.Scan(&sum.ID, &session, &sum.Name, &created, &sum.FinalGeneration, &sum.SpeedMS, &sum.PatternCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if sum.Session, err = uuid.Parse(session); err != nil {
			return nil, fmt.Errorf("run %d session: %w", sum.ID, err)
		}
		if sum.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("run %d created_at: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// LoadRun returns a run with its starting grid and patterns ordered by
// discovery generation.
func (s *Store) LoadRun(ctx context.Context, id int64) (Run, error) {
	var (
		run                    Run
		session, created, grid string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, session_id, name, created_at, starting_grid, final_generation, speed_ms, wrap
		 FROM runs WHERE run_id = ?`, id).
		Scan(&run.ID, &session, &run.Name, &created, &grid, &run.FinalGeneration, &run.SpeedMS, &run.Wrap)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("load run %d: %w", id, err)
	}
	if run.Session, err = uuid.Parse(session); err != nil {
		return Run{}, fmt.Errorf("run %d session: %w", id, err)
	}
	if run.CreatedAt, err = parseTime(created); err != nil {
		return Run{}, fmt.Errorf("run %d created_at: %w", id, err)
	}
	if err := json.Unmarshal([]byte(grid), &run.StartingGrid); err != nil {
		return Run{}, fmt.Errorf("run %d starting grid: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern_name, generation_discovered FROM run_patterns
		 WHERE run_id = ? ORDER BY generation_discovered, id`, id)
	if err != nil {
		return Run{}, fmt.Errorf("load run %d patterns: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var p RunPattern
		if err := rows.Scan(&p.Name, &p.Generation); err != nil {
			return Run{}, fmt.Errorf("scan run pattern: %w", err)
		}
		run.Patterns = append(run.Patterns, p)
	}
	return run, rows.Err()
}

// DeleteRun removes a run and its pattern rows. Cumulative statistics are
// left as they are.
func (s *Store) DeleteRun(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	s.logger.Info("run deleted", "run_id", id)
	return nil
}

// PatternStats returns cumulative statistics, most discovered first.
func (s *Store) PatternStats(ctx context.Context) ([]PatternStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern_name, times_discovered, first_seen_at, last_seen_at, runs_appeared_in
		 FROM pattern_stats ORDER BY times_discovered DESC, pattern_name`)
	if err != nil {
		return nil, fmt.Errorf("pattern stats: %w", err)
	}
	defer rows.Close()

	var out []PatternStat
	for rows.Next() {
		var (
			st          PatternStat
			first, last string
		)
		if err := rows.Scan(&st.Name, &st.TimesDiscovered, &first, &last, &st.RunsAppearedIn); err != nil {
			return nil, fmt.Errorf("scan pattern stat: %w", err)
		}
		if st.FirstSeenAt, err = parseTime(first); err != nil {
			return nil, err
		}
		if st.LastSeenAt, err = parseTime(last); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
