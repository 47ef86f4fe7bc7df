// Package store archives finished runs in SQLite so sweeps and repeated
// experiments can be compared later.
package store

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bomb-abm/internal/dispersal"
	"bomb-abm/internal/raster"
	"bomb-abm/internal/report"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one archived simulation.
type Run struct {
	ID        int64
	Label     string
	CreatedAt time.Time

	Seed           int64
	Width, Height  int
	Origin         dispersal.Position
	Particles      int
	BuildingHeight int
	MaxIterations  int
	Wind           []int // north, east, south, west
	Fall           []int // up, down, none

	Iterations   int
	Reason       string
	Grounded     int
	Aloft        int
	MeanDistance float64
	MaxDistance  float64

	// Density holds the landing counts in row-major order.
	Density []int
}

// NewRun captures a finished model and its landing grid.
func NewRun(label string, m *dispersal.Model, grid *dispersal.DensityGrid) Run {
	s := m.Settings()
	env := m.Environment()
	st := m.Stats()
	sum := report.Summarize(grid, env.Origin(), st)
	return Run{
		Label:          label,
		Seed:           s.Seed,
		Width:          env.Width(),
		Height:         env.Height(),
		Origin:         env.Origin(),
		Particles:      s.Particles,
		BuildingHeight: s.BuildingHeight,
		MaxIterations:  s.MaxIterations,
		Wind:           s.Wind.Percentages(),
		Fall:           s.Fall.Percentages(),
		Iterations:     st.Iteration,
		Reason:         st.Reason.String(),
		Grounded:       st.Grounded,
		Aloft:          st.Aloft,
		MeanDistance:   sum.MeanDistance,
		MaxDistance:    sum.MaxDistance,
		Density:        grid.Cells(),
	}
}

// Store persists runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the archive at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record inserts run and returns its id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if run.Width*run.Height != len(run.Density) {
		return 0, fmt.Errorf("density has %d cells, expected %dx%d", len(run.Density), run.Width, run.Height)
	}
	var density bytes.Buffer
	if err := raster.Write(&density, run.Width, run.Height, run.Density); err != nil {
		return 0, fmt.Errorf("encode density: %w", err)
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO runs (
		   label, created_at, seed, width, height, origin_x, origin_y,
		   particles, building_height, max_iterations, wind, fall,
		   iterations, reason, grounded, aloft, mean_distance, max_distance, density
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Label, createdAt.UTC().UnixMilli(), run.Seed, run.Width, run.Height, run.Origin.X, run.Origin.Y,
		run.Particles, run.BuildingHeight, run.MaxIterations, joinInts(run.Wind), joinInts(run.Fall),
		run.Iterations, run.Reason, run.Grounded, run.Aloft, run.MeanDistance, run.MaxDistance, density.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert run id: %w", err)
	}
	return id, nil
}

const runColumns = `id, label, created_at, seed, width, height, origin_x, origin_y,
	particles, building_height, max_iterations, wind, fall,
	iterations, reason, grounded, aloft, mean_distance, max_distance, density`

// Get loads a single run including its density grid.
func (s *Store) Get(ctx context.Context, id int64) (Run, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	return run, err
}

// List returns the most recent runs, newest first, optionally filtered by
// label. limit <= 0 returns every match.
func (s *Store) List(ctx context.Context, label string, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if label != "" {
		query += ` WHERE label = ?`
		args = append(args, label)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run                Run
		createdAt          int64
		wind, fall, densTx string
	)
	err := sc.Scan(
		&run.ID, &run.Label, &createdAt, &run.Seed, &run.Width, &run.Height, &run.Origin.X, &run.Origin.Y,
		&run.Particles, &run.BuildingHeight, &run.MaxIterations, &wind, &fall,
		&run.Iterations, &run.Reason, &run.Grounded, &run.Aloft, &run.MeanDistance, &run.MaxDistance, &densTx,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.CreatedAt = time.UnixMilli(createdAt).UTC()
	if run.Wind, err = splitInts(wind); err != nil {
		return Run{}, fmt.Errorf("run %d wind: %w", run.ID, err)
	}
	if run.Fall, err = splitInts(fall); err != nil {
		return Run{}, fmt.Errorf("run %d fall: %w", run.ID, err)
	}
	if run.Density, err = parseDensity(densTx, run.Width*run.Height); err != nil {
		return Run{}, fmt.Errorf("run %d density: %w", run.ID, err)
	}
	return run, nil
}

func parseDensity(text string, want int) ([]int, error) {
	_, _, cells, err := raster.ReadCounts(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	if len(cells) != want {
		return nil, fmt.Errorf("%d cells, expected %d", len(cells), want)
	}
	return cells, nil
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
