package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"bomb-abm/internal/dispersal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func finishedModel(t *testing.T, seed int64) (*dispersal.Model, *dispersal.DensityGrid) {
	t.Helper()
	cfg := dispersal.DefaultConfig()
	cfg.Width, cfg.Height = 20, 12
	cfg.OriginX, cfg.OriginY = 2, 6
	cfg.Seed = seed
	cfg.Params.Particles = 40
	cfg.Params.BuildingHeight = 4
	cfg.Params.MaxIterations = 200
	s, err := cfg.Settings()
	if err != nil {
		t.Fatal(err)
	}
	env, err := cfg.Environment()
	if err != nil {
		t.Fatal(err)
	}
	m, err := dispersal.NewModel(env, s)
	if err != nil {
		t.Fatal(err)
	}
	return m, m.Run()
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	m, grid := finishedModel(t, 5)

	id, err := s.Record(ctx, NewRun("baseline", m, grid))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	run, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if run.Label != "baseline" || run.Seed != 5 || run.Width != 20 || run.Origin != (dispersal.Position{X: 2, Y: 6}) {
		t.Fatalf("unexpected run %+v", run)
	}
	if !slices.Equal(run.Wind, []int{10, 75, 10, 5}) || !slices.Equal(run.Fall, []int{20, 70, 10}) {
		t.Fatalf("distributions wind=%v fall=%v", run.Wind, run.Fall)
	}
	if !slices.Equal(run.Density, grid.Cells()) {
		t.Fatal("density did not survive the archive")
	}
	if run.Grounded != m.Stats().Grounded || run.CreatedAt.IsZero() {
		t.Fatalf("unexpected stats %+v", run)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for i, label := range []string{"a", "b", "a"} {
		m, grid := finishedModel(t, int64(i+1))
		if _, err := s.Record(ctx, NewRun(label, m, grid)); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Seed != 3 {
		t.Fatalf("expected newest first, got %d runs starting with seed %d", len(all), all[0].Seed)
	}

	onlyA, err := s.List(ctx, "a", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyA) != 2 {
		t.Fatalf("expected 2 runs labelled a, got %d", len(onlyA))
	}

	limited, err := s.List(ctx, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d runs", len(limited))
	}
}

func TestRecordRejectsMismatchedDensity(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Record(context.Background(), Run{Width: 2, Height: 2, Density: []int{1}}); err == nil {
		t.Fatal("expected error for short density")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestDensityAboveByteRangeSurvives(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	run := Run{
		Label:   "dense",
		Width:   2,
		Height:  2,
		Wind:    []int{0, 100, 0, 0},
		Fall:    []int{0, 100, 0},
		Reason:  "all_grounded",
		Density: []int{0, 5000, 256, 1},
	}
	id, err := s.Record(ctx, run)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !slices.Equal(got.Density, run.Density) {
		t.Fatalf("density = %v, want %v", got.Density, run.Density)
	}
}
