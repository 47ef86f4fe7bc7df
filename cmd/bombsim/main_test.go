package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bomb-abm/internal/dispersal"
	"bomb-abm/internal/raster"
	"bomb-abm/internal/store"
)

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	rasterPath := filepath.Join(dir, "env.txt")
	if err := os.WriteFile(rasterPath, []byte("0 0 0 0 0\n0 0 0 0 0\n0 0 255 0 0\n0 0 0 0 0\n0 0 0 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	db := filepath.Join(dir, "runs.db")

	var stdout, stderr bytes.Buffer
	args := []string{
		"-raster", rasterPath, "-out", out, "-db", db, "-label", "west",
		"-set", "particles=4", "-set", "building_height=1", "-set", "max_iterations=10",
		"-set", "wind_north=0", "-set", "wind_east=0", "-set", "wind_south=0", "-set", "wind_west=100",
		"-set", "fall_up=0", "-set", "fall_down=100", "-set", "fall_none=0",
	}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	f, err := os.Open(filepath.Join(out, "density.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := raster.Read(f)
	if err != nil {
		t.Fatalf("density raster: %v", err)
	}
	// Row-major file with y=2 on the third line: four particles one cell west.
	if g.At(1, 2) != 4 {
		t.Fatalf("expected 4 particles at (1,2), got %d", g.At(1, 2))
	}
	for _, name := range []string{"density.png", "density-landing.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	if !strings.Contains(stdout.String(), "all_grounded") {
		t.Fatalf("summary missing stop reason:\n%s", stdout.String())
	}

	st, err := store.Open(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	runs, err := st.List(context.Background(), "west", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Grounded != 4 {
		t.Fatalf("unexpected archive contents %+v", runs)
	}
}

func TestRunRejectsBadDistribution(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-out", t.TempDir(), "-set", "wind_east=90"}
	err := run(context.Background(), args, &stdout, &stderr)
	if !errors.Is(err, dispersal.ErrInvalidDistribution) {
		t.Fatalf("expected invalid distribution, got %v", err)
	}
}

func TestRunRejectsRasterWithoutBomb(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.txt")
	if err := os.WriteFile(path, []byte("0 0\n0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-raster", path, "-out", dir}, &stdout, &stderr)
	if !errors.Is(err, dispersal.ErrInvalidEnvironment) {
		t.Fatalf("expected invalid environment, got %v", err)
	}
}
