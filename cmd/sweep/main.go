// Command sweep runs the dispersal model over many seeds and building heights
// concurrently and reports how far the particles spread.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"bomb-abm/internal/dispersal"
	"bomb-abm/internal/raster"
	"bomb-abm/internal/report"
	"bomb-abm/internal/runconfig"
	"bomb-abm/internal/store"
)

type scenario struct {
	seed   int64
	height int
}

type scenarioResult struct {
	scenario
	summary report.Summary
	run     store.Run
	err     error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML run configuration")
	rasterPath := fs.String("raster", "", "environment raster; the cell holding 255 is the bomb")
	seeds := fs.Int("seeds", 8, "number of seeds per building height")
	seedBase := fs.Int64("seed-base", 1, "first seed")
	heightsFlag := fs.String("heights", "", "comma separated building heights (default: configured height)")
	workers := fs.Int("workers", runtime.NumCPU(), "number of scenarios run at once")
	dbPath := fs.String("db", "", "SQLite run archive to record every scenario into")
	label := fs.String("label", "sweep", "label stored with archived runs")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := runconfig.Load(*configPath)
	if err != nil {
		return err
	}
	// Scenarios already run in parallel; keep each model sequential.
	cfg.Params.Workers = 1

	env, err := cfg.Environment()
	if *rasterPath != "" {
		g, rerr := raster.ReadFile(*rasterPath)
		if rerr != nil {
			return rerr
		}
		env, err = dispersal.EnvironmentFromRaster(g)
	}
	if err != nil {
		return err
	}

	heights, err := parseHeights(*heightsFlag, cfg.Params.BuildingHeight)
	if err != nil {
		return err
	}
	if *seeds <= 0 {
		return fmt.Errorf("-seeds must be positive")
	}
	if *workers <= 0 {
		*workers = 1
	}

	var scenarios []scenario
	for _, h := range heights {
		for i := 0; i < *seeds; i++ {
			scenarios = append(scenarios, scenario{seed: *seedBase + int64(i), height: h})
		}
	}
	// Validate once up front so every worker failure is not reported separately.
	first := cfg
	first.Params.BuildingHeight = heights[0]
	if _, err := first.Settings(); err != nil {
		return err
	}

	var archive *store.Store
	if *dbPath != "" {
		archive, err = store.Open(ctx, *dbPath)
		if err != nil {
			return err
		}
		defer archive.Close()
	}

	fmt.Fprintf(stdout, "Sweeping %d scenarios (%d workers, %d particles)\n", len(scenarios), *workers, cfg.Params.Particles)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(env, cfg, sc, *label)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, sc := range scenarios {
			select {
			case jobs <- sc:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	var all []scenarioResult
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		logger.Debug("scenario done", "seed", res.seed, "height", res.height,
			"iterations", res.summary.Iterations, "mean_distance", res.summary.MeanDistance)
		if archive != nil {
			if _, err := archive.Record(ctx, res.run); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		all = append(all, res)
	}
	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].height != all[j].height {
			return all[i].height < all[j].height
		}
		return all[i].seed < all[j].seed
	})
	printTable(stdout, aggregate(all), time.Since(start))
	return nil
}

func runScenario(env *dispersal.Environment, base dispersal.Config, sc scenario, label string) scenarioResult {
	cfg := base
	cfg.Seed = sc.seed
	cfg.Params.BuildingHeight = sc.height
	res := scenarioResult{scenario: sc}

	s, err := cfg.Settings()
	if err != nil {
		res.err = err
		return res
	}
	m, err := dispersal.NewModel(env, s)
	if err != nil {
		res.err = err
		return res
	}
	grid := m.Run()
	res.summary = report.Summarize(grid, env.Origin(), m.Stats())
	res.run = store.NewRun(label, m, grid)
	return res
}

type heightStats struct {
	height       int
	runs         int
	meanDistance float64 // mean over runs of the per-run mean distance
	maxDistance  float64 // furthest landing in any run
	meanIters    float64
	capped       int // runs that hit the iteration cap
}

func aggregate(all []scenarioResult) []heightStats {
	var out []heightStats
	for _, res := range all {
		if len(out) == 0 || out[len(out)-1].height != res.height {
			out = append(out, heightStats{height: res.height})
		}
		hs := &out[len(out)-1]
		hs.runs++
		hs.meanDistance += res.summary.MeanDistance
		hs.meanIters += float64(res.summary.Iterations)
		if res.summary.MaxDistance > hs.maxDistance {
			hs.maxDistance = res.summary.MaxDistance
		}
		if res.summary.Reason == dispersal.IterationCap.String() {
			hs.capped++
		}
	}
	for i := range out {
		out[i].meanDistance /= float64(out[i].runs)
		out[i].meanIters /= float64(out[i].runs)
	}
	return out
}

func printTable(w io.Writer, stats []heightStats, elapsed time.Duration) {
	fmt.Fprintf(w, "\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "%8s %5s %10s %10s %10s %7s\n", "height", "runs", "mean dist", "max dist", "mean iter", "capped")
	for _, hs := range stats {
		fmt.Fprintf(w, "%8d %5d %10.2f %10.2f %10.1f %7d\n",
			hs.height, hs.runs, hs.meanDistance, hs.maxDistance, hs.meanIters, hs.capped)
	}
}

func parseHeights(s string, fallback int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{fallback}, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parse -heights: %w", err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("parse -heights: building height %d must be positive", v)
		}
		out = append(out, v)
	}
	return out, nil
}
