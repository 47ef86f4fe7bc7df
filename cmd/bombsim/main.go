// Command bombsim releases particles from a bomb on a rooftop, lets them
// drift until they land and writes where they came down.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"bomb-abm/internal/app"
	"bomb-abm/internal/dispersal"
	"bomb-abm/internal/raster"
	"bomb-abm/internal/render"
	"bomb-abm/internal/report"
	"bomb-abm/internal/runconfig"
	"bomb-abm/internal/store"
	"bomb-abm/internal/termview"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
)

type options struct {
	configPath string
	rasterPath string
	outDir     string
	prefix     string
	seed       int64
	workers    int
	pngScale   int
	dbPath     string
	label      string
	lang       string
	view       bool
	tps        int
	verbose    bool
	overrides  app.Overrides
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "bombsim:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	opts := options{overrides: app.Overrides{}}
	fs := flag.NewFlagSet("bombsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML run configuration")
	fs.StringVar(&opts.rasterPath, "raster", "", "environment raster; the cell holding 255 is the bomb")
	fs.StringVar(&opts.outDir, "out", ".", "directory for output files")
	fs.StringVar(&opts.prefix, "prefix", "density", "output file name prefix")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed (overrides config)")
	fs.IntVar(&opts.workers, "workers", 0, "goroutines per iteration (overrides config)")
	fs.IntVar(&opts.pngScale, "png-scale", 2, "pixels per cell in the heat map")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite run archive to record into")
	fs.StringVar(&opts.label, "label", "", "label stored with the archived run")
	fs.StringVar(&opts.lang, "lang", "en", "language tag for number formatting in the summary")
	fs.BoolVar(&opts.view, "view", false, "animate the run in the terminal")
	fs.IntVar(&opts.tps, "tps", 30, "iterations per second in the terminal viewer")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.Var(opts.overrides, "set", "parameter override key=value, e.g. wind_east=80 (repeatable)")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if fs.NArg() > 0 {
		return opts, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	tag, err := language.Parse(opts.lang)
	if err != nil {
		return fmt.Errorf("parse -lang: %w", err)
	}

	cfg, err := runconfig.Load(opts.configPath)
	if err != nil {
		return err
	}
	cfg.Apply(opts.overrides)
	if set["seed"] {
		cfg.Seed = opts.seed
	}
	if set["workers"] {
		cfg.Params.Workers = opts.workers
	}

	env, err := loadEnvironment(cfg, opts.rasterPath)
	if err != nil {
		return err
	}
	logger.Debug("environment ready", "width", env.Width(), "height", env.Height(), "origin", env.Origin().String())

	var model *dispersal.Model
	if opts.view {
		model, err = runInTerminal(ctx, env, cfg, opts.tps, logger)
	} else {
		model, err = runHeadless(env, cfg, logger)
	}
	if err != nil {
		return err
	}
	grid := model.Density()

	if err := writeOutputs(opts, model, grid); err != nil {
		return err
	}
	logger.Info("outputs written", "dir", opts.outDir, "prefix", opts.prefix)

	sum := report.Summarize(grid, env.Origin(), model.Stats())
	if err := report.Print(stdout, sum, tag); err != nil {
		return fmt.Errorf("print summary: %w", err)
	}

	if opts.dbPath != "" {
		st, err := store.Open(ctx, opts.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.Record(ctx, store.NewRun(opts.label, model, grid))
		if err != nil {
			return err
		}
		logger.Info("run archived", "db", opts.dbPath, "id", id)
	}
	return nil
}

func loadEnvironment(cfg dispersal.Config, rasterPath string) (*dispersal.Environment, error) {
	if rasterPath == "" {
		return cfg.Environment()
	}
	g, err := raster.ReadFile(rasterPath)
	if err != nil {
		return nil, err
	}
	env, err := dispersal.EnvironmentFromRaster(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rasterPath, err)
	}
	return env, nil
}

func runHeadless(env *dispersal.Environment, cfg dispersal.Config, logger *slog.Logger) (*dispersal.Model, error) {
	s, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	m, err := dispersal.NewModel(env, s, dispersal.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	m.Run()
	return m, nil
}

// runInTerminal animates the run; if the viewer is closed early the
// remaining iterations run without display.
func runInTerminal(ctx context.Context, env *dispersal.Environment, cfg dispersal.Config, tps int, logger *slog.Logger) (*dispersal.Model, error) {
	plume, err := dispersal.NewPlume(env, cfg, dispersal.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	viewErr := termview.New(screen, plume, tps, cfg.Seed).Run(ctx)
	screen.Fini()
	if viewErr != nil && !errors.Is(viewErr, context.Canceled) {
		return nil, viewErr
	}

	m := plume.Model()
	for !m.Done() {
		m.Step()
	}
	return m, nil
}

func writeOutputs(opts options, m *dispersal.Model, grid *dispersal.DensityGrid) error {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Join(opts.outDir, opts.prefix)
	w, h := grid.Width(), grid.Height()

	if err := raster.WriteFile(base+".txt", w, h, grid.Cells()); err != nil {
		return err
	}

	display := make([]uint8, w*h)
	dispersal.EncodeDensity(grid, m.Environment().Origin(), display)
	if err := render.WritePNGFile(base+".png", display, w, h, opts.pngScale, dispersal.Palette()); err != nil {
		return err
	}

	return report.LandingCurveFile(base+"-landing.png", m.Stats().History, m.Settings().Particles)
}
