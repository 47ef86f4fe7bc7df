package dispersal

import (
	"io"
	"log/slog"

	randcore "bomb-abm/pkg/core"

	"golang.org/x/sync/errgroup"
)

// Settings is the immutable configuration of a run.
type Settings struct {
	Wind           WindDistribution
	Fall           FallDistribution
	MaxIterations  int
	Particles      int
	BuildingHeight int
	// Seed drives one random stream per particle, so a given seed yields the
	// same landing grid whatever the worker count.
	Seed int64
	// Workers > 1 spreads each iteration's particle updates across that many
	// goroutines. 0 and 1 run sequentially.
	Workers int
}

// Validate reports the first setting that cannot drive a run.
func (s Settings) Validate() error {
	switch {
	case s.Particles <= 0:
		return &InvalidConfigurationError{Field: "particles", Value: s.Particles, Reason: "must be positive"}
	case s.MaxIterations <= 0:
		return &InvalidConfigurationError{Field: "max_iterations", Value: s.MaxIterations, Reason: "must be positive"}
	case s.BuildingHeight <= 0:
		return &InvalidConfigurationError{Field: "building_height", Value: s.BuildingHeight, Reason: "must be positive"}
	case s.Workers < 0:
		return &InvalidConfigurationError{Field: "workers", Value: s.Workers, Reason: "must not be negative"}
	case !s.Wind.Valid():
		return &InvalidConfigurationError{Field: "wind", Reason: "distribution not constructed"}
	case !s.Fall.Valid():
		return &InvalidConfigurationError{Field: "fall", Reason: "distribution not constructed"}
	}
	return nil
}

// StopReason explains why a run ended.
type StopReason uint8

const (
	Running StopReason = iota
	AllGrounded
	IterationCap
)

func (r StopReason) String() string {
	switch r {
	case AllGrounded:
		return "all_grounded"
	case IterationCap:
		return "iteration_cap"
	}
	return "running"
}

// Stats summarises the progress of a run.
type Stats struct {
	Iteration int
	Grounded  int
	Aloft     int
	Reason    StopReason
	// History[i] is the number of grounded particles after iteration i+1.
	History []int
}

// Option customises a Model.
type Option func(*Model)

// WithLogger routes model logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// Model releases particles from the environment origin and advances them
// until they land or the iteration budget runs out.
type Model struct {
	env *Environment
	s   Settings
	log *slog.Logger

	agents  []Agent
	rngs    []*randcore.RNG
	iter    int
	aloft   int
	reason  StopReason
	history []int
}

// NewModel validates the settings and prepares a model ready to run.
func NewModel(env *Environment, s Settings, opts ...Option) (*Model, error) {
	if env == nil {
		return nil, &InvalidConfigurationError{Field: "environment", Reason: "is required"}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m := &Model{
		env:    env,
		s:      s,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		agents: make([]Agent, s.Particles),
		rngs:   make([]*randcore.RNG, s.Particles),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m, nil
}

// Environment returns the plane the model runs on.
func (m *Model) Environment() *Environment { return m.env }

// Settings returns the model configuration.
func (m *Model) Settings() Settings { return m.s }

// Reset places every particle back at the origin at building height and
// rewinds the random streams.
func (m *Model) Reset() {
	origin := m.env.Origin()
	for i := range m.agents {
		m.agents[i] = NewAgent(origin, m.s.BuildingHeight)
		m.rngs[i] = randcore.NewStream(m.s.Seed, i)
	}
	m.iter = 0
	m.aloft = len(m.agents)
	m.reason = Running
	m.history = m.history[:0]
}

// Reseed switches to a new seed and restarts the run. Only the seed changes,
// so the settings stay valid.
func (m *Model) Reseed(seed int64) {
	m.s.Seed = seed
	m.Reset()
}

// Done reports whether the run has stopped.
func (m *Model) Done() bool { return m.reason != Running }

// Step advances every aloft particle by one iteration, horizontal move first,
// and reports whether the run is over.
func (m *Model) Step() bool {
	if m.Done() {
		return true
	}
	m.iter++
	if m.s.Workers > 1 && len(m.agents) > 1 {
		m.aloft = m.stepParallel()
	} else {
		m.aloft = m.stepRange(0, len(m.agents))
	}
	m.history = append(m.history, len(m.agents)-m.aloft)

	switch {
	case m.aloft == 0:
		m.reason = AllGrounded
	case m.iter >= m.s.MaxIterations:
		m.reason = IterationCap
	}
	return m.Done()
}

// stepRange updates agents[lo:hi] and returns how many remain aloft.
func (m *Model) stepRange(lo, hi int) int {
	aloft := 0
	for i := lo; i < hi; i++ {
		a := &m.agents[i]
		if a.Grounded() {
			continue
		}
		r := m.rngs[i]
		a.MoveHorizontal(m.s.Wind, m.env, r)
		a.MoveVertical(m.s.Fall, m.s.BuildingHeight, r)
		if !a.Grounded() {
			aloft++
		}
	}
	return aloft
}

func (m *Model) stepParallel() int {
	ranges := m.chunks()
	counts := make([]int, len(ranges))

	var g errgroup.Group
	g.SetLimit(len(ranges))
	for w, r := range ranges {
		g.Go(func() error {
			counts[w] = m.stepRange(r[0], r[1])
			return nil
		})
	}
	_ = g.Wait()

	aloft := 0
	for _, c := range counts {
		aloft += c
	}
	return aloft
}

// chunks splits the agents into at most Workers contiguous [lo, hi) ranges.
func (m *Model) chunks() [][2]int {
	n := len(m.agents)
	workers := min(m.s.Workers, n)
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	var out [][2]int
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}
	return out
}

// Run resets the model, iterates until every particle has landed or the
// budget is spent, and returns the landing density. Particles still aloft at
// the end are not counted.
func (m *Model) Run() *DensityGrid {
	m.Reset()
	m.log.Debug("run start",
		"particles", m.s.Particles,
		"building_height", m.s.BuildingHeight,
		"max_iterations", m.s.MaxIterations,
		"workers", m.s.Workers,
		"seed", m.s.Seed,
		"origin", m.env.Origin().String(),
	)
	for !m.Step() {
	}
	grid := m.Density()
	m.log.Info("run complete",
		"iterations", m.iter,
		"reason", m.reason.String(),
		"grounded", len(m.agents)-m.aloft,
		"aloft", m.aloft,
	)
	return grid
}

// Density aggregates the current positions of grounded particles. With more
// than one worker each chunk fills its own grid and the grids are merged
// after the join.
func (m *Model) Density() *DensityGrid {
	w, h := m.env.Width(), m.env.Height()
	if m.s.Workers <= 1 || len(m.agents) < 2 {
		grid := NewDensityGrid(w, h)
		m.densityRange(grid, 0, len(m.agents))
		return grid
	}

	ranges := m.chunks()
	parts := make([]*DensityGrid, len(ranges))
	var g errgroup.Group
	g.SetLimit(len(ranges))
	for i, r := range ranges {
		g.Go(func() error {
			parts[i] = NewDensityGrid(w, h)
			m.densityRange(parts[i], r[0], r[1])
			return nil
		})
	}
	_ = g.Wait()

	grid := NewDensityGrid(w, h)
	for _, p := range parts {
		grid.Merge(p)
	}
	return grid
}

func (m *Model) densityRange(grid *DensityGrid, lo, hi int) {
	for i := lo; i < hi; i++ {
		if m.agents[i].Grounded() {
			grid.Add(m.agents[i].Position())
		}
	}
}

// Agents returns a copy of the particle states.
func (m *Model) Agents() []Agent { return append([]Agent(nil), m.agents...) }

// Stats reports progress so far.
func (m *Model) Stats() Stats {
	return Stats{
		Iteration: m.iter,
		Grounded:  len(m.agents) - m.aloft,
		Aloft:     m.aloft,
		Reason:    m.reason,
		History:   append([]int(nil), m.history...),
	}
}
