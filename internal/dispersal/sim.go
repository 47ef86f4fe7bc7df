package dispersal

import (
	"image/color"

	"bomb-abm/internal/core"
)

// Plume adapts a Model to the core.Sim interface so the viewers can animate a
// run one iteration per tick.
type Plume struct {
	env     *Environment
	cfg     Config
	model   *Model
	display []uint8
}

// NewPlume builds a Plume over env using cfg's parameters and seed.
func NewPlume(env *Environment, cfg Config, opts ...Option) (*Plume, error) {
	s, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	m, err := NewModel(env, s, opts...)
	if err != nil {
		return nil, err
	}
	p := &Plume{
		env:     env,
		cfg:     cfg,
		model:   m,
		display: make([]uint8, env.Width()*env.Height()),
	}
	p.rebuildDisplay()
	return p, nil
}

// Name returns the simulation identifier.
func (p *Plume) Name() string { return "plume" }

// Size reports the grid dimensions.
func (p *Plume) Size() core.Size { return p.env.Size() }

// Cells exposes the palette-indexed landing density.
func (p *Plume) Cells() []uint8 { return p.display }

// Palette exposes the colour table for Cells.
func (p *Plume) Palette() []color.RGBA { return Palette() }

// Model exposes the underlying model.
func (p *Plume) Model() *Model { return p.model }

// Reset restarts the run. A zero seed reuses the configured seed.
func (p *Plume) Reset(seed int64) {
	if seed == 0 {
		seed = p.cfg.Seed
	}
	p.model.Reseed(seed)
	p.rebuildDisplay()
}

// Step advances one iteration and reports whether the run has finished.
func (p *Plume) Step() bool {
	if p.model.Done() {
		return true
	}
	done := p.model.Step()
	p.rebuildDisplay()
	return done
}

// AloftPositions returns the cells of particles still in the air.
func (p *Plume) AloftPositions() []Position {
	var out []Position
	for _, a := range p.model.Agents() {
		if a.State() == Aloft {
			out = append(out, a.Position())
		}
	}
	return out
}

// PeakHeight returns the height of the highest particle still aloft, or 0.
func (p *Plume) PeakHeight() int {
	peak := 0
	for _, a := range p.model.Agents() {
		if a.State() == Aloft && a.Height() > peak {
			peak = a.Height()
		}
	}
	return peak
}

func (p *Plume) rebuildDisplay() {
	EncodeDensity(p.model.Density(), p.env.Origin(), p.display)
}

func init() {
	core.Register("plume", func(cfg map[string]string) (core.Sim, error) {
		c := FromMap(cfg)
		env, err := c.Environment()
		if err != nil {
			return nil, err
		}
		return NewPlume(env, c)
	})
}
