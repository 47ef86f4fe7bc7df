package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the contract the front ends drive: a grid simulation that can be
// reset with a seed, advanced one iteration at a time and rendered from a
// palette-indexed display buffer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	// Step advances one iteration and reports whether the run has finished.
	Step() bool
	Cells() []uint8
}

// Factory constructs a Sim from flag-style key/value overrides.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Lookup builds the named simulation.
func Lookup(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, Names())
	}
	return f(cfg)
}

// Names lists registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
