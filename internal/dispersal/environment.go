package dispersal

import (
	"fmt"

	"bomb-abm/internal/core"
)

// OriginSentinel marks the release point in an input raster.
const OriginSentinel uint8 = 255

// Environment is the bounded plane particles drift over plus the release
// point. It is immutable once built.
type Environment struct {
	w, h   int
	origin Position
}

// NewEnvironment validates the dimensions and origin.
func NewEnvironment(width, height int, origin Position) (*Environment, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidEnvironmentError{Reason: fmt.Sprintf("dimensions %dx%d must be positive", width, height)}
	}
	env := &Environment{w: width, h: height, origin: origin}
	if !env.Contains(origin) {
		return nil, &InvalidEnvironmentError{Reason: fmt.Sprintf("origin %v outside %dx%d grid", origin, width, height)}
	}
	return env, nil
}

// EnvironmentFromRaster derives the environment from a raster whose single
// cell equal to OriginSentinel marks the release point. Raster row r maps to
// Y = r.
func EnvironmentFromRaster(g *core.ByteGrid) (*Environment, error) {
	if g == nil {
		return nil, &InvalidEnvironmentError{Reason: "no raster supplied"}
	}
	hits := g.Find(OriginSentinel)
	switch len(hits) {
	case 0:
		return nil, &InvalidEnvironmentError{Reason: fmt.Sprintf("no cell valued %d marks the release point", OriginSentinel)}
	case 1:
	default:
		return nil, &InvalidEnvironmentError{Reason: fmt.Sprintf("%d cells valued %d; exactly one release point is required", len(hits), OriginSentinel)}
	}
	return NewEnvironment(g.W, g.H, Position{X: hits[0][0], Y: hits[0][1]})
}

// Width returns the number of columns.
func (e *Environment) Width() int { return e.w }

// Height returns the number of rows.
func (e *Environment) Height() int { return e.h }

// Origin returns the release point.
func (e *Environment) Origin() Position { return e.origin }

// Size reports the grid dimensions.
func (e *Environment) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Contains reports whether p lies on the plane.
func (e *Environment) Contains(p Position) bool {
	return p.X >= 0 && p.X < e.w && p.Y >= 0 && p.Y < e.h
}

// Clamp returns the nearest on-plane position to p.
func (e *Environment) Clamp(p Position) Position {
	return Position{X: core.ClampInt(p.X, 0, e.w-1), Y: core.ClampInt(p.Y, 0, e.h-1)}
}
