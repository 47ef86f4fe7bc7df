// Package report turns a finished run into numbers and charts for people.
package report

import (
	"fmt"
	"io"
	"math"

	"bomb-abm/internal/dispersal"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary describes where the particles of a run came down.
type Summary struct {
	Particles  int
	Grounded   int
	Aloft      int
	Iterations int
	Reason     string

	Occupied  int // cells holding at least one particle
	PeakCount int
	Peak      dispersal.Position

	// Centroid of the landings and mean/max Euclidean distance from the origin,
	// in cells. Zero when nothing landed.
	CentroidX, CentroidY float64
	MeanDistance         float64
	MaxDistance          float64
}

// Summarize computes the landing statistics for grid, produced by a run from
// origin with the given stats.
func Summarize(grid *dispersal.DensityGrid, origin dispersal.Position, st dispersal.Stats) Summary {
	s := Summary{
		Particles:  st.Grounded + st.Aloft,
		Grounded:   st.Grounded,
		Aloft:      st.Aloft,
		Iterations: st.Iteration,
		Reason:     st.Reason.String(),
		Occupied:   grid.Occupied(),
	}
	var sumX, sumY, sumD float64
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := grid.At(x, y)
			if c == 0 {
				continue
			}
			if c > s.PeakCount {
				s.PeakCount = c
				s.Peak = dispersal.Position{X: x, Y: y}
			}
			d := math.Hypot(float64(x-origin.X), float64(y-origin.Y))
			sumX += float64(c * x)
			sumY += float64(c * y)
			sumD += float64(c) * d
			s.MaxDistance = math.Max(s.MaxDistance, d)
		}
	}
	if total := grid.Total(); total > 0 {
		n := float64(total)
		s.CentroidX = sumX / n
		s.CentroidY = sumY / n
		s.MeanDistance = sumD / n
	}
	return s
}

// Print writes a human-readable summary using the locale's number grouping.
func Print(w io.Writer, s Summary, tag language.Tag) error {
	p := message.NewPrinter(tag)
	lines := []string{
		p.Sprintf("particles:     %d", s.Particles),
		p.Sprintf("grounded:      %d", s.Grounded),
		p.Sprintf("still aloft:   %d", s.Aloft),
		p.Sprintf("iterations:    %d (%s)", s.Iterations, s.Reason),
		p.Sprintf("cells hit:     %d", s.Occupied),
		p.Sprintf("peak cell:     %v with %d", s.Peak, s.PeakCount),
		p.Sprintf("centroid:      (%.1f,%.1f)", s.CentroidX, s.CentroidY),
		p.Sprintf("mean distance: %.2f", s.MeanDistance),
		p.Sprintf("max distance:  %.2f", s.MaxDistance),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
