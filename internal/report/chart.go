package report

import (
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// LandingCurve renders grounded particles against iteration as a PNG line
// chart. history[i] is the grounded count after iteration i+1; the curve
// starts from zero at iteration 0.
func LandingCurve(out io.Writer, history []int, particles int) error {
	if particles <= 0 {
		return fmt.Errorf("landing curve: particles must be positive")
	}
	xs := make([]float64, len(history)+1)
	ys := make([]float64, len(history)+1)
	for i, g := range history {
		xs[i+1] = float64(i + 1)
		ys[i+1] = float64(g)
	}
	if len(history) == 0 {
		xs = append(xs, 1)
		ys = append(ys, 0)
	}

	graph := chart.Chart{
		Title:  "Particles grounded per iteration",
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "iteration",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "grounded",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(particles)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "grounded",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
			},
		},
	}
	if err := graph.Render(chart.PNG, out); err != nil {
		return fmt.Errorf("render landing curve: %w", err)
	}
	return nil
}

// LandingCurveFile writes the chart to path.
func LandingCurveFile(path string, history []int, particles int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := LandingCurve(f, history, particles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
