// Package termview animates a simulation in the terminal with tcell.
package termview

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"bomb-abm/internal/core"

	"github.com/gdamore/tcell/v2"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Viewer draws a downsampled view of a sim and advances it on a fixed tick.
// The bottom terminal row holds a status line.
type Viewer struct {
	screen  tcell.Screen
	sim     core.Sim
	palette []color.RGBA
	timer   *core.FixedStep

	seed     int64
	paused   bool
	finished bool
}

// New builds a viewer over an initialised screen.
func New(screen tcell.Screen, sim core.Sim, tps int, seed int64) *Viewer {
	v := &Viewer{
		screen: screen,
		sim:    sim,
		timer:  core.NewFixedStep(tps),
		seed:   seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		v.palette = p.Palette()
	}
	return v
}

// Finished reports whether the sim has stopped.
func (v *Viewer) Finished() bool { return v.finished }

// Advance steps the sim once unless it has already finished.
func (v *Viewer) Advance() {
	if v.finished {
		return
	}
	v.finished = v.sim.Step()
}

// HandleEvent applies a terminal event and reports whether the viewer should
// keep running.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'n':
				v.Advance()
			case 'r':
				v.sim.Reset(v.seed)
				v.finished = false
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Draw renders the grid with north up. Each terminal cell shows the highest
// palette index of the grid cells it covers.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	rows := sh - 1
	size := v.sim.Size()
	if sw > 0 && rows > 0 && size.W > 0 && size.H > 0 {
		cells := v.sim.Cells()
		for ty := 0; ty < rows; ty++ {
			// grid y range covered by this row, counted from the north edge
			y1 := size.H - 1 - ty*size.H/rows
			y0 := size.H - (ty+1)*size.H/rows
			for tx := 0; tx < sw; tx++ {
				x0 := tx * size.W / sw
				x1 := (tx+1)*size.W/sw - 1
				if x1 < x0 {
					x1 = x0
				}
				if y0 > y1 {
					y0 = y1
				}
				best := uint8(0)
				for y := y0; y <= y1; y++ {
					for x := x0; x <= x1; x++ {
						if c := cells[y*size.W+x]; c > best {
							best = c
						}
					}
				}
				if best == 0 {
					continue
				}
				v.screen.SetContent(tx, ty, shade(best), nil, v.style(best))
			}
		}
	}
	v.drawStatus(sh - 1)
	v.screen.Show()
}

func (v *Viewer) style(idx uint8) tcell.Style {
	if int(idx) < len(v.palette) {
		c := v.palette[idx]
		return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return tcell.StyleDefault
}

func shade(idx uint8) rune {
	switch {
	case idx < 64:
		return '░'
	case idx < 128:
		return '▒'
	case idx < 192:
		return '▓'
	default:
		return '█'
	}
}

func (v *Viewer) drawStatus(row int) {
	if row < 0 {
		return
	}
	line := StatusLine(v.sim, v.paused)
	for i, r := range []rune(line) {
		v.screen.SetContent(i, row, r, nil, tcell.StyleDefault.Reverse(true))
	}
}

// StatusLine summarises run progress for the bottom row.
func StatusLine(sim core.Sim, paused bool) string {
	line := sim.Name()
	if p, ok := sim.(core.ParameterProvider); ok {
		snap := p.Parameters()
		for _, key := range []string{"iteration", "grounded", "aloft", "status"} {
			if param, ok := snap.Lookup(key); ok {
				line += fmt.Sprintf("  %s %s", param.Label, param.Value)
			}
		}
	}
	if paused {
		line += "  [paused]"
	}
	return line + "  q quit  space pause  n step  r reset"
}

// Run polls input and steps the sim until the user quits or ctx ends. It
// keeps showing the final state once the run finishes.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			if v.paused || v.finished || !v.timer.ShouldStep() {
				continue
			}
			v.Advance()
			v.Draw()
		}
	}
}
