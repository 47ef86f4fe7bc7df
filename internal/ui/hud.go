//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"bomb-abm/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []Line
	title      string
}

// NewHUD constructs a HUD for the provided simulation and panel width. It
// returns nil when width is not positive; a nil HUD draws nothing.
func NewHUD(sim core.Sim, width int) *HUD {
	if width <= 0 {
		return nil
	}
	title := "Parameters"
	if name := sim.Name(); name != "" {
		title = strings.ToUpper(name[:1]) + name[1:]
	}
	return &HUD{sim: sim, width: width, title: title}
}

// Update refreshes the cached rows from the simulation.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.lines = nil
		return
	}
	h.lines = Lines(provider.Parameters())
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawLines()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawLines() {
	face := basicfont.Face7x13
	headerColor := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor := color.RGBA{R: 230, G: 230, B: 240, A: 255}

	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, headerColor)
	if len(h.lines) == 0 {
		text.Draw(h.panel, "No parameters", face, panelPadding, y+lineHeight, labelColor)
		return
	}
	y += lineHeight / 2
	for _, l := range h.lines {
		if l.Header {
			y += groupGap
			text.Draw(h.panel, l.Label, face, panelPadding, y, headerColor)
			y += lineHeight
			continue
		}
		text.Draw(h.panel, l.Label, face, panelPadding*2, y, labelColor)
		w := text.BoundString(face, l.Value).Dx()
		text.Draw(h.panel, l.Value, face, h.width-panelPadding-w, y, valueColor)
		y += lineHeight
	}
}

const (
	panelPadding   = 12
	lineHeight     = 16
	groupGap       = 8
	headerBaseline = 18
)
