//go:build ebiten

package ui

import (
	"image/color"

	"bomb-abm/internal/core"
	"bomb-abm/internal/dispersal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type aloftProvider interface {
	AloftPositions() []dispersal.Position
}

// Overlay marks particles still in the air on top of the landing density.
// Key 1 toggles it.
type Overlay struct {
	sim       core.Sim
	scale     int
	showAloft bool
	pixel     *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, showAloft: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showAloft = !o.showAloft
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showAloft {
		return
	}
	provider, ok := o.sim.(aloftProvider)
	if !ok {
		return
	}
	h := o.sim.Size().H
	col := color.RGBA{R: 255, G: 255, B: 255, A: 160}
	for _, p := range provider.AloftPositions() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(o.scale), float64(o.scale))
		op.GeoM.Translate(float64(p.X*o.scale), float64((h-1-p.Y)*o.scale))
		op.ColorScale.ScaleWithColor(col)
		screen.DrawImage(o.pixel, op)
	}
}
