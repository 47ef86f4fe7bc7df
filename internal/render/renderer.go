//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads palette-indexed cells into a single image and draws it
// scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
	flip []uint8
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), flip: make([]uint8, w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit draws cells with north up: grid row 0 lands on the bottom screen row.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	for y := 0; y < gp.h; y++ {
		copy(gp.flip[(gp.h-1-y)*gp.w:(gp.h-y)*gp.w], cells[y*gp.w:(y+1)*gp.w])
	}
	fillPaletteRGBA(gp.buf, gp.flip, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
