package dispersal

import "image/color"

const (
	displayEmpty  = 0
	displayOrigin = 1
	displayRamp   = 2 // first palette index used for counts
)

var plumePalette = buildPlumePalette()

// viridis anchor colours, low to high.
var rampStops = []color.NRGBA{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 59, G: 82, B: 139, A: 255},
	{R: 33, G: 145, B: 140, A: 255},
	{R: 94, G: 201, B: 98, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
}

// Palette returns the 256-entry colour table indexed by EncodeDensity values:
// grey for empty cells, red for the release point, then a viridis ramp.
func Palette() []color.RGBA { return plumePalette }

func buildPlumePalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	palette[displayEmpty] = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	palette[displayOrigin] = color.RGBA{R: 230, G: 40, B: 40, A: 255}
	span := len(palette) - displayRamp - 1
	for i := displayRamp; i < len(palette); i++ {
		t := float64(i-displayRamp) / float64(span)
		palette[i] = toRGBA(rampColor(t))
	}
	return palette
}

func rampColor(t float64) color.NRGBA {
	if t <= 0 {
		return rampStops[0]
	}
	if t >= 1 {
		return rampStops[len(rampStops)-1]
	}
	pos := t * float64(len(rampStops)-1)
	i := int(pos)
	return blendColors(rampStops[i], rampStops[i+1], pos-float64(i))
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*overlayWeight + 0.5)
	}
	return color.NRGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}

// EncodeDensity writes palette indexes for grid into dst (row-major, len
// W*H). Counts scale linearly onto the ramp with the busiest cell at 255;
// the origin cell is marked when it holds no particles.
func EncodeDensity(grid *DensityGrid, origin Position, dst []uint8) {
	peak := grid.Max()
	for i, c := range grid.counts {
		if i >= len(dst) {
			return
		}
		if c <= 0 {
			dst[i] = displayEmpty
			continue
		}
		top := len(plumePalette) - displayRamp
		dst[i] = uint8(displayRamp - 1 + (c*top+peak-1)/peak)
	}
	if origin.X >= 0 && origin.X < grid.w && origin.Y >= 0 && origin.Y < grid.h {
		idx := origin.Y*grid.w + origin.X
		if idx < len(dst) && dst[idx] == displayEmpty {
			dst[idx] = displayOrigin
		}
	}
}
