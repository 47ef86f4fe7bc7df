package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Image rasterises palette-indexed cells into an RGBA image, scaling each cell
// to a scale×scale block. Row 0 of cells, the southern edge of the plane, is
// drawn at the bottom so north points up.
func Image(cells []uint8, w, h, scale int, palette []color.RGBA) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells do not fill a %dx%d grid", len(cells), w, h)
	}
	if scale <= 0 {
		scale = 1
	}
	row := make([]byte, 4*w)
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h; y++ {
		fillPaletteRGBA(row, cells[y*w:(y+1)*w], palette)
		top := (h - 1 - y) * scale
		for sy := 0; sy < scale; sy++ {
			line := img.Pix[(top+sy)*img.Stride:]
			for x := 0; x < w; x++ {
				px := row[4*x : 4*x+4]
				for sx := 0; sx < scale; sx++ {
					copy(line[4*(x*scale+sx):], px)
				}
			}
		}
	}
	return img, nil
}

// WritePNG encodes the cells as a PNG heat map.
func WritePNG(out io.Writer, cells []uint8, w, h, scale int, palette []color.RGBA) error {
	img, err := Image(cells, w, h, scale, palette)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNGFile writes the heat map to path.
func WritePNGFile(path string, cells []uint8, w, h, scale int, palette []color.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := WritePNG(f, cells, w, h, scale, palette); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
