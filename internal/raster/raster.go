// Package raster reads and writes plain-text grids: one line per row, cells
// separated by spaces or commas.
package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"bomb-abm/internal/core"
)

// Read parses an environment raster of byte values. Density rasters, whose
// counts may exceed 255, are read with ReadCounts.
func Read(r io.Reader) (*core.ByteGrid, error) {
	width, height, cells, err := scan(r, 255)
	if err != nil {
		return nil, err
	}
	g := core.NewByteGrid(width, height)
	dst := g.Cells()
	for i, v := range cells {
		dst[i] = uint8(v)
	}
	return g, nil
}

// ReadCounts parses a raster of non-negative counts, such as the density
// grids written by Write, and returns them row-major.
func ReadCounts(r io.Reader) (width, height int, cells []int, err error) {
	return scan(r, math.MaxInt)
}

// scan reads rows of integers in [0, limit]. Blank lines are skipped; every
// remaining row must have the same number of cells.
func scan(r io.Reader, limit int) (int, int, []int, error) {
	var cells []int
	width, height := -1, 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := splitCells(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if width >= 0 && len(fields) != width {
			return 0, 0, nil, fmt.Errorf("raster line %d: %d cells, expected %d", line, len(fields), width)
		}
		width = len(fields)
		for col, f := range fields {
			v, err := parseCell(f, limit)
			if err != nil {
				return 0, 0, nil, fmt.Errorf("raster line %d column %d: %w", line, col+1, err)
			}
			cells = append(cells, v)
		}
		height++
	}
	if err := sc.Err(); err != nil {
		return 0, 0, nil, fmt.Errorf("read raster: %w", err)
	}
	if height == 0 {
		return 0, 0, nil, fmt.Errorf("raster is empty")
	}
	return width, height, cells, nil
}

// ReadFile parses the raster stored at path.
func ReadFile(path string) (*core.ByteGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()
	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Write emits cells (row-major, width*height values) one row per line with
// single spaces between values.
func Write(w io.Writer, width, height int, cells []int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster dimensions %dx%d must be positive", width, height)
	}
	if len(cells) != width*height {
		return fmt.Errorf("raster has %d cells, expected %d", len(cells), width*height)
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendInt(buf[:0], int64(cells[y*width+x]), 10)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes the raster to path, replacing any existing file.
func WriteFile(path string, width, height int, cells []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raster: %w", err)
	}
	if err := Write(f, width, height, cells); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func splitCells(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
}

// parseCell accepts integers and integral decimals such as "255.0", as written
// by spreadsheet CSV exports.
func parseCell(s string, limit int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > float64(limit) {
			return 0, fmt.Errorf("cell %q is not an integer in [0,%d]", s, limit)
		}
		v = int(f)
	}
	if v < 0 || v > limit {
		return 0, fmt.Errorf("cell %d outside [0,%d]", v, limit)
	}
	return v, nil
}
