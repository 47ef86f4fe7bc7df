package dispersal

// DensityGrid counts landed particles per cell in row-major order.
type DensityGrid struct {
	w, h   int
	counts []int
}

// NewDensityGrid allocates an all-zero grid.
func NewDensityGrid(w, h int) *DensityGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &DensityGrid{w: w, h: h, counts: make([]int, w*h)}
}

// Width returns the number of columns.
func (g *DensityGrid) Width() int { return g.w }

// Height returns the number of rows.
func (g *DensityGrid) Height() int { return g.h }

// At returns the count at (x, y), or 0 outside the grid.
func (g *DensityGrid) At(x, y int) int {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return 0
	}
	return g.counts[y*g.w+x]
}

// Add increments the cell at p. Positions outside the grid are ignored.
func (g *DensityGrid) Add(p Position) {
	if p.X < 0 || p.X >= g.w || p.Y < 0 || p.Y >= g.h {
		return
	}
	g.counts[p.Y*g.w+p.X]++
}

// Merge adds other's counts into g. Grids of different sizes are ignored.
func (g *DensityGrid) Merge(other *DensityGrid) {
	if other == nil || other.w != g.w || other.h != g.h {
		return
	}
	for i, c := range other.counts {
		g.counts[i] += c
	}
}

// Cells returns a copy of the counts in row-major order.
func (g *DensityGrid) Cells() []int { return append([]int(nil), g.counts...) }

// Total returns the number of particles counted.
func (g *DensityGrid) Total() int {
	total := 0
	for _, c := range g.counts {
		total += c
	}
	return total
}

// Max returns the largest cell count.
func (g *DensityGrid) Max() int {
	m := 0
	for _, c := range g.counts {
		if c > m {
			m = c
		}
	}
	return m
}

// Occupied returns the number of cells holding at least one particle.
func (g *DensityGrid) Occupied() int {
	n := 0
	for _, c := range g.counts {
		if c > 0 {
			n++
		}
	}
	return n
}
