package dispersal

// Source is the random source a distribution draws from. *rand.Rand from
// math/rand/v2 and *core.RNG both satisfy it.
type Source interface {
	IntN(n int) int
}

// Direction enumerates horizontal wind outcomes. The declaration order is the
// order in which Sample partitions [0, 100).
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"north", "east", "south", "west"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Delta returns the unit step for the direction. North is +Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Fall enumerates vertical outcomes. The declaration order is the order in
// which Sample partitions [0, 100).
type Fall uint8

const (
	FallUp Fall = iota
	FallDown
	FallNone
)

var fallNames = [...]string{"up", "down", "none"}

func (f Fall) String() string {
	if int(f) < len(fallNames) {
		return fallNames[f]
	}
	return "unknown"
}

// Delta returns the height change for the outcome.
func (f Fall) Delta() int {
	switch f {
	case FallUp:
		return 1
	case FallDown:
		return -1
	}
	return 0
}

// WindDistribution holds the chance, in whole percent, of the wind carrying a
// particle in each direction.
type WindDistribution struct {
	pct   [4]int
	valid bool
}

// NewWindDistribution validates the four percentages.
func NewWindDistribution(north, east, south, west int) (WindDistribution, error) {
	pct := [4]int{north, east, south, west}
	if err := validatePercentages("wind", directionNames[:], pct[:]); err != nil {
		return WindDistribution{}, err
	}
	return WindDistribution{pct: pct, valid: true}, nil
}

// Sample draws a direction: north takes [0,N), east [N,N+E), south the next
// S values and west the remainder.
func (w WindDistribution) Sample(r Source) Direction {
	return Direction(pick(w.pct[:], r.IntN(100)))
}

// Percent returns the configured chance for d.
func (w WindDistribution) Percent(d Direction) int {
	if int(d) >= len(w.pct) {
		return 0
	}
	return w.pct[d]
}

// Percentages returns the percentages in sampling order.
func (w WindDistribution) Percentages() []int { return append([]int(nil), w.pct[:]...) }

// Valid reports whether the distribution was built by NewWindDistribution.
func (w WindDistribution) Valid() bool { return w.valid }

// FallDistribution holds the chance, in whole percent, of a particle rising,
// sinking or holding height while above the release height.
type FallDistribution struct {
	pct   [3]int
	valid bool
}

// NewFallDistribution validates the three percentages.
func NewFallDistribution(up, down, none int) (FallDistribution, error) {
	pct := [3]int{up, down, none}
	if err := validatePercentages("fall", fallNames[:], pct[:]); err != nil {
		return FallDistribution{}, err
	}
	return FallDistribution{pct: pct, valid: true}, nil
}

// Sample draws a vertical outcome: up takes [0,U), down [U,U+D) and none the
// remainder.
func (f FallDistribution) Sample(r Source) Fall {
	return Fall(pick(f.pct[:], r.IntN(100)))
}

// Percent returns the configured chance for o.
func (f FallDistribution) Percent(o Fall) int {
	if int(o) >= len(f.pct) {
		return 0
	}
	return f.pct[o]
}

// Percentages returns the percentages in sampling order.
func (f FallDistribution) Percentages() []int { return append([]int(nil), f.pct[:]...) }

// Valid reports whether the distribution was built by NewFallDistribution.
func (f FallDistribution) Valid() bool { return f.valid }

func validatePercentages(kind string, labels []string, values []int) error {
	sum := 0
	for i, v := range values {
		if v < 0 || v > 100 {
			return &InvalidDistributionError{Kind: kind, Label: labels[i], Value: v}
		}
		sum += v
	}
	if sum != 100 {
		return &InvalidDistributionError{Kind: kind, Sum: sum}
	}
	return nil
}

// pick maps a draw in [0, 100) onto consecutive ranges sized by weights.
func pick(weights []int, draw int) int {
	upper := 0
	for i, w := range weights {
		upper += w
		if draw < upper {
			return i
		}
	}
	// Unreachable for weights summing to 100; fall back to the last non-empty label.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}
