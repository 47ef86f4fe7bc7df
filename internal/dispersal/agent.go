package dispersal

// State is the lifecycle stage of a particle.
type State uint8

const (
	// Aloft particles are above the ground and still moving.
	Aloft State = iota
	// Grounded particles have landed. The state is terminal.
	Grounded
)

func (s State) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "aloft"
}

// Agent is a single released particle.
type Agent struct {
	pos    Position
	height int
}

// NewAgent places a particle at start with the given height. Negative heights
// are treated as ground level.
func NewAgent(start Position, height int) Agent {
	if height < 0 {
		height = 0
	}
	return Agent{pos: start, height: height}
}

// Position returns the particle's current cell.
func (a *Agent) Position() Position { return a.pos }

// Height returns the particle's current height above the ground.
func (a *Agent) Height() int { return a.height }

// Grounded reports whether the particle has landed.
func (a *Agent) Grounded() bool { return a.height == 0 }

// State returns Aloft or Grounded.
func (a *Agent) State() State {
	if a.Grounded() {
		return Grounded
	}
	return Aloft
}

// MoveHorizontal drifts the particle one cell in a direction drawn from the
// wind, clamped to the environment.
func (a *Agent) MoveHorizontal(wind WindDistribution, env *Environment, r Source) {
	if a.Grounded() {
		return
	}
	dx, dy := wind.Sample(r).Delta()
	a.pos = env.Clamp(a.pos.Translate(dx, dy))
}

// MoveVertical changes the particle's height by at most one unit. Turbulence
// from the fall distribution only applies strictly above buildingHeight; at or
// below it the particle always descends and no draw is taken.
func (a *Agent) MoveVertical(fall FallDistribution, buildingHeight int, r Source) {
	if a.Grounded() {
		return
	}
	outcome := FallDown
	if a.height > buildingHeight {
		outcome = fall.Sample(r)
	}
	a.height += outcome.Delta()
	if a.height < 0 {
		a.height = 0
	}
}
