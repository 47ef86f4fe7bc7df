package dispersal

import "fmt"

// Position is an integer cell coordinate. X grows east, Y grows north.
type Position struct {
	X, Y int
}

// Translate returns the position offset by (dx, dy). Bounds are the
// environment's concern.
func (p Position) Translate(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }
