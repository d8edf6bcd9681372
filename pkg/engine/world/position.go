// Package world provides the grid primitives shared by maze generation and
// line-of-sight: positions, compass directions, view modes, the valid-position
// index and the visibility engine.
package world

import (
	"fmt"
	"math"
)

// Position is an integer grid coordinate. X grows to the east, Y to the south.
type Position struct {
	X int
	Y int
}

// Pos is shorthand for Position{X: x, Y: y}
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position offset by (dx, dy)
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbouring position in the given direction
func (p Position) Step(dir Direction) Position {
	dx, dy := dir.Delta()
	return p.Add(dx, dy)
}

// Distance returns the Euclidean distance between two positions
func (p Position) Distance(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// String returns "x,y"
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}
