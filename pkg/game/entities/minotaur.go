package entities

import (
	"labyrinth/pkg/engine/world"
)

// Minotaur is a monster placed in a maze. Its stats derive from the maze id.
type Minotaur struct {
	Name       string
	MazeID     int
	Position   world.Position
	Direction  world.Direction
	Speed      int     // Moves per tick budget
	Vision     int     // Perception radius in cells
	Aggression float64 // Chase tendency in [0.5, 1.0]
}

// NewMinotaur creates a minotaur facing north
func NewMinotaur(name string, mazeID int, position world.Position, speed, vision int, aggression float64) *Minotaur {
	return &Minotaur{
		Name:       name,
		MazeID:     mazeID,
		Position:   position,
		Direction:  world.North,
		Speed:      speed,
		Vision:     vision,
		Aggression: aggression,
	}
}

// View returns the perception mode of the minotaur: a forward cone as far as
// its vision reaches
func (m *Minotaur) View() world.View {
	return world.Cone(m.Vision)
}
