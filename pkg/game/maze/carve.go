package maze

import (
	"fmt"
	"image"

	"labyrinth/pkg/engine/world"
	"labyrinth/pkg/game/difficulty"
	"labyrinth/pkg/game/entities"
)

// Minimum Euclidean distance power-ups and minotaur spawns keep from the
// entrance (and, for power-ups, the exit)
const safeDistance = 6.0

// openingDirection is the way the entrance is dug into the maze; the exit is
// dug the opposite way
const openingDirection = world.East

// paint renders the current grid into a fresh raster
func (m *Maze) paint() {
	w, h := m.grid.Width(), m.grid.Height()
	m.image = image.NewRGBA(image.Rect(0, 0, w, h))
	wall := difficulty.WallColor(m.id)
	m.grid.ForEachCell(func(p world.Position, valid bool) {
		if valid {
			m.image.SetRGBA(p.X, p.Y, difficulty.Background)
		} else {
			m.image.SetRGBA(p.X, p.Y, wall)
		}
	})
}

// open marks a position traversable in both the index and the raster
func (m *Maze) open(p world.Position) {
	if m.grid.Open(p) {
		m.image.SetRGBA(p.X, p.Y, difficulty.Background)
	}
}

// openingRow picks a row y for a two-cell opening so that y and y+1 both lie
// inside the vertical wall margins. Even rows are preferred; an odd wall size
// can push the rounded row into the border, in which case it moves down two.
func (m *Maze) openingRow() (int, bool) {
	lo := m.wallSize
	hi := m.grid.Height() - m.wallSize - 2
	span := hi - lo + 1
	if span <= 0 {
		return 0, false
	}
	y := (lo + m.rng.Intn(span)) / 2 * 2
	if y < lo {
		y += 2
	}
	if y > hi {
		// Only an odd lo with a one-row range gets here
		y = lo
	}
	return y, true
}

// buildEntrance opens a two-cell-tall entrance on the left margin, scanning
// right and force-opening cells until it meets already open topology
func (m *Maze) buildEntrance() error {
	y, ok := m.openingRow()
	if !ok {
		return fmt.Errorf("%w: maze height %d too small", ErrNoEntrance, m.grid.Height())
	}

	startX := 0
	if m.id == 0 {
		startX = m.wallSize
	}

	if !m.carveOpening(startX, y, openingDirection) {
		return fmt.Errorf("%w: row %d", ErrNoEntrance, y)
	}
	m.entrance = []world.Position{world.Pos(startX, y), world.Pos(startX, y+1)}
	return nil
}

// buildExit mirrors buildEntrance from the right margin
func (m *Maze) buildExit() error {
	y, ok := m.openingRow()
	if !ok {
		return fmt.Errorf("%w: maze height %d too small", ErrNoExit, m.grid.Height())
	}

	maxX := m.grid.Width() - 1
	if !m.carveOpening(maxX, y, openingDirection.Opposite()) {
		return fmt.Errorf("%w: row %d", ErrNoExit, y)
	}
	m.exit = []world.Position{world.Pos(maxX, y), world.Pos(maxX, y+1)}
	return nil
}

// carveOpening walks row pair (y, y+1) from column x towards dir until both
// cells are open, opening every cell it passes. Returns false when the walk
// leaves the grid without connecting.
func (m *Maze) carveOpening(x, y int, dir world.Direction) bool {
	dx, _ := dir.Delta()
	for ; x >= 0 && x < m.grid.Width(); x += dx {
		top, bottom := world.Pos(x, y), world.Pos(x, y+1)
		if m.grid.IsValid(top) && m.grid.IsValid(bottom) {
			return true
		}
		m.open(top)
		m.open(bottom)
	}
	return false
}

// buildExtraRooms opens random rectangular rooms over the maze, turning the
// perfect maze into a braided one. Returns the number of rooms carved.
func (m *Maze) buildExtraRooms() (int, error) {
	rng := m.rng
	w, h := m.grid.Width(), m.grid.Height()

	maxRooms := max((m.width+m.height)/2, 5)
	maxSide := max((m.width+m.height)/6, 5)
	rooms := 4 + rng.Intn(maxRooms-4+1)

	var cells []world.Position
	for i := 0; i < rooms; i++ {
		roomWidth := 4 + rng.Intn(maxSide-4+1)
		roomHeight := 4 + rng.Intn(maxSide-4+1)

		xSpan := w - roomWidth - m.wallSize - m.wallSize
		ySpan := h - roomHeight - m.wallSize - m.wallSize
		if xSpan <= 0 || ySpan <= 0 {
			return 0, fmt.Errorf("%w: %dx%d room in %dx%d raster", ErrRoomDoesNotFit, roomWidth, roomHeight, w, h)
		}
		roomX := m.wallSize + rng.Intn(xSpan)
		roomY := m.wallSize + rng.Intn(ySpan)

		for y := roomY; y < roomY+roomHeight; y++ {
			for x := roomX; x < roomX+roomWidth; x++ {
				cells = append(cells, world.Pos(x, y))
			}
		}
	}

	for _, p := range cells {
		m.open(p)
	}
	return rooms, nil
}

// placePowerUps picks amount distinct cells away from the entrance and exit
func (m *Maze) placePowerUps(amount int) {
	positions := m.grid.FilteredRandom(m.rng, func(p world.Position) bool {
		return farFrom(p, m.entrance) && farFrom(p, m.exit)
	}, amount)

	m.powerUps = make([]entities.PowerUp, len(positions))
	for i, p := range positions {
		m.powerUps[i] = entities.PowerUp{
			Type:     entities.RandomPowerUpType(m.rng),
			Position: p,
		}
	}
}

// farFrom reports whether p is further than safeDistance from every position
func farFrom(p world.Position, positions []world.Position) bool {
	for _, q := range positions {
		if q.Distance(p) <= safeDistance {
			return false
		}
	}
	return true
}
