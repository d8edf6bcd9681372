package maze

import (
	"labyrinth/pkg/engine/world"
	"labyrinth/pkg/game/difficulty"
	"labyrinth/pkg/game/entities"
)

// IsValidMinotaurPosition reports whether a minotaur may spawn at p: the cell
// is traversable and further than six cells from every entrance cell
func (m *Maze) IsValidMinotaurPosition(p world.Position) bool {
	return m.grid.IsValid(p) && farFrom(p, m.entrance)
}

// SpawnMinotaur places a minotaur on a uniformly chosen valid spawn position
// with stats scaled by the maze id, and warms the visibility cache for its
// initial position, direction and view.
func (m *Maze) SpawnMinotaur(name string) (*entities.Minotaur, error) {
	candidates := m.grid.FilteredRandom(m.live, m.IsValidMinotaurPosition, 1)
	if len(candidates) == 0 {
		return nil, ErrNoSpawnPosition
	}

	minotaur := entities.NewMinotaur(
		name,
		m.id,
		candidates[0],
		difficulty.MinotaurSpeed(m.id),
		difficulty.MinotaurVision(m.id),
		difficulty.MinotaurAggression(m.id),
	)
	directions := world.AllDirections()
	minotaur.Direction = directions[m.live.Intn(len(directions))]

	m.GetAndCacheVisiblePositions(minotaur.Position, minotaur.Direction, minotaur.View())

	return minotaur, nil
}

// HeroStartingPosition returns one of the two entrance cells, chosen anew on
// every call
func (m *Maze) HeroStartingPosition() world.Position {
	return m.entrance[m.live.Intn(len(m.entrance))]
}
