package generator

import (
	"fmt"
	"math/rand"

	"labyrinth/pkg/engine/world"
)

// GrowingTree carves a maze by growing a tree from a random start cell. Each
// step takes a cell from the active list, links it to a random unvisited
// neighbour and adds that neighbour to the list; cells without unvisited
// neighbours leave the list.
type GrowingTree struct {
	// Newest is the probability of taking the most recently added active
	// cell; otherwise a uniformly random active cell is taken.
	Newest float64
}

// Name returns the name of this carver
func (g *GrowingTree) Name() string {
	return fmt.Sprintf("Growing Tree (newest %.0f%%)", g.Newest*100)
}

// Carve creates a perfect maze of width x height cells
func (g *GrowingTree) Carve(width, height int, rng *rand.Rand) *Layout {
	layout := NewLayout(width, height)

	visited := make([]bool, width*height)
	start := cell{x: rng.Intn(width), y: rng.Intn(height)}
	visited[layout.index(start.x, start.y)] = true
	active := []cell{start}

	for len(active) > 0 {
		idx := len(active) - 1
		if rng.Float64() >= g.Newest {
			idx = rng.Intn(len(active))
		}
		current := active[idx]

		var candidates []cell
		for _, d := range world.CardinalDirections() {
			dx, dy := d.Delta()
			next := cell{x: current.x + dx, y: current.y + dy}
			if layout.contains(next.x, next.y) && !visited[layout.index(next.x, next.y)] {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			active = append(active[:idx], active[idx+1:]...)
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		layout.Link(current.x, current.y, next.x, next.y)
		visited[layout.index(next.x, next.y)] = true
		active = append(active, next)
	}

	return layout
}

type cell struct {
	x, y int
}
