// Package generator carves the base topology of a maze: a perfect maze over a
// grid of cells, later rasterized into wall and passage pixels.
package generator

import (
	"math/rand"
)

// Carver is a maze carving algorithm. Carve must return a perfect maze: a
// spanning tree over all width x height cells, drawing all randomness from rng
// so that the same seed yields the same layout.
type Carver interface {
	Carve(width, height int, rng *rand.Rand) *Layout
	Name() string
}

// Available carvers
var (
	// Newest75Random25 extends the newest frontier cell 75% of the time,
	// balancing long corridors against branching
	Newest75Random25 = &GrowingTree{Newest: 0.75}
	// Backtracker always extends the newest cell (depth-first, long corridors)
	Backtracker = &GrowingTree{Newest: 1}
	// RandomFrontier always picks a random frontier cell (Prim-like, bushy)
	RandomFrontier = &GrowingTree{Newest: 0}
)

// DefaultCarver is the carver used by maze generation
var DefaultCarver Carver = Newest75Random25
