package world

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// PositionSet is a set of grid positions
type PositionSet = mapset.Set[Position]

// NewPositionSet returns a set holding the given positions
func NewPositionSet(positions ...Position) PositionSet {
	s := mapset.New[Position]()
	for _, p := range positions {
		s.Put(p)
	}
	return s
}

// CopySet returns an independent copy of s
func CopySet(s PositionSet) PositionSet {
	c := mapset.New[Position]()
	s.Each(func(p Position) {
		c.Put(p)
	})
	return c
}

// Grid is the valid-position index of a maze raster: a width x height box in
// which every position is either traversable (valid) or wall. Positions are
// only ever added. The insertion order is kept so that seeded sampling is
// reproducible.
type Grid struct {
	width  int
	height int

	valid PositionSet
	order []Position
}

// NewGrid creates a grid of the given dimensions with no valid positions
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}
	return &Grid{
		width:  width,
		height: height,
		valid:  mapset.New[Position](),
	}
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// InBounds checks if a position lies inside the grid box
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsValid reports whether p is traversable
func (g *Grid) IsValid(p Position) bool {
	return g.valid.Has(p)
}

// Open marks p as traversable. Out-of-bounds positions are rejected.
func (g *Grid) Open(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	if !g.valid.Has(p) {
		g.valid.Put(p)
		g.order = append(g.order, p)
	}
	return true
}

// Len returns the number of valid positions
func (g *Grid) Len() int {
	return len(g.order)
}

// Each calls fn for every valid position in insertion order
func (g *Grid) Each(fn func(p Position)) {
	for _, p := range g.order {
		fn(p)
	}
}

// ForEachCell calls fn for every position of the grid box, row by row
func (g *Grid) ForEachCell(fn func(p Position, valid bool)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Position{X: x, Y: y}
			fn(p, g.valid.Has(p))
		}
	}
}

// ValidSet returns a copy of the valid-position set
func (g *Grid) ValidSet() PositionSet {
	return CopySet(g.valid)
}

// RandomValid picks a valid position uniformly at random. The pick is a
// single-slot reservoir: the k-th position replaces the current choice with
// probability 1/k, so every position is equally likely.
func (g *Grid) RandomValid(rng *rand.Rand) (Position, bool) {
	var chosen Position
	seen := 0
	for _, p := range g.order {
		seen++
		if rng.Intn(seen) == 0 {
			chosen = p
		}
	}
	return chosen, seen > 0
}

// FilteredRandom samples up to count distinct valid positions satisfying pred,
// uniformly and without replacement. Fewer than count are returned when not
// enough positions qualify.
func (g *Grid) FilteredRandom(rng *rand.Rand, pred func(p Position) bool, count int) []Position {
	if count <= 0 {
		return nil
	}
	reservoir := make([]Position, 0, count)
	seen := 0
	for _, p := range g.order {
		if pred != nil && !pred(p) {
			continue
		}
		seen++
		if len(reservoir) < count {
			reservoir = append(reservoir, p)
			continue
		}
		if j := rng.Intn(seen); j < count {
			reservoir[j] = p
		}
	}
	return reservoir
}
