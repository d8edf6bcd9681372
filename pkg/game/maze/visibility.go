package maze

import (
	"labyrinth/pkg/engine/world"
)

// GetAndCacheVisiblePositions returns the positions visible to an observer,
// computing them on the first request for this (position, direction, view)
// and serving the cached set afterwards
func (m *Maze) GetAndCacheVisiblePositions(p world.Position, dir world.Direction, view world.View) world.PositionSet {
	return m.visibility.GetAndCache(p, dir, view)
}

// GetCachedVisiblePositions returns a set stored by an earlier
// GetAndCacheVisiblePositions call for the same key. It panics if perception
// was not warmed for that key.
func (m *Maze) GetCachedVisiblePositions(p world.Position, dir world.Direction, view world.View) world.PositionSet {
	return m.visibility.Cached(p, dir, view)
}

// VisibilityCacheSize returns the number of observer states cached so far
func (m *Maze) VisibilityCacheSize() int {
	return m.visibility.CacheSize()
}

// IsVisibilityCached reports whether perception has been warmed for a key
func (m *Maze) IsVisibilityCached(p world.Position, dir world.Direction, view world.View) bool {
	return m.visibility.IsCached(p, dir, view)
}
