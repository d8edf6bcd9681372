package world

import (
	"fmt"
	"sync"
)

// visibilityKey identifies one observer state in the visibility cache
type visibilityKey struct {
	pos  Position
	dir  Direction
	view View
}

// Visibility answers which cells an observer can see on a grid and memoizes
// the answer per (position, direction, view). The grid must not change once
// a Visibility has been created for it; cached entries are never invalidated.
type Visibility struct {
	grid *Grid

	mu    sync.Mutex
	cache map[visibilityKey]PositionSet
}

// NewVisibility creates a visibility engine for a finished grid
func NewVisibility(grid *Grid) *Visibility {
	return &Visibility{
		grid:  grid,
		cache: make(map[visibilityKey]PositionSet),
	}
}

// GetAndCache returns the cells visible from pos facing dir with the given
// view, computing and storing them on the first request for that key.
// The returned set is a copy and may be modified by the caller.
func (v *Visibility) GetAndCache(pos Position, dir Direction, view View) PositionSet {
	key := visibilityKey{pos: pos, dir: dir, view: view}

	v.mu.Lock()
	defer v.mu.Unlock()

	visible, found := v.cache[key]
	if !found {
		visible = v.Compute(pos, dir, view)
		v.cache[key] = visible
	}
	return CopySet(visible)
}

// Cached returns a result previously stored by GetAndCache. Asking for a key
// that was never warmed is a programming error and panics.
func (v *Visibility) Cached(pos Position, dir Direction, view View) PositionSet {
	key := visibilityKey{pos: pos, dir: dir, view: view}

	v.mu.Lock()
	defer v.mu.Unlock()

	visible, found := v.cache[key]
	if !found {
		panic(fmt.Sprintf("visible positions for %v facing %v with %v should have been cached", pos, dir, view))
	}
	return CopySet(visible)
}

// IsCached reports whether a key has been warmed
func (v *Visibility) IsCached(pos Position, dir Direction, view View) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, found := v.cache[visibilityKey{pos: pos, dir: dir, view: view}]
	return found
}

// CacheSize returns the number of cached observer states
func (v *Visibility) CacheSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.cache)
}

// Compute calculates the visible set without touching the cache.
//
// Every cell in the (2r+1)-square around pos is a target; the line to it is
// walked outwards from pos, adding each cell (walls included) and stopping
// after the first wall or before a diagonal step that cuts a corner. The
// result is clipped to the grid and then filtered by the view's direction.
func (v *Visibility) Compute(pos Position, dir Direction, view View) PositionSet {
	if view.Kind == ViewFull {
		return v.grid.ValidSet()
	}

	g := v.grid
	visible := NewPositionSet()
	r := view.Radius

	minY, maxY := max(pos.Y-r, 0), min(pos.Y+r, g.height)
	minX, maxX := max(pos.X-r, 0), min(pos.X+r, g.width)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			target := Position{X: x, Y: y}

			// Origin is always visible
			if target == pos {
				visible.Put(target)
				continue
			}
			if visible.Has(target) {
				continue
			}

			v.walk(Line(pos, target), visible)
		}
	}

	result := NewPositionSet()
	visible.Each(func(p Position) {
		if !g.InBounds(p) {
			return
		}
		if view.allows(dir, p.X-pos.X, p.Y-pos.Y) {
			result.Put(p)
		}
	})
	return result
}

// walk adds the cells of line to visible until sight is blocked
func (v *Visibility) walk(line []Position, visible PositionSet) {
	for i, p := range line {
		// The wall is visible as well
		visible.Put(p)
		if !v.grid.IsValid(p) {
			return
		}
		if i+1 < len(line) && v.cutsCorner(p, line[i+1]) {
			return
		}
	}
}

// cutsCorner reports whether a diagonal step from a to b squeezes between two
// walls: b is open but both orthogonal cells of the corner between a and b
// are not. Non-diagonal steps never cut corners.
func (v *Visibility) cutsCorner(a, b Position) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	if abs(dx) != 1 || abs(dy) != 1 {
		return false
	}
	return v.grid.IsValid(b) &&
		!v.grid.IsValid(Position{X: a.X + dx, Y: a.Y}) &&
		!v.grid.IsValid(Position{X: a.X, Y: a.Y + dy})
}
