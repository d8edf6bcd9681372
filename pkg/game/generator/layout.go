package generator

import (
	"labyrinth/pkg/engine/world"
)

// Layout is a cell-level maze: which neighbouring cells are linked by a
// passage. Only east and south links are stored; west and north are the
// neighbour's east and south.
type Layout struct {
	width  int
	height int
	east   []bool
	south  []bool
}

// NewLayout creates a layout with every cell walled off
func NewLayout(width, height int) *Layout {
	if width <= 0 || height <= 0 {
		panic("Layout dimensions must be positive")
	}
	return &Layout{
		width:  width,
		height: height,
		east:   make([]bool, width*height),
		south:  make([]bool, width*height),
	}
}

// Width returns the number of cell columns
func (l *Layout) Width() int {
	return l.width
}

// Height returns the number of cell rows
func (l *Layout) Height() int {
	return l.height
}

func (l *Layout) index(x, y int) int {
	return y*l.width + x
}

func (l *Layout) contains(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// Link opens the wall between two orthogonally adjacent cells. Returns false
// if the cells are out of range or not adjacent.
func (l *Layout) Link(x0, y0, x1, y1 int) bool {
	if !l.contains(x0, y0) || !l.contains(x1, y1) {
		return false
	}
	switch {
	case x1 == x0+1 && y1 == y0:
		l.east[l.index(x0, y0)] = true
	case x1 == x0-1 && y1 == y0:
		l.east[l.index(x1, y1)] = true
	case y1 == y0+1 && x1 == x0:
		l.south[l.index(x0, y0)] = true
	case y1 == y0-1 && x1 == x0:
		l.south[l.index(x1, y1)] = true
	default:
		return false
	}
	return true
}

// Linked reports whether two orthogonally adjacent cells share a passage
func (l *Layout) Linked(x0, y0, x1, y1 int) bool {
	if !l.contains(x0, y0) || !l.contains(x1, y1) {
		return false
	}
	switch {
	case x1 == x0+1 && y1 == y0:
		return l.east[l.index(x0, y0)]
	case x1 == x0-1 && y1 == y0:
		return l.east[l.index(x1, y1)]
	case y1 == y0+1 && x1 == x0:
		return l.south[l.index(x0, y0)]
	case y1 == y0-1 && x1 == x0:
		return l.south[l.index(x1, y1)]
	}
	return false
}

// Links returns the number of passages between cells
func (l *Layout) Links() int {
	n := 0
	for i := range l.east {
		if l.east[i] {
			n++
		}
		if l.south[i] {
			n++
		}
	}
	return n
}

// RasterSize returns the pixel dimensions of the rasterized layout
func (l *Layout) RasterSize(wall, passage int) (width, height int) {
	return l.width*(passage+wall) + wall, l.height*(passage+wall) + wall
}

// Rasterize draws the layout as a pixel grid: each cell is a passage x passage
// block of open pixels, separated from its neighbours (and the border) by
// wall-thick strips that are opened where the cells are linked.
func (l *Layout) Rasterize(wall, passage int) *world.Grid {
	width, height := l.RasterSize(wall, passage)
	grid := world.NewGrid(width, height)

	openRect := func(x0, y0, w, h int) {
		for y := y0; y < y0+h; y++ {
			for x := x0; x < x0+w; x++ {
				grid.Open(world.Pos(x, y))
			}
		}
	}

	for cy := 0; cy < l.height; cy++ {
		for cx := 0; cx < l.width; cx++ {
			x0 := wall + cx*(passage+wall)
			y0 := wall + cy*(passage+wall)
			openRect(x0, y0, passage, passage)
			if l.east[l.index(cx, cy)] {
				openRect(x0+passage, y0, wall, passage)
			}
			if l.south[l.index(cx, cy)] {
				openRect(x0, y0+passage, passage, wall)
			}
		}
	}

	return grid
}
