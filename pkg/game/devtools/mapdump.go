// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"labyrinth/pkg/engine/world"
	"labyrinth/pkg/game/entities"
	"labyrinth/pkg/game/maze"
)

// DumpOptions selects the optional visibility section of a dump
type DumpOptions struct {
	Observer *world.Position // nil skips the visibility map
	Facing   world.Direction
	View     world.View
}

// powerUpSymbols are the map symbols of each power-up type
var powerUpSymbols = map[entities.PowerUpType]rune{
	entities.PowerUpSpeed:  's',
	entities.PowerUpVision: 'v',
	entities.PowerUpMemory: 'm',
}

// DumpFilename returns the default dump file name for a maze
func DumpFilename(id int) string {
	return fmt.Sprintf("maze_%d.txt", id)
}

// cellSymbol returns the single-character symbol for a position (no observer overlay)
func cellSymbol(m *maze.Maze, p world.Position, powerUps map[world.Position]entities.PowerUpType) rune {
	if t, ok := powerUps[p]; ok {
		return powerUpSymbols[t]
	}
	switch {
	case m.IsEntrancePosition(p):
		return '<'
	case m.IsExitPosition(p):
		return '>'
	case m.IsValidPosition(p):
		return '.'
	default:
		return '#'
	}
}

// writeMapGrid writes the raster with an optional observer and visibility overlay.
// Positions outside visible are drawn as '?' when visible is non-nil.
func writeMapGrid(sb *strings.Builder, m *maze.Maze, powerUps map[world.Position]entities.PowerUpType, observer *world.Position, visible *world.PositionSet) {
	grid := m.Grid()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := world.Pos(x, y)
			switch {
			case observer != nil && p == *observer:
				sb.WriteRune('@')
			case visible != nil && !visible.Has(p):
				sb.WriteRune('?')
			default:
				sb.WriteRune(cellSymbol(m, p, powerUps))
			}
		}
		sb.WriteRune('\n')
	}
}

func formatPositions(positions []world.Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// DumpMaze writes a debug dump of m to w: metadata, legend, the full map and,
// when an observer is given, the map as seen from it.
// Format is human-readable (sections, key: value, consistent structure).
func DumpMaze(w io.Writer, m *maze.Maze, opts DumpOptions) error {
	if m == nil {
		return fmt.Errorf("no maze")
	}

	powerUps := make(map[world.Position]entities.PowerUpType)
	for _, pu := range m.PowerUps() {
		powerUps[pu.Position] = pu.Type
	}
	passed, attempted := m.Attempts()

	var sb strings.Builder

	// --- Metadata ---
	fmt.Fprintln(&sb, "=== MAZE DUMP DEBUG (layout, openings, power-ups) ===")
	fmt.Fprintln(&sb, "")
	fmt.Fprintln(&sb, "--- Metadata ---")
	fmt.Fprintf(&sb, "maze_id: %d\n", m.ID())
	fmt.Fprintf(&sb, "seed: %d\n", m.Seed())
	fmt.Fprintf(&sb, "cells: %dx%d\n", m.Width(), m.Height())
	fmt.Fprintf(&sb, "raster: %dx%d\n", m.Grid().Width(), m.Grid().Height())
	fmt.Fprintf(&sb, "wall_size: %d\n", m.WallSize())
	fmt.Fprintf(&sb, "passage_size: %d\n", m.PassageSize())
	fmt.Fprintf(&sb, "coordinate_system: x,y (0-based, x=column, y=row)\n")
	fmt.Fprintf(&sb, "valid_positions: %d\n", m.Grid().Len())
	fmt.Fprintf(&sb, "entrance: %s\n", formatPositions(m.EntrancePositions()))
	fmt.Fprintf(&sb, "exit: %s\n", formatPositions(m.ExitPositions()))
	fmt.Fprintf(&sb, "attempts: %d/%d\n", passed, attempted)
	fmt.Fprintln(&sb, "")

	// --- Legend ---
	fmt.Fprintln(&sb, "--- Legend (cell symbols) ---")
	fmt.Fprintln(&sb, ". = valid  # = wall  < = entrance  > = exit  s = speed  v = vision  m = memory  @ = observer  ? = not visible")
	fmt.Fprintln(&sb, "")

	// --- Map ---
	fmt.Fprintln(&sb, "--- Map (full layout) ---")
	writeMapGrid(&sb, m, powerUps, nil, nil)
	fmt.Fprintln(&sb, "")

	// --- Visibility ---
	if opts.Observer != nil {
		obs := *opts.Observer
		warm := m.IsVisibilityCached(obs, opts.Facing, opts.View)
		visible := m.GetAndCacheVisiblePositions(obs, opts.Facing, opts.View)
		fmt.Fprintf(&sb, "--- Map (seen from %s facing %s with %s) ---\n", obs, opts.Facing, opts.View)
		fmt.Fprintf(&sb, "cache_warm: %v\n", warm)
		fmt.Fprintf(&sb, "visible_positions: %d\n", visible.Size())
		writeMapGrid(&sb, m, powerUps, &obs, &visible)
		fmt.Fprintln(&sb, "")
	}

	// --- Power-ups ---
	fmt.Fprintln(&sb, "--- Power-ups (x,y and type) ---")
	list := m.PowerUps()
	sort.Slice(list, func(i, j int) bool {
		if list[i].Position.Y != list[j].Position.Y {
			return list[i].Position.Y < list[j].Position.Y
		}
		return list[i].Position.X < list[j].Position.X
	})
	for _, pu := range list {
		fmt.Fprintf(&sb, "  x: %d y: %d type: %s\n", pu.Position.X, pu.Position.Y, pu.Type)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// DumpMazeToFile writes DumpMaze output to path, or to DumpFilename in the
// working directory when path is empty. Returns the absolute path written.
func DumpMazeToFile(m *maze.Maze, path string, opts DumpOptions) (string, error) {
	if m == nil {
		return "", fmt.Errorf("no maze")
	}
	if path == "" {
		path = DumpFilename(m.ID())
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpMaze(f, m, opts); err != nil {
		return "", err
	}
	return absPath, f.Close()
}
