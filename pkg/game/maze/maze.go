// Package maze builds playable maze levels and answers perception queries on
// them. A Maze is configured with a Config, finalized once by Build, and is
// immutable afterwards except for its visibility cache and success counters.
package maze

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"labyrinth/pkg/engine/world"
	"labyrinth/pkg/game/difficulty"
	"labyrinth/pkg/game/entities"
	"labyrinth/pkg/game/generator"
)

// Default wall and passage thickness in pixels
const (
	DefaultWallSize    = 2
	DefaultPassageSize = 2
)

// Generation errors
var (
	ErrInvalidConfig   = errors.New("invalid maze configuration")
	ErrNoEntrance      = errors.New("no connection point for the entrance")
	ErrNoExit          = errors.New("no connection point for the exit")
	ErrRoomDoesNotFit  = errors.New("room does not fit inside the maze")
	ErrPersist         = errors.New("persisting maze image")
	ErrNoSpawnPosition = errors.New("no valid spawn position")
)

// ImageStore persists the raster of a finished maze, keyed by maze id
type ImageStore interface {
	SaveMazeImage(ctx context.Context, id int, img image.Image) error
}

// Config describes a maze to build. Zero values select defaults: Width and
// Height are drawn from id-scaled ranges, Seed 0 picks a random seed.
//
// Seed 0 is reserved for "random" and cannot itself be requested. A randomly
// picked seed is never 0, so Maze.Seed always rebuilds the same layout.
type Config struct {
	ID          int
	Width       int   // Cells per row
	Height      int   // Cells per column
	Seed        int64 // 0 = random, never used as a literal seed
	WallSize    int   // Pixels
	PassageSize int   // Pixels

	Carver generator.Carver // nil = generator.DefaultCarver
	Logger *zap.Logger      // nil = no logging
}

// Maze is a generated level
type Maze struct {
	id          int
	seed        int64
	width       int
	height      int
	wallSize    int
	passageSize int

	rng  *rand.Rand // generation draws, fully determined by seed
	live *rand.Rand // draws made while the level is played

	image    *image.RGBA
	grid     *world.Grid
	entrance []world.Position
	exit     []world.Position
	powerUps []entities.PowerUp

	visibility *world.Visibility

	passed    int
	attempted int

	log *zap.Logger
}

// Build generates the maze described by cfg: it carves the base maze, the
// entrance, the exit and the extra rooms, places power-ups and persists the
// raster to store. Any failure aborts the build and no Maze is returned.
func Build(ctx context.Context, cfg Config, store ImageStore) (*Maze, error) {
	m, err := newMaze(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: nil image store", ErrInvalidConfig)
	}

	carver := cfg.Carver
	if carver == nil {
		carver = generator.DefaultCarver
	}

	if m.width == 0 {
		lo, hi := difficulty.WidthRange(m.id)
		m.width = lo + m.rng.Intn(hi-lo+1)
	}
	if m.height == 0 {
		lo, hi := difficulty.HeightRange(m.id)
		m.height = lo + m.rng.Intn(hi-lo+1)
	}

	m.log.Info("new maze",
		zap.Int("id", m.id),
		zap.Int64("seed", m.seed),
		zap.Int("width", m.width),
		zap.Int("height", m.height),
		zap.String("carver", carver.Name()))

	layout := carver.Carve(m.width, m.height, m.rng)
	m.grid = layout.Rasterize(m.wallSize, m.passageSize)
	m.paint()

	if err := m.buildEntrance(); err != nil {
		return nil, err
	}
	if err := m.buildExit(); err != nil {
		return nil, err
	}
	rooms, err := m.buildExtraRooms()
	if err != nil {
		return nil, err
	}
	m.placePowerUps(difficulty.PowerUpCount(m.id))

	m.visibility = world.NewVisibility(m.grid)

	m.log.Debug("maze carved",
		zap.Int("id", m.id),
		zap.Int("valid_positions", m.grid.Len()),
		zap.Int("rooms", rooms),
		zap.Stringer("entrance", m.entrance[0]),
		zap.Stringer("exit", m.exit[0]),
		zap.Int("power_ups", len(m.powerUps)))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := store.SaveMazeImage(ctx, m.id, m.image); err != nil {
		return nil, fmt.Errorf("%w: maze %d: %w", ErrPersist, m.id, err)
	}

	return m, nil
}

func newMaze(cfg Config) (*Maze, error) {
	if cfg.ID < 0 || cfg.Width < 0 || cfg.Height < 0 || cfg.WallSize < 0 || cfg.PassageSize < 0 {
		return nil, fmt.Errorf("%w: negative value in %+v", ErrInvalidConfig, cfg)
	}

	m := &Maze{
		id:          cfg.ID,
		seed:        cfg.Seed,
		width:       cfg.Width,
		height:      cfg.Height,
		wallSize:    cfg.WallSize,
		passageSize: cfg.PassageSize,
		log:         cfg.Logger,
	}
	if m.wallSize == 0 {
		m.wallSize = DefaultWallSize
	}
	if m.passageSize == 0 {
		m.passageSize = DefaultPassageSize
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}

	now := time.Now().UnixNano()
	if m.seed == 0 {
		seeds := rand.New(rand.NewSource(now))
		for m.seed == 0 {
			m.seed = seeds.Int63()
		}
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	m.live = rand.New(rand.NewSource(now ^ m.seed))

	return m, nil
}

// ID returns the maze id, which is also its difficulty level
func (m *Maze) ID() int {
	return m.id
}

// Seed returns the seed the maze was generated from
func (m *Maze) Seed() int64 {
	return m.seed
}

// Width returns the maze width in cells
func (m *Maze) Width() int {
	return m.width
}

// Height returns the maze height in cells
func (m *Maze) Height() int {
	return m.height
}

// WallSize returns the wall thickness in pixels
func (m *Maze) WallSize() int {
	return m.wallSize
}

// PassageSize returns the passage thickness in pixels
func (m *Maze) PassageSize() int {
	return m.passageSize
}

// Grid returns the valid-position index. Callers must not open positions.
func (m *Maze) Grid() *world.Grid {
	return m.grid
}

// Image returns the raster: transparent where traversable, wall colour
// elsewhere
func (m *Maze) Image() *image.RGBA {
	return m.image
}

// IsValidPosition reports whether a position is traversable
func (m *Maze) IsValidPosition(p world.Position) bool {
	return m.grid.IsValid(p)
}

// IsEntrancePosition reports whether p is one of the entrance cells
func (m *Maze) IsEntrancePosition(p world.Position) bool {
	return contains(m.entrance, p)
}

// IsExitPosition reports whether p is one of the exit cells
func (m *Maze) IsExitPosition(p world.Position) bool {
	return contains(m.exit, p)
}

// EntrancePositions returns the two vertically adjacent entrance cells
func (m *Maze) EntrancePositions() []world.Position {
	return append([]world.Position(nil), m.entrance...)
}

// ExitPositions returns the two vertically adjacent exit cells
func (m *Maze) ExitPositions() []world.Position {
	return append([]world.Position(nil), m.exit...)
}

// PowerUps returns the power-ups placed during generation
func (m *Maze) PowerUps() []entities.PowerUp {
	return append([]entities.PowerUp(nil), m.powerUps...)
}

// PowerUpPositions returns the positions of the power-ups
func (m *Maze) PowerUpPositions() []world.Position {
	positions := make([]world.Position, len(m.powerUps))
	for i, p := range m.powerUps {
		positions[i] = p.Position
	}
	return positions
}

func contains(positions []world.Position, p world.Position) bool {
	for _, q := range positions {
		if q == p {
			return true
		}
	}
	return false
}
