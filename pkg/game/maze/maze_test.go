package maze

import (
	"context"
	"errors"
	"image"
	"math"
	"math/rand"
	"testing"

	"labyrinth/pkg/engine/world"
	"labyrinth/pkg/game/storage"
)

// buildMaze builds a maze into a memory store, failing the test on error
func buildMaze(t *testing.T, cfg Config) *Maze {
	t.Helper()
	m, err := Build(context.Background(), cfg, storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("Build(%+v): %v", cfg, err)
	}
	return m
}

// sameSet reports whether two position sets hold the same positions
func sameSet(a, b world.PositionSet) bool {
	if a.Size() != b.Size() {
		return false
	}
	same := true
	a.Each(func(p world.Position) {
		if !b.Has(p) {
			same = false
		}
	})
	return same
}

type failingStore struct{}

func (failingStore) SaveMazeImage(ctx context.Context, id int, img image.Image) error {
	return errors.New("disk full")
}

func TestBuild_DeterministicForSeed(t *testing.T) {
	cfg := Config{ID: 5, Seed: 42}
	a := buildMaze(t, cfg)
	b := buildMaze(t, cfg)

	if a.Width() != b.Width() || a.Height() != b.Height() {
		t.Fatalf("dimensions differ: %dx%d vs %dx%d", a.Width(), a.Height(), b.Width(), b.Height())
	}
	if !sameSet(a.Grid().ValidSet(), b.Grid().ValidSet()) {
		t.Error("valid position sets differ for the same seed")
	}
	for i := range a.EntrancePositions() {
		if a.EntrancePositions()[i] != b.EntrancePositions()[i] {
			t.Errorf("entrance = %v vs %v", a.EntrancePositions(), b.EntrancePositions())
		}
		if a.ExitPositions()[i] != b.ExitPositions()[i] {
			t.Errorf("exit = %v vs %v", a.ExitPositions(), b.ExitPositions())
		}
	}
	pa, pb := a.PowerUpPositions(), b.PowerUpPositions()
	if len(pa) != len(pb) {
		t.Fatalf("power-up count = %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Errorf("power-up %d = %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestBuild_FixedScenarioReproduces(t *testing.T) {
	cfg := Config{ID: 2, Width: 20, Height: 6, WallSize: 2, PassageSize: 2, Seed: 20240601}
	first := buildMaze(t, cfg)
	for run := 0; run < 3; run++ {
		again := buildMaze(t, cfg)
		if again.Grid().Len() != first.Grid().Len() {
			t.Errorf("run %d: valid positions = %d, want %d", run, again.Grid().Len(), first.Grid().Len())
		}
		if again.EntrancePositions()[0].Y != first.EntrancePositions()[0].Y {
			t.Errorf("run %d: entrance row = %d, want %d", run, again.EntrancePositions()[0].Y, first.EntrancePositions()[0].Y)
		}
		if again.ExitPositions()[0].Y != first.ExitPositions()[0].Y {
			t.Errorf("run %d: exit row = %d, want %d", run, again.ExitPositions()[0].Y, first.ExitPositions()[0].Y)
		}
	}
	if first.Grid().Width() != 82 || first.Grid().Height() != 26 {
		t.Errorf("raster = %dx%d, want 82x26", first.Grid().Width(), first.Grid().Height())
	}
}

func TestBuild_DefaultDimensionsInRange(t *testing.T) {
	for id := 0; id < 12; id++ {
		m := buildMaze(t, Config{ID: id, Seed: int64(100 + id)})
		if m.Width() < 16 || m.Width() > 32 {
			t.Errorf("id %d: width = %d, want within [16, 32]", id, m.Width())
		}
		if m.Height() < 4 || m.Height() > 20 {
			t.Errorf("id %d: height = %d, want within [4, 20]", id, m.Height())
		}
		if m.WallSize() != DefaultWallSize || m.PassageSize() != DefaultPassageSize {
			t.Errorf("id %d: wall/passage = %d/%d, want defaults", id, m.WallSize(), m.PassageSize())
		}
	}
}

func TestBuild_RandomSeedIsRecorded(t *testing.T) {
	for i := 0; i < 20; i++ {
		if seed := buildMaze(t, Config{ID: 1}).Seed(); seed == 0 {
			t.Fatal("random build recorded seed 0, which would not rebuild the same maze")
		}
	}
	m := buildMaze(t, Config{ID: 1})
	again := buildMaze(t, Config{ID: 1, Seed: m.Seed()})
	if !sameSet(m.Grid().ValidSet(), again.Grid().ValidSet()) {
		t.Error("rebuilding from the recorded seed gave a different maze")
	}
}

func TestEntranceAndExit_Shape(t *testing.T) {
	for id := 0; id < 6; id++ {
		m := buildMaze(t, Config{ID: id, Seed: int64(7 * (id + 1))})
		entrance, exit := m.EntrancePositions(), m.ExitPositions()
		if len(entrance) != 2 || len(exit) != 2 {
			t.Fatalf("id %d: len(entrance)=%d len(exit)=%d, want 2 and 2", id, len(entrance), len(exit))
		}

		wantEntranceX := 0
		if id == 0 {
			wantEntranceX = m.WallSize()
		}
		if entrance[0].X != wantEntranceX || entrance[1].X != wantEntranceX {
			t.Errorf("id %d: entrance = %v, want column %d", id, entrance, wantEntranceX)
		}
		if lastX := m.Grid().Width() - 1; exit[0].X != lastX || exit[1].X != lastX {
			t.Errorf("id %d: exit = %v, want column %d", id, exit, lastX)
		}
		for _, pair := range [][]world.Position{entrance, exit} {
			if pair[1].Y != pair[0].Y+1 {
				t.Errorf("id %d: %v not vertically adjacent", id, pair)
			}
			for _, p := range pair {
				if !m.IsValidPosition(p) {
					t.Errorf("id %d: %v is not a valid position", id, p)
				}
			}
		}
		if !m.IsEntrancePosition(entrance[1]) || m.IsEntrancePosition(exit[0]) {
			t.Errorf("id %d: IsEntrancePosition mismatch", id)
		}
		if !m.IsExitPosition(exit[0]) || m.IsExitPosition(entrance[0]) {
			t.Errorf("id %d: IsExitPosition mismatch", id)
		}
	}
}

func TestEntranceAndExit_InsideMarginsForAllSizes(t *testing.T) {
	for wall := 1; wall <= 3; wall++ {
		for passage := 1; passage <= 3; passage++ {
			for seed := int64(1); seed <= 60; seed++ {
				cfg := Config{ID: 3, Width: 20, Height: 6, WallSize: wall, PassageSize: passage, Seed: seed}
				m, err := Build(context.Background(), cfg, storage.NewMemoryStore())
				if err != nil {
					t.Fatalf("wall %d passage %d seed %d: Build: %v", wall, passage, seed, err)
				}

				bottom := m.Grid().Height() - wall - 1
				for _, pair := range [][]world.Position{m.EntrancePositions(), m.ExitPositions()} {
					if pair[0].Y < wall || pair[1].Y > bottom {
						t.Errorf("wall %d passage %d seed %d: opening %v outside rows [%d, %d]", wall, passage, seed, pair, wall, bottom)
					}
					if pair[1].Y != pair[0].Y+1 || !m.IsValidPosition(pair[0]) || !m.IsValidPosition(pair[1]) {
						t.Errorf("wall %d passage %d seed %d: opening %v is not two open stacked cells", wall, passage, seed, pair)
					}
				}
			}
		}
	}
}

func TestImage_TransparentExactlyOnValidPositions(t *testing.T) {
	store := storage.NewMemoryStore()
	m, err := Build(context.Background(), Config{ID: 4, Seed: 99}, store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	saved, ok := store.Image(4)
	if !ok {
		t.Fatal("image for maze 4 was not persisted")
	}
	m.Grid().ForEachCell(func(p world.Position, valid bool) {
		a := saved.RGBAAt(p.X, p.Y).A
		if valid && a != 0 {
			t.Fatalf("valid %v has alpha %d, want 0", p, a)
		}
		if !valid && a != 255 {
			t.Fatalf("wall %v has alpha %d, want 255", p, a)
		}
	})
}

func TestBuild_StoreFailureAborts(t *testing.T) {
	m, err := Build(context.Background(), Config{ID: 1, Seed: 3}, failingStore{})
	if err == nil {
		t.Fatal("Build with failing store = nil error, want error")
	}
	if !errors.Is(err, ErrPersist) {
		t.Errorf("err = %v, want ErrPersist", err)
	}
	if m != nil {
		t.Error("Build returned a maze despite the failure")
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, Config{ID: 1, Seed: 3}, storage.NewMemoryStore()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuild_InvalidConfig(t *testing.T) {
	cases := []Config{
		{ID: -1},
		{ID: 1, Width: -3},
		{ID: 1, WallSize: -1},
	}
	for _, cfg := range cases {
		if _, err := Build(context.Background(), cfg, storage.NewMemoryStore()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Build(%+v) err = %v, want ErrInvalidConfig", cfg, err)
		}
	}
	if _, err := Build(context.Background(), Config{ID: 1}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Build with nil store err = %v, want ErrInvalidConfig", err)
	}
}

func TestBuild_RoomTooLargeFails(t *testing.T) {
	// 1x1 cells with thick walls: the raster is 5x5 pixels and no 4x4 room
	// fits between the wall margins
	_, err := Build(context.Background(), Config{ID: 1, Width: 1, Height: 1, WallSize: 1, PassageSize: 3, Seed: 1}, storage.NewMemoryStore())
	if err == nil {
		t.Fatal("Build = nil error, want a generation failure")
	}
}

func TestFullView_EqualsValidSet(t *testing.T) {
	m := buildMaze(t, Config{ID: 3, Seed: 11})
	want := m.Grid().ValidSet()
	origin := m.EntrancePositions()[0]
	for _, dir := range world.AllDirections() {
		got := m.GetAndCacheVisiblePositions(origin, dir, world.Full())
		if !sameSet(got, want) {
			t.Errorf("Full view facing %v: %d positions, want %d", dir, got.Size(), want.Size())
		}
	}
}

func TestCircleView_WithinBox(t *testing.T) {
	m := buildMaze(t, Config{ID: 6, Seed: 12})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 25; i++ {
		origin, _ := m.Grid().RandomValid(rng)
		r := 1 + i%6
		m.GetAndCacheVisiblePositions(origin, world.East, world.Circle(r)).Each(func(p world.Position) {
			if abs(p.X-origin.X) > r || abs(p.Y-origin.Y) > r {
				t.Errorf("Circle{%d} from %v returned %v outside the box", r, origin, p)
			}
			if !m.Grid().InBounds(p) {
				t.Errorf("Circle{%d} from %v returned out-of-bounds %v", r, origin, p)
			}
		})
	}
}

func TestVisibility_MemoizedAndCached(t *testing.T) {
	m := buildMaze(t, Config{ID: 2, Seed: 5})
	origin := m.HeroStartingPosition()
	view := world.Cone(5)

	first := m.GetAndCacheVisiblePositions(origin, world.East, view)
	size := m.VisibilityCacheSize()
	second := m.GetAndCacheVisiblePositions(origin, world.East, view)
	if !sameSet(first, second) {
		t.Error("repeated GetAndCacheVisiblePositions returned different sets")
	}
	if m.VisibilityCacheSize() != size {
		t.Errorf("cache size grew to %d on a repeated key, want %d", m.VisibilityCacheSize(), size)
	}

	cached := m.GetCachedVisiblePositions(origin, world.East, view)
	if !sameSet(first, cached) {
		t.Error("GetCachedVisiblePositions differs from the computed set")
	}

	// Mutating a returned set must not leak into the cache
	first.Put(world.Pos(-5, -5))
	if m.GetCachedVisiblePositions(origin, world.East, view).Has(world.Pos(-5, -5)) {
		t.Error("cached set was modified through a returned copy")
	}
}

func TestGetCachedVisiblePositions_PanicsWhenCold(t *testing.T) {
	m := buildMaze(t, Config{ID: 2, Seed: 5})
	defer func() {
		if recover() == nil {
			t.Error("GetCachedVisiblePositions on a cold key did not panic")
		}
	}()
	m.GetCachedVisiblePositions(m.EntrancePositions()[0], world.West, world.Plane(3))
}

func TestSpawnMinotaur_Constraints(t *testing.T) {
	m := buildMaze(t, Config{ID: 9, Seed: 77})
	for i := 0; i < 50; i++ {
		mino, err := m.SpawnMinotaur("Ἀστερίων")
		if err != nil {
			t.Fatalf("SpawnMinotaur: %v", err)
		}
		if !m.IsValidPosition(mino.Position) {
			t.Fatalf("minotaur spawned on wall %v", mino.Position)
		}
		for _, e := range m.EntrancePositions() {
			if d := e.Distance(mino.Position); d <= 6 {
				t.Errorf("minotaur at %v is %.2f from entrance %v, want > 6", mino.Position, d, e)
			}
		}
		if mino.Speed != 3 || mino.Vision != 7 || math.Abs(mino.Aggression-0.9) > 1e-9 {
			t.Errorf("stats = speed %d vision %d aggression %v, want 3/7/0.9", mino.Speed, mino.Vision, mino.Aggression)
		}
		if !mino.Direction.IsValid() {
			t.Errorf("direction %v is not valid", mino.Direction)
		}
		// Perception is warmed on spawn: this must not panic
		m.GetCachedVisiblePositions(mino.Position, mino.Direction, mino.View())
	}
}

func TestSpawnMinotaur_NoRoom(t *testing.T) {
	grid := world.NewGrid(4, 4)
	grid.Open(world.Pos(0, 0))
	grid.Open(world.Pos(0, 1))
	m := &Maze{
		grid:       grid,
		entrance:   []world.Position{world.Pos(0, 0), world.Pos(0, 1)},
		live:       rand.New(rand.NewSource(1)),
		visibility: world.NewVisibility(grid),
	}
	if _, err := m.SpawnMinotaur("Τάφος"); !errors.Is(err, ErrNoSpawnPosition) {
		t.Errorf("err = %v, want ErrNoSpawnPosition", err)
	}
}

func TestPowerUps_Constraints(t *testing.T) {
	for id := 0; id < 10; id++ {
		m := buildMaze(t, Config{ID: id, Seed: int64(31 + id)})
		positions := m.PowerUpPositions()
		if len(positions) == 0 || len(positions) > id/2+1 {
			t.Errorf("id %d: %d power-ups, want 1..%d", id, len(positions), id/2+1)
		}
		seen := make(map[world.Position]bool)
		for _, p := range positions {
			if seen[p] {
				t.Errorf("id %d: duplicate power-up at %v", id, p)
			}
			seen[p] = true
			if !m.IsValidPosition(p) {
				t.Errorf("id %d: power-up on wall %v", id, p)
			}
			for _, q := range append(m.EntrancePositions(), m.ExitPositions()...) {
				if q.Distance(p) <= 6 {
					t.Errorf("id %d: power-up %v within 6 of %v", id, p, q)
				}
			}
		}
	}
}

func TestHeroStartingPosition_IsEntrance(t *testing.T) {
	m := buildMaze(t, Config{ID: 1, Seed: 8})
	seen := make(map[world.Position]bool)
	for i := 0; i < 200; i++ {
		p := m.HeroStartingPosition()
		if !m.IsEntrancePosition(p) {
			t.Fatalf("HeroStartingPosition = %v, not an entrance cell", p)
		}
		seen[p] = true
	}
	if len(seen) != 2 {
		t.Errorf("saw %d distinct start cells in 200 rolls, want 2", len(seen))
	}
}

func TestSuccessRate(t *testing.T) {
	m := buildMaze(t, Config{ID: 0, Seed: 1})
	if !math.IsNaN(m.SuccessRate()) {
		t.Errorf("SuccessRate() with no attempts = %v, want NaN", m.SuccessRate())
	}

	m.IncreaseAttempted()
	m.IncreaseAttempted()
	m.IncreaseAttempted()
	m.IncreasePassed()
	if got := m.SuccessRate(); math.Abs(got-1.0/3) > 1e-9 {
		t.Errorf("SuccessRate() = %v, want 1/3", got)
	}

	m.DecreaseAttempted()
	if got := m.SuccessRate(); got != 0.5 {
		t.Errorf("SuccessRate() after a withdrawn attempt = %v, want 0.5", got)
	}

	m.DecreasePassed()
	m.DecreasePassed()
	if passed, attempted := m.Attempts(); passed != 0 || attempted != 2 {
		t.Errorf("Attempts() = (%d, %d), want (0, 2)", passed, attempted)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
