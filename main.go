package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"labyrinth/pkg/engine/terminal"
	"labyrinth/pkg/engine/world"
	"labyrinth/pkg/game/devtools"
	"labyrinth/pkg/game/difficulty"
	"labyrinth/pkg/game/entities"
	"labyrinth/pkg/game/maze"
	"labyrinth/pkg/game/renderer"
	"labyrinth/pkg/game/storage"
)

// options holds the command line flags
type options struct {
	level   int
	seed    int64
	width   int
	height  int
	wall    int
	passage int

	images string
	scale  int

	name   string
	view   string
	radius int
	dir    string

	all     bool
	dump    bool
	preview bool

	logLevel  string
	logFormat string
	locale    string
	timeout   time.Duration
}

func parseFlags() options {
	var o options
	flag.IntVar(&o.level, "level", 0, "maze id / difficulty level")
	flag.Int64Var(&o.seed, "seed", 0, "generation seed (0 = random)")
	flag.IntVar(&o.width, "width", 0, "width in cells (0 = drawn from the level's range)")
	flag.IntVar(&o.height, "height", 0, "height in cells (0 = drawn from the level's range)")
	flag.IntVar(&o.wall, "wall", maze.DefaultWallSize, "wall thickness in pixels")
	flag.IntVar(&o.passage, "passage", maze.DefaultPassageSize, "passage width in pixels")
	flag.StringVar(&o.images, "images", "images", "directory the maze images are written to")
	flag.IntVar(&o.scale, "scale", 1, "pixel upscaling of the written images")
	flag.StringVar(&o.name, "name", "Theseus", "hero name shown in the output")
	flag.StringVar(&o.view, "view", "circle", "observer view for preview and dump: full, circle, cone or plane")
	flag.IntVar(&o.radius, "radius", 8, "observer view radius")
	flag.StringVar(&o.dir, "dir", "East", "observer facing direction")
	flag.BoolVar(&o.all, "all", false, fmt.Sprintf("build every level from 0 to %d", difficulty.MaxMazeID))
	flag.BoolVar(&o.dump, "dump", false, "write a text dump of the maze next to its image")
	flag.BoolVar(&o.preview, "preview", false, "print a colored preview of the maze")
	flag.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&o.logFormat, "log-format", "console", "log format (console or json)")
	flag.StringVar(&o.locale, "locale", "en_GB", "language of the CLI output")
	flag.DurationVar(&o.timeout, "timeout", 0, "abort generation after this long (0 = no limit)")
	flag.Parse()
	return o
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var (
	colorBanner = color.Style{color.FgCyan, color.OpBold}
	colorOK     = color.Style{color.FgGreen, color.OpBold}
	colorWarn   = color.Style{color.FgYellow, color.OpBold}
)

func printBanner() {
	fmt.Println()
	colorBanner.Println("  " + gotext.Get("Labyrinth maze generator"))
	fmt.Println()
}

func printOK(msg string) {
	fmt.Printf("  %s %s\n", colorOK.Sprint("✓"), msg)
}

func printWarn(msg string) {
	fmt.Printf("  %s %s\n", colorWarn.Sprint("!"), msg)
}

func run() error {
	opts := parseFlags()

	log, err := newLogger(opts.logLevel, opts.logFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	gotext.Configure("locales", opts.locale, "default")
	printBanner()

	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	store := storage.NewFileStore(opts.images)
	store.Scale = opts.scale

	if opts.all {
		return buildAll(ctx, opts, store, log)
	}

	view, err := world.ParseView(opts.view, opts.radius)
	if err != nil {
		return err
	}
	dir, ok := world.ParseDirection(opts.dir)
	if !ok {
		return fmt.Errorf("unknown direction %q", opts.dir)
	}

	m, err := maze.Build(ctx, mazeConfig(opts, opts.level, opts.seed, log), store)
	if err != nil {
		return fmt.Errorf("maze %d: %w", opts.level, err)
	}
	printOK(gotext.Get("Maze %d (seed %d) written to %s", m.ID(), m.Seed(), store.Path(m.ID())))

	hero := m.HeroStartingPosition()
	names := rand.New(rand.NewSource(m.Seed()))
	printOK(heroLabel(names, opts.name, hero))
	minotaur, err := m.SpawnMinotaur(entities.RandomMinotaurName(names))
	switch {
	case errors.Is(err, maze.ErrNoSpawnPosition):
		printWarn(gotext.Get("No room for a minotaur in maze %d", m.ID()))
	case err != nil:
		return err
	default:
		log.Info("minotaur spawned",
			zap.String("name", minotaur.Name),
			zap.Stringer("position", minotaur.Position),
			zap.Stringer("direction", minotaur.Direction),
			zap.Int("speed", minotaur.Speed),
			zap.Int("vision", minotaur.Vision),
			zap.Float64("aggression", minotaur.Aggression))
	}

	if opts.dump {
		path, err := devtools.DumpMazeToFile(m, filepath.Join(opts.images, devtools.DumpFilename(m.ID())),
			devtools.DumpOptions{Observer: &hero, Facing: dir, View: view})
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		printOK(gotext.Get("Dump written to %s", path))
	}

	if opts.preview {
		visible := m.GetAndCacheVisiblePositions(hero, dir, view)
		scene := renderer.Scene{
			Board:    m,
			Observer: hero,
			Facing:   dir,
			View:     view,
			Visible:  &visible,
			Minotaur: minotaur,
		}
		p := renderer.New()
		p.Init()
		rows, cols := terminal.CurrentViewport(1)
		fmt.Println()
		if err := p.Render(os.Stdout, scene, rows, cols); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}

	return nil
}

// buildAll builds every level concurrently, one goroutine per CPU
func buildAll(ctx context.Context, opts options, store maze.ImageStore, log *zap.Logger) error {
	mazes := make([]*maze.Maze, difficulty.MaxMazeID+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for id := range mazes {
		id := id
		g.Go(func() error {
			m, err := maze.Build(gctx, mazeConfig(opts, id, seedFor(opts.seed, id), log), store)
			if err != nil {
				return fmt.Errorf("maze %d: %w", id, err)
			}
			mazes[id] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, m := range mazes {
		printOK(gotext.Get("Maze %d: %dx%d cells, seed %d", m.ID(), m.Width(), m.Height(), m.Seed()))
	}
	return nil
}

// heroLabel announces the hero under its display name
func heroLabel(rng *rand.Rand, name string, at world.Position) string {
	return gotext.Get("%s enters at %s", entities.PlayerName(rng, name), at)
}

func mazeConfig(opts options, id int, seed int64, log *zap.Logger) maze.Config {
	return maze.Config{
		ID:          id,
		Width:       opts.width,
		Height:      opts.height,
		Seed:        seed,
		WallSize:    opts.wall,
		PassageSize: opts.passage,
		Logger:      log.With(zap.Int("maze", id)),
	}
}

// seedFor derives a per-level seed from a base seed. A zero base keeps every
// level random.
func seedFor(base int64, id int) int64 {
	if base == 0 {
		return 0
	}
	if s := base + int64(id); s != 0 {
		return s
	}
	return base - 1
}

func newLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
