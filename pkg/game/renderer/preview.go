// Package renderer draws a colored text preview of a maze as seen by one
// observer. It is a developer view; the game itself renders elsewhere.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"labyrinth/pkg/engine/world"
	"labyrinth/pkg/game/entities"
)

// Icon constants for the preview
const (
	IconObserver = "@"
	IconMinotaur = "M"
	IconWall     = "▒"
	IconFloor    = "·"
	IconHidden   = " "
	IconEntrance = "◁"
	IconExit     = "▷"
)

// Board is the read-only maze surface the preview draws
type Board interface {
	ID() int
	Seed() int64
	Grid() *world.Grid
	IsValidPosition(p world.Position) bool
	IsEntrancePosition(p world.Position) bool
	IsExitPosition(p world.Position) bool
	PowerUps() []entities.PowerUp
}

// Scene is one observer looking at a board
type Scene struct {
	Board    Board
	Observer world.Position
	Facing   world.Direction
	View     world.View
	Visible  *world.PositionSet // nil draws every cell as seen
	Minotaur *entities.Minotaur
}

// Preview renders scenes as colored text
type Preview struct {
	colorWall     color.Style
	colorFloor    color.Style
	colorSubtle   color.Style
	colorObserver color.Style
	colorMinotaur color.Style
	colorOpening  color.Style
	colorPowerUp  color.Style
	colorHeader   color.Style
}

// New creates a preview renderer
func New() *Preview {
	return &Preview{}
}

// Init initializes the color styles
func (p *Preview) Init() {
	p.colorWall = color.Style{color.FgGray}
	p.colorFloor = color.Style{color.FgBlue}
	p.colorSubtle = color.Style{color.FgGray, color.OpBold}
	p.colorObserver = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	p.colorMinotaur = color.Style{color.FgRed, color.OpBold}
	p.colorOpening = color.Style{color.FgGreen}
	p.colorPowerUp = color.Style{color.FgMagenta, color.OpBold}
	p.colorHeader = color.Style{color.FgCyan, color.OpBold}
}

// Render writes the scene to w: a header, a rows x cols window of the board
// centred on the observer (clamped to the board edges) and a legend.
func (p *Preview) Render(w io.Writer, s Scene, rows, cols int) error {
	b := s.Board
	width, height := b.Grid().Width(), b.Grid().Height()
	rows, cols = min(rows, height), min(cols, width)
	startY := clamp(s.Observer.Y-rows/2, 0, height-rows)
	startX := clamp(s.Observer.X-cols/2, 0, width-cols)

	powerUps := make(map[world.Position]entities.PowerUpType)
	for _, pu := range b.PowerUps() {
		powerUps[pu.Position] = pu.Type
	}

	var sb strings.Builder
	sb.WriteString(p.colorHeader.Sprint(gotext.Get("Maze %d (%dx%d), seed %d", b.ID(), width, height, b.Seed())))
	sb.WriteString("\n")
	visible := "-"
	if s.Visible != nil {
		visible = fmt.Sprint(s.Visible.Size())
	}
	sb.WriteString(gotext.Get("Observer at %s facing %s with %s, %s cells visible", s.Observer, s.Facing, s.View, visible))
	sb.WriteString("\n\n")

	for y := startY; y < startY+rows; y++ {
		for x := startX; x < startX+cols; x++ {
			sb.WriteString(p.renderCell(s, world.Pos(x, y), powerUps))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(p.colorSubtle.Sprint(p.legend()))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// renderCell returns the styled icon for one board position
func (p *Preview) renderCell(s Scene, pos world.Position, powerUps map[world.Position]entities.PowerUpType) string {
	b := s.Board

	if pos == s.Observer {
		return p.colorObserver.Sprint(IconObserver)
	}
	if s.Visible != nil && !s.Visible.Has(pos) {
		return p.colorSubtle.Sprint(IconHidden)
	}
	if s.Minotaur != nil && pos == s.Minotaur.Position {
		return p.colorMinotaur.Sprint(IconMinotaur)
	}
	if t, ok := powerUps[pos]; ok {
		return p.colorPowerUp.Sprint(entities.PowerUpTypes[t].Icon)
	}
	switch {
	case b.IsEntrancePosition(pos):
		return p.colorOpening.Sprint(IconEntrance)
	case b.IsExitPosition(pos):
		return p.colorOpening.Sprint(IconExit)
	case b.IsValidPosition(pos):
		return p.colorFloor.Sprint(IconFloor)
	default:
		return p.colorWall.Sprint(IconWall)
	}
}

// dynamicGet looks up translation keys that are not string literals without
// tripping go vet's constant format string check
var dynamicGet = gotext.Get

func (p *Preview) legend() string {
	parts := []string{
		IconObserver + " " + gotext.Get("observer"),
		IconMinotaur + " " + gotext.Get("minotaur"),
		IconEntrance + " " + gotext.Get("entrance"),
		IconExit + " " + gotext.Get("exit"),
	}
	for _, t := range entities.AllPowerUpTypes() {
		info := entities.PowerUpTypes[t]
		parts = append(parts, info.Icon+" "+dynamicGet(info.Name))
	}
	return strings.Join(parts, "  ")
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
