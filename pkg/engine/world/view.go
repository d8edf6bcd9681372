package world

import "fmt"

// ViewKind selects how a View limits perception
type ViewKind int

// View kinds
const (
	ViewFull ViewKind = iota
	ViewCircle
	ViewCone
	ViewPlane
)

// View is the perception mode of an observer. Radius is ignored for ViewFull.
// Views are comparable and are part of the visibility cache key.
type View struct {
	Kind   ViewKind
	Radius int
}

// Full sees every valid position regardless of direction
func Full() View {
	return View{Kind: ViewFull}
}

// Circle sees every unobstructed cell within radius, in all directions
func Circle(radius int) View {
	return View{Kind: ViewCircle, Radius: radius}
}

// Cone sees a roughly 90 degree wedge ahead of the facing direction
func Cone(radius int) View {
	return View{Kind: ViewCone, Radius: radius}
}

// Plane sees the half-plane strictly ahead of the facing direction
func Plane(radius int) View {
	return View{Kind: ViewPlane, Radius: radius}
}

// ParseView builds a view from a mode name ("full", "circle", "cone", "plane")
func ParseView(mode string, radius int) (View, error) {
	switch mode {
	case "full":
		return Full(), nil
	case "circle":
		return Circle(radius), nil
	case "cone":
		return Cone(radius), nil
	case "plane":
		return Plane(radius), nil
	}
	return View{}, fmt.Errorf("unknown view mode %q", mode)
}

func (v View) String() string {
	switch v.Kind {
	case ViewFull:
		return "Full"
	case ViewCircle:
		return fmt.Sprintf("Circle{%d}", v.Radius)
	case ViewCone:
		return fmt.Sprintf("Cone{%d}", v.Radius)
	case ViewPlane:
		return fmt.Sprintf("Plane{%d}", v.Radius)
	default:
		return "Unknown"
	}
}

// allows reports whether a cell at offset (dx, dy) from an observer facing dir
// passes this view's directional filter.
//
// With (fx, fy) the facing delta, a cone keeps the quadrant between the two
// axes for diagonal facings and the 90 degree wedge |side| <= ahead for
// cardinal ones. A plane keeps every cell strictly ahead.
func (v View) allows(dir Direction, dx, dy int) bool {
	if v.Kind != ViewCone && v.Kind != ViewPlane {
		return true
	}
	if !dir.IsValid() {
		return false
	}

	fx, fy := dir.Delta()
	ahead := dx*fx + dy*fy
	if v.Kind == ViewPlane {
		return ahead > 0
	}
	if dir.IsDiagonal() {
		return dx*fx >= 0 && dy*fy >= 0
	}
	side := dx*fy - dy*fx
	return ahead >= abs(side)
}
