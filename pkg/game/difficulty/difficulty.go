// Package difficulty maps a maze id (its difficulty level) to the parameters
// that scale with it: maze dimensions, minotaur stats, power-up count and the
// wall colour. Every curve saturates so arbitrarily large ids stay playable.
package difficulty

import (
	"image/color"
)

// MaxMazeID is the id at which every curve has saturated. Larger ids are
// clamped to it for dimension ranges and colour.
const MaxMazeID = 32

// Clamp returns id limited to [0, MaxMazeID]
func Clamp(id int) int {
	return min(max(id, 0), MaxMazeID)
}

// WidthRange returns the inclusive range of maze widths (in cells) for an id
func WidthRange(id int) (lo, hi int) {
	id = Clamp(id)
	return 16 + 2*(id/4), min(20+2*(id/2), 32)
}

// HeightRange returns the inclusive range of maze heights (in cells) for an id
func HeightRange(id int) (lo, hi int) {
	id = Clamp(id)
	return 4 + 2*(id/4), min(6+2*(id/2), 20)
}

// MinotaurSpeed returns the minotaur speed for an id
func MinotaurSpeed(id int) int {
	return min(max(id, 0)/3, 6)
}

// MinotaurVision returns the minotaur vision radius for an id
func MinotaurVision(id int) int {
	return min(4+max(id, 0)/3, 7)
}

// MinotaurAggression returns the minotaur aggression in [0.5, 1.0] for an id
func MinotaurAggression(id int) float64 {
	return min(0.5+0.1*float64(max(id, 0)/2), 1.0)
}

// PowerUpCount returns how many power-ups a maze of this id carries
func PowerUpCount(id int) int {
	return max(id, 0)/2 + 1
}

// WallColor returns the opaque wall colour for an id, fading from a pale blue
// at id 0 to red at MaxMazeID
func WallColor(id int) color.RGBA {
	a := float64(Clamp(id)) / MaxMazeID
	mix := func(hard, easy float64) uint8 {
		return uint8(a*hard + (1-a)*easy)
	}
	return color.RGBA{
		R: mix(208, 210),
		G: mix(28, 240),
		B: mix(28, 255),
		A: 255,
	}
}

// Background is the colour of traversable pixels: fully transparent
var Background = color.RGBA{}
