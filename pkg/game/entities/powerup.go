package entities

import (
	"math/rand"

	"labyrinth/pkg/engine/world"
)

// PowerUpType is the kind of a power-up lying in the maze
type PowerUpType int

const (
	PowerUpSpeed  PowerUpType = iota // Faster movement
	PowerUpVision                    // Wider view radius
	PowerUpMemory                    // Seen cells stay on the map
)

// PowerUpInfo contains display information for each power-up type
type PowerUpInfo struct {
	Name string
	Icon string
}

// PowerUpTypes maps power-up types to their display information
var PowerUpTypes = map[PowerUpType]PowerUpInfo{
	PowerUpSpeed:  {Name: "Speed", Icon: "»"},
	PowerUpVision: {Name: "Vision", Icon: "◉"},
	PowerUpMemory: {Name: "Memory", Icon: "✦"},
}

// AllPowerUpTypes returns every power-up type
func AllPowerUpTypes() []PowerUpType {
	return []PowerUpType{PowerUpSpeed, PowerUpVision, PowerUpMemory}
}

// String returns the display name
func (t PowerUpType) String() string {
	if info, ok := PowerUpTypes[t]; ok {
		return info.Name
	}
	return "Unknown"
}

// RandomPowerUpType picks a power-up type uniformly
func RandomPowerUpType(rng *rand.Rand) PowerUpType {
	types := AllPowerUpTypes()
	return types[rng.Intn(len(types))]
}

// PowerUp is a power-up placed at a position
type PowerUp struct {
	Type     PowerUpType
	Position world.Position
}
