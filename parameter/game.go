package parameter

// Population
const (
	// StartingPlayers is the player pack size at reset
	StartingPlayers = 4
	// StartingFood is the food count at reset
	StartingFood = 20
	// MaxCapacity is the population ceiling, replenishment stops here
	MaxCapacity = 2000

	// DefaultRivalPacks is the number of AI packs at reset
	DefaultRivalPacks = 3
	// DefaultRivalSize is the starting size of each AI pack
	DefaultRivalSize = 4

	// DefaultArenaSize is the game arena half-size
	DefaultArenaSize = 2.0
	// SpawnMargin keeps spawns inside the arena edge, fraction of arena size
	SpawnMargin = 0.9
	// SpawnVelocity is the half-range of spawned agents' velocity
	SpawnVelocity = 0.025
)

// Capture and consumption
const (
	// CaptureDistanceSq is the squared distance at which capture and consumption trigger
	CaptureDistanceSq = 0.005
	// ConsumeRatio is the size ratio an attacker needs over a defender to absorb it
	ConsumeRatio = 1.5
	// CaptureEjectSpeed pushes captured agents out of the capturing pack centroid
	CaptureEjectSpeed = 0.02
	// ColorFadeDuration is the seconds a captured agent blends to its new pack color
	ColorFadeDuration = 5.0
)

// AI steering
const (
	// HuntRatio marks packs smaller than this fraction of mine as prey
	HuntRatio = 0.8
	// FleeRatio marks packs larger than this multiple of mine as threats
	FleeRatio = 1.2
	// HuntStrength is the per-pass velocity nudge toward prey
	HuntStrength = 0.004
	// FleeStrength is the per-pass velocity nudge away from threats
	FleeStrength = 0.006
	// FoodSeekStrength is the per-pass velocity nudge toward nearby food
	FoodSeekStrength = 0.002
	// FoodSeekRadius is the centroid distance within which AI packs notice food
	FoodSeekRadius = 1.0
)

// RivalNames are display names assigned to AI packs in id order
var RivalNames = []string{"Crimson", "Amber", "Violet", "Teal", "Ivory", "Rust"}

// PlayerName and FoodName are the fixed flock names
const (
	PlayerName = "You"
	FoodName   = "Food"
)
