package physics

import (
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
)

// ForceProfile holds the mode-dependent constants of the force model
// Pre-defined profiles keep the hot path free of config lookups
type ForceProfile struct {
	MaxSpeed float32 // Velocity magnitude cap for flocking agents

	// Simulation mode boundary
	WrapBound float32 // Toroidal half-extent, agent size is added as margin

	// Game mode food sub-model
	FoodDriftSpeed   float32
	FoodPursuitSpeed float32
	FoodSenseRadius  float32
	FoodPullStrength float32
	FoodTurnRate     float32 // Radians per tick

	// Game mode player steering
	TargetPullStrength float32
	TargetDeadRadius   float32
}

// SimulationProfile is the plain flocking profile
var SimulationProfile = ForceProfile{
	MaxSpeed:  parameter.SimMaxSpeed,
	WrapBound: parameter.SimWrapBound,
}

// GameProfile is the pack game profile
var GameProfile = ForceProfile{
	MaxSpeed:           parameter.GameMaxSpeed,
	FoodDriftSpeed:     parameter.FoodDriftSpeed,
	FoodPursuitSpeed:   parameter.FoodPursuitSpeed,
	FoodSenseRadius:    parameter.FoodSenseRadius,
	FoodPullStrength:   parameter.FoodPullStrength,
	FoodTurnRate:       parameter.FoodTurnRate,
	TargetPullStrength: parameter.TargetPullStrength,
	TargetDeadRadius:   parameter.TargetDeadRadius,
}

// ProfileFor returns the default profile of a mode
func ProfileFor(m component.Mode) ForceProfile {
	if m == component.ModeGame {
		return GameProfile
	}
	return SimulationProfile
}
