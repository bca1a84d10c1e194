package parameter

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/vi-boids/component"
)

// Simulation mode defaults
const (
	DefaultAgentCount = 1000
	DefaultAgentSize  = 0.03

	// MinAgentCount and MaxAgentCount bound the configured simulation population
	MinAgentCount = 100
	MaxAgentCount = 20000

	// SimInitialSpread is the half-extent of the initial random placement
	SimInitialSpread = 1.0
	// SimInitialVelocity is the half-range of the initial random velocity
	SimInitialVelocity = 0.05
)

// Force model limits
const (
	// SimMaxSpeed caps velocity magnitude in simulation mode
	SimMaxSpeed = 0.01
	// GameMaxSpeed caps velocity magnitude of pack agents in game mode
	GameMaxSpeed = 0.03

	// SimWrapBound is the toroidal boundary of simulation mode, extended by agent size
	SimWrapBound = 1.0

	// FoodDriftSpeed is the idle food speed
	FoodDriftSpeed = 0.005
	// FoodPursuitSpeed is the food speed once a pack is sensed
	FoodPursuitSpeed = 0.02
	// FoodSenseRadius is the distance at which food senses non-food agents
	FoodSenseRadius = 0.8
	// FoodPullStrength is the velocity added toward sensed agents before pinning
	FoodPullStrength = 0.05
	// FoodTurnRate is the per-tick heading rotation of idle food, radians
	FoodTurnRate = 0.1

	// TargetPullStrength is the player pack steering toward the input target
	TargetPullStrength = 0.02
	// TargetDeadRadius disables steering once an agent is this close to the target
	TargetDeadRadius = 0.05
)

// DefaultFlocking is the simulation mode starting point
var DefaultFlocking = component.FlockingParams{
	SeparationDistance: 0.05,
	SeparationStrength: 0.001,
	AlignmentDistance:  0.3,
	AlignmentStrength:  0.01,
	CohesionDistance:   0.3,
	CohesionStrength:   0.001,
}

// GameFlocking is tuned larger for game feel
var GameFlocking = component.FlockingParams{
	SeparationDistance: 0.1,
	SeparationStrength: 0.05,
	AlignmentDistance:  0.2,
	AlignmentStrength:  0.05,
	CohesionDistance:   0.3,
	CohesionStrength:   0.02,
}

// Presets are named flocking tunings
var Presets = map[string]component.FlockingParams{
	"default": DefaultFlocking,
	"game":    GameFlocking,
	"mosquitoes": {
		SeparationDistance: 0.02,
		SeparationStrength: 0.01,
		CohesionDistance:   0.177,
		CohesionStrength:   0.011,
	},
	"blobs": {
		SeparationDistance: 0.033,
		SeparationStrength: 0.051,
		AlignmentDistance:  0.047,
		AlignmentStrength:  0.1,
		CohesionDistance:   0.3,
		CohesionStrength:   0.013,
	},
	"particles": {
		SeparationDistance: 0.035,
		SeparationStrength: 1,
	},
	"nanites": {
		SeparationDistance: 0.067,
		SeparationStrength: 0.01,
		AlignmentDistance:  0.066,
		AlignmentStrength:  0.021,
		CohesionDistance:   0.086,
		CohesionStrength:   0.094,
	},
}

// Preset resolves a preset by name
func Preset(name string) (component.FlockingParams, error) {
	p, ok := Presets[name]
	if !ok {
		return component.FlockingParams{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	return p, nil
}

// PresetNames returns preset names sorted
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
