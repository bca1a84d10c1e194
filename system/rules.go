package system

import "github.com/lixenwraith/vi-boids/parameter"

// GameRules tunes capture, consumption and replenishment
type GameRules struct {
	CaptureDistanceSq float32 `yaml:"capture_distance_sq"`
	ConsumeRatio      float32 `yaml:"consume_ratio"`
	EjectSpeed        float32 `yaml:"eject_speed"`
	MaxCapacity       int     `yaml:"max_capacity"`

	ArenaSize     float32 `yaml:"arena_size"`
	SpawnMargin   float32 `yaml:"spawn_margin"`
	SpawnVelocity float32 `yaml:"spawn_velocity"`
}

// DefaultGameRules returns the compiled-in tuning
func DefaultGameRules() GameRules {
	return GameRules{
		CaptureDistanceSq: parameter.CaptureDistanceSq,
		ConsumeRatio:      parameter.ConsumeRatio,
		EjectSpeed:        parameter.CaptureEjectSpeed,
		MaxCapacity:       parameter.MaxCapacity,
		ArenaSize:         parameter.DefaultArenaSize,
		SpawnMargin:       parameter.SpawnMargin,
		SpawnVelocity:     parameter.SpawnVelocity,
	}
}

// spawnExtent is the half-size of the region new agents appear in
func (r GameRules) spawnExtent() float32 {
	return r.ArenaSize * r.SpawnMargin
}

// AIRules tunes rival pack steering
type AIRules struct {
	HuntRatio        float32 `yaml:"hunt_ratio"`
	FleeRatio        float32 `yaml:"flee_ratio"`
	HuntStrength     float32 `yaml:"hunt_strength"`
	FleeStrength     float32 `yaml:"flee_strength"`
	FoodSeekStrength float32 `yaml:"food_seek_strength"`
	FoodSeekRadius   float32 `yaml:"food_seek_radius"`
}

// DefaultAIRules returns the compiled-in tuning
func DefaultAIRules() AIRules {
	return AIRules{
		HuntRatio:        parameter.HuntRatio,
		FleeRatio:        parameter.FleeRatio,
		HuntStrength:     parameter.HuntStrength,
		FleeStrength:     parameter.FleeStrength,
		FoodSeekStrength: parameter.FoodSeekStrength,
		FoodSeekRadius:   parameter.FoodSeekRadius,
	}
}

// PopulationConfig is the session starting line-up
type PopulationConfig struct {
	Players    int `yaml:"players"`
	Food       int `yaml:"food"`
	RivalPacks int `yaml:"rival_packs"`
	RivalSize  int `yaml:"rival_size"`
}

// DefaultPopulation returns the compiled-in line-up
func DefaultPopulation() PopulationConfig {
	return PopulationConfig{
		Players:    parameter.StartingPlayers,
		Food:       parameter.StartingFood,
		RivalPacks: parameter.DefaultRivalPacks,
		RivalSize:  parameter.DefaultRivalSize,
	}
}
