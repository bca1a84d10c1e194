package component

import "github.com/lixenwraith/vi-boids/vmath"

// FlockingParams is the separation/alignment/cohesion sextuple
type FlockingParams struct {
	SeparationDistance float32 `yaml:"separation_distance"`
	SeparationStrength float32 `yaml:"separation_strength"`
	AlignmentDistance  float32 `yaml:"alignment_distance"`
	AlignmentStrength  float32 `yaml:"alignment_strength"`
	CohesionDistance   float32 `yaml:"cohesion_distance"`
	CohesionStrength   float32 `yaml:"cohesion_strength"`
}

// SimParams is the whole parameter block read by the kernel
// Always replaced as a whole; a tick sees exactly one value
type SimParams struct {
	FlockingParams

	AgentSize  float32 // Visual size, also the wrap margin in simulation mode
	AgentCount int
	ArenaSize  float32 // Arena half-size in game mode

	Target      vmath.Vec2 // Input target point in world space
	InputActive bool       // Pointer held down

	Time              float32 // Simulation seconds since session start
	ColorFadeDuration float32 // Seconds over which a captured agent fades to its new pack color

	CameraPos   vmath.Vec2
	CameraZoom  float32
	AspectRatio float32 // Viewport width / height
}
