package physics

import (
	"github.com/lixenwraith/vi-boids/component"
)

// ForceModel computes the next state of one agent from the previous tick's buffer
// Implementations must only read current and never retain it, so agents can be evaluated concurrently
type ForceModel interface {
	Mode() component.Mode
	MaxSpeed() float32
	Step(index int, current []component.Agent, params *component.SimParams) component.Agent
}

// NewForceModel returns the strategy for a mode
func NewForceModel(m component.Mode, profile ForceProfile) ForceModel {
	if m == component.ModeGame {
		return &GameForces{Profile: profile}
	}
	return &Flocking{Profile: profile}
}

// Flocking is the plain separation/alignment/cohesion model with toroidal wrap
type Flocking struct {
	Profile ForceProfile
}

func (f *Flocking) Mode() component.Mode { return component.ModeSimulation }

func (f *Flocking) MaxSpeed() float32 { return f.Profile.MaxSpeed }

func (f *Flocking) Step(index int, current []component.Agent, params *component.SimParams) component.Agent {
	self := current[index]
	force := flockForce(index, current, &params.FlockingParams, false)
	self.Vel = integrateVelocity(self.Vel, force, f.Profile.MaxSpeed)
	self.Pos = wrapPosition(self.Pos, f.Profile.WrapBound+params.AgentSize)
	self.Pos = advance(self.Pos, self.Vel)
	return self
}
