package physics

import (
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/vmath"
)

// GameForces is the pack game model: same-pack flocking, food attraction, input steering, reflecting arena
type GameForces struct {
	Profile ForceProfile
}

func (g *GameForces) Mode() component.Mode { return component.ModeGame }

func (g *GameForces) MaxSpeed() float32 { return g.Profile.MaxSpeed }

func (g *GameForces) Step(index int, current []component.Agent, params *component.SimParams) component.Agent {
	self := current[index]
	if self.Pack.IsFood() {
		return g.stepFood(index, current, params)
	}

	force := flockForce(index, current, &params.FlockingParams, true)
	if self.Pack == component.PackPlayer && params.InputActive {
		force = vmath.V2Add(force, g.targetPull(self.Pos, params.Target))
	}

	self.Vel = integrateVelocity(self.Vel, force, g.Profile.MaxSpeed)
	self.Pos, self.Vel = reflectClamp(self.Pos, self.Vel, params.ArenaSize)
	self.Pos = advance(self.Pos, self.Vel)
	return self
}

// targetPull steers toward the input target, zero inside the dead radius
func (g *GameForces) targetPull(pos, target vmath.Vec2) vmath.Vec2 {
	dir := vmath.V2Sub(target, pos)
	if vmath.V2Mag(dir) <= g.Profile.TargetDeadRadius {
		return vmath.Zero2
	}
	return vmath.V2Scale(vmath.V2Normalize(dir, vmath.Zero2), g.Profile.TargetPullStrength)
}

// stepFood ignores flocking: idle food circles at drift speed, sensed packs pull it at pursuit speed
func (g *GameForces) stepFood(index int, current []component.Agent, params *component.SimParams) component.Agent {
	self := current[index]
	p := &g.Profile

	vel := vmath.V2Rotate(self.Vel, p.FoodTurnRate)
	vel = vmath.V2WithMagnitude(vel, p.FoodDriftSpeed, vmath.UnitX)

	var attraction vmath.Vec2
	sensed := 0
	senseSq := p.FoodSenseRadius * p.FoodSenseRadius
	for i := range current {
		other := &current[i]
		if other.Pack.IsFood() {
			continue
		}
		if vmath.V2DistSq(self.Pos, other.Pos) < senseSq {
			attraction = vmath.V2Add(attraction, vmath.V2Sub(other.Pos, self.Pos))
			sensed++
		}
	}

	if sensed > 0 {
		vel = vmath.V2Add(vel, vmath.V2Scale(vmath.V2Normalize(attraction, vmath.UnitX), p.FoodPullStrength))
		vel = vmath.V2WithMagnitude(vel, p.FoodPursuitSpeed, vmath.UnitX)
	}

	self.Vel = reflectInward(self.Pos, vel, params.ArenaSize)
	self.Pos = advance(self.Pos, self.Vel)
	return self
}
