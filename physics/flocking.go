package physics

import (
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/vmath"
)

// flockForce accumulates separation, alignment and cohesion for agent index
// samePack restricts neighbors to the agent's own pack
func flockForce(index int, current []component.Agent, p *component.FlockingParams, samePack bool) vmath.Vec2 {
	self := &current[index]

	var separation, alignment, cohesion vmath.Vec2
	alignmentCount, cohesionCount := 0, 0

	// Distances compared squared; negative thresholds never match
	sepSq := signedSq(p.SeparationDistance)
	aliSq := signedSq(p.AlignmentDistance)
	cohSq := signedSq(p.CohesionDistance)

	for i := range current {
		if i == index {
			continue
		}
		other := &current[i]
		if samePack && other.Pack != self.Pack {
			continue
		}

		distSq := vmath.V2DistSq(self.Pos, other.Pos)

		if distSq < sepSq {
			separation = vmath.V2Add(separation, vmath.V2Sub(self.Pos, other.Pos))
		}
		if distSq < aliSq {
			alignment = vmath.V2Add(alignment, other.Vel)
			alignmentCount++
		}
		if distSq < cohSq {
			cohesion = vmath.V2Add(cohesion, other.Pos)
			cohesionCount++
		}
	}

	if alignmentCount > 0 {
		alignment = vmath.V2Scale(alignment, 1/float32(alignmentCount))
	}
	if cohesionCount > 0 {
		cohesion = vmath.V2Sub(vmath.V2Scale(cohesion, 1/float32(cohesionCount)), self.Pos)
	}

	force := vmath.V2Scale(separation, p.SeparationStrength)
	force = vmath.V2Add(force, vmath.V2Scale(alignment, p.AlignmentStrength))
	force = vmath.V2Add(force, vmath.V2Scale(cohesion, p.CohesionStrength))
	return force
}

// signedSq squares a distance threshold, keeping non-positive thresholds disabled
func signedSq(d float32) float32 {
	if d <= 0 {
		return -1
	}
	return d * d
}
