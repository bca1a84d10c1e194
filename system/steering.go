package system

import (
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/vmath"
)

// steerRivals nudges every AI pack: toward smaller packs, away from larger packs, toward nearby food
// Returns the number of agents whose velocity changed
func steerRivals(agents []component.Agent, idx packIndex, roster *component.Roster, ai AIRules) int {
	order := competitorOrder(roster)

	rivals := false
	for _, id := range order {
		if id >= component.PackFirstRival && len(idx[id]) > 0 {
			rivals = true
			break
		}
	}
	if !rivals {
		return 0
	}

	centers := make(map[component.PackID]vmath.Vec2, len(order))
	for _, id := range order {
		if len(idx[id]) > 0 {
			centers[id] = centroid(agents, idx[id])
		}
	}

	seekSq := ai.FoodSeekRadius * ai.FoodSeekRadius
	steered := 0
	for _, self := range order {
		members := idx[self]
		if self < component.PackFirstRival || len(members) == 0 {
			continue
		}
		center := centers[self]
		size := float32(len(members))

		var steer vmath.Vec2
		for _, other := range order {
			if other == self || len(idx[other]) == 0 {
				continue
			}
			dir := vmath.V2Normalize(vmath.V2Sub(centers[other], center), vmath.Zero2)
			otherSize := float32(len(idx[other]))
			switch {
			case otherSize < ai.HuntRatio*size:
				steer = vmath.V2Add(steer, vmath.V2Scale(dir, ai.HuntStrength))
			case otherSize > ai.FleeRatio*size:
				steer = vmath.V2Sub(steer, vmath.V2Scale(dir, ai.FleeStrength))
			}
		}

		var near []int
		for _, f := range idx[component.PackFood] {
			if vmath.V2DistSq(agents[f].Pos, center) < seekSq {
				near = append(near, f)
			}
		}
		if len(near) > 0 {
			dir := vmath.V2Normalize(vmath.V2Sub(centroid(agents, near), center), vmath.Zero2)
			steer = vmath.V2Add(steer, vmath.V2Scale(dir, ai.FoodSeekStrength))
		}

		if steer == vmath.Zero2 || !vmath.V2IsFinite(steer) {
			continue
		}
		for _, i := range members {
			agents[i].Vel = vmath.V2Add(agents[i].Vel, steer)
		}
		steered += len(members)
	}
	return steered
}
