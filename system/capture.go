package system

import (
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/vmath"
)

// Event records one agent changing pack
type Event struct {
	Agent int
	From  component.PackID
	To    component.PackID
}

// captureFood converts food touching any pack member, packs tried in roster order, first match wins
// Capturer lists are fixed at entry: food captured this pass does not capture other food
func captureFood(agents []component.Agent, idx packIndex, roster *component.Roster, rules GameRules, now float32) []Event {
	food := idx[component.PackFood]
	if len(food) == 0 {
		return nil
	}

	order := competitorOrder(roster)
	centers := make(map[component.PackID]vmath.Vec2, len(order))
	for _, id := range order {
		if len(idx[id]) > 0 {
			centers[id] = centroid(agents, idx[id])
		}
	}

	var events []Event
	for _, f := range food {
		pos := agents[f].Pos
	packs:
		for _, id := range order {
			for _, m := range idx[id] {
				if vmath.V2DistSq(pos, agents[m].Pos) >= rules.CaptureDistanceSq {
					continue
				}
				agents[f].Reassign(id, now)
				agents[f].Vel = ejectVelocity(pos, centers[id], rules.EjectSpeed)
				bump(roster, id, 1)
				bump(roster, component.PackFood, -1)
				events = append(events, Event{Agent: f, From: component.PackFood, To: id})
				break packs
			}
		}
	}
	return events
}

// consumePacks lets each pack absorb members of packs it outnumbers by the consume ratio
// Pairs run in roster order; the ratio is checked once per pair against live counts
// Defenders are tested against the attacker's members at the start of the pair, absorbed
// agents join the attacker afterwards, so later pairs see earlier results
func consumePacks(agents []component.Agent, idx packIndex, roster *component.Roster, rules GameRules, now float32) []Event {
	order := competitorOrder(roster)

	var events []Event
	for _, attacker := range order {
		for _, defender := range order {
			if attacker == defender {
				continue
			}
			na, nd := len(idx[attacker]), len(idx[defender])
			if na == 0 || nd == 0 || float32(na) < rules.ConsumeRatio*float32(nd) {
				continue
			}

			members := idx[attacker]
			center := centroid(agents, members)
			remaining := make([]int, 0, nd)
			var absorbed []int
			for _, d := range idx[defender] {
				pos := agents[d].Pos
				hit := false
				for _, a := range members {
					if vmath.V2DistSq(pos, agents[a].Pos) < rules.CaptureDistanceSq {
						hit = true
						break
					}
				}
				if !hit {
					remaining = append(remaining, d)
					continue
				}
				agents[d].Reassign(attacker, now)
				agents[d].Vel = ejectVelocity(pos, center, rules.EjectSpeed)
				absorbed = append(absorbed, d)
				bump(roster, attacker, 1)
				bump(roster, defender, -1)
				events = append(events, Event{Agent: d, From: defender, To: attacker})
			}
			idx[defender] = remaining
			idx[attacker] = append(members[:len(members):len(members)], absorbed...)
		}
	}
	return events
}

// replenish appends one food agent unless the population is at capacity
func replenish(agents []component.Agent, roster *component.Roster, rules GameRules, rng *vmath.FastRand) ([]component.Agent, bool) {
	if rules.MaxCapacity > 0 && len(agents) >= rules.MaxCapacity {
		return agents, false
	}
	agents = append(agents, spawnFood(rules, rng))
	bump(roster, component.PackFood, 1)
	return agents, true
}

func bump(roster *component.Roster, id component.PackID, delta int) {
	roster.Ensure(id, defaultFlockName(id)).Count += delta
}

// rebuildIndex reclassifies after captures without touching roster counts
func rebuildIndex(agents []component.Agent) packIndex {
	idx := make(packIndex)
	for i := range agents {
		idx[agents[i].Pack] = append(idx[agents[i].Pack], i)
	}
	return idx
}
