package system

import (
	"fmt"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/vmath"
)

// packIndex maps pack id to member agent indices
type packIndex map[component.PackID][]int

// classify groups agents by pack and resynchronizes roster counts from the scan
// Packs present in the buffer but missing from the roster are adopted
func classify(agents []component.Agent, roster *component.Roster) packIndex {
	idx := make(packIndex)
	for i := range agents {
		p := agents[i].Pack
		idx[p] = append(idx[p], i)
	}
	for id := range idx {
		roster.Ensure(id, defaultFlockName(id))
	}
	for i := 0; i < roster.Len(); i++ {
		f := roster.At(i)
		f.Count = len(idx[f.ID])
	}
	return idx
}

// defaultFlockName names a pack that was never registered
func defaultFlockName(id component.PackID) string {
	switch id {
	case component.PackPlayer:
		return parameter.PlayerName
	case component.PackFood:
		return parameter.FoodName
	}
	n := int(id - component.PackFirstRival)
	if n < len(parameter.RivalNames) {
		return parameter.RivalNames[n]
	}
	return fmt.Sprintf("Pack %d", id)
}

// centroid returns the mean position of the listed agents
func centroid(agents []component.Agent, members []int) vmath.Vec2 {
	if len(members) == 0 {
		return vmath.Zero2
	}
	var sum vmath.Vec2
	for _, i := range members {
		sum = vmath.V2Add(sum, agents[i].Pos)
	}
	return vmath.V2Scale(sum, 1/float32(len(members)))
}

// competitorOrder returns non-food pack ids in roster order
func competitorOrder(roster *component.Roster) []component.PackID {
	ids := make([]component.PackID, 0, roster.Len())
	for i := 0; i < roster.Len(); i++ {
		if id := roster.At(i).ID; id.IsCompetitor() {
			ids = append(ids, id)
		}
	}
	return ids
}

// ejectVelocity points away from center at speed, falling back to +X at the exact center
func ejectVelocity(pos, center vmath.Vec2, speed float32) vmath.Vec2 {
	return vmath.V2WithMagnitude(vmath.V2Sub(pos, center), speed, vmath.UnitX)
}
