package system

import (
	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/vmath"
)

// rivalClusterRadius is the scatter of a rival pack around its spawn point
const rivalClusterRadius = 0.05

// spawnFood creates one food agent at a random in-bounds position
func spawnFood(rules GameRules, rng *vmath.FastRand) component.Agent {
	extent := rules.spawnExtent()
	return component.Agent{
		Pos:  vmath.V2(rng.Symmetric(extent), rng.Symmetric(extent)),
		Vel:  vmath.V2(rng.Symmetric(rules.SpawnVelocity), rng.Symmetric(rules.SpawnVelocity)),
		Pack: component.PackFood,
	}
}

// NewPopulation builds the reset line-up: player pack at the origin, rival packs clustered at random
// points, food scattered over the arena
func NewPopulation(cfg PopulationConfig, rules GameRules, rng *vmath.FastRand) ([]component.Agent, *component.Roster) {
	total := cfg.Players + cfg.Food + cfg.RivalPacks*cfg.RivalSize
	agents := make([]component.Agent, 0, total)

	roster := component.NewRoster(
		component.Flock{ID: component.PackPlayer, Name: parameter.PlayerName},
		component.Flock{ID: component.PackFood, Name: parameter.FoodName},
	)

	for i := 0; i < cfg.Players; i++ {
		agents = append(agents, component.Agent{
			Vel:  vmath.V2(rng.Symmetric(rules.SpawnVelocity), rng.Symmetric(rules.SpawnVelocity)),
			Pack: component.PackPlayer,
		})
	}
	roster.At(0).Count = cfg.Players

	extent := rules.spawnExtent()
	for r := 0; r < cfg.RivalPacks; r++ {
		id := component.PackFirstRival + component.PackID(r)
		home := vmath.V2(rng.Symmetric(extent), rng.Symmetric(extent))
		for i := 0; i < cfg.RivalSize; i++ {
			agents = append(agents, component.Agent{
				Pos:  vmath.V2Add(home, vmath.V2(rng.Symmetric(rivalClusterRadius), rng.Symmetric(rivalClusterRadius))),
				Vel:  vmath.V2(rng.Symmetric(rules.SpawnVelocity), rng.Symmetric(rules.SpawnVelocity)),
				Pack: id,
			})
		}
		roster.Ensure(id, defaultFlockName(id)).Count = cfg.RivalSize
	}

	for i := 0; i < cfg.Food; i++ {
		agents = append(agents, spawnFood(rules, rng))
	}
	food, _ := roster.Get(component.PackFood)
	food.Count = cfg.Food

	return agents, roster
}
