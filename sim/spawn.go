package sim

import (
	"math"
	"math/rand/v2"
)

// SpawnFish creates the configured number of fish with randomized size,
// position and heading. Positions fall inside the habitat shape.
func SpawnFish(cfg Config, rng *rand.Rand) []*Agent {
	fish := make([]*Agent, 0, cfg.Fish.Count)
	for i := 0; i < cfg.Fish.Count; i++ {
		size := RandomFloat(rng, cfg.Fish.SizeMin, cfg.Fish.SizeMax)
		var position Vec2
		if cfg.Habitat == HabitatCircle {
			position = RandomInDisk(rng, cfg.Radius())
		} else {
			position = RandomInRect(rng, cfg.Bounds())
		}
		heading := RandomFloat(rng, -math.Pi, math.Pi)
		fish = append(fish, NewFish(cfg, position, heading, size))
	}
	return fish
}

// SpawnSharks creates the configured number of sharks at the origin,
// all facing heading zero
func SpawnSharks(cfg Config, rng *rand.Rand) []*Agent {
	sharks := make([]*Agent, 0, cfg.Sharks.Count)
	for i := 0; i < cfg.Sharks.Count; i++ {
		size := RandomFloat(rng, cfg.Sharks.SizeMin, cfg.Sharks.SizeMax)
		sharks = append(sharks, NewShark(cfg, Vec2{}, 0, size))
	}
	return sharks
}
