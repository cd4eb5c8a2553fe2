package sim

import "math/rand/v2"

// Wander perturbs the heading of every shark and every calm fish by one
// draw of NextDirection, scaled by the kind's noise magnitude
func Wander(agents []*Agent, rng *rand.Rand, fishNoise, sharkNoise float64) {
	for _, a := range agents {
		noise := sharkNoise
		if a.IsFish() {
			if a.Fleeing {
				continue
			}
			noise = fishNoise
		}
		a.Turn(NextDirection(rng).Turn(noise))
	}
}
