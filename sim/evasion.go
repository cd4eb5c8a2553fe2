package sim

// StartFleeing puts every calm fish that can see a shark into the fleeing
// state. Each visible shark multiplies the speed by factor and points the
// fish away from it, so with several sharks in view the last one processed
// decides the heading. It returns the number of fish that started fleeing.
func StartFleeing(fish, sharks []*Agent, factor float64) int {
	started := 0
	for _, f := range fish {
		if f.Fleeing {
			continue
		}
		for _, s := range sharks {
			if CanSee(f, s.Size, s.Position) {
				if !f.Fleeing {
					started++
				}
				f.Fleeing = true
				f.Speed *= factor
				f.Heading = PointAway(f.Position, s.Position)
			}
		}
	}
	return started
}

// StopFleeing calms every fleeing fish that is farther than disengage from
// all sharks, dividing its speed by factor. It returns the number of fish
// that calmed down.
func StopFleeing(fish, sharks []*Agent, factor, disengage float64) int {
	stopped := 0
	for _, f := range fish {
		if !f.Fleeing || !clearOf(f, sharks, disengage) {
			continue
		}
		f.Fleeing = false
		f.Speed /= factor
		stopped++
	}
	return stopped
}

func clearOf(f *Agent, sharks []*Agent, disengage float64) bool {
	for _, s := range sharks {
		if Distance(f.Position, s.Position) <= disengage {
			return false
		}
	}
	return true
}
