package sim

// Flock applies separation, alignment and cohesion in that order. Each
// force finishes for every fish before the next one starts.
func Flock(fish []*Agent, visibility Visibility, steering SteeringConfig) {
	Separation(fish, visibility, steering.Separation)
	Alignment(fish, visibility, steering.Alignment)
	Cohesion(fish, visibility, steering.Cohesion)
}

// Separation turns each fish away from every neighbour it sees. Per-neighbour
// turns are clamped to max and summed, so crowding strengthens the effect.
func Separation(fish []*Agent, visibility Visibility, max float64) {
	for _, f := range fish {
		visible := visibility[f.ID]
		if f.Fleeing || len(visible) == 0 {
			continue
		}
		var turn float64
		for _, other := range visible {
			turn = NormalizeRadians(turn + SteerAway(f.Position, other.Position, f.Heading, max))
		}
		f.Turn(turn)
	}
}

// Alignment turns each fish toward the headings of the neighbours it sees.
// Neighbour headings are read as they stood when the pass began.
func Alignment(fish []*Agent, visibility Visibility, max float64) {
	headings := make(map[*Agent]float64, len(fish))
	for _, f := range fish {
		headings[f] = f.Heading
	}

	for _, f := range fish {
		visible := visibility[f.ID]
		if f.Fleeing || len(visible) == 0 {
			continue
		}
		own := headings[f]
		var turn float64
		for _, other := range visible {
			h, ok := headings[other]
			if !ok {
				h = other.Heading
			}
			turn = NormalizeRadians(turn + clampTurn(NormalizeRadians(h-own), max))
		}
		f.Turn(turn)
	}
}

// Cohesion turns each fish once toward the centroid of the neighbours it sees
func Cohesion(fish []*Agent, visibility Visibility, max float64) {
	for _, f := range fish {
		visible := visibility[f.ID]
		if f.Fleeing || len(visible) == 0 {
			continue
		}
		var center Vec2
		for _, other := range visible {
			center = center.Add(other.Position)
		}
		center = center.Mul(1 / float64(len(visible)))
		f.Turn(SteerTowards(f.Position, center, f.Heading, max))
	}
}
