package sim

import "math"

// Summary describes the population at one tick
type Summary struct {
	Tick         uint64  `json:"tick" yaml:"tick"`
	Fish         int     `json:"fish" yaml:"fish"`
	Sharks       int     `json:"sharks" yaml:"sharks"`
	Fleeing      int     `json:"fleeing" yaml:"fleeing"`
	Polarization float64 `json:"polarization" yaml:"polarization"`
}

// Summarize computes population counts and fish polarization, the length of
// the mean unit heading (1 = all fish aligned, ~0 = disordered)
func Summarize(frame Frame) Summary {
	s := Summary{Tick: frame.Tick}
	var sum Vec2
	for _, a := range frame.Agents {
		if a.Kind == KindShark {
			s.Sharks++
			continue
		}
		s.Fish++
		if a.Fleeing {
			s.Fleeing++
		}
		sum = sum.Add(UnitVector(a.Heading))
	}
	if s.Fish > 0 {
		s.Polarization = math.Min(sum.Length()/float64(s.Fish), 1)
	}
	return s
}
