package sim

import (
	"math"
	"math/rand/v2"
)

// NewRand returns a deterministic random source for the given seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomFloat generates a random float between min and max
func RandomFloat(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// RandomInDisk returns a point uniformly distributed in the origin-centred
// disk of the given radius
func RandomInDisk(rng *rand.Rand, radius float64) Vec2 {
	r := radius * math.Sqrt(rng.Float64())
	theta := rng.Float64() * Tau
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// RandomInRect returns a point uniformly distributed in rect
func RandomInRect(rng *rand.Rand, rect Rect) Vec2 {
	return Vec2{
		X: RandomFloat(rng, rect.MinX(), rect.MaxX()),
		Y: RandomFloat(rng, rect.MinY(), rect.MaxY()),
	}
}

// Direction is the outcome of one wander draw
type Direction int

const (
	Straight Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "straight"
	}
}

// NextDirection draws Straight with probability 4/6, Left and Right with 1/6 each
func NextDirection(rng *rand.Rand) Direction {
	r := rng.Float64() * 6
	switch {
	case r < 4:
		return Straight
	case r < 5:
		return Left
	default:
		return Right
	}
}

// Turn returns the signed heading change for d given a noise magnitude
func (d Direction) Turn(noise float64) float64 {
	switch d {
	case Left:
		return noise
	case Right:
		return -noise
	default:
		return 0
	}
}
