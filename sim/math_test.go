package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRadians(t *testing.T) {
	inputs := []float64{
		0, 1, -1, math.Pi, -math.Pi, 2 * math.Pi, -2 * math.Pi, 3 * math.Pi,
		-3 * math.Pi, 7 * math.Pi / 2, -7.5, 100, -100, 1e6, -1e6, math.Nextafter(math.Pi, 0),
	}
	rng := NewRand(1)
	for i := 0; i < 500; i++ {
		inputs = append(inputs, RandomFloat(rng, -50, 50))
	}

	for _, in := range inputs {
		got := NormalizeRadians(in)
		assert.GreaterOrEqual(t, got, -math.Pi, "input %v", in)
		assert.Less(t, got, math.Pi, "input %v", in)
		assert.Equal(t, got, NormalizeRadians(got), "not idempotent for %v", in)
	}
}

func TestNormalizeRadians_MultiplesOfPi(t *testing.T) {
	assert.Equal(t, -math.Pi, NormalizeRadians(math.Pi))
	assert.Equal(t, -math.Pi, NormalizeRadians(-math.Pi))
	assert.Equal(t, 0.0, NormalizeRadians(2*math.Pi))
	assert.Equal(t, 0.0, NormalizeRadians(-2*math.Pi))
	assert.InDelta(t, -math.Pi/2, NormalizeRadians(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, NormalizeRadians(-3*math.Pi/2), 1e-12)
}

func TestPointAway(t *testing.T) {
	origin := Vec2{}

	assert.InDelta(t, -math.Pi, PointAway(origin, Vec2{X: 10}), 1e-12)
	assert.InDelta(t, 0, PointAway(origin, Vec2{X: -10}), 1e-12)
	assert.InDelta(t, -math.Pi/2, PointAway(origin, Vec2{Y: 10}), 1e-12)
	assert.InDelta(t, math.Pi/2, PointAway(origin, Vec2{Y: -10}), 1e-12)
	assert.InDelta(t, -3*math.Pi/4, PointAway(origin, Vec2{X: 5, Y: 5}), 1e-12)

	// coincident points
	assert.Equal(t, -math.Pi, PointAway(origin, origin))
	assert.Equal(t, 0.0, PointTowards(origin, origin))
}

func TestPointTowards(t *testing.T) {
	origin := Vec2{}

	assert.InDelta(t, 0, PointTowards(origin, Vec2{X: 3}), 1e-12)
	assert.InDelta(t, math.Pi/2, PointTowards(origin, Vec2{Y: 5}), 1e-12)
	assert.InDelta(t, -math.Pi/2, PointTowards(origin, Vec2{Y: -5}), 1e-12)
	assert.InDelta(t, -math.Pi, PointTowards(origin, Vec2{X: -5}), 1e-12)
	assert.InDelta(t, math.Pi/4, PointTowards(Vec2{X: 1, Y: 1}, Vec2{X: 2, Y: 2}), 1e-12)
}

func TestSteerClamp(t *testing.T) {
	origin := Vec2{}
	max := math.Pi / 90

	// target straight ahead: no turn
	assert.InDelta(t, 0, SteerTowards(origin, Vec2{X: 10}, 0, max), 1e-12)
	// target to the left: clamped left turn
	assert.InDelta(t, max, SteerTowards(origin, Vec2{Y: 10}, 0, max), 1e-12)
	// away from something on the left: clamped right turn
	assert.InDelta(t, -max, SteerAway(origin, Vec2{Y: 10}, 0, max), 1e-12)
	// small differences pass through unclamped
	assert.InDelta(t, 0.001, SteerTowards(origin, UnitVector(0.001).Mul(10), 0, max), 1e-9)
}

func TestDistanceToCircleWall(t *testing.T) {
	radius := 360.0

	for _, heading := range []float64{0, 1, -1, math.Pi / 2, -math.Pi, 2.5} {
		assert.InDelta(t, radius, DistanceToCircleWall(Vec2{}, heading, radius), 1e-9, "heading %v", heading)
	}

	p := Vec2{X: 100}
	assert.InDelta(t, 260, DistanceToCircleWall(p, 0, radius), 1e-9)
	assert.InDelta(t, 460, DistanceToCircleWall(p, -math.Pi, radius), 1e-9)

	// line misses the circle
	assert.True(t, math.IsInf(DistanceToCircleWall(Vec2{X: 500}, math.Pi/2, radius), 1))
}

func TestDistanceToWalls(t *testing.T) {
	bounds := Default().Bounds()

	left, right, top, bottom := DistanceToWalls(Vec2{}, 0, bounds)
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 640.0, right)
	assert.Equal(t, 0.0, top)
	assert.Equal(t, 0.0, bottom)

	left, right, top, bottom = DistanceToWalls(Vec2{X: -600, Y: 300}, 3*math.Pi/4, bounds)
	assert.Equal(t, 40.0, left)
	assert.Equal(t, 0.0, right)
	assert.Equal(t, 60.0, top)
	assert.Equal(t, 0.0, bottom)

	left, right, top, bottom = DistanceToWalls(Vec2{X: 10, Y: -300}, -math.Pi/4, bounds)
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 630.0, right)
	assert.Equal(t, 0.0, top)
	assert.Equal(t, 60.0, bottom)
}

func TestCircleIntersectsRect(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, CircleIntersectsRect(Vec2{X: 5, Y: 5}, 1, rect))
	assert.True(t, CircleIntersectsRect(Vec2{X: 12, Y: 5}, 3, rect))
	assert.False(t, CircleIntersectsRect(Vec2{X: 20, Y: 20}, 3, rect))
}
