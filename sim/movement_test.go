package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	bounds := Default().Bounds()

	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"inside", Vec2{X: 12, Y: -30}, Vec2{X: 12, Y: -30}},
		{"on the edge", Vec2{X: 640, Y: -360}, Vec2{X: 640, Y: -360}},
		{"past right", Vec2{X: 640.5, Y: 0}, Vec2{X: -639.5, Y: 0}},
		{"past left", Vec2{X: -641, Y: 0}, Vec2{X: 639, Y: 0}},
		{"past top", Vec2{X: 0, Y: 361}, Vec2{X: 0, Y: -359}},
		{"past bottom", Vec2{X: 0, Y: -400}, Vec2{X: 0, Y: 320}},
		{"several spans out", Vec2{X: 3000, Y: 0}, Vec2{X: 440, Y: 0}},
		{"several spans below", Vec2{X: 0, Y: -2200}, Vec2{X: 0, Y: -40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.in, bounds))
		})
	}
}

func TestWrap_FarOutside(t *testing.T) {
	bounds := Default().Bounds()

	got := Wrap(Vec2{X: 1e17, Y: -1e17}, bounds)
	assert.True(t, bounds.Contains(got), "wrapped to %v", got)

	tiny := Rect{X: -5e-13, Y: -5e-13, Width: 1e-12, Height: 1e-12}
	got = Wrap(Vec2{X: 3, Y: -3}, tiny)
	assert.True(t, tiny.Contains(got), "wrapped to %v", got)
}

func TestWrap_NonFinite(t *testing.T) {
	bounds := Default().Bounds()
	got := Wrap(Vec2{X: math.Inf(1), Y: 0}, bounds)
	assert.True(t, math.IsInf(got.X, 1))
}

func TestIntegrate(t *testing.T) {
	bounds := Default().Bounds()
	dt := 1.0 / DefaultTickRate

	a := fishAt(0, 0, math.Pi/2, 1)
	b := fishAt(639, 0, 0, 2) // speed 2.5, crosses the right edge
	Integrate([]*Agent{a, b}, dt, DefaultTimeRate, bounds)

	assert.InDelta(t, 0, a.Position.X, 1e-9)
	assert.InDelta(t, DefaultFishSpeed, a.Position.Y, 1e-9)
	assert.InDelta(t, -638.5, b.Position.X, 1e-9)
	assert.InDelta(t, 0, b.Position.Y, 1e-9)
	assert.Equal(t, math.Pi/2, a.Heading, "movement never changes heading")
}

func TestIntegrate_ZeroStepOnlyWraps(t *testing.T) {
	a := fishAt(640.5, 0, 0, 1)
	Integrate([]*Agent{a}, 0, DefaultTimeRate, Default().Bounds())
	assert.Equal(t, Vec2{X: -639.5, Y: 0}, a.Position)
}
