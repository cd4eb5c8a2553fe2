package sim

import "math"

// Integrate advances every agent along its heading by speed*dt*timeRate and
// then wraps it back into bounds
func Integrate(agents []*Agent, dt, timeRate float64, bounds Rect) {
	for _, a := range agents {
		step := UnitVector(a.Heading).Mul(a.Speed * dt * timeRate)
		a.Position = Wrap(a.Position.Add(step), bounds)
	}
}

// Wrap teleports a point that left bounds to the opposite edge. This is a
// safety net for agents escaping the habitat, not a toroidal habitat.
func Wrap(p Vec2, bounds Rect) Vec2 {
	return Vec2{
		X: wrapAxis(p.X, bounds.MinX(), bounds.MaxX(), bounds.Width),
		Y: wrapAxis(p.Y, bounds.MinY(), bounds.MaxY(), bounds.Height),
	}
}

func wrapAxis(v, min, max, span float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	if v >= min && v <= max {
		return v
	}
	v = min + math.Mod(v-min, span)
	if v < min {
		v += span
	}
	return v
}
