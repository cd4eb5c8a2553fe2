package sim

import (
	"fmt"
	"math"
)

// WallAvoidance computes the heading correction that keeps an agent inside
// the habitat. A zero return means no correction.
type WallAvoidance interface {
	Correction(pos Vec2, heading, visionDistance float64) float64
}

// NewWallAvoidance selects the strategy matching cfg.Habitat
func NewWallAvoidance(cfg Config) (WallAvoidance, error) {
	switch cfg.Habitat {
	case HabitatCircle:
		return CircleWalls{Radius: cfg.Radius(), Step: cfg.Steering.WallAvoidance}, nil
	case HabitatRectangle:
		return RectWalls{Bounds: cfg.Bounds(), Step: cfg.Steering.WallAvoidance}, nil
	default:
		return nil, fmt.Errorf("%w: unknown habitat %q", ErrInvalidConfig, cfg.Habitat)
	}
}

// wallPower is the turn applied for a wall at the given clearance
func wallPower(step, visionDistance, clearance float64) float64 {
	return step * math.Max(visionDistance/clearance, 2)
}

// CircleWalls steers agents away from the edge of an origin-centred circle
type CircleWalls struct {
	Radius float64
	Step   float64
}

// Correction probes heading±Step when the wall is within sight and turns
// toward the probe with more clearance.
func (c CircleWalls) Correction(pos Vec2, heading, visionDistance float64) float64 {
	if !(DistanceToCircleWall(pos, heading, c.Radius) < visionDistance) {
		return 0
	}
	left := DistanceToCircleWall(pos, NormalizeRadians(heading+c.Step), c.Radius)
	right := DistanceToCircleWall(pos, NormalizeRadians(heading-c.Step), c.Radius)
	if left > right {
		return wallPower(c.Step, visionDistance, left)
	}
	return -wallPower(c.Step, visionDistance, right)
}

// RectWalls steers agents away from the edges of an axis-aligned rectangle
type RectWalls struct {
	Bounds Rect
	Step   float64
}

// Correction accumulates a left or right turn for every facing wall inside
// vision range. Ties resolve clockwise.
func (r RectWalls) Correction(pos Vec2, heading, visionDistance float64) float64 {
	left, right, top, bottom := DistanceToWalls(pos, heading, r.Bounds)
	var leftTurn, rightTurn float64

	if left != 0 && left < visionDistance {
		power := wallPower(r.Step, visionDistance, left)
		if heading > 0 {
			rightTurn += power
		} else {
			leftTurn += power
		}
	}
	if right != 0 && right < visionDistance {
		power := wallPower(r.Step, visionDistance, right)
		if heading > 0 {
			leftTurn += power
		} else {
			rightTurn += power
		}
	}
	if top != 0 && top < visionDistance {
		power := wallPower(r.Step, visionDistance, top)
		if heading > math.Pi/2 {
			leftTurn += power
		} else {
			rightTurn += power
		}
	}
	if bottom != 0 && bottom < visionDistance {
		power := wallPower(r.Step, visionDistance, bottom)
		if heading < -math.Pi/2 {
			rightTurn += power
		} else {
			leftTurn += power
		}
	}

	if leftTurn > rightTurn {
		return leftTurn
	}
	return -rightTurn
}

// AvoidWalls applies the strategy's correction to every agent
func AvoidWalls(agents []*Agent, walls WallAvoidance) {
	for _, a := range agents {
		if delta := walls.Correction(a.Position, a.Heading, a.Vision.Distance); delta != 0 {
			a.Turn(delta)
		}
	}
}
