package sim

import "math"

// Tau is a full turn in radians
const Tau = 2 * math.Pi

// Vec2 represents a 2D vector
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add adds two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub subtracts two vectors
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul multiplies a vector by a scalar
func (v Vec2) Mul(scalar float64) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the distance between two points
func Distance(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// UnitVector returns the unit vector pointing along heading
func UnitVector(heading float64) Vec2 {
	return Vec2{X: math.Cos(heading), Y: math.Sin(heading)}
}

// NormalizeRadians maps an angle into [-Pi, Pi).
// Values already in range are returned untouched so the function is idempotent.
func NormalizeRadians(r float64) float64 {
	if r >= -math.Pi && r < math.Pi {
		return r
	}
	r = math.Mod(r, Tau)
	if r >= math.Pi {
		r -= Tau
	} else if r < -math.Pi {
		r += Tau
	}
	return r
}

// PointAway returns the heading that points from other through p,
// i.e. directly away from other. Coincident points yield -Pi.
func PointAway(p, other Vec2) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y

	var theta float64
	switch {
	case dx == 0 && dy == 0:
		theta = 0
	case dx == 0 && dy > 0:
		theta = math.Pi / 2
	case dx == 0 && dy < 0:
		theta = 3 * math.Pi / 2
	default:
		theta = math.Atan(dy / dx)
	}
	if !math.Signbit(dx) {
		theta += math.Pi
	}
	return NormalizeRadians(theta)
}

// PointTowards returns the heading that points from p at other
func PointTowards(p, other Vec2) float64 {
	return NormalizeRadians(PointAway(p, other) + math.Pi)
}

// clampTurn limits a relative turn to at most max radians either way
func clampTurn(rel, max float64) float64 {
	if math.Abs(rel) > max {
		return math.Copysign(max, rel)
	}
	return rel
}

// SteerTowards is PointTowards expressed as a turn relative to heading,
// limited to max radians
func SteerTowards(p, other Vec2, heading, max float64) float64 {
	return clampTurn(NormalizeRadians(PointTowards(p, other)-heading), max)
}

// SteerAway is PointAway expressed as a turn relative to heading,
// limited to max radians
func SteerAway(p, other Vec2, heading, max float64) float64 {
	return clampTurn(NormalizeRadians(PointAway(p, other)-heading), max)
}

// Rect represents an axis-aligned bounding box
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains checks if a point is inside the rectangle
func (r Rect) Contains(point Vec2) bool {
	return point.X >= r.X && point.X <= r.X+r.Width &&
		point.Y >= r.Y && point.Y <= r.Y+r.Height
}

// MinX, MaxX, MinY and MaxY return the rectangle's edges
func (r Rect) MinX() float64 { return r.X }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// CircleIntersectsRect checks if a circle intersects with a rectangle
func CircleIntersectsRect(center Vec2, radius float64, rect Rect) bool {
	// Find the closest point to the circle within the rectangle
	closestX := math.Max(rect.X, math.Min(center.X, rect.X+rect.Width))
	closestY := math.Max(rect.Y, math.Min(center.Y, rect.Y+rect.Height))

	distanceX := center.X - closestX
	distanceY := center.Y - closestY

	distanceSquared := distanceX*distanceX + distanceY*distanceY
	return distanceSquared <= (radius * radius)
}

// DistanceToCircleWall returns how far p can travel along heading before it
// meets the boundary of the origin-centred circle of the given radius.
// Returns +Inf when the heading's line misses the circle entirely.
func DistanceToCircleWall(p Vec2, heading, radius float64) float64 {
	v := UnitVector(heading)
	u := Vec2{}.Sub(p)
	u1 := v.Mul(u.Dot(v))
	u2 := u.Sub(u1)
	d := u2.Length()
	if d > radius {
		return math.Inf(1)
	}
	m := math.Sqrt(radius*radius - d*d)
	hit := p.Add(u1).Add(v.Mul(m))
	return Distance(p, hit)
}

// DistanceToWalls returns the proximity of p to the left, right, top and
// bottom edges of bounds. A wall the heading faces away from reports zero.
func DistanceToWalls(p Vec2, heading float64, bounds Rect) (left, right, top, bottom float64) {
	if heading > math.Pi/2 || heading < -math.Pi/2 {
		left = p.X - bounds.MinX()
	}
	if heading < math.Pi/2 && heading > -math.Pi/2 {
		right = bounds.MaxX() - p.X
	}
	if heading > 0 {
		top = bounds.MaxY() - p.Y
	}
	if heading < 0 {
		bottom = p.Y - bounds.MinY()
	}
	return left, right, top, bottom
}
