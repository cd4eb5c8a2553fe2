package sim

import (
	"math"

	"github.com/google/uuid"
)

// Visibility maps a fish to the fish it currently perceives, in ascending
// population order
type Visibility map[uuid.UUID][]*Agent

// CanSee reports whether observer perceives a target of the given size at
// pos. Larger targets shrink the effective range: distance*size must stay
// below the observer's vision distance.
func CanSee(observer *Agent, targetSize float64, pos Vec2) bool {
	angle := NormalizeRadians(PointTowards(observer.Position, pos) - observer.Heading)
	distance := Distance(observer.Position, pos)
	return distance*targetSize < observer.Vision.Distance &&
		angle < observer.Vision.Angle && angle > -observer.Vision.Angle
}

// BuildVisibility evaluates CanSee in both directions for every pair of fish.
// Fleeing fish are never observers but can still be seen.
func BuildVisibility(fish []*Agent) Visibility {
	visibility := make(Visibility)
	for i := 0; i < len(fish); i++ {
		for j := i + 1; j < len(fish); j++ {
			a, b := fish[i], fish[j]
			if !a.Fleeing && CanSee(a, b.Size, b.Position) {
				visibility[a.ID] = append(visibility[a.ID], b)
			}
			if !b.Fleeing && CanSee(b, a.Size, a.Position) {
				visibility[b.ID] = append(visibility[b.ID], a)
			}
		}
	}
	return visibility
}

// BuildVisibilityIndexed produces the same graph as BuildVisibility using a
// quadtree over bounds to prune candidates. If any fish lies outside bounds
// it falls back to the pairwise scan.
func BuildVisibilityIndexed(fish []*Agent, bounds Rect) Visibility {
	if len(fish) < 2 {
		return make(Visibility)
	}

	qt := NewQuadtree(bounds, quadtreeCapacity)
	minSize := math.Inf(1)
	for i, f := range fish {
		if !qt.Insert(indexedAgent{Agent: f, index: i}) {
			return BuildVisibility(fish)
		}
		minSize = math.Min(minSize, f.Size)
	}

	visibility := make(Visibility)
	for i, observer := range fish {
		if observer.Fleeing {
			continue
		}
		// Nothing farther than vision/minSize can pass the range test.
		radius := observer.Vision.Distance / minSize * (1 + 1e-9)
		found := qt.QueryCircle(observer.Position, radius, nil)
		sortByIndex(found)
		for _, e := range found {
			if e.index == i {
				continue
			}
			if CanSee(observer, e.Size, e.Position) {
				visibility[observer.ID] = append(visibility[observer.ID], e.Agent)
			}
		}
	}
	return visibility
}
