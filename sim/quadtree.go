package sim

import "sort"

const (
	quadtreeCapacity = 8
	quadtreeMaxDepth = 12
)

// indexedAgent is a fish stored in the quadtree along with its position in
// the population slice
type indexedAgent struct {
	*Agent
	index int
}

// Quadtree is a spatial partitioning structure used to prune the
// perception scan
type Quadtree struct {
	Bounds   Rect
	Capacity int
	Entities []indexedAgent
	Divided  bool
	NW       *Quadtree
	NE       *Quadtree
	SW       *Quadtree
	SE       *Quadtree
	depth    int
}

// NewQuadtree creates a new quadtree with the given bounds and capacity
func NewQuadtree(bounds Rect, capacity int) *Quadtree {
	return newQuadtree(bounds, capacity, 0)
}

func newQuadtree(bounds Rect, capacity, depth int) *Quadtree {
	return &Quadtree{
		Bounds:   bounds,
		Capacity: capacity,
		Entities: make([]indexedAgent, 0, capacity),
		depth:    depth,
	}
}

// Insert adds an entity to the quadtree. It returns false if the entity lies
// outside the tree's bounds.
func (qt *Quadtree) Insert(entity indexedAgent) bool {
	if !qt.Bounds.Contains(entity.Position) {
		return false
	}

	// Leaves at max depth grow without bound so stacked points terminate.
	if !qt.Divided && (len(qt.Entities) < qt.Capacity || qt.depth >= quadtreeMaxDepth) {
		qt.Entities = append(qt.Entities, entity)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}
	if !qt.insertChild(entity) {
		qt.Entities = append(qt.Entities, entity)
	}
	return true
}

// insertChild places entity in exactly one child; points on a shared edge go
// to the first child that accepts them
func (qt *Quadtree) insertChild(entity indexedAgent) bool {
	return qt.NW.Insert(entity) || qt.NE.Insert(entity) ||
		qt.SW.Insert(entity) || qt.SE.Insert(entity)
}

// Subdivide splits the quadtree into four sub-quadrants
func (qt *Quadtree) Subdivide() {
	x := qt.Bounds.X
	y := qt.Bounds.Y
	w := qt.Bounds.Width / 2
	h := qt.Bounds.Height / 2
	d := qt.depth + 1

	qt.NW = newQuadtree(Rect{X: x, Y: y, Width: w, Height: h}, qt.Capacity, d)
	qt.NE = newQuadtree(Rect{X: x + w, Y: y, Width: w, Height: h}, qt.Capacity, d)
	qt.SW = newQuadtree(Rect{X: x, Y: y + h, Width: w, Height: h}, qt.Capacity, d)
	qt.SE = newQuadtree(Rect{X: x + w, Y: y + h, Width: w, Height: h}, qt.Capacity, d)

	qt.Divided = true

	// Halving can round the children's far edge inside ours; entities on
	// that sliver stay here.
	entities := qt.Entities
	qt.Entities = nil
	for _, entity := range entities {
		if !qt.insertChild(entity) {
			qt.Entities = append(qt.Entities, entity)
		}
	}
}

// QueryCircle returns all entities within radius of center
func (qt *Quadtree) QueryCircle(center Vec2, radius float64, found []indexedAgent) []indexedAgent {
	if found == nil {
		found = make([]indexedAgent, 0)
	}

	if !CircleIntersectsRect(center, radius, qt.Bounds) {
		return found
	}

	for _, entity := range qt.Entities {
		if Distance(center, entity.Position) <= radius {
			found = append(found, entity)
		}
	}

	if qt.Divided {
		found = qt.NW.QueryCircle(center, radius, found)
		found = qt.NE.QueryCircle(center, radius, found)
		found = qt.SW.QueryCircle(center, radius, found)
		found = qt.SE.QueryCircle(center, radius, found)
	}

	return found
}

// Len returns the number of entities stored in the tree
func (qt *Quadtree) Len() int {
	n := len(qt.Entities)
	if qt.Divided {
		n += qt.NW.Len() + qt.NE.Len() + qt.SW.Len() + qt.SE.Len()
	}
	return n
}

func sortByIndex(entities []indexedAgent) {
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].index < entities[j].index
	})
}
