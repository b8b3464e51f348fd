package geometry

import (
	"github.com/ngrafx/nray/pkg/core"
)

// List is an ordered aggregate of primitives tested by linear scan
type List struct {
	Primitives []core.Primitive
}

// NewList creates a list from the given primitives
func NewList(primitives ...core.Primitive) *List {
	return &List{Primitives: primitives}
}

// Add appends primitives to the list
func (l *List) Add(primitives ...core.Primitive) {
	l.Primitives = append(l.Primitives, primitives...)
}

// Len returns the number of children
func (l *List) Len() int {
	return len(l.Primitives)
}

// Hit returns the closest hit among all children
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, primitive := range l.Primitives {
		if hit, isHit := primitive.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of the children's boxes. An empty list, or one
// holding a child without a box, has no box.
func (l *List) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(l.Primitives) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, primitive := range l.Primitives {
		childBox, ok := primitive.BoundingBox(t0, t1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = childBox
		} else {
			box = box.Union(childBox)
		}
	}
	return box, true
}
