package geometry

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ngrafx/nray/pkg/core"
)

// BVHNode is an interior node of a Bounding Volume Hierarchy. It owns its two
// children, which are either further nodes or scene primitives. A node built
// over a single primitive has that primitive as both children.
type BVHNode struct {
	Left  core.Primitive
	Right core.Primitive
	Box   core.AABB

	single bool // Built over one primitive, so Left and Right are the same leaf
}

// BVH builder options
type BVHOptions struct {
	Seed  int64   // Seed for the per-node random split axis
	Time0 float64 // Shutter open, forwarded to BoundingBox queries
	Time1 float64 // Shutter close
}

// NewBVH builds a hierarchy over primitives. The input slice is not modified.
// Every primitive must report a bounding box.
func NewBVH(primitives []core.Primitive, options BVHOptions) (*BVHNode, error) {
	if len(primitives) == 0 {
		return nil, ErrEmptyPrimitives
	}

	// Work on a copy: construction reorders the slice in place
	items := make([]bvhItem, len(primitives))
	for i, p := range primitives {
		box, ok := p.BoundingBox(options.Time0, options.Time1)
		if !ok {
			return nil, fmt.Errorf("%w: primitive %d (%T)", ErrNoBoundingBox, i, p)
		}
		items[i] = bvhItem{primitive: p, box: box}
	}

	random := rand.New(rand.NewSource(options.Seed))
	root, _ := buildBVH(items, random)
	return root, nil
}

// bvhItem caches a child's box so sorting never re-queries primitives
type bvhItem struct {
	primitive core.Primitive
	box       core.AABB
}

// buildBVH recursively partitions items and returns the node with its box
func buildBVH(items []bvhItem, random *rand.Rand) (*BVHNode, core.AABB) {
	axis := random.Intn(3)

	var left, right bvhItem
	switch len(items) {
	case 1:
		left, right = items[0], items[0]
	case 2:
		if boxMinLess(items[0].box, items[1].box, axis) {
			left, right = items[0], items[1]
		} else {
			left, right = items[1], items[0]
		}
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return boxMinLess(items[i].box, items[j].box, axis)
		})
		mid := len(items) / 2
		leftNode, leftBox := buildBVH(items[:mid], random)
		rightNode, rightBox := buildBVH(items[mid:], random)
		left = bvhItem{primitive: leftNode, box: leftBox}
		right = bvhItem{primitive: rightNode, box: rightBox}
	}

	box := left.box.Union(right.box)
	return &BVHNode{Left: left.primitive, Right: right.primitive, Box: box, single: len(items) == 1}, box
}

// boxMinLess orders two boxes by their minimum corner on axis
func boxMinLess(a, b core.AABB, axis int) bool {
	return a.Min.Axis(axis) < b.Min.Axis(axis)
}

// Hit tests the node box, then the left child, then the right child with the
// interval narrowed to the left hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the cached node box
func (n *BVHNode) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes      int     // Interior nodes
	Leaves     int     // Primitive references at the bottom of the tree
	MaxDepth   int     // Deepest leaf
	AvgDepth   float64 // Average leaf depth
	Primitives int     // Primitives the tree was built over
}

// Stats walks the tree and collects structural statistics. Primitives are
// counted by their place in the tree, never compared, so any Primitive
// implementation is accepted.
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	if stats.Leaves > 0 {
		stats.AvgDepth /= float64(stats.Leaves)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	for i, child := range []core.Primitive{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
			continue
		}
		stats.Leaves++
		stats.AvgDepth += float64(depth + 1)
		stats.MaxDepth = max(stats.MaxDepth, depth+1)
		if i == 0 || !n.single {
			stats.Primitives++
		}
	}
}
