package geometry

import "errors"

var (
	ErrNoBoundingBox   = errors.New("geometry: primitive has no bounding box")
	ErrEmptyPrimitives = errors.New("geometry: no primitives to build a BVH from")
	ErrBadMeshIndices  = errors.New("geometry: mesh index buffer is malformed")
)
