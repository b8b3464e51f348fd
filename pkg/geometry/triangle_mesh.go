package geometry

import (
	"fmt"

	"github.com/ngrafx/nray/pkg/core"
)

// TriangleMesh holds the shared, read-only vertex buffers of an indexed mesh.
// Triangles reference the mesh and never copy its vertices.
type TriangleMesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3 // Optional per-vertex normals, nil or len(Positions)
	Indices   []int       // Three indices per triangle
}

// NewTriangleMesh validates the buffers and creates a mesh
// positions: array of 3D points
// normals: optional per-vertex normals (nil for flat shading)
// indices: each group of 3 indices forms a triangle
func NewTriangleMesh(positions, normals []core.Vec3, indices []int) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrBadMeshIndices, len(indices))
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("%w: %d normals for %d positions", ErrBadMeshIndices, len(normals), len(positions))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			return nil, fmt.Errorf("%w: index %d at %d out of range [0,%d)", ErrBadMeshIndices, idx, i, len(positions))
		}
	}

	return &TriangleMesh{Positions: positions, Normals: normals, Indices: indices}, nil
}

// NumTriangles returns the number of triangles in the mesh
func (m *TriangleMesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Triangles creates one Triangle primitive per face, all sharing this mesh
func (m *TriangleMesh) Triangles(material core.Material) []core.Primitive {
	triangles := make([]core.Primitive, m.NumTriangles())
	for i := range triangles {
		triangles[i] = NewTriangle(m, [3]int{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}, material)
	}
	return triangles
}
